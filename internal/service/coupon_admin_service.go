package service

import (
	"strings"
	"time"

	"github.com/velora-next/internal/constants"
	"github.com/velora-next/internal/models"
	"github.com/velora-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponAdminService 优惠券管理服务
type CouponAdminService struct {
	couponRepo repository.CouponRepository
}

// NewCouponAdminService 创建优惠券管理服务
func NewCouponAdminService(couponRepo repository.CouponRepository) *CouponAdminService {
	return &CouponAdminService{couponRepo: couponRepo}
}

// CouponCreateInput 创建优惠券输入
type CouponCreateInput struct {
	Code           string
	Type           string
	Value          models.Money
	MinOrderAmount models.Money
	MaxDiscount    models.Money
	GlobalLimit    int
	PerUserLimit   int
	StartsAt       *time.Time
	EndsAt         *time.Time
	IsActive       *bool
}

// CouponUpdateInput 更新优惠券输入（nil 字段不修改）
type CouponUpdateInput struct {
	Value          *models.Money
	MinOrderAmount *models.Money
	MaxDiscount    *models.Money
	GlobalLimit    *int
	PerUserLimit   *int
	StartsAt       *time.Time
	EndsAt         *time.Time
	IsActive       *bool
}

// validateCouponRule 校验优惠券类型与数值约束
func validateCouponRule(couponType string, value models.Money) error {
	switch strings.ToLower(strings.TrimSpace(couponType)) {
	case constants.CouponTypeFixed:
		if value.Decimal.LessThanOrEqual(decimal.Zero) {
			return ErrCouponValueInvalid
		}
	case constants.CouponTypePercent:
		if value.Decimal.LessThanOrEqual(decimal.Zero) ||
			value.Decimal.GreaterThan(decimal.NewFromInt(100)) {
			return ErrCouponValueInvalid
		}
	default:
		return ErrCouponTypeInvalid
	}
	return nil
}

// Create 创建优惠券
func (s *CouponAdminService) Create(input CouponCreateInput) (*models.Coupon, error) {
	code := NormalizeCouponCode(input.Code)
	if code == "" {
		return nil, ErrCouponCodeRequired
	}
	if err := validateCouponRule(input.Type, input.Value); err != nil {
		return nil, err
	}
	if input.StartsAt != nil && input.EndsAt != nil && input.EndsAt.Before(*input.StartsAt) {
		return nil, ErrCouponWindowInvalid
	}

	existing, err := s.couponRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCouponCodeTaken
	}

	perUserLimit := input.PerUserLimit
	if perUserLimit <= 0 {
		perUserLimit = 1
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	coupon := &models.Coupon{
		Code:           code,
		Type:           strings.ToLower(strings.TrimSpace(input.Type)),
		Value:          input.Value,
		MinOrderAmount: input.MinOrderAmount,
		MaxDiscount:    input.MaxDiscount,
		GlobalLimit:    input.GlobalLimit,
		PerUserLimit:   perUserLimit,
		StartsAt:       input.StartsAt,
		EndsAt:         input.EndsAt,
		IsActive:       isActive,
	}
	if err := s.couponRepo.Create(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Update 更新优惠券
func (s *CouponAdminService) Update(id uint, input CouponUpdateInput) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}

	if input.Value != nil {
		if err := validateCouponRule(coupon.Type, *input.Value); err != nil {
			return nil, err
		}
		coupon.Value = *input.Value
	}
	if input.MinOrderAmount != nil {
		coupon.MinOrderAmount = *input.MinOrderAmount
	}
	if input.MaxDiscount != nil {
		coupon.MaxDiscount = *input.MaxDiscount
	}
	if input.GlobalLimit != nil {
		coupon.GlobalLimit = *input.GlobalLimit
	}
	if input.PerUserLimit != nil && *input.PerUserLimit > 0 {
		coupon.PerUserLimit = *input.PerUserLimit
	}
	if input.StartsAt != nil {
		coupon.StartsAt = input.StartsAt
	}
	if input.EndsAt != nil {
		coupon.EndsAt = input.EndsAt
	}
	if coupon.StartsAt != nil && coupon.EndsAt != nil && coupon.EndsAt.Before(*coupon.StartsAt) {
		return nil, ErrCouponWindowInvalid
	}
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}

	if err := s.couponRepo.Update(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Get 获取优惠券详情
func (s *CouponAdminService) Get(id uint) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

// List 获取优惠券列表
func (s *CouponAdminService) List(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.couponRepo.List(filter)
}

// Delete 删除优惠券（软删除，历史兑换台账保留）
func (s *CouponAdminService) Delete(id uint) error {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return err
	}
	if coupon == nil {
		return ErrCouponNotFound
	}
	return s.couponRepo.Delete(id)
}
