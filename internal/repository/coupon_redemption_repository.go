package repository

import (
	"github.com/velora-next/internal/models"

	"gorm.io/gorm"
)

// CouponRedemptionRepository 优惠券兑换台账数据访问接口
// 台账只追加，不提供更新与删除
type CouponRedemptionRepository interface {
	Create(redemption *models.CouponRedemption) error
	CountByCoupon(couponID uint) (int64, error)
	CountByIdentity(couponID uint, userID uint, email, phone string) (int64, error)
	ListByOrderID(orderID uint) ([]models.CouponRedemption, error)
	WithTx(tx *gorm.DB) *GormCouponRedemptionRepository
}

// GormCouponRedemptionRepository GORM 实现
type GormCouponRedemptionRepository struct {
	db *gorm.DB
}

// NewCouponRedemptionRepository 创建兑换台账仓库
func NewCouponRedemptionRepository(db *gorm.DB) *GormCouponRedemptionRepository {
	return &GormCouponRedemptionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCouponRedemptionRepository) WithTx(tx *gorm.DB) *GormCouponRedemptionRepository {
	if tx == nil {
		return r
	}
	return &GormCouponRedemptionRepository{db: tx}
}

// Create 写入兑换记录
func (r *GormCouponRedemptionRepository) Create(redemption *models.CouponRedemption) error {
	return r.db.Create(redemption).Error
}

// CountByCoupon 统计优惠券全局兑换次数
func (r *GormCouponRedemptionRepository) CountByCoupon(couponID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.CouponRedemption{}).
		Where("coupon_id = ?", couponID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByIdentity 统计身份维度的兑换次数
// 用户ID、邮箱、手机号按 OR 匹配：任一字段命中历史记录即计入，
// 防止同一人换个联系方式绕过每人限额
func (r *GormCouponRedemptionRepository) CountByIdentity(couponID uint, userID uint, email, phone string) (int64, error) {
	query := r.db.Model(&models.CouponRedemption{}).Where("coupon_id = ?", couponID)

	conds := r.db.Session(&gorm.Session{NewDB: true})
	matched := false
	if userID > 0 {
		conds = conds.Or("user_id = ?", userID)
		matched = true
	}
	if email != "" {
		conds = conds.Or("email = ?", email)
		matched = true
	}
	if phone != "" {
		conds = conds.Or("phone = ?", phone)
		matched = true
	}
	if !matched {
		return 0, nil
	}

	var count int64
	if err := query.Where(conds).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListByOrderID 获取订单关联的兑换记录
func (r *GormCouponRedemptionRepository) ListByOrderID(orderID uint) ([]models.CouponRedemption, error) {
	var redemptions []models.CouponRedemption
	if err := r.db.Where("order_id = ?", orderID).Find(&redemptions).Error; err != nil {
		return nil, err
	}
	return redemptions, nil
}
