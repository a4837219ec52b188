package service

import (
	"strings"
	"time"

	"github.com/velora-next/internal/constants"
	"github.com/velora-next/internal/models"
	"github.com/velora-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CouponService 优惠券资格校验服务
// 校验本身无副作用；事务内校验会对优惠券行加写锁
type CouponService struct {
	couponRepo     repository.CouponRepository
	redemptionRepo repository.CouponRedemptionRepository
}

// NewCouponService 创建优惠券服务
func NewCouponService(couponRepo repository.CouponRepository, redemptionRepo repository.CouponRedemptionRepository) *CouponService {
	return &CouponService{
		couponRepo:     couponRepo,
		redemptionRepo: redemptionRepo,
	}
}

// CouponIdentity 兑换身份（至少提供一个字段）
type CouponIdentity struct {
	UserID uint
	Email  string
	Phone  string
}

func (i CouponIdentity) normalized() CouponIdentity {
	return CouponIdentity{
		UserID: i.UserID,
		Email:  strings.ToLower(strings.TrimSpace(i.Email)),
		Phone:  strings.TrimSpace(i.Phone),
	}
}

func (i CouponIdentity) empty() bool {
	return i.UserID == 0 && i.Email == "" && i.Phone == ""
}

// CouponQuote 校验结果
type CouponQuote struct {
	Coupon   *models.Coupon
	Discount models.Money
}

// NormalizeCouponCode 统一优惠码格式（去空白并转大写）
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Preview 预览模式校验优惠券（不加锁、不写台账）
func (s *CouponService) Preview(code string, identity CouponIdentity, orderAmount models.Money) (*CouponQuote, error) {
	return s.validate(s.couponRepo, s.redemptionRepo, code, identity, orderAmount, false)
}

// ValidateForRedemption 事务内校验优惠券并加行锁
// 同一优惠券的并发兑换在行锁上串行化；必须与兑换写入处于同一事务
func (s *CouponService) ValidateForRedemption(tx *gorm.DB, code string, identity CouponIdentity, orderAmount models.Money) (*CouponQuote, error) {
	return s.validate(s.couponRepo.WithTx(tx), s.redemptionRepo.WithTx(tx), code, identity, orderAmount, true)
}

// ListAvailable 获取当前可用优惠券列表
func (s *CouponService) ListAvailable() ([]models.Coupon, error) {
	return s.couponRepo.ListAvailable()
}

func (s *CouponService) validate(couponRepo repository.CouponRepository, redemptionRepo repository.CouponRedemptionRepository, code string, identity CouponIdentity, orderAmount models.Money, forUpdate bool) (*CouponQuote, error) {
	normalized := NormalizeCouponCode(code)
	if normalized == "" {
		return nil, ErrCouponCodeRequired
	}

	var coupon *models.Coupon
	var err error
	if forUpdate {
		coupon, err = couponRepo.GetByCodeForUpdate(normalized)
	} else {
		coupon, err = couponRepo.GetByCode(normalized)
	}
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}

	if !coupon.IsActive {
		return nil, ErrCouponInactive
	}

	now := time.Now()
	if coupon.StartsAt != nil && now.Before(*coupon.StartsAt) {
		return nil, ErrCouponNotStarted
	}
	if coupon.EndsAt != nil && now.After(*coupon.EndsAt) {
		return nil, ErrCouponExpired
	}

	if orderAmount.Decimal.LessThanOrEqual(decimal.Zero) {
		return nil, ErrCouponOrderAmount
	}
	if coupon.MinOrderAmount.Decimal.GreaterThan(decimal.Zero) &&
		orderAmount.Decimal.LessThan(coupon.MinOrderAmount.Decimal) {
		return nil, ErrCouponMinAmount
	}

	if coupon.GlobalLimit > 0 {
		total, err := redemptionRepo.CountByCoupon(coupon.ID)
		if err != nil {
			return nil, err
		}
		if total >= int64(coupon.GlobalLimit) {
			return nil, ErrCouponGlobalLimit
		}
	}

	ident := identity.normalized()
	if ident.empty() {
		return nil, ErrCouponIdentityRequired
	}
	if coupon.PerUserLimit > 0 {
		used, err := redemptionRepo.CountByIdentity(coupon.ID, ident.UserID, ident.Email, ident.Phone)
		if err != nil {
			return nil, err
		}
		if used >= int64(coupon.PerUserLimit) {
			return nil, ErrCouponPerUserLimit
		}
	}

	discount, err := calculateDiscount(coupon, orderAmount)
	if err != nil {
		return nil, err
	}
	return &CouponQuote{Coupon: coupon, Discount: discount}, nil
}

// calculateDiscount 计算折扣金额
// percent 按订单金额比例，fixed 取固定值；先封顶 max_discount 再封顶订单金额
func calculateDiscount(coupon *models.Coupon, orderAmount models.Money) (models.Money, error) {
	var discount decimal.Decimal
	switch strings.ToLower(strings.TrimSpace(coupon.Type)) {
	case constants.CouponTypeFixed:
		if coupon.Value.Decimal.LessThanOrEqual(decimal.Zero) {
			return models.Money{}, ErrCouponValueInvalid
		}
		discount = coupon.Value.Decimal
	case constants.CouponTypePercent:
		if coupon.Value.Decimal.LessThanOrEqual(decimal.Zero) ||
			coupon.Value.Decimal.GreaterThan(decimal.NewFromInt(100)) {
			return models.Money{}, ErrCouponValueInvalid
		}
		percent := coupon.Value.Decimal.Div(decimal.NewFromInt(100))
		discount = orderAmount.Decimal.Mul(percent)
	default:
		return models.Money{}, ErrCouponTypeInvalid
	}

	if coupon.MaxDiscount.Decimal.GreaterThan(decimal.Zero) && discount.GreaterThan(coupon.MaxDiscount.Decimal) {
		discount = coupon.MaxDiscount.Decimal
	}
	if discount.GreaterThan(orderAmount.Decimal) {
		discount = orderAmount.Decimal
	}
	if discount.LessThan(decimal.Zero) {
		discount = decimal.Zero
	}
	return models.NewMoneyFromDecimal(discount), nil
}
