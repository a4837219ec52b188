package service

import "errors"

// 优惠券相关错误
var (
	ErrCouponCodeRequired      = errors.New("coupon code required")
	ErrCouponNotFound          = errors.New("coupon not found")
	ErrCouponInactive          = errors.New("coupon inactive")
	ErrCouponNotStarted        = errors.New("coupon not started")
	ErrCouponExpired           = errors.New("coupon expired")
	ErrCouponIdentityRequired  = errors.New("coupon identity required")
	ErrCouponOrderAmount       = errors.New("coupon order amount invalid")
	ErrCouponMinAmount         = errors.New("coupon min order amount not met")
	ErrCouponGlobalLimit       = errors.New("coupon global redemption limit reached")
	ErrCouponPerUserLimit      = errors.New("coupon per-user redemption limit reached")
	ErrCouponInvalid           = errors.New("coupon invalid")
	ErrCouponCodeTaken         = errors.New("coupon code already exists")
	ErrCouponTypeInvalid       = errors.New("coupon type invalid")
	ErrCouponValueInvalid      = errors.New("coupon value invalid")
	ErrCouponWindowInvalid     = errors.New("coupon validity window invalid")
)

// 订单相关错误
var (
	ErrAddressNotFound        = errors.New("address not found")
	ErrCartEmpty              = errors.New("cart is empty")
	ErrProductInactive        = errors.New("product inactive")
	ErrVariantNotFound        = errors.New("variant not found")
	ErrVariantOutOfStock      = errors.New("variant out of stock")
	ErrOrderNotFound          = errors.New("order not found")
	ErrOrderFetchFailed       = errors.New("order fetch failed")
	ErrOrderCreateFailed      = errors.New("order create failed")
	ErrOrderUpdateFailed      = errors.New("order update failed")
	ErrOrderCancelNotAllowed  = errors.New("order cancel not allowed")
	ErrOrderStatusInvalid     = errors.New("order status invalid")
	ErrOrderTransitionInvalid = errors.New("order status transition not allowed")
	ErrOrderPartnerMismatch   = errors.New("order assigned to another partner")
	ErrOrderNoExhausted       = errors.New("order no generation retries exhausted")
)

// 购物车相关错误
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrCartQuantityInvalid = errors.New("cart quantity invalid")
)

// 心愿单相关错误
var (
	ErrWishlistItemNotFound = errors.New("wishlist item not found")
)

// 地址相关错误
var (
	ErrAddressFieldRequired = errors.New("address field required")
)

// 运费策略相关错误
var (
	ErrShippingPolicyInvalid = errors.New("shipping policy invalid")
)

// 认证相关错误
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user disabled")
	ErrUserNotFound       = errors.New("user not found")
)

// 邮件相关错误
var (
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email address")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)
