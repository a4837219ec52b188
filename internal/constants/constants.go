package constants

// 订单状态常量
const (
	OrderStatusPlaced          = "PLACED"
	OrderStatusConfirmed       = "CONFIRMED"
	OrderStatusPacked          = "PACKED"
	OrderStatusOutForDelivery  = "OUT_FOR_DELIVERY"
	OrderStatusDelivered       = "DELIVERED"
	OrderStatusCancelled       = "CANCELLED"
	OrderStatusReturnRequested = "RETURN_REQUESTED"
	OrderStatusReturned        = "RETURNED"
)

// 支付方式常量（仅支持货到付款）
const (
	PaymentMethodCOD = "cod"
)

// 支付状态常量
const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusCancelled = "cancelled"
)

// 优惠券类型常量
const (
	CouponTypeFixed   = "fixed"
	CouponTypePercent = "percent"
)

// 用户角色常量
const (
	RoleCustomer = "customer"
	RolePartner  = "partner"
	RoleAdmin    = "admin"
)

// 订单编号常量
const (
	OrderNoPrefix = "OD"
	// OrderNoFloor 首单编号的数字起点（OD20251）
	OrderNoFloor = 20251
	// OrderNoMaxRetries 编号唯一冲突时的重试次数上限
	OrderNoMaxRetries = 3
)

// 运费策略默认值常量
const (
	DefaultShippingThreshold = 1999
	DefaultShippingFee       = 0
)

// 队列常量
const (
	QueueDefault          = "default"
	TaskOrderPlacedEmail  = "order:placed_email"
	TaskOrderPartnerAlert = "order:partner_alert"
	TaskOrderStatusEmail  = "order:status_email"
	TaskOrderCancelAlert  = "order:cancel_alert"
	TaskOrderDeliveryOTP  = "order:delivery_otp"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "vl"
)

// 配送OTP常量
const (
	DeliveryOTPLength = 6
)
