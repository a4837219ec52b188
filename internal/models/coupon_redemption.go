package models

import "time"

// CouponRedemption 优惠券兑换台账
// 只追加不修改不删除；身份字段（用户/邮箱/手机号）用于跨字段的兑换次数匹配
type CouponRedemption struct {
	ID             uint      `gorm:"primarykey" json:"id"`                                         // 主键
	CouponID       uint      `gorm:"index;not null" json:"coupon_id"`                              // 优惠券ID
	UserID         uint      `gorm:"index" json:"user_id"`                                         // 用户ID
	Email          string    `gorm:"index" json:"email"`                                           // 下单邮箱
	Phone          string    `gorm:"index;type:varchar(32)" json:"phone"`                          // 下单手机号
	OrderID        uint      `gorm:"index;not null" json:"order_id"`                               // 订单ID
	DiscountAmount Money     `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 实际优惠金额
	CreatedAt      time.Time `gorm:"index" json:"created_at"`                                      // 创建时间
}

// TableName 指定表名
func (CouponRedemption) TableName() string {
	return "coupon_redemptions"
}
