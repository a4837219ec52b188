package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
// 地址字段为下单时的快照，与地址簿后续修改无关
type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                         // 主键
	OrderNo        string         `gorm:"uniqueIndex;not null" json:"order_no"`                         // 订单编号（OD 前缀递增）
	UserID         uint           `gorm:"index;not null" json:"user_id"`                                // 下单用户ID
	PartnerID      *uint          `gorm:"index" json:"partner_id,omitempty"`                            // 配送员ID（首次操作时自动认领）
	Status         string         `gorm:"index;not null" json:"status"`                                 // 订单状态
	PaymentMethod  string         `gorm:"not null;default:'cod'" json:"payment_method"`                 // 支付方式（仅货到付款）
	PaymentStatus  string         `gorm:"index;not null;default:'pending'" json:"payment_status"`       // 支付状态（pending/paid/cancelled）
	Subtotal       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`        // 商品小计
	ShippingFee    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_fee"`    // 运费
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 优惠金额
	TotalAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`    // 实付金额
	CouponID       *uint          `gorm:"index" json:"coupon_id,omitempty"`                             // 优惠券ID
	ShipName       string         `gorm:"not null" json:"ship_name"`                                    // 收件人姓名快照
	ShipPhone      string         `gorm:"not null;type:varchar(32)" json:"ship_phone"`                  // 收件人手机号快照
	ShipLine1      string         `gorm:"not null" json:"ship_line1"`                                   // 地址行1快照
	ShipLine2      string         `json:"ship_line2"`                                                   // 地址行2快照
	ShipCity       string         `gorm:"not null" json:"ship_city"`                                    // 城市快照
	ShipState      string         `gorm:"not null" json:"ship_state"`                                   // 省/州快照
	ShipPostalCode string         `gorm:"not null;type:varchar(16)" json:"ship_postal_code"`            // 邮编快照
	ShippingLabel  JSON           `gorm:"type:json" json:"shipping_label,omitempty"`                    // 发货标签快照（履约下游消费）
	DeliveredAt    *time.Time     `gorm:"index" json:"delivered_at"`                                    // 送达时间
	CancelledAt    *time.Time     `gorm:"index" json:"cancelled_at"`                                    // 取消时间
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                      // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	// 关联
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
