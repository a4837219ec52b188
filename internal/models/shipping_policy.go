package models

import "time"

// ShippingPolicy 运费策略表（满额免运费阈值 + 固定运费）
type ShippingPolicy struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                    // 主键
	Threshold Money     `gorm:"type:decimal(20,2);not null;default:0" json:"threshold"`  // 免运费门槛
	Fee       Money     `gorm:"type:decimal(20,2);not null;default:0" json:"fee"`        // 运费
	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`            // 是否启用
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                              // 更新时间
}

// TableName 指定表名
func (ShippingPolicy) TableName() string {
	return "shipping_policies"
}
