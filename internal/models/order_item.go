package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表
// 每行是下单时刻购物车行的冻结快照，写入后不再根据目录数据重算
type OrderItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                     // 主键
	OrderID     uint           `gorm:"index;not null" json:"order_id"`                           // 订单ID
	ProductID   uint           `gorm:"index;not null" json:"product_id"`                         // 商品ID
	ProductName string         `gorm:"not null" json:"product_name"`                             // 商品名称快照
	ProductSlug string         `gorm:"not null" json:"product_slug"`                             // 商品slug快照
	VariantID   uint           `gorm:"index;not null" json:"variant_id"`                         // 规格ID
	ColorID     *uint          `json:"color_id,omitempty"`                                       // 颜色ID快照
	ColorName   string         `gorm:"type:varchar(64)" json:"color_name"`                       // 颜色名称快照
	SizeID      *uint          `json:"size_id,omitempty"`                                        // 尺码ID快照
	SizeName    string         `gorm:"type:varchar(64)" json:"size_name"`                        // 尺码名称快照
	SKU         string         `gorm:"not null" json:"sku"`                                      // SKU快照
	Quantity    int            `gorm:"not null" json:"quantity"`                                 // 数量
	UnitPrice   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"` // 成交单价
	TotalPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 小计
	ImageURL    string         `json:"image_url"`                                                // 展示图快照
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
