package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductVariant 商品规格表（颜色/尺码组合，独立SKU、库存与价格）
type ProductVariant struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                     // 主键
	ProductID uint           `gorm:"index;not null" json:"product_id"`                         // 商品ID
	ColorID   *uint          `gorm:"index" json:"color_id,omitempty"`                          // 颜色ID
	ColorName string         `gorm:"type:varchar(64)" json:"color_name"`                       // 颜色名称（冗余快照）
	SizeID    *uint          `gorm:"index" json:"size_id,omitempty"`                           // 尺码ID
	SizeName  string         `gorm:"type:varchar(64)" json:"size_name"`                        // 尺码名称（冗余快照）
	SKU       string         `gorm:"uniqueIndex;not null" json:"sku"`                          // SKU编码
	BasePrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"base_price"` // 基础价
	SalePrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"sale_price"` // 促销价（0 表示未设置）
	Stock     int            `gorm:"not null;default:0" json:"stock"`                          // 库存数量（下单时仅校验，不扣减）
	IsActive  bool           `gorm:"default:true;index" json:"is_active"`                      // 是否可售
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                               // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间
}

// TableName 指定表名
func (ProductVariant) TableName() string {
	return "product_variants"
}

// ProductImage 商品图片表（可按颜色打标）
type ProductImage struct {
	ID        uint      `gorm:"primarykey" json:"id"`              // 主键
	ProductID uint      `gorm:"index;not null" json:"product_id"`  // 商品ID
	URL       string    `gorm:"not null" json:"url"`               // 图片地址
	ColorID   *uint     `gorm:"index" json:"color_id,omitempty"`   // 关联颜色ID（为空表示通用图）
	SortOrder int       `gorm:"default:0;index" json:"sort_order"` // 排序权重
	CreatedAt time.Time `json:"created_at"`                        // 创建时间
}

// TableName 指定表名
func (ProductImage) TableName() string {
	return "product_images"
}
