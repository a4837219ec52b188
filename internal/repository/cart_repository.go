package repository

import (
	"errors"

	"github.com/velora-next/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByUser(userID uint) ([]models.CartItem, error)
	GetByIDAndUser(id, userID uint) (*models.CartItem, error)
	Upsert(item *models.CartItem) error
	UpdateQuantity(id, userID uint, quantity int) error
	Delete(id, userID uint) error
	ClearByUser(userID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByUser 获取用户购物车项（含商品、规格与图片）
func (r *GormCartRepository) ListByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.
		Preload("Product").
		Preload("Product.Variants").
		Preload("Product.Images").
		Where("user_id = ?", userID).
		Order("updated_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByIDAndUser 获取用户本人的购物车项
func (r *GormCartRepository) GetByIDAndUser(id, userID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func sameLineScope(query *gorm.DB, item *models.CartItem) *gorm.DB {
	query = query.Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID)
	if item.ColorID != nil {
		query = query.Where("color_id = ?", *item.ColorID)
	} else {
		query = query.Where("color_id IS NULL")
	}
	if item.SizeID != nil {
		query = query.Where("size_id = ?", *item.SizeID)
	} else {
		query = query.Where("size_id IS NULL")
	}
	return query
}

// Upsert 添加或累加购物车行（同商品同颜色同尺码视为同一行）
func (r *GormCartRepository) Upsert(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	var existing models.CartItem
	err := sameLineScope(r.db, item).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(item).Error
	}
	if err != nil {
		return err
	}
	return r.db.Model(&existing).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", item.Quantity)).Error
}

// UpdateQuantity 更新购物车行数量
func (r *GormCartRepository) UpdateQuantity(id, userID uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		UpdateColumn("quantity", quantity).Error
}

// Delete 删除购物车行
func (r *GormCartRepository) Delete(id, userID uint) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.CartItem{}).Error
}

// ClearByUser 清空购物车
func (r *GormCartRepository) ClearByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
