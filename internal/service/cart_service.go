package service

import (
	"github.com/velora-next/internal/models"
	"github.com/velora-next/internal/repository"
)

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddItemInput 加入购物车输入
type AddItemInput struct {
	UserID    uint
	ProductID uint
	ColorID   *uint
	SizeID    *uint
	Quantity  int
}

// AddItem 加入购物车（同商品同颜色同尺码累加数量）
func (s *CartService) AddItem(input AddItemInput) error {
	if input.Quantity < 1 {
		return ErrCartQuantityInvalid
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if !product.IsActive {
		return ErrProductInactive
	}
	return s.cartRepo.Upsert(&models.CartItem{
		UserID:    input.UserID,
		ProductID: input.ProductID,
		ColorID:   input.ColorID,
		SizeID:    input.SizeID,
		Quantity:  input.Quantity,
	})
}

// List 获取购物车列表
func (s *CartService) List(userID uint) ([]models.CartItem, error) {
	return s.cartRepo.ListByUser(userID)
}

// UpdateQuantity 更新购物车行数量
func (s *CartService) UpdateQuantity(itemID, userID uint, quantity int) error {
	if quantity < 1 {
		return ErrCartQuantityInvalid
	}
	item, err := s.cartRepo.GetByIDAndUser(itemID, userID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	return s.cartRepo.UpdateQuantity(itemID, userID, quantity)
}

// RemoveItem 删除购物车行
func (s *CartService) RemoveItem(itemID, userID uint) error {
	item, err := s.cartRepo.GetByIDAndUser(itemID, userID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	return s.cartRepo.Delete(itemID, userID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	return s.cartRepo.ClearByUser(userID)
}
