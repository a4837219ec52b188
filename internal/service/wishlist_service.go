package service

import (
	"github.com/velora-next/internal/models"
	"github.com/velora-next/internal/repository"
)

// WishlistService 心愿单服务
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService 创建心愿单服务
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// List 获取心愿单列表
func (s *WishlistService) List(userID uint) ([]models.WishlistItem, error) {
	return s.wishlistRepo.ListByUser(userID)
}

// AddItem 收藏商品
// 重复收藏不报错，返回已有记录与 created=false
func (s *WishlistService) AddItem(userID, productID uint) (*models.WishlistItem, bool, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, false, err
	}
	if product == nil {
		return nil, false, ErrProductNotFound
	}

	existing, err := s.wishlistRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	item := &models.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.wishlistRepo.Create(item); err != nil {
		return nil, false, err
	}
	return item, true, nil
}

// RemoveItem 移除心愿单项
func (s *WishlistService) RemoveItem(itemID, userID uint) error {
	item, err := s.wishlistRepo.GetByIDAndUser(itemID, userID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrWishlistItemNotFound
	}
	return s.wishlistRepo.Delete(itemID, userID)
}
