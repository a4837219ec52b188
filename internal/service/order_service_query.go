package service

import (
	"github.com/velora-next/internal/models"
	"github.com/velora-next/internal/repository"
)

// GetOrderForUser 获取客户本人订单详情
func (s *OrderService) GetOrderForUser(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersForUser 获取客户订单列表
func (s *OrderService) ListOrdersForUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(filter)
}

// GetOrderForPartner 获取配送端订单详情
// 已认领给其他配送员的订单不可见
func (s *OrderService) GetOrderForPartner(orderID, partnerID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.PartnerID != nil && *order.PartnerID != partnerID {
		return nil, ErrOrderPartnerMismatch
	}
	return order, nil
}

// ListOrdersForPartner 获取配送端订单列表
func (s *OrderService) ListOrdersForPartner(partnerID uint, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListForPartner(partnerID, filter)
}

// GetOrderAdmin 管理端获取订单详情
func (s *OrderService) GetOrderAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersAdmin 管理端订单列表
func (s *OrderService) ListOrdersAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}
