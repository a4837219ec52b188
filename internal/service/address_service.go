package service

import (
	"strings"

	"github.com/velora-next/internal/models"
	"github.com/velora-next/internal/repository"
)

// AddressService 收货地址服务
type AddressService struct {
	repo repository.AddressRepository
}

// NewAddressService 创建地址服务
func NewAddressService(repo repository.AddressRepository) *AddressService {
	return &AddressService{repo: repo}
}

// AddressInput 地址输入
type AddressInput struct {
	FullName   string
	Phone      string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	IsDefault  bool
}

func (input AddressInput) validate() error {
	required := []string{input.FullName, input.Phone, input.Line1, input.City, input.State, input.PostalCode}
	for _, field := range required {
		if strings.TrimSpace(field) == "" {
			return ErrAddressFieldRequired
		}
	}
	return nil
}

// Create 创建地址
func (s *AddressService) Create(userID uint, input AddressInput) (*models.Address, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if input.IsDefault {
		if err := s.repo.UnsetDefault(userID); err != nil {
			return nil, err
		}
	}
	address := &models.Address{
		UserID:     userID,
		FullName:   strings.TrimSpace(input.FullName),
		Phone:      strings.TrimSpace(input.Phone),
		Line1:      strings.TrimSpace(input.Line1),
		Line2:      strings.TrimSpace(input.Line2),
		City:       strings.TrimSpace(input.City),
		State:      strings.TrimSpace(input.State),
		PostalCode: strings.TrimSpace(input.PostalCode),
		IsDefault:  input.IsDefault,
	}
	if err := s.repo.Create(address); err != nil {
		return nil, err
	}
	return address, nil
}

// Update 更新地址
func (s *AddressService) Update(id, userID uint, input AddressInput) (*models.Address, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	address, err := s.repo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}
	if input.IsDefault && !address.IsDefault {
		if err := s.repo.UnsetDefault(userID); err != nil {
			return nil, err
		}
	}
	address.FullName = strings.TrimSpace(input.FullName)
	address.Phone = strings.TrimSpace(input.Phone)
	address.Line1 = strings.TrimSpace(input.Line1)
	address.Line2 = strings.TrimSpace(input.Line2)
	address.City = strings.TrimSpace(input.City)
	address.State = strings.TrimSpace(input.State)
	address.PostalCode = strings.TrimSpace(input.PostalCode)
	address.IsDefault = input.IsDefault
	if err := s.repo.Update(address); err != nil {
		return nil, err
	}
	return address, nil
}

// Get 获取用户本人的地址
func (s *AddressService) Get(id, userID uint) (*models.Address, error) {
	address, err := s.repo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}
	return address, nil
}

// List 获取用户地址列表
func (s *AddressService) List(userID uint) ([]models.Address, error) {
	return s.repo.ListByUser(userID)
}

// Delete 删除地址
func (s *AddressService) Delete(id, userID uint) error {
	address, err := s.repo.GetByIDAndUser(id, userID)
	if err != nil {
		return err
	}
	if address == nil {
		return ErrAddressNotFound
	}
	return s.repo.Delete(id, userID)
}
