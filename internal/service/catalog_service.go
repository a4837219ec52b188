package service

import (
	"github.com/velora-next/internal/models"
	"github.com/velora-next/internal/repository"
)

// CatalogService 商品目录服务
type CatalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCatalogService 创建目录服务
func NewCatalogService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// ListCategories 获取分类列表
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// ListProducts 获取商品列表
func (s *CatalogService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetProductBySlug 获取商品详情
func (s *CatalogService) GetProductBySlug(slug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// CreateCategory 创建分类
func (s *CatalogService) CreateCategory(category *models.Category) error {
	return s.categoryRepo.Create(category)
}

// UpdateCategory 更新分类
func (s *CatalogService) UpdateCategory(category *models.Category) error {
	return s.categoryRepo.Update(category)
}

// DeleteCategory 删除分类
func (s *CatalogService) DeleteCategory(id uint) error {
	return s.categoryRepo.Delete(id)
}

// CreateProduct 创建商品（级联写入规格与图片）
func (s *CatalogService) CreateProduct(product *models.Product) error {
	return s.productRepo.Create(product)
}

// UpdateProduct 更新商品
func (s *CatalogService) UpdateProduct(product *models.Product) error {
	return s.productRepo.Update(product)
}

// DeleteProduct 删除商品
func (s *CatalogService) DeleteProduct(id uint) error {
	return s.productRepo.Delete(id)
}

// GetProductAdmin 管理端获取商品详情
func (s *CatalogService) GetProductAdmin(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}
