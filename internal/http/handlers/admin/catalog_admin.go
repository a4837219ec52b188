package admin

import (
	"errors"
	"strconv"

	"github.com/velora-next/internal/http/response"
	"github.com/velora-next/internal/models"
	"github.com/velora-next/internal/repository"
	"github.com/velora-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CategoryRequest 分类维护请求
type CategoryRequest struct {
	Slug      string `json:"slug" binding:"required"`
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// GetAdminCategories 管理端分类列表
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CatalogService.ListCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "category list failed", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 新增分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	category := &models.Category{
		Slug:      req.Slug,
		Name:      req.Name,
		SortOrder: req.SortOrder,
	}
	if err := h.CatalogService.CreateCategory(category); err != nil {
		respondError(c, response.CodeInternal, "category create failed", err)
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	category := &models.Category{
		ID:        id,
		Slug:      req.Slug,
		Name:      req.Name,
		SortOrder: req.SortOrder,
	}
	if err := h.CatalogService.UpdateCategory(category); err != nil {
		respondError(c, response.CodeInternal, "category update failed", err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteCategory(id); err != nil {
		respondError(c, response.CodeInternal, "category delete failed", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ProductVariantRequest 商品规格请求
type ProductVariantRequest struct {
	ID        uint   `json:"id"`
	ColorID   *uint  `json:"color_id"`
	ColorName string `json:"color_name"`
	SizeID    *uint  `json:"size_id"`
	SizeName  string `json:"size_name"`
	SKU       string `json:"sku" binding:"required"`
	BasePrice string `json:"base_price" binding:"required"`
	SalePrice string `json:"sale_price"`
	Stock     int    `json:"stock"`
	IsActive  *bool  `json:"is_active"`
}

// ProductImageRequest 商品图片请求
type ProductImageRequest struct {
	ID        uint   `json:"id"`
	URL       string `json:"url" binding:"required"`
	ColorID   *uint  `json:"color_id"`
	SortOrder int    `json:"sort_order"`
}

// ProductRequest 商品维护请求
type ProductRequest struct {
	CategoryID  uint                    `json:"category_id" binding:"required"`
	Slug        string                  `json:"slug" binding:"required"`
	Name        string                  `json:"name" binding:"required"`
	Description string                  `json:"description"`
	IsActive    *bool                   `json:"is_active"`
	SortOrder   int                     `json:"sort_order"`
	Variants    []ProductVariantRequest `json:"variants"`
	Images      []ProductImageRequest   `json:"images"`
}

func (req ProductRequest) toModel(id uint) (*models.Product, error) {
	product := &models.Product{
		ID:          id,
		CategoryID:  req.CategoryID,
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		SortOrder:   req.SortOrder,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	for _, v := range req.Variants {
		basePrice, err := decimal.NewFromString(v.BasePrice)
		if err != nil {
			return nil, err
		}
		salePrice := decimal.Zero
		if v.SalePrice != "" {
			salePrice, err = decimal.NewFromString(v.SalePrice)
			if err != nil {
				return nil, err
			}
		}
		variant := models.ProductVariant{
			ID:        v.ID,
			ProductID: id,
			ColorID:   v.ColorID,
			ColorName: v.ColorName,
			SizeID:    v.SizeID,
			SizeName:  v.SizeName,
			SKU:       v.SKU,
			BasePrice: models.NewMoneyFromDecimal(basePrice),
			SalePrice: models.NewMoneyFromDecimal(salePrice),
			Stock:     v.Stock,
			IsActive:  true,
		}
		if v.IsActive != nil {
			variant.IsActive = *v.IsActive
		}
		product.Variants = append(product.Variants, variant)
	}

	for _, img := range req.Images {
		product.Images = append(product.Images, models.ProductImage{
			ID:        img.ID,
			ProductID: id,
			URL:       img.URL,
			ColorID:   img.ColorID,
			SortOrder: img.SortOrder,
		})
	}

	return product, nil
}

// GetAdminProducts 管理端商品列表（含下架商品）
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)

	products, total, err := h.CatalogService.ListProducts(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: uint(categoryID),
		Search:     c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "product list failed", err)
		return
	}
	response.SuccessWithPage(c, products, buildPagination(page, pageSize, total))
}

// GetAdminProduct 管理端商品详情
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.CatalogService.GetProductAdmin(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 新增商品（含规格与图片）
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	product, err := req.toModel(0)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid price", nil)
		return
	}
	if err := h.CatalogService.CreateProduct(product); err != nil {
		respondError(c, response.CodeInternal, "product create failed", err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品（整体替换规格与图片）
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	product, err := req.toModel(id)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid price", nil)
		return
	}
	if err := h.CatalogService.UpdateProduct(product); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product update failed", err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteProduct(id); err != nil {
		respondError(c, response.CodeInternal, "product delete failed", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
