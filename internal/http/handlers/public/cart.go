package public

import (
	"errors"
	"strconv"

	"github.com/velora-next/internal/http/response"
	"github.com/velora-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCart 查询购物车
func (h *Handler) GetCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.CartService.List(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "cart fetch failed", err)
		return
	}
	response.Success(c, items)
}

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	ProductID uint  `json:"product_id" binding:"required"`
	ColorID   *uint `json:"color_id"`
	SizeID    *uint `json:"size_id"`
	Quantity  int   `json:"quantity" binding:"required"`
}

// AddCartItem 加入购物车（同商品同规格累加数量）
func (h *Handler) AddCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	err := h.CartService.AddItem(service.AddItemInput{
		UserID:    userID,
		ProductID: req.ProductID,
		ColorID:   req.ColorID,
		SizeID:    req.SizeID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartQuantityInvalid):
			respondError(c, response.CodeBadRequest, "quantity must be at least 1", nil)
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "product not found", nil)
		case errors.Is(err, service.ErrProductInactive):
			respondError(c, response.CodeBadRequest, "product no longer available", nil)
		default:
			respondError(c, response.CodeInternal, "cart add failed", err)
		}
		return
	}

	response.Success(c, gin.H{"added": true})
}

// UpdateCartItemRequest 修改购物车数量请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// UpdateCartItem 修改购物车条目数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid cart item id", nil)
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.CartService.UpdateQuantity(uint(itemID), userID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, service.ErrCartQuantityInvalid):
			respondError(c, response.CodeBadRequest, "quantity must be at least 1", nil)
		case errors.Is(err, service.ErrCartItemNotFound):
			respondError(c, response.CodeNotFound, "cart item not found", nil)
		default:
			respondError(c, response.CodeInternal, "cart update failed", err)
		}
		return
	}

	response.Success(c, gin.H{"updated": true})
}

// DeleteCartItem 移除购物车条目
func (h *Handler) DeleteCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid cart item id", nil)
		return
	}

	if err := h.CartService.RemoveItem(uint(itemID), userID); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			respondError(c, response.CodeNotFound, "cart item not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "cart remove failed", err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.CartService.Clear(userID); err != nil {
		respondError(c, response.CodeInternal, "cart clear failed", err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}
