package public

import (
	"errors"
	"strconv"

	"github.com/velora-next/internal/http/response"
	"github.com/velora-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetWishlist 查询心愿单
func (h *Handler) GetWishlist(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.WishlistService.List(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "wishlist fetch failed", err)
		return
	}
	response.Success(c, items)
}

// AddWishlistItemRequest 收藏商品请求
type AddWishlistItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// AddWishlistItem 收藏商品（重复收藏幂等）
func (h *Handler) AddWishlistItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req AddWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	item, created, err := h.WishlistService.AddItem(userID, req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "wishlist add failed", err)
		return
	}

	response.Success(c, gin.H{"item": item, "created": created})
}

// DeleteWishlistItem 移除心愿单项
func (h *Handler) DeleteWishlistItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid wishlist item id", nil)
		return
	}

	if err := h.WishlistService.RemoveItem(uint(itemID), userID); err != nil {
		if errors.Is(err, service.ErrWishlistItemNotFound) {
			respondError(c, response.CodeNotFound, "wishlist item not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "wishlist remove failed", err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
