package public

import (
	"errors"
	"strconv"

	"github.com/velora-next/internal/http/response"
	"github.com/velora-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddressRequest 收货地址请求
type AddressRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	IsDefault  bool   `json:"is_default"`
}

func (req AddressRequest) toInput() service.AddressInput {
	return service.AddressInput{
		FullName:   req.FullName,
		Phone:      req.Phone,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		IsDefault:  req.IsDefault,
	}
}

// ListAddresses 地址列表
func (h *Handler) ListAddresses(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	addresses, err := h.AddressService.List(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "address list failed", err)
		return
	}
	response.Success(c, addresses)
}

// CreateAddress 新增地址
func (h *Handler) CreateAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	address, err := h.AddressService.Create(userID, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrAddressFieldRequired) {
			respondError(c, response.CodeBadRequest, "address field required", nil)
			return
		}
		respondError(c, response.CodeInternal, "address create failed", err)
		return
	}

	response.Success(c, address)
}

// GetAddress 地址详情
func (h *Handler) GetAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid address id", nil)
		return
	}

	address, err := h.AddressService.Get(uint(addressID), userID)
	if err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			respondError(c, response.CodeNotFound, "address not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "address fetch failed", err)
		return
	}
	response.Success(c, address)
}

// UpdateAddress 更新地址
func (h *Handler) UpdateAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid address id", nil)
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	address, err := h.AddressService.Update(uint(addressID), userID, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAddressNotFound):
			respondError(c, response.CodeNotFound, "address not found", nil)
		case errors.Is(err, service.ErrAddressFieldRequired):
			respondError(c, response.CodeBadRequest, "address field required", nil)
		default:
			respondError(c, response.CodeInternal, "address update failed", err)
		}
		return
	}

	response.Success(c, address)
}

// DeleteAddress 删除地址
func (h *Handler) DeleteAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid address id", nil)
		return
	}

	if err := h.AddressService.Delete(uint(addressID), userID); err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			respondError(c, response.CodeNotFound, "address not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "address delete failed", err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
