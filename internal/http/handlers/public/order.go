package public

import (
	"errors"
	"strconv"

	"github.com/velora-next/internal/http/response"
	"github.com/velora-next/internal/repository"
	"github.com/velora-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	AddressID  uint   `json:"address_id" binding:"required"`
	CouponCode string `json:"coupon_code"`
}

// CreateOrder 购物车结算下单（货到付款）
func (h *Handler) CreateOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	identity := getCouponIdentity(c, userID)
	order, err := h.OrderService.Checkout(service.CheckoutInput{
		UserID:     userID,
		AddressID:  req.AddressID,
		CouponCode: req.CouponCode,
		Email:      identity.Email,
		Phone:      identity.Phone,
	})
	if err != nil {
		rules := concatMappedHandlerErrors(checkoutErrorRules, couponErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "order create failed")
		return
	}

	requestLog(c).Infow("order_created",
		"order_no", order.OrderNo,
		"user_id", userID,
		"total_amount", order.TotalAmount.String(),
	)
	response.Success(c, order)
}

// ListOrders 当前用户订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListOrdersForUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "order list failed", err)
		return
	}

	response.SuccessWithPage(c, orders, buildPagination(page, pageSize, total))
}

// GetOrder 当前用户订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}

	order, err := h.OrderService.GetOrderForUser(uint(orderID), userID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}
	response.Success(c, order)
}

// CancelOrder 取消订单（仅未发货的处理前状态允许）
func (h *Handler) CancelOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}

	order, err := h.OrderService.CancelOrder(uint(orderID), userID)
	if err != nil {
		respondWithMappedError(c, err, orderCancelErrorRules, response.CodeInternal, "order cancel failed")
		return
	}

	requestLog(c).Infow("order_cancelled",
		"order_no", order.OrderNo,
		"user_id", userID,
	)
	response.Success(c, order)
}
