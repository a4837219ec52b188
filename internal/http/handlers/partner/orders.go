package partner

import (
	"errors"
	"strconv"

	"github.com/velora-next/internal/http/response"
	"github.com/velora-next/internal/repository"
	"github.com/velora-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListOrders 配送工作队列
// 返回未认领的待配送订单以及当前配送员已认领的订单。
func (h *Handler) ListOrders(c *gin.Context) {
	partnerID, ok := getPartnerID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListOrdersForPartner(partnerID, repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "order list failed", err)
		return
	}

	response.SuccessWithPage(c, orders, buildPagination(page, pageSize, total))
}

// GetOrder 配送端订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	partnerID, ok := getPartnerID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}

	order, err := h.OrderService.GetOrderForPartner(uint(orderID), partnerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		case errors.Is(err, service.ErrOrderPartnerMismatch):
			respondError(c, response.CodeForbidden, "order assigned to another partner", nil)
		default:
			respondError(c, response.CodeInternal, "order fetch failed", err)
		}
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatusRequest 配送状态推进请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus 推进配送状态
// 首次操作未认领订单时自动认领；送达即视为货到付款完成。
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	partnerID, ok := getPartnerID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	order, err := h.OrderService.PartnerUpdateStatus(uint(orderID), partnerID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		case errors.Is(err, service.ErrOrderPartnerMismatch):
			respondError(c, response.CodeForbidden, "order assigned to another partner", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "unknown order status", nil)
		case errors.Is(err, service.ErrOrderTransitionInvalid):
			respondError(c, response.CodeBadRequest, "status transition not allowed", nil)
		default:
			respondError(c, response.CodeInternal, "order status update failed", err)
		}
		return
	}

	requestLog(c).Infow("partner_order_status_updated",
		"order_no", order.OrderNo,
		"partner_id", partnerID,
		"status", order.Status,
	)
	response.Success(c, order)
}
