package admin

import (
	"errors"
	"strconv"

	"github.com/velora-next/internal/http/response"
	"github.com/velora-next/internal/repository"
	"github.com/velora-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminListOrders 全量订单列表
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)
	partnerID, _ := strconv.ParseUint(c.Query("partner_id"), 10, 64)

	filter := repository.OrderListFilter{
		Page:      page,
		PageSize:  pageSize,
		UserID:    uint(userID),
		PartnerID: uint(partnerID),
		Status:    c.Query("status"),
		OrderNo:   c.Query("order_no"),
	}
	if from, err := parseTimeNullable(c.Query("created_from")); err == nil {
		filter.CreatedFrom = from
	}
	if to, err := parseTimeNullable(c.Query("created_to")); err == nil {
		filter.CreatedTo = to
	}

	orders, total, err := h.OrderService.ListOrdersAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "order list failed", err)
		return
	}
	response.SuccessWithPage(c, orders, buildPagination(page, pageSize, total))
}

// AdminGetOrder 订单详情
func (h *Handler) AdminGetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.GetOrderAdmin(id)
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
