package admin

import (
	"errors"

	"github.com/velora-next/internal/http/response"
	"github.com/velora-next/internal/models"
	"github.com/velora-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetShippingPolicy 当前运费策略
func (h *Handler) GetShippingPolicy(c *gin.Context) {
	policy, err := h.ShippingService.Active()
	if err != nil {
		respondError(c, response.CodeInternal, "shipping policy fetch failed", err)
		return
	}
	response.Success(c, policy)
}

// UpdateShippingPolicyRequest 运费策略更新请求
type UpdateShippingPolicyRequest struct {
	FreeThreshold string `json:"free_threshold" binding:"required"`
	Fee           string `json:"fee" binding:"required"`
}

// UpdateShippingPolicy 更新运费策略（即时生效，不影响已下单订单）
func (h *Handler) UpdateShippingPolicy(c *gin.Context) {
	var req UpdateShippingPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	threshold, err := decimal.NewFromString(req.FreeThreshold)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid free threshold", nil)
		return
	}
	fee, err := decimal.NewFromString(req.Fee)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid fee", nil)
		return
	}

	policy, err := h.ShippingService.UpdatePolicy(service.UpdatePolicyInput{
		Threshold: models.NewMoneyFromDecimal(threshold),
		Fee:       models.NewMoneyFromDecimal(fee),
	})
	if err != nil {
		if errors.Is(err, service.ErrShippingPolicyInvalid) {
			respondError(c, response.CodeBadRequest, "shipping policy invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "shipping policy update failed", err)
		return
	}

	requestLog(c).Infow("shipping_policy_updated",
		"free_threshold", policy.Threshold.String(),
		"fee", policy.Fee.String(),
	)
	response.Success(c, policy)
}
