package public

import (
	"github.com/velora-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetShippingPolicy 公开运费策略
func (h *Handler) GetShippingPolicy(c *gin.Context) {
	policy, err := h.ShippingService.Active()
	if err != nil {
		respondError(c, response.CodeInternal, "shipping policy fetch failed", err)
		return
	}
	response.Success(c, policy)
}
