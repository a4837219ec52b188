package public

import (
	"github.com/velora-next/internal/http/response"
	"github.com/velora-next/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PreviewCouponRequest 优惠券预览请求
type PreviewCouponRequest struct {
	Code        string `json:"code" binding:"required"`
	OrderAmount string `json:"order_amount" binding:"required"`
}

// PreviewCoupon 结算前预览优惠券抵扣
// 预览不落台账，下单时仍会在事务内重新校验。
func (h *Handler) PreviewCoupon(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req PreviewCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	amount, err := decimal.NewFromString(req.OrderAmount)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid order amount", nil)
		return
	}

	quote, err := h.CouponService.Preview(req.Code, getCouponIdentity(c, userID), models.NewMoneyFromDecimal(amount))
	if err != nil {
		respondWithMappedError(c, err, couponErrorRules, response.CodeInternal, "coupon preview failed")
		return
	}

	response.Success(c, gin.H{
		"coupon":   quote.Coupon,
		"discount": quote.Discount,
	})
}

// GetAvailableCoupons 当前可用优惠券列表
func (h *Handler) GetAvailableCoupons(c *gin.Context) {
	coupons, err := h.CouponService.ListAvailable()
	if err != nil {
		respondError(c, response.CodeInternal, "coupon list failed", err)
		return
	}
	response.Success(c, coupons)
}
