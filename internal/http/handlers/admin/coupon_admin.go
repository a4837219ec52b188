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

func parseMoney(value string) (models.Money, error) {
	if value == "" {
		return models.NewMoneyFromDecimal(decimal.Zero), nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return models.Money{}, err
	}
	return models.NewMoneyFromDecimal(d), nil
}

func parseMoneyNullable(value *string) (*models.Money, error) {
	if value == nil {
		return nil, nil
	}
	m, err := parseMoney(*value)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func respondCouponAdminError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, service.ErrCouponNotFound):
		respondError(c, response.CodeNotFound, "coupon not found", nil)
	case errors.Is(err, service.ErrCouponCodeRequired):
		respondError(c, response.CodeBadRequest, "coupon code required", nil)
	case errors.Is(err, service.ErrCouponCodeTaken):
		respondError(c, response.CodeBadRequest, "coupon code already exists", nil)
	case errors.Is(err, service.ErrCouponTypeInvalid):
		respondError(c, response.CodeBadRequest, "coupon type invalid", nil)
	case errors.Is(err, service.ErrCouponValueInvalid):
		respondError(c, response.CodeBadRequest, "coupon value invalid", nil)
	case errors.Is(err, service.ErrCouponWindowInvalid):
		respondError(c, response.CodeBadRequest, "coupon validity window invalid", nil)
	default:
		respondError(c, response.CodeInternal, fallbackMsg, err)
	}
}

// CreateCouponRequest 新增优惠券请求
type CreateCouponRequest struct {
	Code           string `json:"code" binding:"required"`
	Type           string `json:"type" binding:"required"`
	Value          string `json:"value" binding:"required"`
	MinOrderAmount string `json:"min_order_amount"`
	MaxDiscount    string `json:"max_discount"`
	GlobalLimit    int    `json:"global_limit"`
	PerUserLimit   int    `json:"per_user_limit"`
	StartsAt       string `json:"starts_at"`
	EndsAt         string `json:"ends_at"`
	IsActive       *bool  `json:"is_active"`
}

// CreateCoupon 新增优惠券
func (h *Handler) CreateCoupon(c *gin.Context) {
	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	value, err := parseMoney(req.Value)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid coupon value", nil)
		return
	}
	minOrderAmount, err := parseMoney(req.MinOrderAmount)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid min order amount", nil)
		return
	}
	maxDiscount, err := parseMoney(req.MaxDiscount)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid max discount", nil)
		return
	}
	startsAt, err := parseTimeNullable(req.StartsAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid starts_at", nil)
		return
	}
	endsAt, err := parseTimeNullable(req.EndsAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid ends_at", nil)
		return
	}

	coupon, err := h.CouponAdminService.Create(service.CouponCreateInput{
		Code:           req.Code,
		Type:           req.Type,
		Value:          value,
		MinOrderAmount: minOrderAmount,
		MaxDiscount:    maxDiscount,
		GlobalLimit:    req.GlobalLimit,
		PerUserLimit:   req.PerUserLimit,
		StartsAt:       startsAt,
		EndsAt:         endsAt,
		IsActive:       req.IsActive,
	})
	if err != nil {
		respondCouponAdminError(c, err, "coupon create failed")
		return
	}

	requestLog(c).Infow("coupon_created", "code", coupon.Code, "type", coupon.Type)
	response.Success(c, coupon)
}

// UpdateCouponRequest 更新优惠券请求（缺省字段不修改）
type UpdateCouponRequest struct {
	Value          *string `json:"value"`
	MinOrderAmount *string `json:"min_order_amount"`
	MaxDiscount    *string `json:"max_discount"`
	GlobalLimit    *int    `json:"global_limit"`
	PerUserLimit   *int    `json:"per_user_limit"`
	StartsAt       string  `json:"starts_at"`
	EndsAt         string  `json:"ends_at"`
	IsActive       *bool   `json:"is_active"`
}

// UpdateCoupon 更新优惠券
func (h *Handler) UpdateCoupon(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	value, err := parseMoneyNullable(req.Value)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid coupon value", nil)
		return
	}
	minOrderAmount, err := parseMoneyNullable(req.MinOrderAmount)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid min order amount", nil)
		return
	}
	maxDiscount, err := parseMoneyNullable(req.MaxDiscount)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid max discount", nil)
		return
	}
	startsAt, err := parseTimeNullable(req.StartsAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid starts_at", nil)
		return
	}
	endsAt, err := parseTimeNullable(req.EndsAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid ends_at", nil)
		return
	}

	coupon, err := h.CouponAdminService.Update(id, service.CouponUpdateInput{
		Value:          value,
		MinOrderAmount: minOrderAmount,
		MaxDiscount:    maxDiscount,
		GlobalLimit:    req.GlobalLimit,
		PerUserLimit:   req.PerUserLimit,
		StartsAt:       startsAt,
		EndsAt:         endsAt,
		IsActive:       req.IsActive,
	})
	if err != nil {
		respondCouponAdminError(c, err, "coupon update failed")
		return
	}

	response.Success(c, coupon)
}

// GetAdminCoupons 优惠券列表
func (h *Handler) GetAdminCoupons(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.CouponListFilter{
		Code:     c.Query("code"),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.IsActive = &active
	}

	coupons, total, err := h.CouponAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "coupon list failed", err)
		return
	}
	response.SuccessWithPage(c, coupons, buildPagination(page, pageSize, total))
}

// GetAdminCoupon 优惠券详情
func (h *Handler) GetAdminCoupon(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	coupon, err := h.CouponAdminService.Get(id)
	if err != nil {
		respondCouponAdminError(c, err, "coupon fetch failed")
		return
	}
	response.Success(c, coupon)
}

// DeleteCoupon 删除优惠券
func (h *Handler) DeleteCoupon(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.CouponAdminService.Delete(id); err != nil {
		respondCouponAdminError(c, err, "coupon delete failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
