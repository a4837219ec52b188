package public

import (
	"errors"

	"github.com/velora-next/internal/http/response"
	"github.com/velora-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var couponErrorRules = []mappedHandlerError{
	{target: service.ErrCouponCodeRequired, code: response.CodeBadRequest, msg: "coupon code required"},
	{target: service.ErrCouponNotFound, code: response.CodeBadRequest, msg: "coupon not found"},
	{target: service.ErrCouponInactive, code: response.CodeBadRequest, msg: "coupon inactive"},
	{target: service.ErrCouponNotStarted, code: response.CodeBadRequest, msg: "coupon not started"},
	{target: service.ErrCouponExpired, code: response.CodeBadRequest, msg: "coupon expired"},
	{target: service.ErrCouponIdentityRequired, code: response.CodeBadRequest, msg: "coupon identity required"},
	{target: service.ErrCouponOrderAmount, code: response.CodeBadRequest, msg: "order amount invalid for coupon"},
	{target: service.ErrCouponMinAmount, code: response.CodeBadRequest, msg: "order amount below coupon minimum"},
	{target: service.ErrCouponGlobalLimit, code: response.CodeBadRequest, msg: "coupon redemption limit reached"},
	{target: service.ErrCouponPerUserLimit, code: response.CodeBadRequest, msg: "coupon already used"},
	{target: service.ErrCouponInvalid, code: response.CodeBadRequest, msg: "coupon invalid"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrAddressNotFound, code: response.CodeNotFound, msg: "address not found"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrProductInactive, code: response.CodeBadRequest, msg: "product no longer available"},
	{target: service.ErrVariantNotFound, code: response.CodeBadRequest, msg: "selected variant not available"},
	{target: service.ErrVariantOutOfStock, code: response.CodeBadRequest, msg: "selected variant out of stock"},
	{target: service.ErrOrderNoExhausted, code: response.CodeInternal, msg: "order number allocation failed"},
}

var orderCancelErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrOrderCancelNotAllowed, code: response.CodeBadRequest, msg: "order can no longer be cancelled"},
}
