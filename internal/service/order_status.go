package service

import (
	"strings"

	"github.com/velora-next/internal/constants"
)

// allowedTransitions 订单状态机
// 正向流转允许跳过中间态；取消与退货是旁支；
// DELIVERED（未发起退货）、CANCELLED、RETURNED 为终态
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPlaced: {
		constants.OrderStatusConfirmed:      true,
		constants.OrderStatusPacked:         true,
		constants.OrderStatusOutForDelivery: true,
		constants.OrderStatusDelivered:      true,
		constants.OrderStatusCancelled:      true,
	},
	constants.OrderStatusConfirmed: {
		constants.OrderStatusPacked:         true,
		constants.OrderStatusOutForDelivery: true,
		constants.OrderStatusDelivered:      true,
		constants.OrderStatusCancelled:      true,
	},
	constants.OrderStatusPacked: {
		constants.OrderStatusOutForDelivery: true,
		constants.OrderStatusDelivered:      true,
		constants.OrderStatusCancelled:      true,
	},
	constants.OrderStatusOutForDelivery: {
		constants.OrderStatusDelivered: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusDelivered: {
		constants.OrderStatusReturnRequested: true,
	},
	constants.OrderStatusReturnRequested: {
		constants.OrderStatusReturned: true,
	},
}

// orderStatuses 全部合法状态
var orderStatuses = map[string]bool{
	constants.OrderStatusPlaced:          true,
	constants.OrderStatusConfirmed:       true,
	constants.OrderStatusPacked:          true,
	constants.OrderStatusOutForDelivery:  true,
	constants.OrderStatusDelivered:       true,
	constants.OrderStatusCancelled:       true,
	constants.OrderStatusReturnRequested: true,
	constants.OrderStatusReturned:        true,
}

// NormalizeOrderStatus 统一状态格式（去空白并转大写）
func NormalizeOrderStatus(status string) string {
	return strings.ToUpper(strings.TrimSpace(status))
}

// IsValidOrderStatus 判断是否为已声明的订单状态
func IsValidOrderStatus(status string) bool {
	return orderStatuses[NormalizeOrderStatus(status)]
}

// CanTransition 判断状态流转是否合法
func CanTransition(from, to string) bool {
	targets, ok := allowedTransitions[NormalizeOrderStatus(from)]
	if !ok {
		return false
	}
	return targets[NormalizeOrderStatus(to)]
}

// IsCancellableByCustomer 判断客户是否仍可取消
// 取消窗口只覆盖 PLACED 与 CONFIRMED，打包及之后不可取消
func IsCancellableByCustomer(status string) bool {
	switch NormalizeOrderStatus(status) {
	case constants.OrderStatusPlaced, constants.OrderStatusConfirmed:
		return true
	default:
		return false
	}
}

// paymentStatusForTransition 状态流转联动的支付状态
// 货到付款：送达即视为收款，取消即关闭收款；其余流转不改支付状态
func paymentStatusForTransition(target string) string {
	switch NormalizeOrderStatus(target) {
	case constants.OrderStatusDelivered:
		return constants.PaymentStatusPaid
	case constants.OrderStatusCancelled:
		return constants.PaymentStatusCancelled
	default:
		return ""
	}
}
