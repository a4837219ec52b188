package queue

import (
	"encoding/json"

	"github.com/velora-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderPlacedEmail 下单成功邮件任务
	TaskOrderPlacedEmail = constants.TaskOrderPlacedEmail
	// TaskOrderPartnerAlert 配送员新订单提醒任务
	TaskOrderPartnerAlert = constants.TaskOrderPartnerAlert
	// TaskOrderStatusEmail 订单状态邮件通知任务
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
	// TaskOrderCancelAlert 配送员取消提醒任务
	TaskOrderCancelAlert = constants.TaskOrderCancelAlert
	// TaskOrderDeliveryOTP 送达确认码邮件任务
	TaskOrderDeliveryOTP = constants.TaskOrderDeliveryOTP
)

// OrderPlacedEmailPayload 下单成功邮件任务载荷
type OrderPlacedEmailPayload struct {
	OrderID uint `json:"order_id"`
}

// OrderPartnerAlertPayload 配送员新订单提醒任务载荷
type OrderPartnerAlertPayload struct {
	OrderID uint `json:"order_id"`
}

// OrderStatusEmailPayload 订单状态邮件任务载荷
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// OrderCancelAlertPayload 配送员取消提醒任务载荷
type OrderCancelAlertPayload struct {
	OrderID   uint `json:"order_id"`
	PartnerID uint `json:"partner_id"`
}

// OrderDeliveryOTPPayload 送达确认码任务载荷
// 确认码只随任务流转，不落库
type OrderDeliveryOTPPayload struct {
	OrderID   uint   `json:"order_id"`
	PartnerID uint   `json:"partner_id"`
	Code      string `json:"code"`
}

// NewOrderPlacedEmailTask 创建下单成功邮件任务
func NewOrderPlacedEmailTask(payload OrderPlacedEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPlacedEmail, body), nil
}

// NewOrderPartnerAlertTask 创建配送员新订单提醒任务
func NewOrderPartnerAlertTask(payload OrderPartnerAlertPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPartnerAlert, body), nil
}

// NewOrderStatusEmailTask 创建订单状态邮件任务
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}

// NewOrderCancelAlertTask 创建配送员取消提醒任务
func NewOrderCancelAlertTask(payload OrderCancelAlertPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderCancelAlert, body), nil
}

// NewOrderDeliveryOTPTask 创建送达确认码任务
func NewOrderDeliveryOTPTask(payload OrderDeliveryOTPPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderDeliveryOTP, body), nil
}
