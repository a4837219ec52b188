package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/velora-next/internal/logger"
	"github.com/velora-next/internal/models"
	"github.com/velora-next/internal/provider"
	"github.com/velora-next/internal/queue"
	"github.com/velora-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderPlacedEmail, c.handleOrderPlacedEmail)
	mux.HandleFunc(queue.TaskOrderPartnerAlert, c.handleOrderPartnerAlert)
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskOrderCancelAlert, c.handleOrderCancelAlert)
	mux.HandleFunc(queue.TaskOrderDeliveryOTP, c.handleOrderDeliveryOTP)
}

func (c *Consumer) fetchOrder(event string, orderID uint) (*models.Order, error) {
	order, err := c.OrderRepo.GetByID(orderID)
	if err != nil {
		logger.Warnw(event+"_fetch_order_failed", "order_id", orderID, "error", err)
		return nil, err
	}
	if order == nil {
		logger.Debugw(event+"_skip_order_not_found", "order_id", orderID)
		return nil, nil
	}
	return order, nil
}

func (c *Consumer) fetchUserEmail(event string, userID uint) (string, error) {
	user, err := c.UserRepo.GetByID(userID)
	if err != nil {
		logger.Warnw(event+"_fetch_user_failed", "user_id", userID, "error", err)
		return "", err
	}
	if user == nil {
		logger.Debugw(event+"_skip_user_not_found", "user_id", userID)
		return "", nil
	}
	return strings.TrimSpace(user.Email), nil
}

func buildOrderEmailInput(order *models.Order) service.OrderEmailInput {
	return service.OrderEmailInput{
		OrderNo:     order.OrderNo,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		ShipName:    order.ShipName,
		ShipCity:    order.ShipCity,
	}
}

func (c *Consumer) handleOrderPlacedEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderPlacedEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_placed_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		return nil
	}
	order, err := c.fetchOrder("worker_order_placed_email", payload.OrderID)
	if err != nil || order == nil {
		return err
	}
	email, err := c.fetchUserEmail("worker_order_placed_email", order.UserID)
	if err != nil {
		return err
	}
	if email == "" {
		logger.Debugw("worker_order_placed_email_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	if err := c.EmailService.SendOrderPlacedEmail(email, buildOrderEmailInput(order)); err != nil {
		logger.Warnw("worker_order_placed_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", email,
			"error", err,
		)
		return err
	}
	return nil
}

// handleOrderPartnerAlert 新订单广播给全部在岗配送员
func (c *Consumer) handleOrderPartnerAlert(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderPartnerAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_partner_alert_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		return nil
	}
	order, err := c.fetchOrder("worker_order_partner_alert", payload.OrderID)
	if err != nil || order == nil {
		return err
	}
	partners, err := c.UserRepo.ListActivePartners()
	if err != nil {
		logger.Warnw("worker_order_partner_alert_fetch_partners_failed", "order_id", order.ID, "error", err)
		return err
	}
	if len(partners) == 0 {
		logger.Debugw("worker_order_partner_alert_skip_no_partners", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	input := buildOrderEmailInput(order)
	var lastErr error
	for _, partner := range partners {
		email := strings.TrimSpace(partner.Email)
		if email == "" {
			continue
		}
		if err := c.EmailService.SendPartnerOrderAlert(email, input); err != nil {
			logger.Warnw("worker_order_partner_alert_send_failed",
				"order_id", order.ID,
				"order_no", order.OrderNo,
				"partner_id", partner.ID,
				"error", err,
			)
			lastErr = err
		}
	}
	return lastErr
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		return nil
	}
	order, err := c.fetchOrder("worker_order_status_email", payload.OrderID)
	if err != nil || order == nil {
		return err
	}
	email, err := c.fetchUserEmail("worker_order_status_email", order.UserID)
	if err != nil {
		return err
	}
	if email == "" {
		logger.Debugw("worker_order_status_email_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	input := buildOrderEmailInput(order)
	if status := strings.TrimSpace(payload.Status); status != "" {
		input.Status = status
	}
	if err := c.EmailService.SendOrderStatusEmail(email, input); err != nil {
		logger.Warnw("worker_order_status_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", email,
			"status", input.Status,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderCancelAlert(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderCancelAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_cancel_alert_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 || payload.PartnerID == 0 {
		return nil
	}
	order, err := c.fetchOrder("worker_order_cancel_alert", payload.OrderID)
	if err != nil || order == nil {
		return err
	}
	email, err := c.fetchUserEmail("worker_order_cancel_alert", payload.PartnerID)
	if err != nil {
		return err
	}
	if email == "" {
		logger.Debugw("worker_order_cancel_alert_skip_empty_receiver", "order_id", order.ID, "partner_id", payload.PartnerID)
		return nil
	}
	if err := c.EmailService.SendPartnerCancelAlert(email, buildOrderEmailInput(order)); err != nil {
		logger.Warnw("worker_order_cancel_alert_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"partner_id", payload.PartnerID,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderDeliveryOTP(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderDeliveryOTPPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_delivery_otp_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 || payload.PartnerID == 0 || strings.TrimSpace(payload.Code) == "" {
		return nil
	}
	order, err := c.fetchOrder("worker_order_delivery_otp", payload.OrderID)
	if err != nil || order == nil {
		return err
	}
	email, err := c.fetchUserEmail("worker_order_delivery_otp", payload.PartnerID)
	if err != nil {
		return err
	}
	if email == "" {
		logger.Debugw("worker_order_delivery_otp_skip_empty_receiver", "order_id", order.ID, "partner_id", payload.PartnerID)
		return nil
	}
	if err := c.EmailService.SendDeliveryCodeEmail(email, buildOrderEmailInput(order), payload.Code); err != nil {
		logger.Warnw("worker_order_delivery_otp_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"partner_id", payload.PartnerID,
			"error", err,
		)
		return err
	}
	return nil
}
