package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/velora-next/internal/constants"
	"github.com/velora-next/internal/logger"
	"github.com/velora-next/internal/models"
	"github.com/velora-next/internal/queue"
	"github.com/velora-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo       repository.OrderRepository
	addressRepo     repository.AddressRepository
	cartRepo        repository.CartRepository
	userRepo        repository.UserRepository
	couponRepo      repository.CouponRepository
	redemptionRepo  repository.CouponRedemptionRepository
	couponService   *CouponService
	shippingService *ShippingService
	queueClient     *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, addressRepo repository.AddressRepository, cartRepo repository.CartRepository, userRepo repository.UserRepository, couponRepo repository.CouponRepository, redemptionRepo repository.CouponRedemptionRepository, couponService *CouponService, shippingService *ShippingService, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:       orderRepo,
		addressRepo:     addressRepo,
		cartRepo:        cartRepo,
		userRepo:        userRepo,
		couponRepo:      couponRepo,
		redemptionRepo:  redemptionRepo,
		couponService:   couponService,
		shippingService: shippingService,
		queueClient:     queueClient,
	}
}

// CheckoutInput 结账输入
// Email/Phone 来自认证主体声明，用于优惠券身份限额匹配
type CheckoutInput struct {
	UserID     uint
	AddressID  uint
	CouponCode string
	Email      string
	Phone      string
}

// Checkout 将购物车转换为订单
// 地址与购物车读取在事务外；优惠券校验、编号生成、订单与订单项写入、
// 兑换台账写入、清空购物车在同一事务内，任一步失败全部回滚。
// 提交后的通知是尽力而为，不影响已提交订单。
func (s *OrderService) Checkout(input CheckoutInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrOrderCreateFailed
	}

	address, err := s.addressRepo.GetByIDAndUser(input.AddressID, input.UserID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}

	cartItems, err := s.cartRepo.ListByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrCartEmpty
	}

	lines, subtotal, err := buildOrderLines(cartItems)
	if err != nil {
		return nil, err
	}

	shippingFee, err := s.shippingService.FeeFor(subtotal)
	if err != nil {
		return nil, err
	}

	couponCode := NormalizeCouponCode(input.CouponCode)
	identity := CouponIdentity{UserID: input.UserID, Email: input.Email, Phone: input.Phone}

	var order *models.Order
	// 编号唯一索引兜底生成竞态：读到重复后缀时整个事务重试
	for attempt := 0; attempt < constants.OrderNoMaxRetries; attempt++ {
		order, err = s.checkoutTx(input.UserID, address, lines, subtotal, shippingFee, couponCode, identity)
		if err == nil {
			break
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		logger.Warnw("order_no_conflict_retry",
			"user_id", input.UserID,
			"attempt", attempt+1,
		)
		err = ErrOrderNoExhausted
	}
	if err != nil {
		return nil, err
	}

	s.notifyOrderPlaced(order)

	full, fetchErr := s.orderRepo.GetByID(order.ID)
	if fetchErr == nil && full != nil {
		return full, nil
	}
	return order, nil
}

// checkoutTx 执行一次结账事务
func (s *OrderService) checkoutTx(userID uint, address *models.Address, lines []models.OrderItem, subtotal, shippingFee models.Money, couponCode string, identity CouponIdentity) (*models.Order, error) {
	now := time.Now()
	var order *models.Order

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)

		discount := models.NewMoneyFromDecimal(decimal.Zero)
		var coupon *models.Coupon
		if couponCode != "" {
			quote, err := s.couponService.ValidateForRedemption(tx, couponCode, identity, subtotal)
			if err != nil {
				return err
			}
			coupon = quote.Coupon
			discount = quote.Discount
		}

		total := subtotal.Decimal.Add(shippingFee.Decimal).Sub(discount.Decimal)
		if total.LessThan(decimal.Zero) {
			total = decimal.Zero
		}

		lastSuffix, err := orderRepo.LastOrderNoSuffix()
		if err != nil {
			return err
		}
		orderNo := nextOrderNo(lastSuffix)

		items := make([]models.OrderItem, len(lines))
		copy(items, lines)

		order = &models.Order{
			OrderNo:        orderNo,
			UserID:         userID,
			Status:         constants.OrderStatusPlaced,
			PaymentMethod:  constants.PaymentMethodCOD,
			PaymentStatus:  constants.PaymentStatusPending,
			Subtotal:       subtotal,
			ShippingFee:    shippingFee,
			DiscountAmount: discount,
			TotalAmount:    models.NewMoneyFromDecimal(total),
			ShipName:       address.FullName,
			ShipPhone:      address.Phone,
			ShipLine1:      address.Line1,
			ShipLine2:      address.Line2,
			ShipCity:       address.City,
			ShipState:      address.State,
			ShipPostalCode: address.PostalCode,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if coupon != nil {
			order.CouponID = &coupon.ID
		}

		if err := orderRepo.Create(order, items); err != nil {
			return err
		}

		label := buildShippingLabel(order, address, items)
		if err := tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			UpdateColumn("shipping_label", label).Error; err != nil {
			return err
		}
		order.ShippingLabel = label
		order.Items = items

		if coupon != nil {
			redemptionRepo := s.redemptionRepo.WithTx(tx)
			couponRepo := s.couponRepo.WithTx(tx)
			redemption := &models.CouponRedemption{
				CouponID:       coupon.ID,
				UserID:         identity.UserID,
				Email:          strings.ToLower(strings.TrimSpace(identity.Email)),
				Phone:          strings.TrimSpace(identity.Phone),
				OrderID:        order.ID,
				DiscountAmount: discount,
				CreatedAt:      now,
			}
			if err := redemptionRepo.Create(redemption); err != nil {
				return err
			}
			if err := couponRepo.IncrementRedeemedCount(coupon.ID, 1); err != nil {
				return err
			}
		}

		return s.cartRepo.WithTx(tx).ClearByUser(userID)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// nextOrderNo 计算下一个订单编号
// 首单从固定起点开始（OD20251），其后按最近编号的数字后缀加一
func nextOrderNo(lastSuffix int64) string {
	next := lastSuffix + 1
	if next < constants.OrderNoFloor {
		next = constants.OrderNoFloor
	}
	return fmt.Sprintf("%s%d", constants.OrderNoPrefix, next)
}

// isUniqueViolation 判断是否为唯一约束冲突
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "constraint failed")
}

// buildShippingLabel 构造发货标签快照（履约下游消费，与承运商面单无关）
func buildShippingLabel(order *models.Order, address *models.Address, items []models.OrderItem) models.JSON {
	itemSummaries := make([]interface{}, 0, len(items))
	for _, item := range items {
		itemSummaries = append(itemSummaries, map[string]interface{}{
			"product_name": item.ProductName,
			"sku":          item.SKU,
			"color":        item.ColorName,
			"size":         item.SizeName,
			"quantity":     item.Quantity,
		})
	}
	return models.JSON{
		"order_no":    order.OrderNo,
		"name":        address.FullName,
		"phone":       address.Phone,
		"line1":       address.Line1,
		"line2":       address.Line2,
		"city":        address.City,
		"state":       address.State,
		"postal_code": address.PostalCode,
		"items":       itemSummaries,
	}
}

// notifyOrderPlaced 提交后派发下单通知（客户确认邮件 + 配送员新单广播）
// 入队失败只记日志，订单已提交成功
func (s *OrderService) notifyOrderPlaced(order *models.Order) {
	if s.queueClient == nil || order == nil {
		return
	}
	if err := s.queueClient.EnqueueOrderPlacedEmail(queue.OrderPlacedEmailPayload{OrderID: order.ID}); err != nil {
		logger.Warnw("order_enqueue_placed_email_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
	}
	if err := s.queueClient.EnqueueOrderPartnerAlert(queue.OrderPartnerAlertPayload{OrderID: order.ID}); err != nil {
		logger.Warnw("order_enqueue_partner_alert_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
	}
}

// CancelOrder 客户取消订单
// 仅 PLACED/CONFIRMED 可取消；取消同时关闭货到付款收款
func (s *OrderService) CancelOrder(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !IsCancellableByCustomer(order.Status) {
		return nil, ErrOrderCancelNotAllowed
	}

	now := time.Now()
	updates := map[string]interface{}{
		"payment_status": constants.PaymentStatusCancelled,
		"cancelled_at":   now,
		"updated_at":     now,
	}
	if err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusCancelled, updates); err != nil {
		return nil, ErrOrderUpdateFailed
	}
	order.Status = constants.OrderStatusCancelled
	order.PaymentStatus = constants.PaymentStatusCancelled
	order.CancelledAt = &now
	order.UpdatedAt = now

	s.notifyStatusChanged(order, constants.OrderStatusCancelled)
	if order.PartnerID != nil {
		s.notifyPartnerCancelled(order)
	}
	return order, nil
}

// PartnerUpdateStatus 配送员推进订单状态
// 只能操作未认领或已认领给自己的订单，首次操作即认领；
// 送达联动 paid，取消联动 cancelled；送达后生成一次性确认码发给配送员
func (s *OrderService) PartnerUpdateStatus(orderID, partnerID uint, targetStatus string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	target := NormalizeOrderStatus(targetStatus)
	if !IsValidOrderStatus(target) {
		return nil, ErrOrderStatusInvalid
	}
	if order.PartnerID != nil && *order.PartnerID != partnerID {
		return nil, ErrOrderPartnerMismatch
	}
	if !CanTransition(order.Status, target) {
		return nil, ErrOrderTransitionInvalid
	}

	now := time.Now()
	updates := map[string]interface{}{
		"updated_at": now,
	}
	if order.PartnerID == nil {
		updates["partner_id"] = partnerID
	}
	if paymentStatus := paymentStatusForTransition(target); paymentStatus != "" {
		updates["payment_status"] = paymentStatus
	}
	switch target {
	case constants.OrderStatusDelivered:
		updates["delivered_at"] = now
	case constants.OrderStatusCancelled:
		updates["cancelled_at"] = now
	}

	if err := s.orderRepo.UpdateStatus(order.ID, target, updates); err != nil {
		return nil, ErrOrderUpdateFailed
	}

	order.Status = target
	order.UpdatedAt = now
	if order.PartnerID == nil {
		order.PartnerID = &partnerID
	}
	if paymentStatus := paymentStatusForTransition(target); paymentStatus != "" {
		order.PaymentStatus = paymentStatus
	}
	switch target {
	case constants.OrderStatusDelivered:
		order.DeliveredAt = &now
	case constants.OrderStatusCancelled:
		order.CancelledAt = &now
	}

	s.notifyStatusChanged(order, target)
	switch target {
	case constants.OrderStatusDelivered:
		// 确认码在状态落库之后生成，仅通过邮件送达，不入库不做流转闸门
		s.notifyDeliveryCode(order, partnerID)
	case constants.OrderStatusCancelled:
		s.notifyPartnerCancelled(order)
	}
	return order, nil
}

// notifyStatusChanged 派发状态变更邮件任务
func (s *OrderService) notifyStatusChanged(order *models.Order, status string) {
	if s.queueClient == nil || order == nil {
		return
	}
	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: order.ID,
		Status:  status,
	}); err != nil {
		logger.Warnw("order_enqueue_status_email_failed",
			"order_id", order.ID,
			"status", status,
			"error", err,
		)
	}
}

// notifyPartnerCancelled 通知已认领配送员订单已取消
func (s *OrderService) notifyPartnerCancelled(order *models.Order) {
	if s.queueClient == nil || order == nil || order.PartnerID == nil {
		return
	}
	if err := s.queueClient.EnqueueOrderCancelAlert(queue.OrderCancelAlertPayload{
		OrderID:   order.ID,
		PartnerID: *order.PartnerID,
	}); err != nil {
		logger.Warnw("order_enqueue_cancel_alert_failed",
			"order_id", order.ID,
			"partner_id", *order.PartnerID,
			"error", err,
		)
	}
}

// notifyDeliveryCode 生成配送确认码并派发邮件任务
func (s *OrderService) notifyDeliveryCode(order *models.Order, partnerID uint) {
	if s.queueClient == nil || order == nil {
		return
	}
	code, err := generateDeliveryCode(constants.DeliveryOTPLength)
	if err != nil {
		logger.Warnw("order_delivery_code_generate_failed",
			"order_id", order.ID,
			"error", err,
		)
		return
	}
	if err := s.queueClient.EnqueueOrderDeliveryOTP(queue.OrderDeliveryOTPPayload{
		OrderID:   order.ID,
		PartnerID: partnerID,
		Code:      code,
	}); err != nil {
		logger.Warnw("order_enqueue_delivery_otp_failed",
			"order_id", order.ID,
			"partner_id", partnerID,
			"error", err,
		)
	}
}

// generateDeliveryCode 生成指定位数的数字确认码
func generateDeliveryCode(length int) (string, error) {
	if length <= 0 {
		length = constants.DeliveryOTPLength
	}
	var sb strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		sb.WriteString(n.String())
	}
	return sb.String(), nil
}
