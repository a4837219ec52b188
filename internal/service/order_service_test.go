package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/velora-next/internal/config"
	"github.com/velora-next/internal/constants"
	"github.com/velora-next/internal/models"
	"github.com/velora-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductImage{},
		&models.CartItem{},
		&models.Coupon{},
		&models.CouponRedemption{},
		&models.Order{},
		&models.OrderItem{},
		&models.ShippingPolicy{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	// 结账事务跑在全局连接上
	models.DB = db

	orderRepo := repository.NewOrderRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	cartRepo := repository.NewCartRepository(db)
	userRepo := repository.NewUserRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	redemptionRepo := repository.NewCouponRedemptionRepository(db)
	couponService := NewCouponService(couponRepo, redemptionRepo)
	shippingService := NewShippingService(repository.NewShippingPolicyRepository(db), &config.ShippingConfig{
		FreeThreshold: "1999",
		Fee:           "99",
	})
	svc := NewOrderService(orderRepo, addressRepo, cartRepo, userRepo, couponRepo, redemptionRepo, couponService, shippingService, nil)
	return svc, db
}

func createOrderTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Order Tester",
		Email:        email,
		Phone:        "+8613800000099",
		PasswordHash: "x",
		Role:         constants.RoleCustomer,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func createOrderTestAddress(t *testing.T, db *gorm.DB, userID uint) *models.Address {
	t.Helper()
	address := &models.Address{
		UserID:     userID,
		FullName:   "Jamie Chen",
		Phone:      "+8613800000099",
		Line1:      "88 Harbor Road",
		City:       "Shanghai",
		State:      "SH",
		PostalCode: "200000",
	}
	if err := db.Create(address).Error; err != nil {
		t.Fatalf("create address failed: %v", err)
	}
	return address
}

func createOrderTestProduct(t *testing.T, db *gorm.DB, slug string, price int64, stock int, active bool) *models.Product {
	t.Helper()
	category := &models.Category{Slug: slug + "-cat", Name: "Category " + slug}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := &models.Product{
		CategoryID: category.ID,
		Slug:       slug,
		Name:       "Product " + slug,
		IsActive:   active,
		Variants: []models.ProductVariant{
			{SKU: slug + "-SKU", BasePrice: models.NewMoneyFromInt(price), Stock: stock, IsActive: true},
		},
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func addOrderTestCartItem(t *testing.T, db *gorm.DB, userID, productID uint, quantity int) {
	t.Helper()
	item := &models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var total int64
	if err := db.Model(model).Count(&total).Error; err != nil {
		t.Fatalf("count rows failed: %v", err)
	}
	return total
}

func TestCheckoutAssignsSequentialOrderNumbers(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createOrderTestUser(t, db, "seq@test.local")
	address := createOrderTestAddress(t, db, user.ID)
	product := createOrderTestProduct(t, db, "seq-tee", 500, 10, true)

	addOrderTestCartItem(t, db, user.ID, product.ID, 1)
	first, err := svc.Checkout(CheckoutInput{UserID: user.ID, AddressID: address.ID, Email: user.Email})
	if err != nil {
		t.Fatalf("first checkout failed: %v", err)
	}
	if first.OrderNo != "OD20251" {
		t.Fatalf("expected first order no OD20251, got %s", first.OrderNo)
	}
	if first.Status != constants.OrderStatusPlaced {
		t.Fatalf("expected status PLACED, got %s", first.Status)
	}
	if first.PaymentMethod != constants.PaymentMethodCOD || first.PaymentStatus != constants.PaymentStatusPending {
		t.Fatalf("unexpected payment snapshot: %s / %s", first.PaymentMethod, first.PaymentStatus)
	}
	// 500 低于免邮门槛，计 99 运费
	if first.ShippingFee.String() != "99.00" {
		t.Fatalf("expected shipping fee 99.00, got %s", first.ShippingFee.String())
	}
	if first.TotalAmount.String() != "599.00" {
		t.Fatalf("expected total 599.00, got %s", first.TotalAmount.String())
	}
	if len(first.Items) != 1 || first.Items[0].SKU != "seq-tee-SKU" {
		t.Fatalf("unexpected order items: %+v", first.Items)
	}
	if got := countRows(t, db, &models.CartItem{}); got != 0 {
		t.Fatalf("expected cart cleared, got %d rows", got)
	}

	addOrderTestCartItem(t, db, user.ID, product.ID, 1)
	second, err := svc.Checkout(CheckoutInput{UserID: user.ID, AddressID: address.ID, Email: user.Email})
	if err != nil {
		t.Fatalf("second checkout failed: %v", err)
	}
	if second.OrderNo != "OD20252" {
		t.Fatalf("expected second order no OD20252, got %s", second.OrderNo)
	}
}

func TestCheckoutFreeShippingAtThreshold(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createOrderTestUser(t, db, "freeship@test.local")
	address := createOrderTestAddress(t, db, user.ID)
	product := createOrderTestProduct(t, db, "coat", 1999, 5, true)
	addOrderTestCartItem(t, db, user.ID, product.ID, 1)

	order, err := svc.Checkout(CheckoutInput{UserID: user.ID, AddressID: address.ID, Email: user.Email})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.ShippingFee.String() != "0.00" {
		t.Fatalf("expected free shipping at threshold, got %s", order.ShippingFee.String())
	}
	if order.TotalAmount.String() != "1999.00" {
		t.Fatalf("expected total 1999.00, got %s", order.TotalAmount.String())
	}
}

func TestCheckoutAppliesPercentCouponWithCap(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createOrderTestUser(t, db, "coupon@test.local")
	address := createOrderTestAddress(t, db, user.ID)
	product := createOrderTestProduct(t, db, "dress", 1000, 5, true)
	addOrderTestCartItem(t, db, user.ID, product.ID, 1)

	now := time.Now().Add(-time.Hour)
	endsAt := now.Add(48 * time.Hour)
	coupon := &models.Coupon{
		Code:           "SAVE10",
		Type:           constants.CouponTypePercent,
		Value:          models.NewMoneyFromInt(10),
		MinOrderAmount: models.NewMoneyFromInt(500),
		MaxDiscount:    models.NewMoneyFromInt(50),
		PerUserLimit:   2,
		StartsAt:       &now,
		EndsAt:         &endsAt,
		IsActive:       true,
	}
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	order, err := svc.Checkout(CheckoutInput{
		UserID:     user.ID,
		AddressID:  address.ID,
		CouponCode: "  save10 ",
		Email:      user.Email,
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	// 10% of 1000 = 100，封顶 50
	if order.DiscountAmount.String() != "50.00" {
		t.Fatalf("expected discount 50.00, got %s", order.DiscountAmount.String())
	}
	if order.TotalAmount.String() != "1049.00" {
		t.Fatalf("expected total 1049.00, got %s", order.TotalAmount.String())
	}
	if order.CouponID == nil || *order.CouponID != coupon.ID {
		t.Fatalf("expected order linked to coupon %d", coupon.ID)
	}

	var redemption models.CouponRedemption
	if err := db.Where("coupon_id = ? AND order_id = ?", coupon.ID, order.ID).First(&redemption).Error; err != nil {
		t.Fatalf("expected redemption record: %v", err)
	}
	if redemption.DiscountAmount.String() != "50.00" {
		t.Fatalf("expected redemption discount 50.00, got %s", redemption.DiscountAmount.String())
	}
	var reloaded models.Coupon
	if err := db.First(&reloaded, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if reloaded.RedeemedCount != 1 {
		t.Fatalf("expected redeemed count 1, got %d", reloaded.RedeemedCount)
	}
}

func TestCheckoutCouponFailureRollsBackWholeOrder(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createOrderTestUser(t, db, "rollback@test.local")
	address := createOrderTestAddress(t, db, user.ID)
	product := createOrderTestProduct(t, db, "scarf", 800, 5, true)
	addOrderTestCartItem(t, db, user.ID, product.ID, 1)

	endsAt := time.Now().Add(-time.Hour)
	coupon := &models.Coupon{
		Code:     "EXPIRED",
		Type:     constants.CouponTypeFixed,
		Value:    models.NewMoneyFromInt(100),
		EndsAt:   &endsAt,
		IsActive: true,
	}
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	_, err := svc.Checkout(CheckoutInput{
		UserID:     user.ID,
		AddressID:  address.ID,
		CouponCode: "EXPIRED",
		Email:      user.Email,
	})
	if !errors.Is(err, ErrCouponExpired) {
		t.Fatalf("expected ErrCouponExpired, got %v", err)
	}
	if got := countRows(t, db, &models.Order{}); got != 0 {
		t.Fatalf("expected no orders after rollback, got %d", got)
	}
	if got := countRows(t, db, &models.CartItem{}); got != 1 {
		t.Fatalf("expected cart intact after rollback, got %d rows", got)
	}
}

func TestCheckoutRedemptionWriteFailureRollsBack(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createOrderTestUser(t, db, "midtx@test.local")
	address := createOrderTestAddress(t, db, user.ID)
	product := createOrderTestProduct(t, db, "vest", 700, 5, true)
	addOrderTestCartItem(t, db, user.ID, product.ID, 1)

	// 无限额的券：校验阶段不读台账，失败推迟到事务中段的台账写入
	now := time.Now().Add(-time.Hour)
	endsAt := now.Add(48 * time.Hour)
	coupon := &models.Coupon{
		Code:     "MIDTX",
		Type:     constants.CouponTypeFixed,
		Value:    models.NewMoneyFromInt(100),
		StartsAt: &now,
		EndsAt:   &endsAt,
		IsActive: true,
	}
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	// 移除台账表：订单与订单项已写入后，兑换写入必然失败
	if err := db.Migrator().DropTable(&models.CouponRedemption{}); err != nil {
		t.Fatalf("drop table failed: %v", err)
	}

	_, err := svc.Checkout(CheckoutInput{
		UserID:     user.ID,
		AddressID:  address.ID,
		CouponCode: "MIDTX",
		Email:      user.Email,
	})
	if err == nil {
		t.Fatalf("expected checkout to fail after redemption write failure")
	}

	if got := countRows(t, db, &models.Order{}); got != 0 {
		t.Fatalf("expected no orders after rollback, got %d", got)
	}
	if got := countRows(t, db, &models.OrderItem{}); got != 0 {
		t.Fatalf("expected no order items after rollback, got %d", got)
	}
	if got := countRows(t, db, &models.CartItem{}); got != 1 {
		t.Fatalf("expected cart intact after rollback, got %d rows", got)
	}
	var reloaded models.Coupon
	if err := db.First(&reloaded, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if reloaded.RedeemedCount != 0 {
		t.Fatalf("expected redeemed count 0 after rollback, got %d", reloaded.RedeemedCount)
	}
}

func TestCheckoutGlobalLimitAcrossUsers(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createOrderTestProduct(t, db, "cap", 600, 10, true)

	now := time.Now().Add(-time.Hour)
	endsAt := now.Add(48 * time.Hour)
	coupon := &models.Coupon{
		Code:         "CAPPED",
		Type:         constants.CouponTypeFixed,
		Value:        models.NewMoneyFromInt(50),
		GlobalLimit:  2,
		PerUserLimit: 1,
		StartsAt:     &now,
		EndsAt:       &endsAt,
		IsActive:     true,
	}
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	checkout := func(email string) (*models.Order, error) {
		user := createOrderTestUser(t, db, email)
		address := createOrderTestAddress(t, db, user.ID)
		addOrderTestCartItem(t, db, user.ID, product.ID, 1)
		return svc.Checkout(CheckoutInput{
			UserID:     user.ID,
			AddressID:  address.ID,
			CouponCode: "CAPPED",
			Email:      email,
		})
	}

	if _, err := checkout("cap1@test.local"); err != nil {
		t.Fatalf("first redemption failed: %v", err)
	}
	if _, err := checkout("cap2@test.local"); err != nil {
		t.Fatalf("second redemption failed: %v", err)
	}
	// 全局限额 2 已用尽，第三个用户即便个人额度未用也被拒
	if _, err := checkout("cap3@test.local"); !errors.Is(err, ErrCouponGlobalLimit) {
		t.Fatalf("expected ErrCouponGlobalLimit, got %v", err)
	}

	if got := countRows(t, db, &models.Order{}); got != 2 {
		t.Fatalf("expected two orders, got %d", got)
	}
	if got := countRows(t, db, &models.CouponRedemption{}); got != 2 {
		t.Fatalf("expected two redemptions, got %d", got)
	}
	// 被拒用户的购物车保持原样
	var remaining int64
	if err := db.Model(&models.CartItem{}).Count(&remaining).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if remaining != 1 {
		t.Fatalf("expected rejected user's cart intact, got %d rows", remaining)
	}
}

func TestCheckoutValidationFailures(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createOrderTestUser(t, db, "invalid@test.local")
	address := createOrderTestAddress(t, db, user.ID)

	if _, err := svc.Checkout(CheckoutInput{UserID: user.ID, AddressID: 9999, Email: user.Email}); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
	if _, err := svc.Checkout(CheckoutInput{UserID: user.ID, AddressID: address.ID, Email: user.Email}); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}

	inactive := createOrderTestProduct(t, db, "retired", 500, 5, false)
	addOrderTestCartItem(t, db, user.ID, inactive.ID, 1)
	if _, err := svc.Checkout(CheckoutInput{UserID: user.ID, AddressID: address.ID, Email: user.Email}); !errors.Is(err, ErrProductInactive) {
		t.Fatalf("expected ErrProductInactive, got %v", err)
	}
	if err := db.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
		t.Fatalf("clear cart failed: %v", err)
	}

	soldOut := createOrderTestProduct(t, db, "soldout", 500, 0, true)
	addOrderTestCartItem(t, db, user.ID, soldOut.ID, 1)
	if _, err := svc.Checkout(CheckoutInput{UserID: user.ID, AddressID: address.ID, Email: user.Email}); !errors.Is(err, ErrVariantOutOfStock) {
		t.Fatalf("expected ErrVariantOutOfStock, got %v", err)
	}
}

func TestCancelOrderWithinWindow(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createOrderTestUser(t, db, "cancel@test.local")
	address := createOrderTestAddress(t, db, user.ID)
	product := createOrderTestProduct(t, db, "hat", 300, 5, true)
	addOrderTestCartItem(t, db, user.ID, product.ID, 1)

	order, err := svc.Checkout(CheckoutInput{UserID: user.ID, AddressID: address.ID, Email: user.Email})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	cancelled, err := svc.CancelOrder(order.ID, user.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected CANCELLED, got %s", cancelled.Status)
	}
	if cancelled.PaymentStatus != constants.PaymentStatusCancelled {
		t.Fatalf("expected payment cancelled, got %s", cancelled.PaymentStatus)
	}
	if cancelled.CancelledAt == nil {
		t.Fatalf("expected cancelled_at set")
	}
}

func TestCancelOrderAfterPackingRejected(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createOrderTestUser(t, db, "latecancel@test.local")
	address := createOrderTestAddress(t, db, user.ID)
	product := createOrderTestProduct(t, db, "boots", 900, 5, true)
	addOrderTestCartItem(t, db, user.ID, product.ID, 1)

	order, err := svc.Checkout(CheckoutInput{UserID: user.ID, AddressID: address.ID, Email: user.Email})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).Update("status", constants.OrderStatusPacked).Error; err != nil {
		t.Fatalf("force status failed: %v", err)
	}

	if _, err := svc.CancelOrder(order.ID, user.ID); !errors.Is(err, ErrOrderCancelNotAllowed) {
		t.Fatalf("expected ErrOrderCancelNotAllowed, got %v", err)
	}
	if _, err := svc.CancelOrder(9999, user.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestPartnerUpdateStatusClaimsOrder(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createOrderTestUser(t, db, "claim@test.local")
	address := createOrderTestAddress(t, db, user.ID)
	product := createOrderTestProduct(t, db, "jacket", 1500, 5, true)
	addOrderTestCartItem(t, db, user.ID, product.ID, 1)

	order, err := svc.Checkout(CheckoutInput{UserID: user.ID, AddressID: address.ID, Email: user.Email})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	updated, err := svc.PartnerUpdateStatus(order.ID, 101, "confirmed")
	if err != nil {
		t.Fatalf("partner update failed: %v", err)
	}
	if updated.Status != constants.OrderStatusConfirmed {
		t.Fatalf("expected CONFIRMED, got %s", updated.Status)
	}
	if updated.PartnerID == nil || *updated.PartnerID != 101 {
		t.Fatalf("expected order claimed by partner 101")
	}

	// 已认领给 101，102 不可再操作
	if _, err := svc.PartnerUpdateStatus(order.ID, 102, "PACKED"); !errors.Is(err, ErrOrderPartnerMismatch) {
		t.Fatalf("expected ErrOrderPartnerMismatch, got %v", err)
	}
}

func TestPartnerDeliveredMarksPaid(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createOrderTestUser(t, db, "delivered@test.local")
	address := createOrderTestAddress(t, db, user.ID)
	product := createOrderTestProduct(t, db, "bag", 2200, 5, true)
	addOrderTestCartItem(t, db, user.ID, product.ID, 1)

	order, err := svc.Checkout(CheckoutInput{UserID: user.ID, AddressID: address.ID, Email: user.Email})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	// PLACED 允许直达 DELIVERED
	delivered, err := svc.PartnerUpdateStatus(order.ID, 7, constants.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("partner update failed: %v", err)
	}
	if delivered.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("expected payment paid on delivery, got %s", delivered.PaymentStatus)
	}
	if delivered.DeliveredAt == nil {
		t.Fatalf("expected delivered_at set")
	}

	if _, err := svc.PartnerUpdateStatus(order.ID, 7, constants.OrderStatusPacked); !errors.Is(err, ErrOrderTransitionInvalid) {
		t.Fatalf("expected ErrOrderTransitionInvalid, got %v", err)
	}
	if _, err := svc.PartnerUpdateStatus(order.ID, 7, "TELEPORTED"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}
}

func TestPartnerOrderVisibility(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	user := createOrderTestUser(t, db, "visibility@test.local")
	address := createOrderTestAddress(t, db, user.ID)
	product := createOrderTestProduct(t, db, "shirt", 700, 10, true)

	addOrderTestCartItem(t, db, user.ID, product.ID, 1)
	claimed, err := svc.Checkout(CheckoutInput{UserID: user.ID, AddressID: address.ID, Email: user.Email})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	addOrderTestCartItem(t, db, user.ID, product.ID, 1)
	unclaimed, err := svc.Checkout(CheckoutInput{UserID: user.ID, AddressID: address.ID, Email: user.Email})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if _, err := svc.PartnerUpdateStatus(claimed.ID, 5, constants.OrderStatusConfirmed); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	// 配送员 6 只能看到未认领的订单
	orders, total, err := svc.ListOrdersForPartner(6, repository.OrderListFilter{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list for partner failed: %v", err)
	}
	if total != 1 || len(orders) != 1 || orders[0].ID != unclaimed.ID {
		t.Fatalf("expected only unclaimed order visible, got total=%d", total)
	}

	if _, err := svc.GetOrderForPartner(claimed.ID, 6); !errors.Is(err, ErrOrderPartnerMismatch) {
		t.Fatalf("expected ErrOrderPartnerMismatch, got %v", err)
	}
	if _, err := svc.GetOrderForPartner(claimed.ID, 5); err != nil {
		t.Fatalf("claimed partner should see own order: %v", err)
	}
}

func TestNextOrderNo(t *testing.T) {
	if got := nextOrderNo(0); got != "OD20251" {
		t.Fatalf("expected floor OD20251, got %s", got)
	}
	if got := nextOrderNo(20251); got != "OD20252" {
		t.Fatalf("expected OD20252, got %s", got)
	}
	if got := nextOrderNo(20299); got != "OD20300" {
		t.Fatalf("expected OD20300, got %s", got)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if isUniqueViolation(nil) {
		t.Fatalf("nil should not be a unique violation")
	}
	if !isUniqueViolation(gorm.ErrDuplicatedKey) {
		t.Fatalf("gorm duplicated key should match")
	}
	if !isUniqueViolation(errors.New("UNIQUE constraint failed: orders.order_no")) {
		t.Fatalf("sqlite message should match")
	}
	if !isUniqueViolation(errors.New(`duplicate key value violates unique constraint "idx_orders_order_no"`)) {
		t.Fatalf("postgres message should match")
	}
	if isUniqueViolation(errors.New("connection refused")) {
		t.Fatalf("unrelated error should not match")
	}
}
