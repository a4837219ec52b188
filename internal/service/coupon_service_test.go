package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/velora-next/internal/constants"
	"github.com/velora-next/internal/models"
	"github.com/velora-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCouponServiceTest(t *testing.T) (*CouponService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:coupon_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}, &models.CouponRedemption{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewCouponService(repository.NewCouponRepository(db), repository.NewCouponRedemptionRepository(db))
	return svc, db
}

func createCouponTest(t *testing.T, db *gorm.DB, coupon *models.Coupon) *models.Coupon {
	t.Helper()
	if coupon.StartsAt == nil {
		startsAt := time.Now().Add(-time.Hour)
		coupon.StartsAt = &startsAt
	}
	if coupon.EndsAt == nil {
		endsAt := time.Now().Add(48 * time.Hour)
		coupon.EndsAt = &endsAt
	}
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	return coupon
}

func couponTestIdentity() CouponIdentity {
	return CouponIdentity{UserID: 1, Email: "shopper@test.local"}
}

func TestNormalizeCouponCode(t *testing.T) {
	if got := NormalizeCouponCode("  save10 "); got != "SAVE10" {
		t.Fatalf("expected SAVE10, got %q", got)
	}
	if got := NormalizeCouponCode(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestPreviewRequiresCode(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	if _, err := svc.Preview("   ", couponTestIdentity(), models.NewMoneyFromInt(100)); !errors.Is(err, ErrCouponCodeRequired) {
		t.Fatalf("expected ErrCouponCodeRequired, got %v", err)
	}
}

func TestPreviewCouponNotFound(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	if _, err := svc.Preview("NOPE", couponTestIdentity(), models.NewMoneyFromInt(100)); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound, got %v", err)
	}
}

func TestPreviewCouponStateChecks(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createCouponTest(t, db, &models.Coupon{
		Code:  "OFFLINE",
		Type:  constants.CouponTypeFixed,
		Value: models.NewMoneyFromInt(50),
	})
	if _, err := svc.Preview("OFFLINE", couponTestIdentity(), models.NewMoneyFromInt(100)); !errors.Is(err, ErrCouponInactive) {
		t.Fatalf("expected ErrCouponInactive, got %v", err)
	}

	startsAt := time.Now().Add(24 * time.Hour)
	createCouponTest(t, db, &models.Coupon{
		Code:     "SOON",
		Type:     constants.CouponTypeFixed,
		Value:    models.NewMoneyFromInt(50),
		StartsAt: &startsAt,
		IsActive: true,
	})
	if _, err := svc.Preview("SOON", couponTestIdentity(), models.NewMoneyFromInt(100)); !errors.Is(err, ErrCouponNotStarted) {
		t.Fatalf("expected ErrCouponNotStarted, got %v", err)
	}

	endsAt := time.Now().Add(-time.Hour)
	createCouponTest(t, db, &models.Coupon{
		Code:     "GONE",
		Type:     constants.CouponTypeFixed,
		Value:    models.NewMoneyFromInt(50),
		EndsAt:   &endsAt,
		IsActive: true,
	})
	if _, err := svc.Preview("GONE", couponTestIdentity(), models.NewMoneyFromInt(100)); !errors.Is(err, ErrCouponExpired) {
		t.Fatalf("expected ErrCouponExpired, got %v", err)
	}
}

func TestPreviewAmountChecks(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createCouponTest(t, db, &models.Coupon{
		Code:           "MIN500",
		Type:           constants.CouponTypeFixed,
		Value:          models.NewMoneyFromInt(50),
		MinOrderAmount: models.NewMoneyFromInt(500),
		IsActive:       true,
	})

	if _, err := svc.Preview("MIN500", couponTestIdentity(), models.NewMoneyFromInt(0)); !errors.Is(err, ErrCouponOrderAmount) {
		t.Fatalf("expected ErrCouponOrderAmount, got %v", err)
	}
	if _, err := svc.Preview("MIN500", couponTestIdentity(), models.NewMoneyFromInt(499)); !errors.Is(err, ErrCouponMinAmount) {
		t.Fatalf("expected ErrCouponMinAmount, got %v", err)
	}
	quote, err := svc.Preview("MIN500", couponTestIdentity(), models.NewMoneyFromInt(500))
	if err != nil {
		t.Fatalf("preview failed at exact minimum: %v", err)
	}
	if quote.Discount.String() != "50.00" {
		t.Fatalf("expected discount 50.00, got %s", quote.Discount.String())
	}
}

func TestPreviewGlobalLimit(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	coupon := createCouponTest(t, db, &models.Coupon{
		Code:        "ONESHOT",
		Type:        constants.CouponTypeFixed,
		Value:       models.NewMoneyFromInt(20),
		GlobalLimit: 1,
		IsActive:    true,
	})
	if err := db.Create(&models.CouponRedemption{
		CouponID:       coupon.ID,
		UserID:         42,
		OrderID:        1,
		DiscountAmount: models.NewMoneyFromInt(20),
	}).Error; err != nil {
		t.Fatalf("create redemption failed: %v", err)
	}

	if _, err := svc.Preview("ONESHOT", couponTestIdentity(), models.NewMoneyFromInt(100)); !errors.Is(err, ErrCouponGlobalLimit) {
		t.Fatalf("expected ErrCouponGlobalLimit, got %v", err)
	}
}

func TestPreviewRequiresIdentity(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createCouponTest(t, db, &models.Coupon{
		Code:     "WHO",
		Type:     constants.CouponTypeFixed,
		Value:    models.NewMoneyFromInt(20),
		IsActive: true,
	})
	if _, err := svc.Preview("WHO", CouponIdentity{}, models.NewMoneyFromInt(100)); !errors.Is(err, ErrCouponIdentityRequired) {
		t.Fatalf("expected ErrCouponIdentityRequired, got %v", err)
	}
}

func TestPreviewPerUserLimitMatchesAcrossIdentityFields(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	coupon := createCouponTest(t, db, &models.Coupon{
		Code:         "ONCE",
		Type:         constants.CouponTypeFixed,
		Value:        models.NewMoneyFromInt(20),
		PerUserLimit: 1,
		IsActive:     true,
	})
	// 历史兑换只留了邮箱
	if err := db.Create(&models.CouponRedemption{
		CouponID:       coupon.ID,
		Email:          "shopper@test.local",
		OrderID:        1,
		DiscountAmount: models.NewMoneyFromInt(20),
	}).Error; err != nil {
		t.Fatalf("create redemption failed: %v", err)
	}

	// 换了账号但邮箱相同，仍然命中限额
	identity := CouponIdentity{UserID: 99, Email: "Shopper@Test.Local"}
	if _, err := svc.Preview("ONCE", identity, models.NewMoneyFromInt(100)); !errors.Is(err, ErrCouponPerUserLimit) {
		t.Fatalf("expected ErrCouponPerUserLimit, got %v", err)
	}

	// 无关身份可以继续用
	other := CouponIdentity{UserID: 7, Email: "other@test.local"}
	if _, err := svc.Preview("ONCE", other, models.NewMoneyFromInt(100)); err != nil {
		t.Fatalf("expected unrelated identity to pass, got %v", err)
	}
}

func TestCalculateDiscount(t *testing.T) {
	fixed := &models.Coupon{Type: constants.CouponTypeFixed, Value: models.NewMoneyFromInt(80)}
	got, err := calculateDiscount(fixed, models.NewMoneyFromInt(200))
	if err != nil {
		t.Fatalf("fixed discount failed: %v", err)
	}
	if got.String() != "80.00" {
		t.Fatalf("expected 80.00, got %s", got.String())
	}

	// 固定面额超过订单金额时封顶
	got, err = calculateDiscount(fixed, models.NewMoneyFromInt(50))
	if err != nil {
		t.Fatalf("capped fixed discount failed: %v", err)
	}
	if got.String() != "50.00" {
		t.Fatalf("expected 50.00, got %s", got.String())
	}

	percent := &models.Coupon{
		Type:        constants.CouponTypePercent,
		Value:       models.NewMoneyFromInt(10),
		MaxDiscount: models.NewMoneyFromInt(30),
	}
	got, err = calculateDiscount(percent, models.NewMoneyFromInt(500))
	if err != nil {
		t.Fatalf("percent discount failed: %v", err)
	}
	if got.String() != "30.00" {
		t.Fatalf("expected max discount 30.00, got %s", got.String())
	}

	got, err = calculateDiscount(percent, models.NewMoneyFromInt(200))
	if err != nil {
		t.Fatalf("percent discount failed: %v", err)
	}
	if got.String() != "20.00" {
		t.Fatalf("expected 20.00, got %s", got.String())
	}

	over := &models.Coupon{Type: constants.CouponTypePercent, Value: models.NewMoneyFromInt(150)}
	if _, err := calculateDiscount(over, models.NewMoneyFromInt(100)); !errors.Is(err, ErrCouponValueInvalid) {
		t.Fatalf("expected ErrCouponValueInvalid, got %v", err)
	}

	unknown := &models.Coupon{Type: "bogo", Value: models.NewMoneyFromInt(1)}
	if _, err := calculateDiscount(unknown, models.NewMoneyFromInt(100)); !errors.Is(err, ErrCouponTypeInvalid) {
		t.Fatalf("expected ErrCouponTypeInvalid, got %v", err)
	}
}
