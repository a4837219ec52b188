package service

import (
	"testing"

	"github.com/velora-next/internal/constants"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{constants.OrderStatusPlaced, constants.OrderStatusConfirmed, true},
		{constants.OrderStatusPlaced, constants.OrderStatusDelivered, true},
		{constants.OrderStatusPlaced, constants.OrderStatusCancelled, true},
		{constants.OrderStatusConfirmed, constants.OrderStatusOutForDelivery, true},
		{constants.OrderStatusPacked, constants.OrderStatusDelivered, true},
		{constants.OrderStatusOutForDelivery, constants.OrderStatusCancelled, true},
		{constants.OrderStatusDelivered, constants.OrderStatusReturnRequested, true},
		{constants.OrderStatusReturnRequested, constants.OrderStatusReturned, true},
		// 不允许回退
		{constants.OrderStatusConfirmed, constants.OrderStatusPlaced, false},
		{constants.OrderStatusDelivered, constants.OrderStatusPacked, false},
		{constants.OrderStatusDelivered, constants.OrderStatusCancelled, false},
		// 终态不再流转
		{constants.OrderStatusCancelled, constants.OrderStatusConfirmed, false},
		{constants.OrderStatusReturned, constants.OrderStatusDelivered, false},
		{constants.OrderStatusReturnRequested, constants.OrderStatusCancelled, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.allowed {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestCanTransitionNormalizesInput(t *testing.T) {
	if !CanTransition(" placed ", "confirmed") {
		t.Fatalf("expected lowercase input to be normalized")
	}
	if CanTransition("UNKNOWN", constants.OrderStatusConfirmed) {
		t.Fatalf("unknown source status should not transition")
	}
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, status := range []string{
		constants.OrderStatusPlaced,
		constants.OrderStatusConfirmed,
		constants.OrderStatusPacked,
		constants.OrderStatusOutForDelivery,
		constants.OrderStatusDelivered,
		constants.OrderStatusCancelled,
		constants.OrderStatusReturnRequested,
		constants.OrderStatusReturned,
	} {
		if !IsValidOrderStatus(status) {
			t.Errorf("expected %s to be valid", status)
		}
	}
	if IsValidOrderStatus("SHIPPED") {
		t.Fatalf("SHIPPED is not a declared status")
	}
	if !IsValidOrderStatus("delivered") {
		t.Fatalf("expected lowercase input to be normalized")
	}
}

func TestIsCancellableByCustomer(t *testing.T) {
	if !IsCancellableByCustomer(constants.OrderStatusPlaced) {
		t.Fatalf("PLACED should be cancellable")
	}
	if !IsCancellableByCustomer("confirmed") {
		t.Fatalf("CONFIRMED should be cancellable")
	}
	for _, status := range []string{
		constants.OrderStatusPacked,
		constants.OrderStatusOutForDelivery,
		constants.OrderStatusDelivered,
		constants.OrderStatusCancelled,
	} {
		if IsCancellableByCustomer(status) {
			t.Errorf("%s should not be cancellable", status)
		}
	}
}

func TestPaymentStatusForTransition(t *testing.T) {
	if got := paymentStatusForTransition(constants.OrderStatusDelivered); got != constants.PaymentStatusPaid {
		t.Fatalf("expected paid on delivery, got %q", got)
	}
	if got := paymentStatusForTransition(constants.OrderStatusCancelled); got != constants.PaymentStatusCancelled {
		t.Fatalf("expected cancelled, got %q", got)
	}
	if got := paymentStatusForTransition(constants.OrderStatusPacked); got != "" {
		t.Fatalf("expected no payment change, got %q", got)
	}
}
