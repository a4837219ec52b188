package service

import (
	"errors"
	"testing"

	"github.com/velora-next/internal/models"
)

func snapshotVariant(id uint, colorID, sizeID *uint, sku string) models.ProductVariant {
	return models.ProductVariant{
		ID:        id,
		ColorID:   colorID,
		SizeID:    sizeID,
		SKU:       sku,
		BasePrice: models.NewMoneyFromInt(100),
		Stock:     10,
		IsActive:  true,
	}
}

func snapshotUint(v uint) *uint {
	return &v
}

func TestMatchVariantPreferenceOrder(t *testing.T) {
	variants := []models.ProductVariant{
		snapshotVariant(1, snapshotUint(1), snapshotUint(1), "A-RED-S"),
		snapshotVariant(2, snapshotUint(1), snapshotUint(2), "A-RED-M"),
		snapshotVariant(3, snapshotUint(2), snapshotUint(2), "A-BLUE-M"),
	}

	// 颜色+尺码精确匹配
	if got := matchVariant(variants, snapshotUint(1), snapshotUint(2)); got == nil || got.SKU != "A-RED-M" {
		t.Fatalf("expected exact match A-RED-M, got %+v", got)
	}
	// 尺码不存在时降级为仅颜色匹配
	if got := matchVariant(variants, snapshotUint(2), snapshotUint(9)); got == nil || got.SKU != "A-BLUE-M" {
		t.Fatalf("expected color fallback A-BLUE-M, got %+v", got)
	}
	// 仅尺码
	if got := matchVariant(variants, nil, snapshotUint(1)); got == nil || got.SKU != "A-RED-S" {
		t.Fatalf("expected size match A-RED-S, got %+v", got)
	}
	// 无偏好取首个规格
	if got := matchVariant(variants, nil, nil); got == nil || got.SKU != "A-RED-S" {
		t.Fatalf("expected first variant, got %+v", got)
	}
	// 完全不匹配
	if got := matchVariant(variants, snapshotUint(9), nil); got != nil {
		t.Fatalf("expected nil for unknown color, got %+v", got)
	}
	if got := matchVariant(nil, nil, nil); got != nil {
		t.Fatalf("expected nil for empty variants, got %+v", got)
	}
}

func TestPickLineImage(t *testing.T) {
	images := []models.ProductImage{
		{URL: "generic.jpg", SortOrder: 20},
		{URL: "first.jpg", SortOrder: 10},
		{URL: "red.jpg", ColorID: snapshotUint(1), SortOrder: 30},
	}

	if got := pickLineImage(images, snapshotUint(1)); got != "red.jpg" {
		t.Fatalf("expected color-tagged image, got %s", got)
	}
	// 颜色未打标时取排序最前的图
	if got := pickLineImage(images, snapshotUint(2)); got != "first.jpg" {
		t.Fatalf("expected lowest sort order image, got %s", got)
	}
	if got := pickLineImage(images, nil); got != "first.jpg" {
		t.Fatalf("expected lowest sort order image, got %s", got)
	}
	if got := pickLineImage(nil, nil); got != "" {
		t.Fatalf("expected empty for no images, got %s", got)
	}
}

func TestBuildOrderLinesUsesSalePrice(t *testing.T) {
	product := &models.Product{
		ID:       1,
		Name:     "Dress",
		Slug:     "dress",
		IsActive: true,
		Variants: []models.ProductVariant{
			{
				ID:        11,
				SKU:       "DRESS-1",
				BasePrice: models.NewMoneyFromInt(2499),
				SalePrice: models.NewMoneyFromInt(1999),
				Stock:     5,
				IsActive:  true,
			},
		},
	}
	cart := []models.CartItem{{UserID: 1, ProductID: 1, Quantity: 2, Product: product}}

	lines, subtotal, err := buildOrderLines(cart)
	if err != nil {
		t.Fatalf("build lines failed: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	if lines[0].UnitPrice.String() != "1999.00" {
		t.Fatalf("expected sale price 1999.00, got %s", lines[0].UnitPrice.String())
	}
	if lines[0].TotalPrice.String() != "3998.00" {
		t.Fatalf("expected line total 3998.00, got %s", lines[0].TotalPrice.String())
	}
	if subtotal.String() != "3998.00" {
		t.Fatalf("expected subtotal 3998.00, got %s", subtotal.String())
	}
}

func TestBuildOrderLinesFailures(t *testing.T) {
	inactive := &models.Product{ID: 1, IsActive: false}
	if _, _, err := buildOrderLines([]models.CartItem{{ProductID: 1, Quantity: 1, Product: inactive}}); !errors.Is(err, ErrProductInactive) {
		t.Fatalf("expected ErrProductInactive, got %v", err)
	}
	if _, _, err := buildOrderLines([]models.CartItem{{ProductID: 1, Quantity: 1, Product: nil}}); !errors.Is(err, ErrProductInactive) {
		t.Fatalf("expected ErrProductInactive for missing product, got %v", err)
	}

	noVariant := &models.Product{ID: 2, IsActive: true}
	if _, _, err := buildOrderLines([]models.CartItem{{ProductID: 2, Quantity: 1, Product: noVariant}}); !errors.Is(err, ErrVariantNotFound) {
		t.Fatalf("expected ErrVariantNotFound, got %v", err)
	}

	soldOut := &models.Product{
		ID:       3,
		IsActive: true,
		Variants: []models.ProductVariant{
			{ID: 31, SKU: "GONE", BasePrice: models.NewMoneyFromInt(100), Stock: 0, IsActive: true},
		},
	}
	if _, _, err := buildOrderLines([]models.CartItem{{ProductID: 3, Quantity: 1, Product: soldOut}}); !errors.Is(err, ErrVariantOutOfStock) {
		t.Fatalf("expected ErrVariantOutOfStock, got %v", err)
	}
}
