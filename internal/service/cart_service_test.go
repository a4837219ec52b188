package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/velora-next/internal/models"
	"github.com/velora-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductImage{},
		&models.CartItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	return svc, db
}

func createCartTestProduct(t *testing.T, db *gorm.DB, slug string, active bool) *models.Product {
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
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestAddItemAccumulatesSameLine(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "tee", true)
	colorID := uint(1)
	sizeID := uint(2)

	input := AddItemInput{UserID: 1, ProductID: product.ID, ColorID: &colorID, SizeID: &sizeID, Quantity: 2}
	if err := svc.AddItem(input); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	input.Quantity = 3
	if err := svc.AddItem(input); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	items, err := svc.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}

	// 不同尺码是独立的行
	otherSize := uint(3)
	if err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, ColorID: &colorID, SizeID: &otherSize, Quantity: 1}); err != nil {
		t.Fatalf("add other size failed: %v", err)
	}
	items, err = svc.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected two lines, got %d", len(items))
	}
}

func TestAddItemValidation(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	inactive := createCartTestProduct(t, db, "retired", false)

	if err := svc.AddItem(AddItemInput{UserID: 1, ProductID: inactive.ID, Quantity: 0}); !errors.Is(err, ErrCartQuantityInvalid) {
		t.Fatalf("expected ErrCartQuantityInvalid, got %v", err)
	}
	if err := svc.AddItem(AddItemInput{UserID: 1, ProductID: 9999, Quantity: 1}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if err := svc.AddItem(AddItemInput{UserID: 1, ProductID: inactive.ID, Quantity: 1}); !errors.Is(err, ErrProductInactive) {
		t.Fatalf("expected ErrProductInactive, got %v", err)
	}
}

func TestUpdateQuantityScopedToOwner(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "jeans", true)
	if err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	items, err := svc.List(1)
	if err != nil || len(items) != 1 {
		t.Fatalf("list failed: %v (%d items)", err, len(items))
	}
	itemID := items[0].ID

	if err := svc.UpdateQuantity(itemID, 1, 4); err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	items, _ = svc.List(1)
	if items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", items[0].Quantity)
	}

	if err := svc.UpdateQuantity(itemID, 1, 0); !errors.Is(err, ErrCartQuantityInvalid) {
		t.Fatalf("expected ErrCartQuantityInvalid, got %v", err)
	}
	// 他人的行不可见
	if err := svc.UpdateQuantity(itemID, 2, 3); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
	if err := svc.RemoveItem(itemID, 2); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestRemoveAndClear(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "socks", true)
	other := createCartTestProduct(t, db, "belt", true)
	if err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.AddItem(AddItemInput{UserID: 1, ProductID: other.ID, Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.AddItem(AddItemInput{UserID: 2, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	items, _ := svc.List(1)
	if err := svc.RemoveItem(items[0].ID, 1); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	items, _ = svc.List(1)
	if len(items) != 1 {
		t.Fatalf("expected one line after remove, got %d", len(items))
	}

	if err := svc.Clear(1); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	items, _ = svc.List(1)
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(items))
	}
	// 其他用户的购物车不受影响
	otherItems, _ := svc.List(2)
	if len(otherItems) != 1 {
		t.Fatalf("expected other user's cart intact, got %d lines", len(otherItems))
	}
}
