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

func setupWishlistServiceTest(t *testing.T) (*WishlistService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:wishlist_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductImage{},
		&models.WishlistItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewWishlistService(repository.NewWishlistRepository(db), repository.NewProductRepository(db))
	return svc, db
}

func TestWishlistAddIsIdempotent(t *testing.T) {
	svc, db := setupWishlistServiceTest(t)
	product := createCartTestProduct(t, db, "scarf", true)

	item, created, err := svc.AddItem(1, product.ID)
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if !created || item == nil {
		t.Fatalf("expected new wishlist item, created=%v item=%v", created, item)
	}

	again, created, err := svc.AddItem(1, product.ID)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if created {
		t.Fatalf("expected repeated add to reuse existing item")
	}
	if again.ID != item.ID {
		t.Fatalf("expected same item id %d, got %d", item.ID, again.ID)
	}

	items, err := svc.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one wishlist line, got %d", len(items))
	}
}

func TestWishlistAddUnknownProduct(t *testing.T) {
	svc, _ := setupWishlistServiceTest(t)

	if _, _, err := svc.AddItem(1, 9999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestWishlistListNewestFirst(t *testing.T) {
	svc, db := setupWishlistServiceTest(t)
	first := createCartTestProduct(t, db, "hat", true)
	second := createCartTestProduct(t, db, "gloves", true)

	if err := db.Create(&models.WishlistItem{
		UserID:    1,
		ProductID: first.ID,
		CreatedAt: time.Now().Add(-time.Hour),
	}).Error; err != nil {
		t.Fatalf("seed older item failed: %v", err)
	}
	if _, _, err := svc.AddItem(1, second.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	items, err := svc.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected two lines, got %d", len(items))
	}
	if items[0].ProductID != second.ID {
		t.Fatalf("expected newest item first, got product %d", items[0].ProductID)
	}
	if items[0].Product == nil {
		t.Fatalf("expected product preloaded")
	}
}

func TestWishlistRemoveScopedToOwner(t *testing.T) {
	svc, db := setupWishlistServiceTest(t)
	product := createCartTestProduct(t, db, "boots", true)

	item, _, err := svc.AddItem(1, product.ID)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// 他人的收藏不可见
	if err := svc.RemoveItem(item.ID, 2); !errors.Is(err, ErrWishlistItemNotFound) {
		t.Fatalf("expected ErrWishlistItemNotFound, got %v", err)
	}
	if err := svc.RemoveItem(item.ID, 1); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := svc.RemoveItem(item.ID, 1); !errors.Is(err, ErrWishlistItemNotFound) {
		t.Fatalf("expected ErrWishlistItemNotFound after remove, got %v", err)
	}

	// 硬删除后可以重新收藏同一商品
	if _, created, err := svc.AddItem(1, product.ID); err != nil || !created {
		t.Fatalf("expected re-add after removal, created=%v err=%v", created, err)
	}
}
