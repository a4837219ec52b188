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

func setupAddressServiceTest(t *testing.T) *AddressService {
	t.Helper()
	dsn := fmt.Sprintf("file:address_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Address{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewAddressService(repository.NewAddressRepository(db))
}

func addressTestInput() AddressInput {
	return AddressInput{
		FullName:   "Jamie Chen",
		Phone:      "+8613800000099",
		Line1:      "88 Harbor Road",
		City:       "Shanghai",
		State:      "SH",
		PostalCode: "200000",
	}
}

func TestCreateAddressValidation(t *testing.T) {
	svc := setupAddressServiceTest(t)

	input := addressTestInput()
	input.City = "   "
	if _, err := svc.Create(1, input); !errors.Is(err, ErrAddressFieldRequired) {
		t.Fatalf("expected ErrAddressFieldRequired, got %v", err)
	}

	created, err := svc.Create(1, addressTestInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == 0 || created.UserID != 1 {
		t.Fatalf("unexpected address: %+v", created)
	}
}

func TestDefaultAddressIsExclusive(t *testing.T) {
	svc := setupAddressServiceTest(t)

	first := addressTestInput()
	first.IsDefault = true
	a, err := svc.Create(1, first)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	second := addressTestInput()
	second.Line1 = "2 Garden Lane"
	second.IsDefault = true
	b, err := svc.Create(1, second)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	list, err := svc.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	defaults := 0
	for _, addr := range list {
		if addr.IsDefault {
			defaults++
			if addr.ID != b.ID {
				t.Fatalf("expected newest default %d, got %d", b.ID, addr.ID)
			}
		}
	}
	if defaults != 1 {
		t.Fatalf("expected exactly one default address, got %d", defaults)
	}
	if _, err := svc.Get(a.ID, 1); err != nil {
		t.Fatalf("get failed: %v", err)
	}
}

func TestAddressScopedToOwner(t *testing.T) {
	svc := setupAddressServiceTest(t)
	created, err := svc.Create(1, addressTestInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Get(created.ID, 2); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound for other user, got %v", err)
	}
	if _, err := svc.Update(created.ID, 2, addressTestInput()); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound on update, got %v", err)
	}
	if err := svc.Delete(created.ID, 2); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound on delete, got %v", err)
	}

	updated := addressTestInput()
	updated.Line1 = "  5 Cedar Street  "
	address, err := svc.Update(created.ID, 1, updated)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if address.Line1 != "5 Cedar Street" {
		t.Fatalf("expected trimmed line1, got %q", address.Line1)
	}

	if err := svc.Delete(created.ID, 1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(created.ID, 1); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound after delete, got %v", err)
	}
}
