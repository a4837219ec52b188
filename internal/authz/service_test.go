package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceUserWithRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("courier", "/partner/orders/:id", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if err := svc.SetUserRoles(1, []string{"courier"}); err != nil {
		t.Fatalf("set user roles failed: %v", err)
	}

	allow, err := svc.EnforceUser(1, "/api/v1/partner/orders/42", "get")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceUser(1, "/api/v1/partner/orders/42", "POST")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}
}

func TestSetUserRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("courier", "/partner/orders", "GET"); err != nil {
		t.Fatalf("grant courier policy failed: %v", err)
	}
	if err := svc.GrantRolePolicy("backoffice", "/admin/orders", "GET"); err != nil {
		t.Fatalf("grant backoffice policy failed: %v", err)
	}

	if err := svc.SetUserRoles(2, []string{"courier"}); err != nil {
		t.Fatalf("set first role failed: %v", err)
	}
	roles, err := svc.GetUserRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:courier" {
		t.Fatalf("roles want [role:courier], got=%v", roles)
	}

	if err := svc.SetUserRoles(2, []string{"backoffice"}); err != nil {
		t.Fatalf("set second role failed: %v", err)
	}
	roles, err = svc.GetUserRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:backoffice" {
		t.Fatalf("roles want [role:backoffice], got=%v", roles)
	}

	allow, err := svc.EnforceUser(2, "/partner/orders", "GET")
	if err != nil {
		t.Fatalf("enforce old role failed: %v", err)
	}
	if allow {
		t.Fatalf("expected old role permission removed")
	}

	allow, err = svc.EnforceUser(2, "/admin/orders", "GET")
	if err != nil {
		t.Fatalf("enforce new role failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected new role permission granted")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "admin/orders", want: "/admin/orders"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	wantRoles := map[string]bool{
		"role:customer": true,
		"role:partner":  true,
		"role:admin":    true,
	}
	for _, role := range roles {
		delete(wantRoles, role)
	}
	if len(wantRoles) != 0 {
		t.Fatalf("builtin roles missing: %v", wantRoles)
	}

	allow, err := svc.EnforceRole("partner", "/partner/orders/7/status", "PATCH")
	if err != nil {
		t.Fatalf("enforce partner patch failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected partner status patch allowed")
	}

	allow, err = svc.EnforceRole("partner", "/admin/coupons", "GET")
	if err != nil {
		t.Fatalf("enforce partner admin access failed: %v", err)
	}
	if allow {
		t.Fatalf("expected partner denied admin surface")
	}

	allow, err = svc.EnforceRole("customer", "/orders/9/cancel", "POST")
	if err != nil {
		t.Fatalf("enforce customer cancel failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected customer cancel allowed")
	}

	allow, err = svc.EnforceRole("admin", "/admin/shipping-policy", "PUT")
	if err != nil {
		t.Fatalf("enforce admin shipping policy failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected admin shipping policy update allowed")
	}
}
