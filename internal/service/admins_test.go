package service

import (
	"context"
	"errors"
	"testing"

	"backoffice/internal/domain"
	"backoffice/internal/repository"
	"backoffice/internal/repository/memstore"
)

func TestAuthenticateAdmin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memstore.New(), 0)
	if err := svc.EnsureDefaultAdmin(ctx, "root", "changeme"); err != nil {
		t.Fatalf("ensure default admin: %v", err)
	}
	// A second call must not reset the password.
	if err := svc.EnsureDefaultAdmin(ctx, "root", "other"); err != nil {
		t.Fatalf("ensure default admin again: %v", err)
	}

	admin, err := svc.AuthenticateAdmin(ctx, "root", "changeme")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if admin.RoleName != repository.DefaultRoleName {
		t.Fatalf("unexpected role %q", admin.RoleName)
	}

	for _, tc := range []struct{ user, pass string }{{"root", "other"}, {"ghost", "changeme"}} {
		if _, err := svc.AuthenticateAdmin(ctx, tc.user, tc.pass); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("%s/%s: expected invalid credentials, got %v", tc.user, tc.pass, err)
		}
	}
}

func TestCreateAdminRequiresRole(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memstore.New(), 0)
	if _, err := svc.CreateAdmin(ctx, "ops", "pw", 42); !errors.Is(err, repository.ErrInvalidReference) {
		t.Fatalf("expected invalid reference, got %v", err)
	}

	role, err := svc.CreateRole(ctx, domain.Role{Name: "analyst", Permissions: []string{"reports.read", " reports.read ", ""}})
	if err != nil {
		t.Fatal(err)
	}
	if len(role.Permissions) != 1 {
		t.Fatalf("permissions not normalized: %v", role.Permissions)
	}
	admin, err := svc.CreateAdmin(ctx, "ops", "pw", role.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AuthenticateAdmin(ctx, "OPS", "pw"); err != nil {
		t.Fatalf("username lookup should be case-insensitive: %v", err)
	}
	if err := svc.DeleteRole(ctx, role.ID); !errors.Is(err, repository.ErrInvalidReference) {
		t.Fatalf("role in use should not delete, got %v", err)
	}
	if err := svc.DeleteAdmin(ctx, admin.AdminID); err != nil {
		t.Fatal(err)
	}
}

func TestClientReferences(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memstore.New(), 0)

	if _, err := svc.CreateClient(ctx, domain.Client{Name: "acme"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	wl, _ := svc.CreateWhitelabel(ctx, domain.Whitelabel{Name: "Lotus"})
	pt, _ := svc.CreateProofType(ctx, domain.ProofType{Name: "Group Betting"})
	sport, _ := svc.CreateNamed(ctx, repository.SportsTable, "Cricket")
	market, _ := svc.CreateNamed(ctx, repository.MarketsTable, "Fancy")

	client, err := svc.CreateClient(ctx, domain.Client{
		Name: " acme ", WhitelabelID: wl.ID, ProofTypeID: pt.ID, SportID: sport.ID, MarketID: market.ID,
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	if client.Name != "acme" {
		t.Fatalf("name not trimmed: %q", client.Name)
	}
	if _, err := svc.CreateNamed(ctx, repository.SportsTable, "cricket"); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := svc.DeleteWhitelabel(ctx, wl.ID); !errors.Is(err, repository.ErrInvalidReference) {
		t.Fatalf("whitelabel in use should not delete, got %v", err)
	}
	if _, err := svc.CreateNamed(ctx, repository.MarketsTable, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
