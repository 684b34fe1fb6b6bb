package directory

import (
	"context"
	"testing"

	"github.com/voltgrid/market-platform/internal/core/domain"
)

func TestSeedDirectory_OnePerRole(t *testing.T) {
	d := NewSeedDirectory()

	for _, role := range []domain.Role{domain.RoleProducer, domain.RoleConsumer, domain.RoleOperator} {
		u, err := d.FindByRole(context.Background(), role)
		if err != nil {
			t.Fatalf("%s: %v", role, err)
		}
		if u.Role != role {
			t.Fatalf("FindByRole(%s) returned role %s", role, u.Role)
		}
		if !u.Verified {
			t.Fatalf("seed identities ship verified")
		}
		if len(u.Metadata) == 0 {
			t.Fatalf("%s seed identity missing role metadata", role)
		}
	}
}

func TestSeedDirectory_FindByEmail(t *testing.T) {
	d := NewSeedDirectory()

	u, err := d.FindByEmail(context.Background(), "priya@gridwest.io")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if u.Role != domain.RoleOperator {
		t.Fatalf("expected operator, got %s", u.Role)
	}

	if _, err := d.FindByEmail(context.Background(), "ghost@example.com"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSeedDirectory_CreateAcceptsDuplicates(t *testing.T) {
	d := NewSeedDirectory()

	u := &domain.User{ID: "x1", Email: "elena@solarpeak.energy", Role: domain.RoleProducer}
	if _, err := d.Create(context.Background(), u); err != nil {
		t.Fatalf("duplicate email must be accepted: %v", err)
	}

	users, err := d.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 4 {
		t.Fatalf("expected 4 users after create, got %d", len(users))
	}
}

func TestSeedDirectory_ClonesOnRead(t *testing.T) {
	d := NewSeedDirectory()

	u, _ := d.FindByRole(context.Background(), domain.RoleProducer)
	u.Name = "mutated"
	u.Metadata["capacity_mw"] = 0.0

	again, _ := d.FindByRole(context.Background(), domain.RoleProducer)
	if again.Name == "mutated" || again.Metadata["capacity_mw"] == 0.0 {
		t.Fatalf("directory leaked a mutable reference")
	}
}
