package ports

import (
	"context"

	"github.com/voltgrid/market-platform/internal/core/domain"
)

// UserDirectory is the identity provider boundary. Lookups return
// domain.ErrUserNotFound when no identity matches.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByRole(ctx context.Context, role domain.Role) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
