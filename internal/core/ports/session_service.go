package ports

import (
	"context"

	"github.com/voltgrid/market-platform/internal/core/domain"
)

// SignUpInput carries the fields a new participant supplies. Role defaults to
// consumer and tier to Basic when absent.
type SignUpInput struct {
	Name     string
	Email    string
	Company  string
	Role     domain.Role
	Tier     domain.Tier
	Metadata map[string]any
}

// ProfileUpdate merges the non-nil fields into the current identity.
type ProfileUpdate struct {
	Name     *string
	Email    *string
	Company  *string
	Tier     *domain.Tier
	Metadata map[string]any
}

// SessionService owns the single session of the running process. Every
// method returns a snapshot of the session after the operation; snapshots are
// deep copies and never alias the stored state.
type SessionService interface {
	SignIn(ctx context.Context, email, credential string) (domain.Session, error)
	SignUp(ctx context.Context, in SignUpInput) (domain.Session, error)
	SignOut() domain.Session
	UpdateProfile(in ProfileUpdate) (domain.Session, error)
	SwitchUserType(ctx context.Context, role domain.Role) (domain.Session, error)
	Session() domain.Session
}
