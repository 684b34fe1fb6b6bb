package domain

import (
	"errors"
	"time"
)

// Role identifies the market archetype of a participant. The role of an
// identity is fixed at creation; switching roles replaces the identity with a
// different one rather than mutating it in place.
type Role string

const (
	RoleProducer Role = "producer"
	RoleConsumer Role = "consumer"
	RoleOperator Role = "operator"
)

// ValidRole reports whether r is one of the three known market roles.
func ValidRole(r Role) bool {
	return r == RoleProducer || r == RoleConsumer || r == RoleOperator
}

// Tier is the account subscription level.
type Tier string

const (
	TierBasic      Tier = "Basic"
	TierPremium    Tier = "Premium"
	TierEnterprise Tier = "Enterprise"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrNotAuthenticated = errors.New("not authenticated")
var ErrRoleSwitchDisabled = errors.New("role switching is disabled")
var ErrHealthCheckFailed = errors.New("health check failed")

// User models a market participant. Metadata is a free-form bag whose shape
// depends on the role: producers carry resource types and capacity, consumers
// carry industry and grid region, operators carry grid region and capacity.
type User struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Company   string         `json:"company,omitempty"`
	Role      Role           `json:"role"`
	Tier      Tier           `json:"tier"`
	Verified  bool           `json:"verified"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Clone returns a deep copy so callers can never reach the stored identity
// through a snapshot.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.Metadata != nil {
		clone.Metadata = make(map[string]any, len(u.Metadata))
		for k, v := range u.Metadata {
			clone.Metadata[k] = v
		}
	}
	return &clone
}

// Session is the single authentication state of a running client process.
// Invariant: Authenticated is true iff User is non-nil.
type Session struct {
	User          *User `json:"user,omitempty"`
	Authenticated bool  `json:"authenticated"`
	Loading       bool  `json:"loading"`
}
