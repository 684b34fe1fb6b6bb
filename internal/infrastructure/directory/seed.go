// Package directory provides the in-memory identity directory used in demo
// mode and as a test fixture. It is seeded with one identity per market role.
package directory

import (
	"context"
	"sync"
	"time"

	"github.com/voltgrid/market-platform/internal/core/domain"
)

// SeedDirectory is an in-memory UserDirectory. FindByRole returns the first
// entry carrying the requested role, matching insertion order.
type SeedDirectory struct {
	mu    sync.RWMutex
	users []*domain.User
}

// NewSeedDirectory returns a directory preloaded with the three demo
// identities the dashboard ships with.
func NewSeedDirectory() *SeedDirectory {
	seededAt := time.Date(2026, time.January, 15, 9, 0, 0, 0, time.UTC)
	return &SeedDirectory{
		users: []*domain.User{
			{
				ID:       "usr-producer-001",
				Name:     "Elena Vasquez",
				Email:    "elena@solarpeak.energy",
				Company:  "SolarPeak Energy",
				Role:     domain.RoleProducer,
				Tier:     domain.TierPremium,
				Verified: true,
				Metadata: map[string]any{
					"resource_types":   []string{"solar", "wind"},
					"capacity_mw":      150.0,
					"behind_the_fence": false,
				},
				CreatedAt: seededAt,
			},
			{
				ID:       "usr-consumer-001",
				Name:     "Marcus Chen",
				Email:    "marcus@alloysmelting.com",
				Company:  "Alloy Smelting Co",
				Role:     domain.RoleConsumer,
				Tier:     domain.TierEnterprise,
				Verified: true,
				Metadata: map[string]any{
					"industry":    "metals",
					"grid_region": "west",
				},
				CreatedAt: seededAt,
			},
			{
				ID:       "usr-operator-001",
				Name:     "Priya Sharma",
				Email:    "priya@gridwest.io",
				Company:  "GridWest Operations",
				Role:     domain.RoleOperator,
				Tier:     domain.TierEnterprise,
				Verified: true,
				Metadata: map[string]any{
					"grid_region": "west",
					"capacity_mw": 2400.0,
				},
				CreatedAt: seededAt,
			},
		},
	}
}

func (d *SeedDirectory) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, u := range d.users {
		if u.Email == email {
			return u.Clone(), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (d *SeedDirectory) FindByRole(_ context.Context, role domain.Role) (*domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, u := range d.users {
		if u.Role == role {
			return u.Clone(), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Create appends the user. Duplicate emails are accepted.
func (d *SeedDirectory) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users = append(d.users, user.Clone())
	return user.Clone(), nil
}

func (d *SeedDirectory) List(_ context.Context) ([]*domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*domain.User, len(d.users))
	for i, u := range d.users {
		out[i] = u.Clone()
	}
	return out, nil
}
