package ports

import (
	"context"
	"time"

	"github.com/voltgrid/market-platform/internal/core/domain"
)

// HealthService maintains the latest view of external dependency health.
// CheckHealth never returns an error: any fetch failure is absorbed into a
// deterministic all-down snapshot so callers always have something to render.
type HealthService interface {
	CheckHealth(ctx context.Context) []domain.HealthSnapshot
	Snapshots() []domain.HealthSnapshot
	Overall() domain.OverallStatus
	LastChecked() time.Time
	Enabled() bool
}
