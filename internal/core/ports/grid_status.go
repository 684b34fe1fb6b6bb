package ports

import (
	"context"

	"github.com/voltgrid/market-platform/internal/core/domain"
)

// GridStatusAPI is the external grid-data status feed. Implementations may
// fail on transport errors, timeouts, or malformed payloads; consumers decide
// how to degrade.
type GridStatusAPI interface {
	GetHealthStatuses(ctx context.Context) ([]domain.HealthSnapshot, error)
}
