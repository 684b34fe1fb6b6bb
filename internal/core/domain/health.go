package domain

import "time"

// EndpointStatus is the normalized health of one monitored external source.
type EndpointStatus string

const (
	StatusOperational EndpointStatus = "operational"
	StatusDegraded    EndpointStatus = "degraded"
	StatusDown        EndpointStatus = "down"
)

// HealthSnapshot is the latest observation for one monitored endpoint.
type HealthSnapshot struct {
	Name         string         `json:"name"`
	Status       EndpointStatus `json:"status"`
	ResponseTime time.Duration  `json:"response_time"`
	LastUpdated  time.Time      `json:"last_updated"`
	Error        string         `json:"error,omitempty"`
}

// OverallStatus is the aggregate health derived from all snapshots. It is
// computed on demand, never stored.
type OverallStatus string

const (
	OverallOperational OverallStatus = "all_operational"
	OverallPartial     OverallStatus = "partial_degradation"
	OverallDown        OverallStatus = "system_issues"
	OverallUnknown     OverallStatus = "unknown"
)

// Aggregate reduces a snapshot set to one overall status: all operational,
// partial when at least one but not all are operational, otherwise down. An
// empty set aggregates to unknown so the dashboard never shows a healthy
// badge it has no evidence for.
func Aggregate(snapshots []HealthSnapshot) OverallStatus {
	if len(snapshots) == 0 {
		return OverallUnknown
	}
	operational := 0
	for _, s := range snapshots {
		if s.Status == StatusOperational {
			operational++
		}
	}
	switch {
	case operational == len(snapshots):
		return OverallOperational
	case operational > 0:
		return OverallPartial
	default:
		return OverallDown
	}
}
