package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/voltgrid/market-platform/internal/api/metrics"
	"github.com/voltgrid/market-platform/internal/core/domain"
	"github.com/voltgrid/market-platform/internal/core/ports"
)

const defaultPollInterval = 5 * time.Minute

// StatusCache persists the latest snapshot set across restarts so a fresh
// process can render a status before its first live check completes.
// Implementations are best-effort; failures never fail a check.
type StatusCache interface {
	Store(ctx context.Context, snapshots []domain.HealthSnapshot) error
	Load(ctx context.Context) ([]domain.HealthSnapshot, error)
}

// HealthMonitor polls the grid status feed on a fixed interval and keeps the
// most recent snapshot set. Overlapping manual and scheduled checks are
// tolerated: the last check to complete wins, with no ordering guarantee
// between them.
type HealthMonitor struct {
	api      ports.GridStatusAPI
	cache    StatusCache // optional
	sources  []string
	interval time.Duration
	enabled  bool
	log      zerolog.Logger

	mu          sync.RWMutex
	snapshots   []domain.HealthSnapshot
	lastChecked time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewHealthMonitor builds the monitor. sources names every endpoint the
// fallback must cover when a fetch fails; enabled=false turns polling off
// entirely (no boundary calls are ever made).
func NewHealthMonitor(api ports.GridStatusAPI, cache StatusCache, sources []string, interval time.Duration, enabled bool, log zerolog.Logger) *HealthMonitor {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &HealthMonitor{
		api:      api,
		cache:    cache,
		sources:  sources,
		interval: interval,
		enabled:  enabled,
		log:      log,
		stop:     make(chan struct{}),
	}
}

// Start runs an immediate check and then polls on the configured interval
// until Stop is called or ctx is cancelled. No-op when the monitor is
// disabled.
func (m *HealthMonitor) Start(ctx context.Context) {
	if !m.enabled {
		m.log.Info().Msg("health monitor disabled, polling skipped")
		return
	}
	if m.cache != nil {
		if cached, err := m.cache.Load(ctx); err != nil {
			m.log.Warn().Err(err).Msg("status cache read failed")
		} else if len(cached) > 0 {
			m.store(cached, time.Now().UTC())
		}
	}
	go m.run(ctx)
}

func (m *HealthMonitor) run(ctx context.Context) {
	m.CheckHealth(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stop:
			return
		case <-ticker.C:
			select {
			case <-m.stop:
				return
			default:
			}
			m.CheckHealth(ctx)
		}
	}
}

// Stop cancels the poll loop. Safe to call more than once and while a check
// is in flight; an in-flight check still lands its result.
func (m *HealthMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// CheckHealth fetches the status feed and replaces the stored snapshots in
// full. Any fetch failure is absorbed: every configured source is marked down
// with the failure message, so callers always have a renderable state. Never
// returns an error.
func (m *HealthMonitor) CheckHealth(ctx context.Context) []domain.HealthSnapshot {
	if !m.enabled {
		return m.Snapshots()
	}

	start := time.Now()
	snapshots, err := m.api.GetHealthStatuses(ctx)
	metrics.HealthCheckDuration.Observe(time.Since(start).Seconds())

	checkedAt := time.Now().UTC()
	if err != nil {
		metrics.HealthCheckFailuresTotal.Inc()
		m.log.Warn().Err(err).Msg("grid status fetch failed, serving fallback")
		snapshots = m.fallback(checkedAt, err)
	}

	m.store(snapshots, checkedAt)

	if m.cache != nil {
		if err := m.cache.Store(ctx, snapshots); err != nil {
			m.log.Warn().Err(err).Msg("status cache write failed")
		}
	}
	return m.Snapshots()
}

// fallback synthesizes the deterministic all-down snapshot set.
func (m *HealthMonitor) fallback(at time.Time, cause error) []domain.HealthSnapshot {
	msg := "status check failed"
	if cause != nil {
		msg = "status check failed: " + cause.Error()
	}
	out := make([]domain.HealthSnapshot, len(m.sources))
	for i, name := range m.sources {
		out[i] = domain.HealthSnapshot{
			Name:        name,
			Status:      domain.StatusDown,
			LastUpdated: at,
			Error:       msg,
		}
	}
	return out
}

func (m *HealthMonitor) store(snapshots []domain.HealthSnapshot, checkedAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots = snapshots
	m.lastChecked = checkedAt
}

// Snapshots returns a copy of the latest snapshot set.
func (m *HealthMonitor) Snapshots() []domain.HealthSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.HealthSnapshot, len(m.snapshots))
	copy(out, m.snapshots)
	return out
}

// Overall aggregates the latest snapshots into one status.
func (m *HealthMonitor) Overall() domain.OverallStatus {
	return domain.Aggregate(m.Snapshots())
}

// LastChecked reports when the last check completed. Zero before any check.
func (m *HealthMonitor) LastChecked() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastChecked
}

// Enabled reports whether polling is active in this environment.
func (m *HealthMonitor) Enabled() bool {
	return m.enabled
}
