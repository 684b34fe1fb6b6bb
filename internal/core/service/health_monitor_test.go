package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/voltgrid/market-platform/internal/core/domain"
)

type stubGridAPI struct {
	mu        sync.Mutex
	snapshots []domain.HealthSnapshot
	err       error
	calls     int
}

func (s *stubGridAPI) GetHealthStatuses(_ context.Context) ([]domain.HealthSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.HealthSnapshot, len(s.snapshots))
	copy(out, s.snapshots)
	return out, nil
}

func (s *stubGridAPI) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubCache struct {
	mu     sync.Mutex
	stored []domain.HealthSnapshot
	loaded []domain.HealthSnapshot
}

func (c *stubCache) Store(_ context.Context, snapshots []domain.HealthSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stored = snapshots
	return nil
}

func (c *stubCache) Load(_ context.Context) ([]domain.HealthSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded, nil
}

var testSources = []string{"grid-data-api", "market-feed", "certificate-registry"}

func newTestMonitor(api *stubGridAPI, cache StatusCache, enabled bool) *HealthMonitor {
	return NewHealthMonitor(api, cache, testSources, time.Minute, enabled, zerolog.Nop())
}

func TestHealthMonitor_CheckReplacesSnapshots(t *testing.T) {
	api := &stubGridAPI{snapshots: []domain.HealthSnapshot{
		{Name: "grid-data-api", Status: domain.StatusOperational, ResponseTime: 20 * time.Millisecond},
		{Name: "market-feed", Status: domain.StatusDegraded},
	}}
	m := newTestMonitor(api, nil, true)

	got := m.CheckHealth(context.Background())
	if len(got) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(got))
	}
	if m.Overall() != domain.OverallPartial {
		t.Fatalf("overall = %s, want partial", m.Overall())
	}
	if m.LastChecked().IsZero() {
		t.Fatalf("check timestamp not recorded")
	}

	// next check replaces in full, never merges
	api.mu.Lock()
	api.snapshots = []domain.HealthSnapshot{{Name: "certificate-registry", Status: domain.StatusOperational}}
	api.mu.Unlock()

	got = m.CheckHealth(context.Background())
	if len(got) != 1 || got[0].Name != "certificate-registry" {
		t.Fatalf("snapshots must be replaced wholesale, got %+v", got)
	}
	if m.Overall() != domain.OverallOperational {
		t.Fatalf("overall = %s, want all operational", m.Overall())
	}
}

func TestHealthMonitor_FetchFailureFallsBack(t *testing.T) {
	api := &stubGridAPI{err: errors.New("dial tcp: connection refused")}
	m := newTestMonitor(api, nil, true)

	got := m.CheckHealth(context.Background())
	if len(got) != len(testSources) {
		t.Fatalf("fallback must cover every source: got %d, want %d", len(got), len(testSources))
	}
	for i, s := range got {
		if s.Status != domain.StatusDown {
			t.Errorf("fallback[%d] status = %s, want down", i, s.Status)
		}
		if s.Error == "" {
			t.Errorf("fallback[%d] missing error message", i)
		}
	}
	if m.Overall() != domain.OverallDown {
		t.Fatalf("overall = %s, want system issues", m.Overall())
	}
}

func TestHealthMonitor_FailureThenRecovery(t *testing.T) {
	api := &stubGridAPI{err: errors.New("timeout")}
	m := newTestMonitor(api, nil, true)

	m.CheckHealth(context.Background())

	api.mu.Lock()
	api.err = nil
	api.snapshots = []domain.HealthSnapshot{{Name: "grid-data-api", Status: domain.StatusOperational}}
	api.mu.Unlock()

	got := m.CheckHealth(context.Background())
	if len(got) != 1 || got[0].Status != domain.StatusOperational {
		t.Fatalf("recovery check must replace the fallback, got %+v", got)
	}
}

func TestHealthMonitor_LastCompletionWins(t *testing.T) {
	api := &stubGridAPI{snapshots: []domain.HealthSnapshot{{Name: "grid-data-api", Status: domain.StatusOperational}}}
	m := newTestMonitor(api, nil, true)

	// overlapping manual refreshes; no ordering is enforced between them, the
	// displayed result is whichever check completed last
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.CheckHealth(context.Background())
		}()
	}
	wg.Wait()

	got := m.Snapshots()
	if len(got) != 1 || got[0].Name != "grid-data-api" {
		t.Fatalf("expected a completed check's result, got %+v", got)
	}
	if api.callCount() != 4 {
		t.Fatalf("expected 4 fetches, got %d", api.callCount())
	}
}

func TestHealthMonitor_Disabled(t *testing.T) {
	api := &stubGridAPI{snapshots: []domain.HealthSnapshot{{Name: "grid-data-api", Status: domain.StatusOperational}}}
	m := newTestMonitor(api, nil, false)

	m.Start(context.Background())
	got := m.CheckHealth(context.Background())

	if api.callCount() != 0 {
		t.Fatalf("disabled monitor must never call the boundary, got %d calls", api.callCount())
	}
	if len(got) != 0 {
		t.Fatalf("disabled monitor serves the static empty state, got %+v", got)
	}
	if m.Overall() != domain.OverallUnknown {
		t.Fatalf("overall = %s, want unknown", m.Overall())
	}
	if m.Enabled() {
		t.Fatalf("Enabled() must report false")
	}
}

func TestHealthMonitor_StartPollsAndStops(t *testing.T) {
	api := &stubGridAPI{snapshots: []domain.HealthSnapshot{{Name: "grid-data-api", Status: domain.StatusOperational}}}
	m := NewHealthMonitor(api, nil, testSources, 10*time.Millisecond, true, zerolog.Nop())

	m.Start(context.Background())

	deadline := time.After(2 * time.Second)
	for api.callCount() < 2 {
		select {
		case <-deadline:
			t.Fatalf("monitor did not poll: %d calls", api.callCount())
		case <-time.After(5 * time.Millisecond):
		}
	}

	m.Stop()
	m.Stop() // idempotent

	settled := api.callCount()
	time.Sleep(50 * time.Millisecond)
	// allow one in-flight tick to land, but no recurring work afterwards
	if api.callCount() > settled+1 {
		t.Fatalf("monitor kept polling after Stop: %d -> %d", settled, api.callCount())
	}
}

func TestHealthMonitor_CacheRoundTrip(t *testing.T) {
	api := &stubGridAPI{snapshots: []domain.HealthSnapshot{{Name: "grid-data-api", Status: domain.StatusOperational}}}
	cache := &stubCache{}
	m := newTestMonitor(api, cache, true)

	m.CheckHealth(context.Background())

	cache.mu.Lock()
	stored := cache.stored
	cache.mu.Unlock()
	if len(stored) != 1 || stored[0].Name != "grid-data-api" {
		t.Fatalf("check result not written through to the cache: %+v", stored)
	}
}

func TestHealthMonitor_WarmStartFromCache(t *testing.T) {
	api := &stubGridAPI{snapshots: []domain.HealthSnapshot{{Name: "grid-data-api", Status: domain.StatusOperational}}}
	cache := &stubCache{loaded: []domain.HealthSnapshot{{Name: "market-feed", Status: domain.StatusDegraded}}}
	m := NewHealthMonitor(api, cache, testSources, time.Hour, true, zerolog.Nop())

	m.Start(context.Background())
	defer m.Stop()

	// the cached view is visible immediately, before or regardless of the
	// first live check landing
	deadline := time.After(2 * time.Second)
	for {
		snaps := m.Snapshots()
		if len(snaps) > 0 {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("no snapshot visible after warm start")
		case <-time.After(5 * time.Millisecond):
		}
	}
}
