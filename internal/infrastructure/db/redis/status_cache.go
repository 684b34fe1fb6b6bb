package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voltgrid/market-platform/internal/core/domain"
)

const (
	statusKey = "gridstatus:latest"
	statusTTL = 30 * time.Minute
)

// StatusCache persists the most recent grid status snapshot in Redis so a
// restarted process has something to render before its first poll completes.
type StatusCache struct {
	client *redis.Client
}

// NewStatusCache creates a StatusCache wrapping the given Redis client.
func NewStatusCache(client *redis.Client) *StatusCache {
	return &StatusCache{client: client}
}

type cachedSnapshot struct {
	Name           string    `json:"name"`
	Status         string    `json:"status"`
	ResponseTimeMs int64     `json:"response_time_ms"`
	LastUpdated    time.Time `json:"last_updated"`
	Error          string    `json:"error,omitempty"`
}

// Store replaces the cached snapshot set (expires after statusTTL).
func (c *StatusCache) Store(ctx context.Context, snapshots []domain.HealthSnapshot) error {
	cached := make([]cachedSnapshot, len(snapshots))
	for i, s := range snapshots {
		cached[i] = cachedSnapshot{
			Name:           s.Name,
			Status:         string(s.Status),
			ResponseTimeMs: s.ResponseTime.Milliseconds(),
			LastUpdated:    s.LastUpdated,
			Error:          s.Error,
		}
	}
	payload, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("status cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, statusKey, payload, statusTTL).Err(); err != nil {
		return fmt.Errorf("status cache set: %w", err)
	}
	return nil
}

// Load returns the cached snapshot set, or nil when the cache is cold.
func (c *StatusCache) Load(ctx context.Context) ([]domain.HealthSnapshot, error) {
	payload, err := c.client.Get(ctx, statusKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("status cache get: %w", err)
	}

	var cached []cachedSnapshot
	if err := json.Unmarshal(payload, &cached); err != nil {
		return nil, fmt.Errorf("status cache unmarshal: %w", err)
	}

	snapshots := make([]domain.HealthSnapshot, len(cached))
	for i, s := range cached {
		snapshots[i] = domain.HealthSnapshot{
			Name:         s.Name,
			Status:       domain.EndpointStatus(s.Status),
			ResponseTime: time.Duration(s.ResponseTimeMs) * time.Millisecond,
			LastUpdated:  s.LastUpdated,
			Error:        s.Error,
		}
	}
	return snapshots, nil
}
