// Package gridapi is the HTTP facade over the external grid-data status feed.
package gridapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/voltgrid/market-platform/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings for reaching the status feed.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client fetches and normalizes health statuses. It implements
// ports.GridStatusAPI.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type statusEntry struct {
	Name           string  `json:"name"`
	Status         string  `json:"status"`
	ResponseTimeMs float64 `json:"responseTimeMs"`
	LastUpdated    string  `json:"lastUpdated"`
	Error          string  `json:"error,omitempty"`
}

// GetHealthStatuses fetches the feed. Transport errors, non-200 responses,
// and undecodable payloads all surface as errors wrapping
// domain.ErrHealthCheckFailed.
func (c *Client) GetHealthStatuses(ctx context.Context) ([]domain.HealthSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/status", nil)
	if err != nil {
		return nil, fmt.Errorf("grid status request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrHealthCheckFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrHealthCheckFailed, resp.StatusCode)
	}

	var entries []statusEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrHealthCheckFailed, err)
	}

	snapshots := make([]domain.HealthSnapshot, len(entries))
	for i, e := range entries {
		snapshots[i] = e.toDomain()
	}
	return snapshots, nil
}

func (e statusEntry) toDomain() domain.HealthSnapshot {
	return domain.HealthSnapshot{
		Name:         e.Name,
		Status:       normalizeStatus(e.Status),
		ResponseTime: time.Duration(e.ResponseTimeMs * float64(time.Millisecond)),
		LastUpdated:  parseTimestamp(e.LastUpdated),
		Error:        e.Error,
	}
}

// normalizeStatus folds the feed's vocabulary into the three known states.
// Unrecognized values map to degraded rather than a false healthy reading.
func normalizeStatus(s string) domain.EndpointStatus {
	switch s {
	case "operational", "up", "healthy":
		return domain.StatusOperational
	case "degraded", "partial":
		return domain.StatusDegraded
	case "down", "offline", "outage":
		return domain.StatusDown
	default:
		return domain.StatusDegraded
	}
}

func parseTimestamp(s string) time.Time {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Now().UTC()
	}
	return ts
}
