package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/voltgrid/market-platform/internal/core/domain"
	"github.com/voltgrid/market-platform/internal/core/ports"
)

// StatusHandler renders the grid health view.
type StatusHandler struct {
	health ports.HealthService
}

func NewStatusHandler(health ports.HealthService) *StatusHandler {
	return &StatusHandler{health: health}
}

type endpointResponse struct {
	Name           string    `json:"name"`
	Status         string    `json:"status"`
	ResponseTimeMs int64     `json:"response_time_ms"`
	LastUpdated    time.Time `json:"last_updated"`
	Error          string    `json:"error,omitempty"`
}

type statusResponse struct {
	Enabled     bool               `json:"enabled"`
	Overall     string             `json:"overall"`
	LastChecked *time.Time         `json:"last_checked,omitempty"`
	Endpoints   []endpointResponse `json:"endpoints"`
	Message     string             `json:"message,omitempty"`
}

func (h *StatusHandler) toResponse() statusResponse {
	snapshots := h.health.Snapshots()
	endpoints := make([]endpointResponse, len(snapshots))
	for i, s := range snapshots {
		endpoints[i] = endpointResponse{
			Name:           s.Name,
			Status:         string(s.Status),
			ResponseTimeMs: s.ResponseTime.Milliseconds(),
			LastUpdated:    s.LastUpdated,
			Error:          s.Error,
		}
	}

	resp := statusResponse{
		Enabled:   h.health.Enabled(),
		Overall:   string(domain.Aggregate(snapshots)),
		Endpoints: endpoints,
	}
	if !h.health.Enabled() {
		resp.Message = "health monitoring is disabled outside production"
		return resp
	}
	if checked := h.health.LastChecked(); !checked.IsZero() {
		resp.LastChecked = &checked
	}
	return resp
}

// Current returns the latest health snapshot set and the aggregate status.
//
// @Summary      Grid status
// @Tags         status
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       /status [get]
func (h *StatusHandler) Current(c echo.Context) error {
	return c.JSON(http.StatusOK, h.toResponse())
}

// Refresh triggers an immediate check and returns the resulting view. A
// refresh overlapping a scheduled tick is tolerated; the last completed check
// is the one displayed.
//
// @Summary      Refresh grid status
// @Tags         status
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       /status/refresh [post]
func (h *StatusHandler) Refresh(c echo.Context) error {
	h.health.CheckHealth(c.Request().Context())
	return c.JSON(http.StatusOK, h.toResponse())
}
