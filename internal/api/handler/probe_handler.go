package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ProbeHandler handles GET /health — liveness probe.
// Returns 200 immediately; confirms the process is alive.
type ProbeHandler struct{}

func NewProbeHandler() *ProbeHandler {
	return &ProbeHandler{}
}

func (h *ProbeHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
