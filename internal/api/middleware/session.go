package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voltgrid/market-platform/internal/core/ports"
)

// RequireSession rejects requests while no identity is signed in and injects
// the identity snapshot into the request context.
func RequireSession(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := sessions.Session()
			if !sess.Authenticated || sess.User == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
			}
			c.Set("user", sess.User)
			return next(c)
		}
	}
}
