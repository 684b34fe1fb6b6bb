package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voltgrid/market-platform/internal/core/domain"
	"github.com/voltgrid/market-platform/internal/core/ports"
)

// Permit enforces that the signed-in identity's role allows the action.
// Missing session → 401; role without the permission → 403.
func Permit(sessions ports.SessionService, action domain.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := sessions.Session()
			if !sess.Authenticated || sess.User == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
			}
			if !domain.HasPermission(sess.User, action) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			c.Set("user", sess.User)
			return next(c)
		}
	}
}
