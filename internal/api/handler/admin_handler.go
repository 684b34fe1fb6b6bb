package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voltgrid/market-platform/internal/core/domain"
	"github.com/voltgrid/market-platform/internal/core/ports"
)

// AdminHandler serves operator-only directory views.
type AdminHandler struct {
	directory ports.UserDirectory
}

func NewAdminHandler(directory ports.UserDirectory) *AdminHandler {
	return &AdminHandler{directory: directory}
}

// ListUsers returns every identity in the directory. Routed behind the
// access_admin permission.
//
// @Summary      List directory users
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string][]domain.User
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.directory.List(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, map[string][]*domain.User{"users": users})
}
