package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voltgrid/market-platform/internal/api/metrics"
	"github.com/voltgrid/market-platform/internal/core/domain"
	"github.com/voltgrid/market-platform/internal/core/ports"
)

// SessionHandler exposes the session store over HTTP.
type SessionHandler struct {
	sessions ports.SessionService
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// --- Request / Response types ---

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Name     string         `json:"name" validate:"required"`
	Email    string         `json:"email" validate:"required,email"`
	Company  string         `json:"company"`
	Role     string         `json:"role" validate:"omitempty,oneof=producer consumer operator"`
	Tier     string         `json:"tier" validate:"omitempty,oneof=Basic Premium Enterprise"`
	Metadata map[string]any `json:"metadata"`
}

type updateProfileRequest struct {
	Name     *string        `json:"name"`
	Email    *string        `json:"email"`
	Company  *string        `json:"company"`
	Tier     *string        `json:"tier"`
	Metadata map[string]any `json:"metadata"`
}

type switchRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=producer consumer operator"`
}

type sessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	Loading       bool         `json:"loading"`
	User          *domain.User `json:"user,omitempty"`
}

func toSessionResponse(sess domain.Session) sessionResponse {
	return sessionResponse{
		Authenticated: sess.Authenticated,
		Loading:       sess.Loading,
		User:          sess.User,
	}
}

// SignIn authenticates by email lookup and replaces the session.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Sign-in credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/signin [post]
func (h *SessionHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	sess, err := h.sessions.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues("invalid").Inc()
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		}
		return err
	}

	metrics.SignInsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

// SignUp provisions a new identity and signs it in.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "New account details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Router       /auth/signup [post]
func (h *SessionHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	sess, err := h.sessions.SignUp(c.Request().Context(), ports.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Company:  req.Company,
		Role:     domain.Role(req.Role),
		Tier:     domain.Tier(req.Tier),
		Metadata: req.Metadata,
	})
	if err != nil {
		return err
	}

	metrics.SignUpsTotal.Inc()
	return c.JSON(http.StatusCreated, toSessionResponse(sess))
}

// SignOut clears the session.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/signout [post]
func (h *SessionHandler) SignOut(c echo.Context) error {
	return c.JSON(http.StatusOK, toSessionResponse(h.sessions.SignOut()))
}

// UpdateProfile merges fields into the signed-in identity.
//
// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Fields to merge"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/profile [patch]
func (h *SessionHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	update := ports.ProfileUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Company:  req.Company,
		Metadata: req.Metadata,
	}
	if req.Tier != nil {
		tier := domain.Tier(*req.Tier)
		update.Tier = &tier
	}

	sess, err := h.sessions.UpdateProfile(update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

// SwitchRole swaps the session to the directory identity for the requested
// role. Demo affordance; disabled outside demo mode.
//
// @Summary      Switch user type
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      switchRoleRequest  true  "Target role"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /auth/switch-role [post]
func (h *SessionHandler) SwitchRole(c echo.Context) error {
	var req switchRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	sess, err := h.sessions.SwitchUserType(c.Request().Context(), domain.Role(req.Role))
	if err != nil {
		if errors.Is(err, domain.ErrRoleSwitchDisabled) {
			return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
		}
		return err
	}

	metrics.RoleSwitchesTotal.WithLabelValues(req.Role).Inc()
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

// Current returns the session snapshot. Readable without authentication so
// the dashboard can decide what to render.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	return c.JSON(http.StatusOK, toSessionResponse(h.sessions.Session()))
}

// Features lists the dashboard features visible to the signed-in role, in
// display order.
//
// @Summary      Available features
// @Tags         session
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Failure      401  {object}  map[string]string
// @Router       /session/features [get]
func (h *SessionHandler) Features(c echo.Context) error {
	sess := h.sessions.Session()
	features := domain.AvailableFeatures(sess.User)
	if features == nil {
		features = []string{}
	}
	return c.JSON(http.StatusOK, map[string][]string{"features": features})
}

// Permissions lists every action the signed-in role allows.
//
// @Summary      Permitted actions
// @Tags         session
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Failure      401  {object}  map[string]string
// @Router       /session/permissions [get]
func (h *SessionHandler) Permissions(c echo.Context) error {
	sess := h.sessions.Session()
	actions := domain.PermittedActions(sess.User)
	if actions == nil {
		actions = []domain.Action{}
	}
	return c.JSON(http.StatusOK, map[string][]domain.Action{"permissions": actions})
}
