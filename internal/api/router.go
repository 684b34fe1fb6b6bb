package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/voltgrid/market-platform/internal/api/handler"
	"github.com/voltgrid/market-platform/internal/api/middleware"
	"github.com/voltgrid/market-platform/internal/core/domain"
	"github.com/voltgrid/market-platform/internal/core/ports"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(sessions ports.SessionService, health ports.HealthService, directory ports.UserDirectory, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("voltgrid"))

	// --- Handlers ---
	sessionHandler := handler.NewSessionHandler(sessions)
	statusHandler := handler.NewStatusHandler(health)
	adminHandler := handler.NewAdminHandler(directory)
	probeHandler := handler.NewProbeHandler()

	// --- Auth routes ---
	e.POST("/auth/signin", sessionHandler.SignIn)
	e.POST("/auth/signup", sessionHandler.SignUp)
	e.POST("/auth/signout", sessionHandler.SignOut)

	authed := e.Group("", middleware.RequireSession(sessions))
	authed.PATCH("/auth/profile", sessionHandler.UpdateProfile)
	authed.POST("/auth/switch-role", sessionHandler.SwitchRole)
	authed.GET("/session/features", sessionHandler.Features)
	authed.GET("/session/permissions", sessionHandler.Permissions)

	// Session snapshot is readable before sign-in so the dashboard can decide
	// what to render.
	e.GET("/session", sessionHandler.Current)

	// --- Grid status ---
	e.GET("/status", statusHandler.Current)
	e.POST("/status/refresh", statusHandler.Refresh)

	// --- Operator console ---
	e.GET("/admin/users", adminHandler.ListUsers, middleware.Permit(sessions, domain.ActionAccessAdmin))

	// --- Probes, metrics, docs ---
	e.GET("/health", probeHandler.Liveness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
