package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/voltgrid/market-platform/docs"
	"github.com/voltgrid/market-platform/internal/api"
	"github.com/voltgrid/market-platform/internal/core/ports"
	"github.com/voltgrid/market-platform/internal/core/service"
	"github.com/voltgrid/market-platform/internal/infrastructure/config"
	"github.com/voltgrid/market-platform/internal/infrastructure/db/mongo"
	"github.com/voltgrid/market-platform/internal/infrastructure/db/redis"
	"github.com/voltgrid/market-platform/internal/infrastructure/directory"
	"github.com/voltgrid/market-platform/internal/infrastructure/gridapi"
	"github.com/voltgrid/market-platform/pkg/logger"
)

const (
	sessionLookupTimeout = 5 * time.Second
	shutdownTimeout      = 10 * time.Second
)

// @title        VoltGrid Market Platform API
// @version      1.0
// @description  Session, permission, and grid status API for the VoltGrid energy-trading dashboard.
// @BasePath     /
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// --- Identity directory: seeded in demo mode, MongoDB otherwise ---
	var users ports.UserDirectory
	if cfg.DemoMode {
		users = directory.NewSeedDirectory()
		log.Info().Msg("demo mode: using seeded identity directory")
	} else {
		client, db, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			disconnectCtx, c := context.WithTimeout(context.Background(), shutdownTimeout)
			defer c()
			_ = client.Disconnect(disconnectCtx)
		}()
		users = mongo.NewUserDirectory(db)
	}

	// --- Status cache: best-effort, the monitor runs without it ---
	var cache service.StatusCache
	if rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB}); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, status cache disabled")
	} else {
		defer rdb.Close()
		cache = redis.NewStatusCache(rdb)
	}

	// --- Core services ---
	sessions := service.NewSessionService(users, sessionLookupTimeout, cfg.DemoMode, log)

	gridClient := gridapi.NewClient(gridapi.Config{
		BaseURL: cfg.GridAPI.BaseURL,
		Timeout: cfg.GridAPI.Timeout,
	})
	monitor := service.NewHealthMonitor(gridClient, cache, cfg.Health.Sources, cfg.Health.PollInterval, cfg.IsProduction(), log)
	monitor.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(sessions, monitor, users, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()

	monitor.Stop()

	shutdownCtx, c := context.WithTimeout(context.Background(), shutdownTimeout)
	defer c()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}
