package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// DemoMode selects the seeded in-memory directory and unlocks the
	// user-type switch endpoint.
	DemoMode bool `env:"DEMO_MODE, default=true"`

	Health  HealthConfig
	GridAPI GridAPIConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type HealthConfig struct {
	PollInterval time.Duration `env:"HEALTH_POLL_INTERVAL, default=5m"`
	// Sources names every monitored endpoint; the failure fallback marks each
	// one down.
	Sources []string `env:"HEALTH_SOURCES, default=grid-data-api,market-feed,certificate-registry"`
}

type GridAPIConfig struct {
	BaseURL string        `env:"GRID_API_URL,     default=https://status.gridwest.io"`
	Timeout time.Duration `env:"GRID_API_TIMEOUT, default=10s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=voltgrid"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// IsProduction reports whether health polling should run against the real
// status feed. Outside production the monitor stays inert.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
