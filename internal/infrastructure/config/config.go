// Package config loads application settings from the environment.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,         default=3000"`
	Env      string `env:"ENV,          default=development"`
	LogLevel string `env:"LOG_LEVEL,    default=info"`

	// APIBaseURL is the root of the external task-tracking REST API.
	APIBaseURL string        `env:"API_BASE_URL, default=http://localhost:8000/api"`
	APITimeout time.Duration `env:"API_TIMEOUT,  default=15s"`

	// SessionSecret signs the browser session cookie. Must be set outside
	// development.
	SessionSecret string `env:"SESSION_SECRET, default=dev-only-insecure-secret"`

	Redis RedisConfig
}

type RedisConfig struct {
	// Addr empty disables the profile cache entirely.
	Addr string        `env:"REDIS_ADDR"`
	DB   int           `env:"REDIS_DB,   default=0"`
	TTL  time.Duration `env:"PROFILE_CACHE_TTL, default=60s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper})
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// IsDevelopment reports whether the app runs with development conveniences
// (pretty logs, relaxed cookie flags).
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
