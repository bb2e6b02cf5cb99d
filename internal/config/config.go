package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL          string
	RedisAddr            string
	Port                 string
	AppEnv               string
	SessionSecret        string
	SessionTTL           time.Duration
	OtelExporterEndpoint string
}

// DefaultDatabaseURL is the local file-backed SQLite store used when no
// DATABASE_URL is configured.
const DefaultDatabaseURL = "file:todo.db"

// Load reads configuration from environment variables.
// It applies defaults for "local" environments but enforces strictness for others.
func Load() (Config, error) {
	cfg := Config{
		Port:                 os.Getenv("PORT"),
		AppEnv:               os.Getenv("APP_ENV"),
		SessionSecret:        os.Getenv("SESSION_SECRET"),
		OtelExporterEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	// Default to production safety if not explicitly set to local
	if cfg.AppEnv == "" {
		cfg.AppEnv = "production"
	}

	if cfg.SessionSecret == "" {
		if cfg.AppEnv == "local" {
			cfg.SessionSecret = "dev-secret-do-not-use-in-prod"
		} else {
			return Config{}, errors.New("SESSION_SECRET is required")
		}
	}

	cfg.SessionTTL = 24 * time.Hour
	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return Config{}, fmt.Errorf("SESSION_TTL is not a valid duration: %w", err)
		}
		cfg.SessionTTL = d
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = DefaultDatabaseURL
	}

	// Sessions live in Redis in production; local runs fall back to the
	// in-process store.
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	if cfg.RedisAddr == "" && cfg.AppEnv != "local" {
		return Config{}, errors.New("REDIS_ADDR is required")
	}

	return cfg, nil
}

// UsesPostgres reports whether DatabaseURL points at a Postgres server rather
// than the SQLite file store.
func (c Config) UsesPostgres() bool {
	return len(c.DatabaseURL) >= 8 && c.DatabaseURL[:8] == "postgres"
}
