package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	originalDBURL := os.Getenv("DATABASE_URL")
	originalRedisAddr := os.Getenv("REDIS_ADDR")
	originalPort := os.Getenv("PORT")
	originalAppEnv := os.Getenv("APP_ENV")
	originalSecret := os.Getenv("SESSION_SECRET")
	originalTTL := os.Getenv("SESSION_TTL")

	defer func() {
		os.Setenv("DATABASE_URL", originalDBURL)
		os.Setenv("REDIS_ADDR", originalRedisAddr)
		os.Setenv("PORT", originalPort)
		os.Setenv("APP_ENV", originalAppEnv)
		os.Setenv("SESSION_SECRET", originalSecret)
		os.Setenv("SESSION_TTL", originalTTL)
	}()

	t.Run("success with all values set", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "postgres://localhost:5432/test")
		os.Setenv("REDIS_ADDR", "localhost:6379")
		os.Setenv("PORT", "9000")
		os.Setenv("APP_ENV", "test")
		os.Setenv("SESSION_SECRET", "super-secret")
		os.Setenv("SESSION_TTL", "1h")

		cfg, err := Load()
		assert.NoError(t, err)
		assert.Equal(t, "postgres://localhost:5432/test", cfg.DatabaseURL)
		assert.Equal(t, "localhost:6379", cfg.RedisAddr)
		assert.Equal(t, "9000", cfg.Port)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "super-secret", cfg.SessionSecret)
		assert.Equal(t, time.Hour, cfg.SessionTTL)
		assert.True(t, cfg.UsesPostgres())
	})

	t.Run("defaults for Port, AppEnv, DatabaseURL and SessionTTL", func(t *testing.T) {
		os.Setenv("REDIS_ADDR", "localhost:6379")
		os.Setenv("SESSION_SECRET", "super-secret")
		os.Unsetenv("PORT")
		os.Unsetenv("APP_ENV")
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("SESSION_TTL")

		cfg, err := Load()
		assert.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "production", cfg.AppEnv)
		assert.Equal(t, DefaultDatabaseURL, cfg.DatabaseURL)
		assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
		assert.False(t, cfg.UsesPostgres())
	})

	t.Run("missing SESSION_SECRET", func(t *testing.T) {
		os.Setenv("REDIS_ADDR", "localhost:6379")
		os.Unsetenv("SESSION_SECRET")
		os.Unsetenv("APP_ENV")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "SESSION_SECRET is required")
	})

	t.Run("local env fills in dev secret and memory sessions", func(t *testing.T) {
		os.Setenv("APP_ENV", "local")
		os.Unsetenv("SESSION_SECRET")
		os.Unsetenv("REDIS_ADDR")

		cfg, err := Load()
		assert.NoError(t, err)
		assert.NotEmpty(t, cfg.SessionSecret)
		assert.Empty(t, cfg.RedisAddr)
	})

	t.Run("missing REDIS_ADDR outside local", func(t *testing.T) {
		os.Setenv("APP_ENV", "production")
		os.Setenv("SESSION_SECRET", "super-secret")
		os.Unsetenv("REDIS_ADDR")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "REDIS_ADDR is required")
	})

	t.Run("invalid SESSION_TTL", func(t *testing.T) {
		os.Setenv("APP_ENV", "local")
		os.Setenv("SESSION_TTL", "soon")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "SESSION_TTL")
	})
}
