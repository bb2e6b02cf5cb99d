package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	sessionmemory "go-todo-app/internal/adapter/session/memory"
	sessionredis "go-todo-app/internal/adapter/session/redis"
	storagememory "go-todo-app/internal/adapter/storage/memory"
	"go-todo-app/internal/adapter/storage/postgres"
	"go-todo-app/internal/adapter/storage/sqlite"
	"go-todo-app/internal/adapter/web"
	"go-todo-app/internal/config"
	"go-todo-app/internal/core/ports"
	"go-todo-app/internal/core/service"
	"go-todo-app/internal/observability"
)

// -- MAIN --

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, relying on environment variables")
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Init Tracing
	tpShutdown, err := observability.InitTracerProvider(ctx, "todo-service", cfg.OtelExporterEndpoint)
	if err != nil {
		logger.Error("failed to init tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := tpShutdown(ctx); err != nil {
			logger.Error("failed to shutdown tracer", "error", err)
		}
	}()

	// Storage: Postgres when configured, the SQLite file store otherwise.
	var (
		userRepo ports.UserRepository
		todoRepo ports.TodoRepository
	)
	if cfg.UsesPostgres() {
		dbPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("Unable to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		if err := postgres.RunMigrations(ctx, dbPool, logger); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		observability.StartDBStatsCollector(dbPool)

		userRepo = postgres.NewUserRepository(dbPool)
		todoRepo = postgres.NewTodoRepository(dbPool)
	} else if cfg.DatabaseURL == "memory" {
		store := storagememory.NewStore()
		userRepo = store
		todoRepo = store.Todos()
	} else {
		db, err := sqlite.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Error("Unable to open sqlite store", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		userRepo = sqlite.NewUserRepository(db)
		todoRepo = sqlite.NewTodoRepository(db)
	}

	// Sessions: Redis when configured, in-process otherwise (local only).
	var sessions ports.SessionStore
	if cfg.RedisAddr != "" {
		sessions = sessionredis.NewStore(cfg.RedisAddr)
	} else {
		logger.Warn("REDIS_ADDR not set, sessions will not survive a restart")
		sessions = sessionmemory.NewStore()
	}
	sessions = observability.NewInstrumentedSessionStore(sessions)

	// Service Init
	authSvc := service.NewAuthService(userRepo, sessions, cfg.SessionTTL, logger)
	todoSvc := service.NewTodoService(todoRepo, logger)

	// Views + Handlers
	views, err := web.NewViews()
	if err != nil {
		logger.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}
	cookies := web.NewSessionCookies(cfg.SessionSecret, cfg.SessionTTL)
	todoHandler := web.NewTodoHandler(todoSvc, views, logger)
	authHandler := web.NewAuthHandler(authSvc, cookies, views, logger)

	// Router
	guard := web.AuthGuard(cookies, authSvc)
	router := web.NewRouter(todoHandler, authHandler, guard, web.RequestID, web.Logger(logger), observability.Middleware)

	// Add /metrics endpoint
	// Note: Usually /metrics is on a separate admin port or protected, adding to main mux for simplicity
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	// Graceful Shutdown
	go func() {
		logger.Info("Starting server", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
