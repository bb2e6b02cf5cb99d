package postgres

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrations, in order. Each script is idempotent (IF NOT EXISTS) so applying
// on every startup is safe.
var migrationFiles = []string{
	"migrations/000001_create_users_table.up.sql",
	"migrations/000002_create_todos_table.up.sql",
}

// RunMigrations executes the embedded SQL migration files.
func RunMigrations(ctx context.Context, db *pgxpool.Pool, logger *slog.Logger) error {
	logger.Info("running database migrations")

	for _, name := range migrationFiles {
		content, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := db.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", name, err)
		}
	}

	logger.Info("migrations completed successfully")
	return nil
}
