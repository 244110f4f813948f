package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/pressly/goose"

	"employeeapi/internal/lib/logger/sl"
)

const sentinelQuery = "SELECT to_regclass('public.employees') IS NOT NULL"

var gooseUp = goose.Up

// EnsureMigrated checks whether the employees table exists and applies the goose
// migrations in dir when it does not.
func EnsureMigrated(ctx context.Context, db *sql.DB, dir string, log *slog.Logger) error {
	log = log.With(sl.Component("database"), slog.String("migrations_dir", dir))
	start := time.Now()

	var exists bool
	if err := db.QueryRowContext(ctx, sentinelQuery).Scan(&exists); err != nil {
		log.Error("db migration check failed", sl.Err(err))
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("schema already exists, skipping migration",
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		return nil
	}

	log.Info("applying migrations")
	if err := gooseUp(db, dir); err != nil {
		log.Error("db migration failed", sl.Err(err),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		return fmt.Errorf("apply migrations: %w", err)
	}

	log.Info("db migration succeeded", slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}
