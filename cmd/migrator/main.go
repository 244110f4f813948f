package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/pressly/goose"

	"employeeapi/internal/config"
	"employeeapi/internal/database"
	"employeeapi/internal/lib/logger/sl"
)

// Usage: migrator [up|down|status|version|redo|reset] (default: up)
func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(sl.Component("migrator"))

	command := "up"
	var args []string
	if len(os.Args) > 1 {
		command = os.Args[1]
		args = os.Args[2:]
	}

	if err := run(command, args); err != nil {
		log.Error("migration failed", slog.String("command", command), sl.Err(err))
		os.Exit(1)
	}

	log.Info("migration command completed", slog.String("command", command))
}

func run(command string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.NewPostgres(context.Background(), cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Run(command, db, cfg.Database.MigrationsDir, args...)
}
