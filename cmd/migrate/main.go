// Package main is the CLI for applying warehouse schema migrations.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"rapidpro_warehouse/internal/config"
	"rapidpro_warehouse/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	action := flag.String("action", "up", "migration action: up, down, version")
	path := flag.String("path", "migrations/postgres", "path to migration files")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	databaseURL := cfg.Database.URL()

	switch *action {
	case "up":
		if err := postgres.RunMigrations(databaseURL, *path); err != nil {
			logger.Error("migration failed", "error", err)
			os.Exit(1)
		}
		fmt.Println("migrations applied")
	case "down":
		if err := postgres.RollbackMigrations(databaseURL, *path); err != nil {
			logger.Error("rollback failed", "error", err)
			os.Exit(1)
		}
		fmt.Println("last migration rolled back")
	case "version":
		version, dirty, err := postgres.MigrationVersion(databaseURL, *path)
		if err != nil {
			logger.Error("reading version failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("version %d (dirty: %v)\n", version, dirty)
	default:
		fmt.Fprintf(os.Stderr, "unknown action %q\n", *action)
		os.Exit(2)
	}
}
