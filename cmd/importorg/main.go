package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"rapidpro_warehouse/internal/config"
	"rapidpro_warehouse/internal/ingest"
	"rapidpro_warehouse/internal/storage/postgres"
	"rapidpro_warehouse/internal/temba"
)

// importorg registers an organization for syncing: it verifies the API
// token against the remote server and stores the org locally.
func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	server := flag.String("server", "", "RapidPro server URL (default from config)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <api_token>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	apiToken := flag.Arg(0)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *server == "" {
		*server = cfg.API.DefaultServer
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	client := temba.NewClient(temba.Config{
		Server:            *server,
		Token:             apiToken,
		Timeout:           cfg.API.Timeout,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		RateRetries:       cfg.API.RateRetries,
		RateWait:          cfg.API.RateWait,
	}, logger)

	orgStore := postgres.NewOrganizationStore(db)
	org, err := ingest.ImportOrg(context.Background(), client, orgStore, *server, apiToken)
	if err != nil {
		logger.Error("failed to import organization", "error", err)
		os.Exit(1)
	}

	fmt.Printf("imported organization %q (id %d) from %s\n", org.Name, org.ID, *server)
}
