package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"rapidpro_warehouse/internal/cache"
	"rapidpro_warehouse/internal/config"
	"rapidpro_warehouse/internal/ingest"
	"rapidpro_warehouse/internal/notifier"
	"rapidpro_warehouse/internal/scheduler"
	"rapidpro_warehouse/internal/storage/postgres"
)

type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func main() {
	var orgTokens, collections stringList
	configPath := flag.String("config", "config.yaml", "path to config file")
	once := flag.Bool("once", false, "run a single sync batch and exit")
	flag.Var(&orgTokens, "org", "API token of an organization to sync (repeatable; default all active)")
	flag.Var(&collections, "collection", "collection to sync (repeatable; default all)")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	events, err := notifier.NewRabbitMQ(cfg.RabbitMQ, logger)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer events.Close()

	checkpointStore := postgres.NewCheckpointStore(db)
	recordStore := postgres.NewRecordStore(db)
	orgStore := postgres.NewOrganizationStore(db)

	var resolutionCache ingest.ResolutionCache
	if cfg.Redis.Addr != "" {
		resolutionCache = cache.NewRedisCache(cfg.Redis)
		logger.Info("resolution cache enabled", "addr", cfg.Redis.Addr)
	}

	engine := ingest.NewEngine(
		checkpointStore,
		recordStore,
		ingest.NewTembaFactory(cfg.API, logger),
		resolutionCache,
		cfg.Sync,
		logger,
	)

	sched := scheduler.NewScheduler(engine, orgStore, events, cfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if *once {
		if err := sched.RunOnce(ctx, orgTokens, collections); err != nil {
			logger.Error("sync batch failed", "error", err)
			os.Exit(1)
		}
		fmt.Println("sync batch finished")
		return
	}

	if len(orgTokens) > 0 || len(collections) > 0 {
		logger.Error("-org and -collection require -once")
		os.Exit(1)
	}

	logger.Info("starting warehouse syncer",
		"interval", cfg.Sync.Interval,
		"use_archives", cfg.Sync.UseArchives,
	)

	if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
