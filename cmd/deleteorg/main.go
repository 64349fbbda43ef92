package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"rapidpro_warehouse/internal/config"
	"rapidpro_warehouse/internal/storage/postgres"
)

// deleteorg removes an organization and everything synced for it. It shows
// the per-collection record counts and asks for confirmation first.
func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	noinput := flag.Bool("noinput", false, "skip the confirmation prompt")
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

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	orgStore := postgres.NewOrganizationStore(db)

	org, err := orgStore.GetByToken(ctx, apiToken)
	if err != nil {
		logger.Error("failed to look up organization", "error", err)
		os.Exit(1)
	}
	if org == nil {
		fmt.Fprintln(os.Stderr, "no organization with that token")
		os.Exit(1)
	}

	counts, err := orgStore.CountsByCollection(ctx, org.ID)
	if err != nil {
		logger.Error("failed to count records", "error", err)
		os.Exit(1)
	}

	fmt.Printf("organization %q (id %d) holds:\n", org.Name, org.ID)
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	var total int64
	for _, name := range names {
		fmt.Printf("  %-24s %d\n", name, counts[name])
		total += counts[name]
	}
	fmt.Printf("  %-24s %d\n", "total", total)

	if !*noinput && !confirm() {
		fmt.Println("aborted")
		return
	}

	tm := postgres.NewTransactionManager(db)
	err = tm.WithTransaction(ctx, func(ctx context.Context) error {
		return orgStore.Delete(ctx, org.ID)
	})
	if err != nil {
		logger.Error("failed to delete organization", "error", err)
		os.Exit(1)
	}

	fmt.Printf("deleted organization %q and %d records\n", org.Name, total)
}

func confirm() bool {
	fmt.Print("delete all of this? [y/N] ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}
