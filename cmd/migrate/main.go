package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/samirrijal/signuis/internal/adapters/postgres"
	"github.com/samirrijal/signuis/internal/pkg/config"
	"github.com/samirrijal/signuis/internal/pkg/logging"
	"github.com/samirrijal/signuis/migrations"
)

const usage = "usage: migrate <up|down [steps]|status|seed>"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load("signuis-migrate")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.Log.Level, "text", "signuis-migrate")

	ctx := context.Background()
	db, err := postgres.New(ctx, cfg.Database.DSN(), 2)
	if err != nil {
		fatal(logger, "db", err)
	}
	defer db.Close()

	all, err := postgres.LoadMigrations(migrations.FS)
	if err != nil {
		fatal(logger, "load migrations", err)
	}

	switch os.Args[1] {
	case "up":
		n, err := postgres.MigrateUp(ctx, db, all)
		if err != nil {
			fatal(logger, "migrate up", err)
		}
		logger.Info("migrations applied", "count", n)

	case "down":
		steps := 1
		if len(os.Args) > 2 {
			if steps, err = strconv.Atoi(os.Args[2]); err != nil || steps <= 0 {
				fatal(logger, "down", fmt.Errorf("steps must be a positive integer, got %q", os.Args[2]))
			}
		}
		n, err := postgres.MigrateDown(ctx, db, all, steps)
		if err != nil {
			fatal(logger, "migrate down", err)
		}
		logger.Info("migrations rolled back", "count", n)

	case "status":
		applied, err := postgres.AppliedVersions(ctx, db)
		if err != nil {
			fatal(logger, "status", err)
		}
		for _, m := range all {
			state := "pending"
			if applied[m.Version] {
				state = "applied"
			}
			fmt.Printf("%-8s %03d_%s\n", state, m.Version, m.Name)
		}

	case "seed":
		if err := postgres.SeedCatalog(ctx, db, postgres.DefaultCatalog); err != nil {
			fatal(logger, "seed", err)
		}
		logger.Info("catalog seeded", "families", len(postgres.DefaultCatalog))

	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
