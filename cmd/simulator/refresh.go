package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/top5sim/config"
	"github.com/alejandrodnm/top5sim/internal/adapters/footballdata"
	"github.com/alejandrodnm/top5sim/internal/adapters/notify"
	"github.com/alejandrodnm/top5sim/internal/adapters/storage"
	"github.com/alejandrodnm/top5sim/internal/refresh"
)

// runRefresh descarga el feed, escribe el dataset y archiva la ejecución.
func runRefresh(ctx context.Context, cfg *config.Config, console *notify.Console) error {
	if cfg.API.Key == "" {
		return errors.New("FOOTBALL_DATA_API_KEY is not set (config api.key or .env)")
	}

	slog.Info("=== REFRESH MODE: football-data.org → dataset ===",
		"base_url", cfg.API.BaseURL,
		"output", cfg.Data.Output,
		"rpm", cfg.API.RequestsPerMinute,
	)

	client := footballdata.NewClient(footballdata.Options{
		BaseURL:           cfg.API.BaseURL,
		APIKey:            cfg.API.Key,
		RequestsPerMinute: cfg.API.RequestsPerMinute,
		Timeout:           cfg.Timeout(),
	})

	store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
	if err != nil {
		return fmt.Errorf("open storage %q: %w", cfg.Storage.DSN, err)
	}
	defer store.Close()

	if prev, ok, err := store.LatestRun(ctx); err != nil {
		slog.Warn("could not read previous refresh", "err", err)
	} else if ok {
		slog.Info("previous refresh",
			"run", prev.ID,
			"fetched_at", prev.FetchedAt.Format("2006-01-02 15:04"),
			"matchday", prev.Matchday,
			"warnings", len(prev.Warnings),
		)
	}

	report, err := refresh.New(client, store).Run(ctx, cfg.Data.Output)
	if err != nil {
		return err
	}

	console.PrintRefreshReport(report)
	slog.Info("refresh complete", "run", report.RunID, "warnings", len(report.Warnings))
	return nil
}
