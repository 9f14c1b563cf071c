package main

import (
	"context"
	"fmt"

	"github.com/alejandrodnm/top5sim/config"
	"github.com/alejandrodnm/top5sim/internal/adapters/notify"
	"github.com/alejandrodnm/top5sim/internal/adapters/storage"
)

const historyLimit = 20

// runHistory lista los refrescos archivados.
func runHistory(ctx context.Context, cfg *config.Config, console *notify.Console) error {
	store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
	if err != nil {
		return fmt.Errorf("open storage %q: %w", cfg.Storage.DSN, err)
	}
	defer store.Close()

	runs, err := store.ListRuns(ctx, historyLimit)
	if err != nil {
		return err
	}
	console.PrintHistory(runs)
	return nil
}
