// Package refresh descarga clasificación y calendario, los valida entre sí
// y genera un dataset nuevo para el simulador.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alejandrodnm/top5sim/internal/dataset"
	"github.com/alejandrodnm/top5sim/internal/domain"
	"github.com/alejandrodnm/top5sim/internal/ports"
	"github.com/google/uuid"
)

// Refresher orquesta un refresco: feed → BuildDataset → YAML → archivo.
type Refresher struct {
	feed    ports.FeedProvider
	storage ports.Storage
	now     func() time.Time
}

// New crea un Refresher. storage puede ser nil: entonces no se archiva nada.
func New(feed ports.FeedProvider, storage ports.Storage) *Refresher {
	return &Refresher{feed: feed, storage: storage, now: time.Now}
}

// WithClock sustituye el reloj (para tests).
func (r *Refresher) WithClock(now func() time.Time) *Refresher {
	r.now = now
	return r
}

// Run ejecuta el refresco completo y escribe el dataset en output.
// Un fallo al archivar se registra pero no invalida el dataset ya escrito.
func (r *Refresher) Run(ctx context.Context, output string) (domain.RefreshReport, error) {
	table, matches, err := r.fetchFeed(ctx)
	if err != nil {
		return domain.RefreshReport{}, fmt.Errorf("refresh.Run: %w", err)
	}
	slog.Info("feed fetched",
		"season", table.Season,
		"matchday", table.CurrentMatchday,
		"teams", len(table.Entries),
		"matches", len(matches),
	)

	fetchedAt := r.now().UTC()
	b, err := BuildDataset(table, matches, fetchedAt)
	if err != nil {
		return domain.RefreshReport{}, fmt.Errorf("refresh.Run: %w", err)
	}
	for _, w := range b.Warnings {
		slog.Warn("refresh check", "warning", w)
	}

	// BuildDataset ya validó: lo archivado y lo escrito son los mismos bytes.
	data, err := dataset.Marshal(b.Dataset)
	if err != nil {
		return domain.RefreshReport{}, fmt.Errorf("refresh.Run: %w", err)
	}
	if err := dataset.WriteBytes(output, data); err != nil {
		return domain.RefreshReport{}, fmt.Errorf("refresh.Run: %w", err)
	}

	first, last := b.Dataset.MatchweekRange()
	report := domain.RefreshReport{
		RunID:    uuid.New().String(),
		Season:   table.Season,
		Matchday: table.CurrentMatchday,
		Output:   output,
		Fixtures: len(b.Dataset.Fixtures),
		Excluded: b.Excluded,
		FirstMW:  first,
		LastMW:   last,
		Clubs:    b.Clubs,
		Warnings: b.Warnings,
	}
	slog.Info("dataset written", "run", report.RunID, "path", output, "fixtures", report.Fixtures, "excluded", report.Excluded)

	if r.storage != nil {
		run := domain.RefreshRun{
			ID:          report.RunID,
			FetchedAt:   fetchedAt,
			Season:      report.Season,
			Matchday:    report.Matchday,
			Fixtures:    report.Fixtures,
			Excluded:    report.Excluded,
			Warnings:    report.Warnings,
			DatasetYAML: data,
		}
		if err := r.storage.SaveRun(ctx, run); err != nil {
			slog.Warn("failed to archive refresh run", "run", run.ID, "err", err)
		}
	}
	return report, nil
}

// fetchFeed pide clasificación y calendario en paralelo; el rate limiter del
// cliente sigue acotando el ritmo real.
func (r *Refresher) fetchFeed(ctx context.Context) (domain.LeagueTable, []domain.Match, error) {
	var (
		wg         sync.WaitGroup
		table      domain.LeagueTable
		matches    []domain.Match
		tableErr   error
		matchesErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		table, tableErr = r.feed.FetchStandings(ctx)
	}()
	go func() {
		defer wg.Done()
		matches, matchesErr = r.feed.FetchMatches(ctx)
	}()
	wg.Wait()

	if err := errors.Join(tableErr, matchesErr); err != nil {
		return domain.LeagueTable{}, nil, err
	}
	return table, matches, nil
}
