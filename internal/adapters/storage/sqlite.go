package storage

// sqlite.go: archivo de ejecuciones de -refresh.
//
// Estrategia:
//   - `refresh_runs`: una fila por refresco con el YAML generado completo,
//     para poder comparar o restaurar un dataset anterior.
//   - `refresh_warnings`: los avisos de la validación cruzada, uno por fila.
//   - Prune automático al arrancar: refrescos de más de 180 días.

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alejandrodnm/top5sim/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS refresh_runs (
    id         TEXT PRIMARY KEY,
    fetched_at INTEGER NOT NULL,
    season     TEXT    NOT NULL DEFAULT '',
    matchday   INTEGER NOT NULL DEFAULT 0,
    fixtures   INTEGER NOT NULL DEFAULT 0,
    excluded   INTEGER NOT NULL DEFAULT 0,
    warnings   INTEGER NOT NULL DEFAULT 0,
    dataset    BLOB
);

CREATE TABLE IF NOT EXISTS refresh_warnings (
    run_id  TEXT    NOT NULL,
    seq     INTEGER NOT NULL,
    message TEXT    NOT NULL,
    PRIMARY KEY (run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_runs_at ON refresh_runs(fetched_at DESC);
`

const retentionRuns = 180 * 24 * time.Hour

// SQLiteStorage implementa ports.Storage usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada.
// Aplica el schema y limpia refrescos antiguos.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{db: db}
	s.pruneOld(context.Background(), time.Now())
	return s, nil
}

// SaveRun persiste el refresco y sus avisos en una transacción.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run domain.RefreshRun) error {
	if run.ID == "" {
		return errors.New("storage.SaveRun: empty run id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveRun: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO refresh_runs (id, fetched_at, season, matchday, fixtures, excluded, warnings, dataset)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.FetchedAt.UTC().UnixMilli(), run.Season, run.Matchday,
		run.Fixtures, run.Excluded, len(run.Warnings), run.DatasetYAML,
	); err != nil {
		return fmt.Errorf("storage.SaveRun: insert run %s: %w", run.ID, err)
	}

	for i, w := range run.Warnings {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO refresh_warnings (run_id, seq, message) VALUES (?, ?, ?)`,
			run.ID, i, w,
		); err != nil {
			return fmt.Errorf("storage.SaveRun: insert warning %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveRun: commit: %w", err)
	}
	return nil
}

// LatestRun devuelve el refresco más reciente, con el dataset incluido.
func (s *SQLiteStorage) LatestRun(ctx context.Context) (domain.RefreshRun, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, fetched_at, season, matchday, fixtures, excluded, dataset
		FROM refresh_runs
		ORDER BY fetched_at DESC, rowid DESC
		LIMIT 1`)

	var run domain.RefreshRun
	var fetchedAt int64
	err := row.Scan(&run.ID, &fetchedAt, &run.Season, &run.Matchday, &run.Fixtures, &run.Excluded, &run.DatasetYAML)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RefreshRun{}, false, nil
	}
	if err != nil {
		return domain.RefreshRun{}, false, fmt.Errorf("storage.LatestRun: scan: %w", err)
	}
	run.FetchedAt = time.UnixMilli(fetchedAt).UTC()

	if run.Warnings, err = s.warnings(ctx, run.ID); err != nil {
		return domain.RefreshRun{}, false, fmt.Errorf("storage.LatestRun: %w", err)
	}
	return run, true, nil
}

// ListRuns devuelve los últimos refrescos sin el dataset, del más nuevo al más viejo.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]domain.RefreshRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, fetched_at, season, matchday, fixtures, excluded
		FROM refresh_runs
		ORDER BY fetched_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage.ListRuns: query: %w", err)
	}

	var runs []domain.RefreshRun
	for rows.Next() {
		var run domain.RefreshRun
		var fetchedAt int64
		if err := rows.Scan(&run.ID, &fetchedAt, &run.Season, &run.Matchday, &run.Fixtures, &run.Excluded); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage.ListRuns: scan row: %w", err)
		}
		run.FetchedAt = time.UnixMilli(fetchedAt).UTC()
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("storage.ListRuns: %w", err)
	}
	// Con una sola conexión hay que cerrar el cursor antes de la siguiente query.
	rows.Close()

	for i := range runs {
		if runs[i].Warnings, err = s.warnings(ctx, runs[i].ID); err != nil {
			return nil, fmt.Errorf("storage.ListRuns: %w", err)
		}
	}
	return runs, nil
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// --- helpers internos ---

func (s *SQLiteStorage) warnings(ctx context.Context, runID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT message FROM refresh_warnings WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("query warnings: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			return nil, fmt.Errorf("scan warning: %w", err)
		}
		out = append(out, msg)
	}
	return out, rows.Err()
}

// pruneOld elimina refrescos antiguos para mantener la DB ligera.
func (s *SQLiteStorage) pruneOld(ctx context.Context, now time.Time) {
	cutoff := now.UTC().Add(-retentionRuns).UnixMilli()
	s.db.ExecContext(ctx,
		`DELETE FROM refresh_warnings WHERE run_id IN (SELECT id FROM refresh_runs WHERE fetched_at < ?)`, cutoff)
	s.db.ExecContext(ctx, `DELETE FROM refresh_runs WHERE fetched_at < ?`, cutoff)
}
