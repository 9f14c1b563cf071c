// Package session conecta los eventos del usuario con la PredictionStore y el Notifier.
//
// Cada evento sigue el mismo camino: mutador → recálculo completo de la tabla →
// notificación. No hay caché: 4 filas × 42 partidos se recalculan en microsegundos.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alejandrodnm/top5sim/internal/domain"
	"github.com/alejandrodnm/top5sim/internal/ports"
	"github.com/alejandrodnm/top5sim/internal/predictions"
)

// ErrQuit lo devuelve Dispatch al recibir Quit.
var ErrQuit = errors.New("session: quit")

// Session es el estado de una sesión interactiva. Tiene un único dueño.
type Session struct {
	clubs     []domain.Club
	store     *predictions.Store
	notifier  ports.Notifier
	scoreline domain.Scoreline
}

// New crea una sesión sobre los clubes del dataset y una store ya cargada.
func New(clubs []domain.Club, store *predictions.Store, notifier ports.Notifier, sl domain.Scoreline) *Session {
	cs := make([]domain.Club, len(clubs))
	copy(cs, clubs)
	return &Session{
		clubs:     cs,
		store:     store,
		notifier:  notifier,
		scoreline: sl,
	}
}

// Standings recalcula la tabla y el veredicto desde el estado actual.
func (s *Session) Standings() domain.Qualification {
	fixtures := s.store.Fixtures()
	rows := domain.ComputeStandingsWith(s.scoreline, s.clubs, fixtures)
	return domain.Verdict(rows, fixtures)
}

// Dispatch aplica un evento y notifica el resultado.
// Los eventos inválidos devuelven error sin cambiar el estado.
func (s *Session) Dispatch(ctx context.Context, ev Event) error {
	switch e := ev.(type) {
	case Pick:
		if err := s.store.SetOutcome(e.FixtureID, e.Outcome); err != nil {
			return fmt.Errorf("session.Dispatch: %w", err)
		}
		if f, ok := s.store.Fixture(e.FixtureID); ok {
			slog.Debug("prediction set", "fixture", f.ID, "match", f.Label(), "outcome", e.Outcome)
		}
		return s.render(ctx)

	case SimulateWeek:
		n, err := s.store.SimulateWeek(e.Matchweek)
		if err != nil {
			return fmt.Errorf("session.Dispatch: %w", err)
		}
		slog.Debug("matchweek simulated", "matchweek", e.Matchweek, "filled", n)
		if err := s.notifier.NotifyWeek(ctx, e.Matchweek, s.store.Week(e.Matchweek)); err != nil {
			return err
		}
		return s.render(ctx)

	case SimulateAll:
		n := s.store.SimulateAll()
		slog.Debug("remaining fixtures simulated", "filled", n)
		if err := s.notifier.NotifyMessage(ctx, fmt.Sprintf("simulated %d remaining fixtures", n)); err != nil {
			return err
		}
		return s.render(ctx)

	case Reset:
		s.store.ResetAll()
		slog.Debug("predictions reset")
		return s.render(ctx)

	case ShowWeek:
		week := s.store.Week(e.Matchweek)
		if len(week) == 0 {
			return fmt.Errorf("session.Dispatch: week %d: %w", e.Matchweek, predictions.ErrInvalidMatchweek)
		}
		return s.notifier.NotifyWeek(ctx, e.Matchweek, week)

	case ShowTable:
		return s.render(ctx)

	case Explain:
		return s.notifier.NotifyExplainer(ctx)

	case Help:
		return s.notifier.NotifyHelp(ctx)

	case Quit:
		return ErrQuit
	}
	return fmt.Errorf("session.Dispatch: %T: %w", ev, ErrUnknownCommand)
}

// render notifica la tabla y, solo si el veredicto es definitivo, el banner.
func (s *Session) render(ctx context.Context) error {
	q := s.Standings()
	if err := s.notifier.NotifyStandings(ctx, q); err != nil {
		return err
	}
	if q.Final {
		return s.notifier.NotifyBanner(ctx, q)
	}
	return nil
}

// Run lee comandos de r hasta EOF, quit o cancelación del contexto.
// Los comandos inválidos se registran y se ignoran.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	if err := s.render(ctx); err != nil {
		return err
	}

	lines := make(chan string)
	scanErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session stopped (signal)")
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("session.Run: read input: %w", err)
					}
				default:
				}
				return nil
			}
			if err := s.handleLine(ctx, line); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
		}
	}
}

// handleLine parsea y despacha una línea. Solo devuelve ErrQuit o errores del Notifier.
func (s *Session) handleLine(ctx context.Context, line string) error {
	ev, err := ParseCommand(line)
	if err != nil {
		slog.Warn("ignoring command", "line", line, "err", err)
		return s.notifier.NotifyMessage(ctx, "unknown command, type 'help'")
	}
	if ev == nil {
		return nil
	}

	err = s.Dispatch(ctx, ev)
	switch {
	case err == nil, errors.Is(err, ErrQuit):
		return err
	case errors.Is(err, predictions.ErrUnknownFixture),
		errors.Is(err, predictions.ErrInvalidOutcome),
		errors.Is(err, predictions.ErrInvalidMatchweek):
		slog.Warn("ignoring event", "line", line, "err", err)
		return s.notifier.NotifyMessage(ctx, err.Error())
	}
	return err
}
