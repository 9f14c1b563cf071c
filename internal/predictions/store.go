// Package predictions guarda el estado mutable de la sesión: un Outcome por partido.
package predictions

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/alejandrodnm/top5sim/internal/domain"
)

var (
	ErrUnknownFixture   = errors.New("unknown fixture")
	ErrInvalidOutcome   = errors.New("invalid outcome")
	ErrInvalidMatchweek = errors.New("invalid matchweek")
)

// Store contiene una copia privada de los partidos con su predicción actual.
// Tiene un único dueño (la sesión), por eso no lleva mutex.
type Store struct {
	fixtures []domain.Fixture
	index    map[int]int // fixture ID → posición en fixtures
	picker   Picker
}

// NewStore copia los partidos y los deja todos sin resolver.
func NewStore(fixtures []domain.Fixture, picker Picker) *Store {
	s := &Store{
		fixtures: make([]domain.Fixture, len(fixtures)),
		index:    make(map[int]int, len(fixtures)),
		picker:   picker,
	}
	copy(s.fixtures, fixtures)
	for i := range s.fixtures {
		s.fixtures[i].Outcome = domain.Unresolved
		s.index[s.fixtures[i].ID] = i
	}
	return s
}

// SetOutcome fija la predicción de un partido. Unresolved borra la predicción.
// Con un id inexistente o un resultado fuera de rango no cambia nada.
func (s *Store) SetOutcome(fixtureID int, o domain.Outcome) error {
	i, ok := s.index[fixtureID]
	if !ok {
		return fmt.Errorf("predictions.SetOutcome: fixture %d: %w", fixtureID, ErrUnknownFixture)
	}
	if !o.Valid() {
		return fmt.Errorf("predictions.SetOutcome: %s: %w", o, ErrInvalidOutcome)
	}
	s.fixtures[i].Outcome = o
	return nil
}

// ResetAll deja todos los partidos sin resolver.
func (s *Store) ResetAll() {
	for i := range s.fixtures {
		s.fixtures[i].Outcome = domain.Unresolved
	}
}

// SimulateAll rellena con el picker los partidos sin resolver.
// Nunca sobreescribe una predicción existente. Devuelve cuántos rellenó.
func (s *Store) SimulateAll() int {
	return s.fill(func(domain.Fixture) bool { return true })
}

// SimulateWeek aplica la misma regla que SimulateAll a una sola jornada.
func (s *Store) SimulateWeek(matchweek int) (int, error) {
	if !domain.ValidMatchweek(matchweek) {
		return 0, fmt.Errorf("predictions.SimulateWeek: %d not in %d-%d: %w",
			matchweek, domain.FirstMatchweek, domain.LastMatchweek, ErrInvalidMatchweek)
	}
	return s.fill(func(f domain.Fixture) bool { return f.Matchweek == matchweek }), nil
}

func (s *Store) fill(match func(domain.Fixture) bool) int {
	filled := 0
	for i, f := range s.fixtures {
		if f.Outcome.Resolved() || !match(f) {
			continue
		}
		o := s.picker.Pick(f)
		if !o.Resolved() {
			slog.Warn("picker returned an unresolved outcome, skipping", "fixture", f.ID, "outcome", o)
			continue
		}
		s.fixtures[i].Outcome = o
		filled++
	}
	return filled
}

// Fixtures devuelve una copia del estado actual.
func (s *Store) Fixtures() []domain.Fixture {
	out := make([]domain.Fixture, len(s.fixtures))
	copy(out, s.fixtures)
	return out
}

// Fixture devuelve un partido por id.
func (s *Store) Fixture(id int) (domain.Fixture, bool) {
	i, ok := s.index[id]
	if !ok {
		return domain.Fixture{}, false
	}
	return s.fixtures[i], true
}

// Week devuelve los partidos de una jornada.
func (s *Store) Week(matchweek int) []domain.Fixture {
	var out []domain.Fixture
	for _, f := range s.fixtures {
		if f.Matchweek == matchweek {
			out = append(out, f)
		}
	}
	return out
}

// Matchweeks devuelve las jornadas con partidos, en orden.
func (s *Store) Matchweeks() []int {
	seen := make(map[int]bool)
	var out []int
	for _, f := range s.fixtures {
		if !seen[f.Matchweek] {
			seen[f.Matchweek] = true
			out = append(out, f.Matchweek)
		}
	}
	sort.Ints(out)
	return out
}

// Resolved devuelve cuántos partidos tienen predicción.
func (s *Store) Resolved() int {
	return domain.CountResolved(s.fixtures)
}

// Len devuelve el número total de partidos.
func (s *Store) Len() int {
	return len(s.fixtures)
}

// Complete devuelve true si todos los partidos tienen predicción.
func (s *Store) Complete() bool {
	return s.Resolved() == len(s.fixtures)
}
