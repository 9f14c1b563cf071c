package domain

import (
	"errors"
	"fmt"
	"time"
)

// Dataset son los datos horneados: snapshot base de los clubes y partidos pendientes.
type Dataset struct {
	Season    string    `yaml:"season"`
	Source    string    `yaml:"source"`
	FetchedAt time.Time `yaml:"fetched_at"`
	Clubs     []Club    `yaml:"clubs"`
	Fixtures  []Fixture `yaml:"fixtures"`
}

// Validate comprueba que el dataset sea simulable.
func (d Dataset) Validate() error {
	var errs []error

	if len(d.Clubs) != len(TrackedClubs) {
		errs = append(errs, fmt.Errorf("want %d clubs, got %d", len(TrackedClubs), len(d.Clubs)))
	}
	seenClub := make(map[TeamID]bool, len(d.Clubs))
	for _, c := range d.Clubs {
		if !c.Team.ID.IsTracked() {
			errs = append(errs, fmt.Errorf("club %d (%s) is not tracked", c.Team.ID, c.Team.Name))
		}
		if seenClub[c.Team.ID] {
			errs = append(errs, fmt.Errorf("club %d listed twice", c.Team.ID))
		}
		seenClub[c.Team.ID] = true
		if c.Won+c.Drawn+c.Lost != c.Played {
			errs = append(errs, fmt.Errorf("club %s: W+D+L != played", c.Team.Name))
		}
	}

	if len(d.Fixtures) == 0 {
		errs = append(errs, errors.New("no fixtures"))
	}
	seenFixture := make(map[int]bool, len(d.Fixtures))
	for _, f := range d.Fixtures {
		if f.ID <= 0 || seenFixture[f.ID] {
			errs = append(errs, fmt.Errorf("fixture id %d invalid or duplicated", f.ID))
		}
		seenFixture[f.ID] = true
		if !ValidMatchweek(f.Matchweek) {
			errs = append(errs, fmt.Errorf("fixture %d: matchweek %d out of range", f.ID, f.Matchweek))
		}
		if f.Home.ID == f.Away.ID {
			errs = append(errs, fmt.Errorf("fixture %d: %s plays itself", f.ID, f.Home.Name))
		}
		if !f.Tracked() {
			errs = append(errs, fmt.Errorf("fixture %d: no tracked club", f.ID))
		}
		if !f.Probabilities.IsZero() && !f.Probabilities.Valid() {
			errs = append(errs, fmt.Errorf("fixture %d: probabilities sum to %.2f", f.ID, f.Probabilities.Sum()))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("domain.Dataset.Validate: %w", errors.Join(errs...))
	}
	return nil
}

// Club devuelve el snapshot base del club dado.
func (d Dataset) Club(id TeamID) (Club, bool) {
	for _, c := range d.Clubs {
		if c.Team.ID == id {
			return c, true
		}
	}
	return Club{}, false
}

// Remaining devuelve cuántos partidos pendientes tiene cada club seguido.
func (d Dataset) Remaining() map[TeamID]int {
	out := make(map[TeamID]int, len(d.Clubs))
	for _, f := range d.Fixtures {
		for _, id := range TrackedClubs {
			if f.Involves(id) {
				out[id]++
			}
		}
	}
	return out
}

// MatchweekRange devuelve la primera y última jornada con partidos.
func (d Dataset) MatchweekRange() (first, last int) {
	for i, f := range d.Fixtures {
		if i == 0 || f.Matchweek < first {
			first = f.Matchweek
		}
		if f.Matchweek > last {
			last = f.Matchweek
		}
	}
	return first, last
}
