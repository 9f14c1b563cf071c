package refresh

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/alejandrodnm/top5sim/internal/domain"
)

// Source es el origen que se graba en los datasets refrescados.
const Source = "football-data.org"

// Build es el resultado puro de un refresco, antes de escribir nada.
type Build struct {
	Dataset  domain.Dataset
	Warnings []string
	Excluded int
	Clubs    []domain.ClubSchedule
}

// BuildDataset filtra, valida y convierte el feed en un dataset simulable.
//
// Solo se conservan partidos SCHEDULED/TIMED con al menos un club seguido y
// dentro de las jornadas 27-38. Los descuadres entre clasificación y calendario
// se reportan como avisos; solo un dataset inválido es un error.
func BuildDataset(table domain.LeagueTable, matches []domain.Match, fetchedAt time.Time) (Build, error) {
	var b Build

	clubs := make([]domain.Club, 0, len(domain.TrackedClubs))
	for _, id := range domain.TrackedClubs {
		e, ok := table.Entry(id)
		if !ok {
			return Build{}, fmt.Errorf("refresh.BuildDataset: club %d missing from standings", id)
		}
		clubs = append(clubs, e.Club())
	}

	b.Warnings = append(b.Warnings, checkPlayed(clubs, matches)...)

	candidates := trackedUnplayed(matches)
	valid := make([]domain.Match, 0, len(candidates))
	for _, m := range candidates {
		if reason, ok := schedulable(m, matches); !ok {
			b.Warnings = append(b.Warnings, fmt.Sprintf("EXCLUDED: MW%d %s vs %s: %s",
				m.Matchday, m.Home.Label(), m.Away.Label(), reason))
			b.Excluded++
			continue
		}
		valid = append(valid, m)
	}

	sort.SliceStable(valid, func(i, j int) bool {
		a, c := valid[i], valid[j]
		if a.Matchday != c.Matchday {
			return a.Matchday < c.Matchday
		}
		if !a.UTCDate.Equal(c.UTCDate) {
			return a.UTCDate.Before(c.UTCDate)
		}
		return a.ID < c.ID
	})

	model := NewPoissonModel(matches)
	avgHome, avgAway := model.LeagueAverages()
	slog.Debug("poisson model ready", "avg_home", avgHome, "avg_away", avgAway)

	fixtures := make([]domain.Fixture, 0, len(valid))
	for i, m := range valid {
		f := domain.Fixture{
			ID:            i + 1,
			Matchweek:     m.Matchday,
			Home:          m.Home,
			Away:          m.Away,
			Probabilities: model.Probabilities(m.Home.ID, m.Away.ID),
		}
		if !m.UTCDate.IsZero() {
			f.Date = m.UTCDate.UTC().Format("2006-01-02")
		}
		fixtures = append(fixtures, f)
	}

	b.Dataset = domain.Dataset{
		Season:    table.Season,
		Source:    Source,
		FetchedAt: fetchedAt.UTC(),
		Clubs:     clubs,
		Fixtures:  fixtures,
	}
	if err := b.Dataset.Validate(); err != nil {
		return Build{}, fmt.Errorf("refresh.BuildDataset: %w", err)
	}

	remaining := b.Dataset.Remaining()
	for _, c := range clubs {
		cs := domain.ClubSchedule{Team: c.Team, Played: c.Played, Remaining: remaining[c.Team.ID]}
		if cs.Total() > domain.LastMatchweek {
			b.Warnings = append(b.Warnings, fmt.Sprintf("%s: %d played + %d remaining = %d, more than %d",
				c.Team.Name, cs.Played, cs.Remaining, cs.Total(), domain.LastMatchweek))
		}
		b.Clubs = append(b.Clubs, cs)
	}
	return b, nil
}

// trackedUnplayed devuelve los partidos sin jugar con algún club seguido.
func trackedUnplayed(matches []domain.Match) []domain.Match {
	var out []domain.Match
	for _, m := range matches {
		if !m.Status.Unplayed() {
			continue
		}
		if m.Home.ID.IsTracked() || m.Away.ID.IsTracked() {
			out = append(out, m)
		}
	}
	return out
}

// schedulable vuelve a buscar el partido en el calendario completo por
// (jornada, local, visitante). El feed a veces lista un aplazado dos veces.
func schedulable(m domain.Match, all []domain.Match) (string, bool) {
	if !domain.ValidMatchweek(m.Matchday) {
		return fmt.Sprintf("matchday outside %d-%d", domain.FirstMatchweek, domain.LastMatchweek), false
	}
	for _, other := range all {
		if other.Matchday == m.Matchday && other.Home.ID == m.Home.ID && other.Away.ID == m.Away.ID {
			if !other.Status.Unplayed() {
				return fmt.Sprintf("status is %s, not schedulable", other.Status), false
			}
			break
		}
	}
	return "", true
}

// checkPlayed compara los partidos jugados de la clasificación con los
// FINISHED del calendario.
func checkPlayed(clubs []domain.Club, matches []domain.Match) []string {
	var warnings []string
	for _, c := range clubs {
		finished := 0
		for _, m := range matches {
			if m.Status == domain.StatusFinished && m.Involves(c.Team.ID) {
				finished++
			}
		}
		if finished != c.Played {
			warnings = append(warnings, fmt.Sprintf("%s: standings say %d played, but feed shows %d finished matches",
				c.Team.Name, c.Played, finished))
		}
	}
	return warnings
}
