package footballdata

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/top5sim/internal/domain"
)

// totalTable devuelve la tabla TOTAL (o la primera si la API no trae tipo).
func totalTable(raw standingsResponse) ([]tableRow, bool) {
	for _, s := range raw.Standings {
		if s.Type == "TOTAL" {
			return s.Table, true
		}
	}
	if len(raw.Standings) > 0 {
		return raw.Standings[0].Table, true
	}
	return nil, false
}

// mapStandings convierte la tabla TOTAL a domain.StandingEntry.
func mapStandings(rows []tableRow) []domain.StandingEntry {
	entries := make([]domain.StandingEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, domain.StandingEntry{
			Team:         mapTeam(r.Team),
			Played:       r.PlayedGames,
			Won:          r.Won,
			Drawn:        r.Draw,
			Lost:         r.Lost,
			GoalsFor:     r.GoalsFor,
			GoalsAgainst: r.GoalsAgainst,
			Points:       r.Points,
		})
	}
	return entries
}

// mapMatches convierte los partidos. Los que traen fecha ilegible se conservan
// con fecha cero: siguen contando para la validación cruzada.
func mapMatches(raw []matchRaw) []domain.Match {
	matches := make([]domain.Match, 0, len(raw))
	for _, r := range raw {
		m := domain.Match{
			ID:        r.ID,
			Matchday:  r.Matchday,
			Status:    domain.MatchStatus(r.Status),
			Home:      mapTeam(r.HomeTeam),
			Away:      mapTeam(r.AwayTeam),
			HomeGoals: r.Score.FullTime.Home,
			AwayGoals: r.Score.FullTime.Away,
		}
		if t, err := time.Parse(time.RFC3339, r.UTCDate); err == nil {
			m.UTCDate = t
		} else if r.UTCDate != "" {
			slog.Debug("unparseable match date", "match", r.ID, "date", r.UTCDate)
		}
		matches = append(matches, m)
	}
	return matches
}

func mapTeam(t teamRaw) domain.Team {
	return domain.Team{ID: domain.TeamID(t.ID), Name: t.Name, ShortName: t.ShortName}
}

// seasonLabel convierte "2025-08-15".."2026-05-24" en "2025-26".
func seasonLabel(s seasonRaw) string {
	start, err1 := time.Parse("2006-01-02", s.StartDate)
	end, err2 := time.Parse("2006-01-02", s.EndDate)
	if err1 != nil || err2 != nil {
		return ""
	}
	return fmt.Sprintf("%d-%02d", start.Year(), end.Year()%100)
}
