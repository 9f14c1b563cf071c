package domain

import "time"

// MatchStatus es el estado de un partido en el feed de football-data.org.
type MatchStatus string

const (
	StatusScheduled MatchStatus = "SCHEDULED"
	StatusTimed     MatchStatus = "TIMED"
	StatusInPlay    MatchStatus = "IN_PLAY"
	StatusPaused    MatchStatus = "PAUSED"
	StatusFinished  MatchStatus = "FINISHED"
	StatusPostponed MatchStatus = "POSTPONED"
)

// Unplayed devuelve true si el partido todavía se puede simular.
func (s MatchStatus) Unplayed() bool {
	return s == StatusScheduled || s == StatusTimed
}

// StandingEntry es una fila de la clasificación oficial.
type StandingEntry struct {
	Team         Team
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	Points       int
}

// LeagueTable es la clasificación oficial completa en un momento dado.
type LeagueTable struct {
	Season          string // "2025-26"
	CurrentMatchday int
	Entries         []StandingEntry
}

// Entry busca la fila de un equipo.
func (t LeagueTable) Entry(id TeamID) (StandingEntry, bool) {
	for _, e := range t.Entries {
		if e.Team.ID == id {
			return e, true
		}
	}
	return StandingEntry{}, false
}

// Club convierte la fila oficial en snapshot base.
func (e StandingEntry) Club() Club {
	return Club{
		Team:         e.Team,
		Played:       e.Played,
		Won:          e.Won,
		Drawn:        e.Drawn,
		Lost:         e.Lost,
		GoalsFor:     e.GoalsFor,
		GoalsAgainst: e.GoalsAgainst,
		Points:       e.Points,
	}
}

// Match es un partido de la temporada tal y como lo devuelve el feed.
// HomeGoals/AwayGoals son nil si no hay marcador final.
type Match struct {
	ID        int
	Matchday  int
	UTCDate   time.Time
	Status    MatchStatus
	Home      Team
	Away      Team
	HomeGoals *int
	AwayGoals *int
}

// HasScore devuelve true si el partido tiene marcador final.
func (m Match) HasScore() bool {
	return m.HomeGoals != nil && m.AwayGoals != nil
}

// Involves devuelve true si el equipo juega el partido.
func (m Match) Involves(id TeamID) bool {
	return m.Home.ID == id || m.Away.ID == id
}

// RefreshRun es el resumen archivado de una ejecución de -refresh.
type RefreshRun struct {
	ID          string
	FetchedAt   time.Time
	Season      string
	Matchday    int
	Fixtures    int
	Excluded    int
	Warnings    []string
	DatasetYAML []byte
}

// ClubSchedule son los partidos jugados y pendientes de un club tras un refresco.
type ClubSchedule struct {
	Team      Team
	Played    int
	Remaining int
}

// Total es jugados + pendientes; en una liga de 20 nunca pasa de 38.
func (c ClubSchedule) Total() int {
	return c.Played + c.Remaining
}

// RefreshReport resume un refresco para la consola.
type RefreshReport struct {
	RunID    string
	Season   string
	Matchday int
	Output   string
	Fixtures int
	Excluded int
	FirstMW  int
	LastMW   int
	Clubs    []ClubSchedule
	Warnings []string
}
