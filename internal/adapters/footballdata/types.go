package footballdata

// DTOs raw de la API v4 de football-data.org. Solo se usan dentro de este paquete.
// La conversión a domain entities se hace en mapping.go.

// standingsResponse es la respuesta de GET /competitions/PL/standings.
type standingsResponse struct {
	Season    seasonRaw     `json:"season"`
	Standings []standingRaw `json:"standings"`
}

// seasonRaw describe la temporada en curso.
type seasonRaw struct {
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	CurrentMatchday int    `json:"currentMatchday"`
}

// standingRaw es una de las tablas (TOTAL, HOME, AWAY).
type standingRaw struct {
	Type  string     `json:"type"`
	Table []tableRow `json:"table"`
}

// tableRow es una fila de la clasificación.
type tableRow struct {
	Position       int     `json:"position"`
	Team           teamRaw `json:"team"`
	PlayedGames    int     `json:"playedGames"`
	Won            int     `json:"won"`
	Draw           int     `json:"draw"`
	Lost           int     `json:"lost"`
	Points         int     `json:"points"`
	GoalsFor       int     `json:"goalsFor"`
	GoalsAgainst   int     `json:"goalsAgainst"`
	GoalDifference int     `json:"goalDifference"`
}

// teamRaw es un equipo tal y como aparece en tablas y partidos.
type teamRaw struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
	Crest     string `json:"crest"`
}

// matchesResponse es la respuesta de GET /competitions/PL/matches.
type matchesResponse struct {
	Matches []matchRaw `json:"matches"`
}

// matchRaw es un partido de la temporada, en cualquier estado.
type matchRaw struct {
	ID       int      `json:"id"`
	UTCDate  string   `json:"utcDate"`
	Status   string   `json:"status"`
	Matchday int      `json:"matchday"`
	HomeTeam teamRaw  `json:"homeTeam"`
	AwayTeam teamRaw  `json:"awayTeam"`
	Score    scoreRaw `json:"score"`
}

// scoreRaw contiene el marcador; los goles son null si el partido no ha empezado.
type scoreRaw struct {
	Winner   *string  `json:"winner"`
	FullTime goalsRaw `json:"fullTime"`
}

type goalsRaw struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}
