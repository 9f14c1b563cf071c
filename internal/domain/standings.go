package domain

import "sort"

// StandingsRow es la fila derivada de un club seguido. Nunca se persiste:
// siempre se recalcula desde el snapshot base y los resultados actuales.
type StandingsRow struct {
	Club           Club
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int

	Position   int  // 1..4 dentro de la tabla de clubes seguidos
	GlobalRank int  // 3..6, con los dos excluidos por encima
	Qualifies  bool // GlobalRank dentro de las plazas de Champions
}

// ID devuelve el id del club de la fila.
func (r StandingsRow) ID() TeamID {
	return r.Club.Team.ID
}

// Name devuelve el nombre completo del club de la fila.
func (r StandingsRow) Name() string {
	return r.Club.Team.Name
}

// ComputeStandings calcula la tabla ordenada con la convención de goles por defecto.
func ComputeStandings(clubs []Club, fixtures []Fixture) []StandingsRow {
	return ComputeStandingsWith(DefaultScoreline(), clubs, fixtures)
}

// ComputeStandingsWith calcula la tabla ordenada de los clubes dados.
//
// Cada partido resuelto suma 3/1/0 puntos y los goles de la convención sl.
// Los partidos sin resolver no aportan nada. Orden descendente por:
//  1. puntos
//  2. diferencia de goles
//  3. enfrentamiento directo resuelto entre cada par de empatados
//  4. nombre del club (ascendente)
//
// Es una función pura: no modifica clubs ni fixtures.
func ComputeStandingsWith(sl Scoreline, clubs []Club, fixtures []Fixture) []StandingsRow {
	rows := make([]StandingsRow, len(clubs))
	for i, c := range clubs {
		rows[i] = StandingsRow{
			Club:         c,
			Played:       c.Played,
			Won:          c.Won,
			Drawn:        c.Drawn,
			Lost:         c.Lost,
			GoalsFor:     c.GoalsFor,
			GoalsAgainst: c.GoalsAgainst,
			Points:       c.Points,
		}
	}

	for _, f := range fixtures {
		if !f.Outcome.Resolved() {
			continue
		}
		for i := range rows {
			res, ok := f.ResultFor(rows[i].ID())
			if !ok {
				continue
			}
			applyResult(&rows[i], res, sl)
		}
	}

	for i := range rows {
		rows[i].GoalDifference = rows[i].GoalsFor - rows[i].GoalsAgainst
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		return a.Name() < b.Name()
	})

	for start := 0; start < len(rows); {
		end := start + 1
		for end < len(rows) && tiedOnTable(rows[start], rows[end]) {
			end++
		}
		if end-start > 1 {
			breakTieHeadToHead(rows[start:end], fixtures)
		}
		start = end
	}

	for i := range rows {
		rows[i].Position = i + 1
		rows[i].GlobalRank = len(ExcludedClubs) + i + 1
		rows[i].Qualifies = rows[i].GlobalRank <= QualifyingPlaces
	}
	return rows
}

func applyResult(row *StandingsRow, res Result, sl Scoreline) {
	gf, ga := sl.Goals(res)
	row.Played++
	row.GoalsFor += gf
	row.GoalsAgainst += ga
	row.Points += res.Points()
	switch res {
	case Win:
		row.Won++
	case DrawResult:
		row.Drawn++
	default:
		row.Lost++
	}
}

func tiedOnTable(a, b StandingsRow) bool {
	return a.Points == b.Points && a.GoalDifference == b.GoalDifference
}

// breakTieHeadToHead reordena un grupo empatado a puntos y GD.
//
// Cada par se decide por su enfrentamiento directo resuelto; sin él, o con
// empate, decide el nombre. Si esas decisiones forman un orden total se usa
// ese orden. Solo con un ciclo (A>B, B>C, C>A) se recurre a la mini-liga de
// partidos entre ellos y, dentro de ella, al nombre.
// El grupo llega ordenado por nombre.
func breakTieHeadToHead(group []StandingsRow, fixtures []Fixture) {
	if seq, ok := pairwiseOrder(group, fixtures); ok {
		copy(group, seq)
		return
	}
	breakCycleMiniLeague(group, fixtures)
}

// headToHead devuelve los puntos de a menos los de b en sus partidos resueltos.
func headToHead(a, b TeamID, fixtures []Fixture) int {
	diff := 0
	for _, f := range fixtures {
		if !f.Outcome.Resolved() || !f.Involves(a) || !f.Involves(b) {
			continue
		}
		ra, _ := f.ResultFor(a)
		rb, _ := f.ResultFor(b)
		diff += ra.Points() - rb.Points()
	}
	return diff
}

// pairwiseBefore indica si a va antes que b comparando solo ese par.
func pairwiseBefore(a, b StandingsRow, fixtures []Fixture) bool {
	if d := headToHead(a.ID(), b.ID(), fixtures); d != 0 {
		return d > 0
	}
	if a.Name() != b.Name() {
		return a.Name() < b.Name()
	}
	return a.ID() < b.ID()
}

// pairwiseOrder busca la permutación del grupo en la que todo par respeta
// pairwiseBefore. Como cada par está decidido, si existe es única.
func pairwiseOrder(group []StandingsRow, fixtures []Fixture) ([]StandingsRow, bool) {
	n := len(group)
	used := make([]bool, n)
	seq := make([]StandingsRow, 0, n)

	var place func() bool
	place = func() bool {
		if len(seq) == n {
			return true
		}
		for i := range group {
			if used[i] {
				continue
			}
			fits := true
			for _, prev := range seq {
				if !pairwiseBefore(prev, group[i], fixtures) {
					fits = false
					break
				}
			}
			if !fits {
				continue
			}
			used[i] = true
			seq = append(seq, group[i])
			if place() {
				return true
			}
			seq = seq[:len(seq)-1]
			used[i] = false
		}
		return false
	}

	if !place() {
		return nil, false
	}
	return seq, true
}

// breakCycleMiniLeague ordena por puntos en la mini-liga de partidos resueltos
// entre los miembros del grupo. El orden estable conserva el nombre en empates.
func breakCycleMiniLeague(group []StandingsRow, fixtures []Fixture) {
	members := make(map[TeamID]bool, len(group))
	for _, r := range group {
		members[r.ID()] = true
	}

	h2h := make(map[TeamID]int, len(group))
	for _, f := range fixtures {
		if !f.Outcome.Resolved() || !members[f.Home.ID] || !members[f.Away.ID] {
			continue
		}
		for id := range members {
			if res, ok := f.ResultFor(id); ok {
				h2h[id] += res.Points()
			}
		}
	}

	sort.SliceStable(group, func(i, j int) bool {
		return h2h[group[i].ID()] > h2h[group[j].ID()]
	})
}
