package refresh

import (
	"math"

	"github.com/alejandrodnm/top5sim/internal/domain"
	"gonum.org/v1/gonum/stat/distuv"
)

// Medias de goles de la liga cuando todavía no hay partidos terminados.
const (
	fallbackAvgHome = 1.4
	fallbackAvgAway = 1.1

	minLambda = 0.2
	maxLambda = 5.0
	maxGoals  = 6 // rejilla de marcadores 0..6
)

// teamStats son los goles de un equipo en casa y fuera, solo partidos terminados.
type teamStats struct {
	HomeGF, HomeGA, HomeGames int
	AwayGF, AwayGA, AwayGames int
}

// PoissonModel estima probabilidades 1X2 con dos Poisson independientes,
// una por equipo, a partir de su rendimiento en casa y fuera.
type PoissonModel struct {
	stats   map[domain.TeamID]*teamStats
	avgHome float64
	avgAway float64
}

// NewPoissonModel calcula ataque y defensa de cada equipo desde los partidos
// FINISHED con marcador.
func NewPoissonModel(matches []domain.Match) *PoissonModel {
	m := &PoissonModel{stats: make(map[domain.TeamID]*teamStats)}

	var homeGoals, awayGoals, finished int
	for _, match := range matches {
		if match.Status != domain.StatusFinished || !match.HasScore() {
			continue
		}
		hg, ag := *match.HomeGoals, *match.AwayGoals
		homeGoals += hg
		awayGoals += ag
		finished++

		h := m.team(match.Home.ID)
		h.HomeGF += hg
		h.HomeGA += ag
		h.HomeGames++

		a := m.team(match.Away.ID)
		a.AwayGF += ag
		a.AwayGA += hg
		a.AwayGames++
	}

	m.avgHome, m.avgAway = fallbackAvgHome, fallbackAvgAway
	if finished > 0 {
		m.avgHome = float64(homeGoals) / float64(finished)
		m.avgAway = float64(awayGoals) / float64(finished)
	}
	return m
}

func (m *PoissonModel) team(id domain.TeamID) *teamStats {
	s, ok := m.stats[id]
	if !ok {
		s = &teamStats{}
		m.stats[id] = s
	}
	return s
}

// LeagueAverages devuelve los goles medios por partido del local y del visitante.
func (m *PoissonModel) LeagueAverages() (home, away float64) {
	return m.avgHome, m.avgAway
}

// Lambdas devuelve los goles esperados de cada equipo, acotados a [0.2, 5.0].
func (m *PoissonModel) Lambdas(home, away domain.TeamID) (lambdaHome, lambdaAway float64) {
	homeAttack, homeDefense := 1.0, 1.0
	if h, ok := m.stats[home]; ok && h.HomeGames > 0 && m.avgHome > 0 && m.avgAway > 0 {
		homeAttack = perGame(h.HomeGF, h.HomeGames) / m.avgHome
		homeDefense = perGame(h.HomeGA, h.HomeGames) / m.avgAway
	}

	awayAttack, awayDefense := 1.0, 1.0
	if a, ok := m.stats[away]; ok && a.AwayGames > 0 && m.avgHome > 0 && m.avgAway > 0 {
		awayAttack = perGame(a.AwayGF, a.AwayGames) / m.avgAway
		awayDefense = perGame(a.AwayGA, a.AwayGames) / m.avgHome
	}

	lambdaHome = clamp(homeAttack*awayDefense*m.avgHome, minLambda, maxLambda)
	lambdaAway = clamp(awayAttack*homeDefense*m.avgAway, minLambda, maxLambda)
	return lambdaHome, lambdaAway
}

// Probabilities devuelve victoria local, empate y victoria visitante redondeadas
// a dos decimales. Siempre suman 1.00.
func (m *PoissonModel) Probabilities(home, away domain.TeamID) domain.Probabilities {
	lh, la := m.Lambdas(home, away)

	var pw, pd, pl float64
	for hg := 0; hg <= maxGoals; hg++ {
		for ag := 0; ag <= maxGoals; ag++ {
			p := poissonPMF(lh, hg) * poissonPMF(la, ag)
			switch {
			case hg > ag:
				pw += p
			case hg == ag:
				pd += p
			default:
				pl += p
			}
		}
	}

	total := pw + pd + pl
	return roundProbabilities(pw/total, pd/total)
}

// roundProbabilities redondea local y empate; el visitante es el resto.
func roundProbabilities(pw, pd float64) domain.Probabilities {
	home := round2(pw)
	draw := round2(pd)
	away := round2(1 - home - draw)
	if away < 0 {
		away = 0
	}
	return domain.Probabilities{Home: home, Draw: draw, Away: away}
}

func poissonPMF(lambda float64, k int) float64 {
	return distuv.Poisson{Lambda: lambda}.Prob(float64(k))
}

func perGame(goals, games int) float64 {
	return float64(goals) / float64(games)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
