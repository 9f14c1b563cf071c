package refresh

import (
	"testing"

	"github.com/alejandrodnm/top5sim/internal/domain"
	"github.com/stretchr/testify/assert"
)

func finished(id int, home, away domain.TeamID, hg, ag int) domain.Match {
	return domain.Match{
		ID:        id,
		Status:    domain.StatusFinished,
		Home:      domain.Team{ID: home},
		Away:      domain.Team{ID: away},
		HomeGoals: &hg,
		AwayGoals: &ag,
	}
}

func TestPoissonModel_Fallbacks(t *testing.T) {
	m := NewPoissonModel(nil)

	home, away := m.LeagueAverages()
	assert.Equal(t, 1.4, home)
	assert.Equal(t, 1.1, away)

	lh, la := m.Lambdas(domain.AstonVilla, domain.Chelsea)
	assert.InDelta(t, 1.4, lh, 1e-9)
	assert.InDelta(t, 1.1, la, 1e-9)

	p := m.Probabilities(domain.AstonVilla, domain.Chelsea)
	assert.InDelta(t, 1.0, p.Sum(), 1e-9)
	assert.Greater(t, p.Home, p.Away)
	assert.True(t, p.Valid())
}

func TestPoissonModel_LambdasClamped(t *testing.T) {
	m := NewPoissonModel([]domain.Match{
		finished(1, 1, 2, 3, 1),
		finished(2, 2, 1, 0, 2),
		{ID: 3, Status: domain.StatusScheduled, Home: domain.Team{ID: 1}, Away: domain.Team{ID: 2}},
	})

	home, away := m.LeagueAverages()
	assert.InDelta(t, 1.5, home, 1e-9)
	assert.InDelta(t, 1.5, away, 1e-9)

	// ataque 2.0 × defensa rival 2.0 × 1.5 = 6.0 → 5.0
	lh, la := m.Lambdas(1, 2)
	assert.Equal(t, 5.0, lh)
	assert.InDelta(t, 2.0/3.0, la, 1e-9)

	p := m.Probabilities(1, 2)
	assert.Greater(t, p.Home, 0.9)
	assert.InDelta(t, 1.0, p.Sum(), 1e-9)
}

func TestPoissonModel_SymmetricTeams(t *testing.T) {
	m := NewPoissonModel([]domain.Match{
		finished(1, 1, 2, 1, 1),
		finished(2, 2, 1, 1, 1),
	})
	lh, la := m.Lambdas(1, 2)
	assert.InDelta(t, lh, la, 1e-9)

	p := m.Probabilities(1, 2)
	assert.InDelta(t, p.Home, p.Away, 0.011)
}

func TestPoissonModel_IgnoresFinishedWithoutScore(t *testing.T) {
	m := NewPoissonModel([]domain.Match{
		{ID: 1, Status: domain.StatusFinished, Home: domain.Team{ID: 1}, Away: domain.Team{ID: 2}},
	})
	home, away := m.LeagueAverages()
	assert.Equal(t, 1.4, home)
	assert.Equal(t, 1.1, away)
}

func TestRoundProbabilities_SumToOne(t *testing.T) {
	p := roundProbabilities(0.333, 0.333)
	assert.Equal(t, domain.Probabilities{Home: 0.33, Draw: 0.33, Away: 0.34}, p)

	p = roundProbabilities(0.996, 0.004)
	assert.Equal(t, 1.0, p.Home)
	assert.Equal(t, 0.0, p.Draw)
	assert.GreaterOrEqual(t, p.Away, 0.0)
}

func TestPoissonPMF(t *testing.T) {
	assert.InDelta(t, 0.36787944, poissonPMF(1, 0), 1e-8)
	assert.InDelta(t, 0.36787944, poissonPMF(1, 1), 1e-8)
	assert.InDelta(t, 0.18393972, poissonPMF(1, 2), 1e-8)
}
