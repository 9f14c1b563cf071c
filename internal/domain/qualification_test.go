package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerdict_ProvisionalWithOneUnresolved(t *testing.T) {
	fixtures := make([]Fixture, 0, 42)
	for i := 1; i <= 42; i++ {
		fixtures = append(fixtures, fixture(i, FirstMatchweek+(i-1)/4, villa, wol, Draw))
	}
	fixtures[41].Outcome = Unresolved

	q := Verdict(ComputeStandings(baselineClubs(), fixtures), fixtures)

	assert.False(t, q.Final)
	assert.True(t, q.Provisional())
	assert.Equal(t, 41, q.Resolved)
	assert.Equal(t, 42, q.Total)
	assert.Contains(t, q.Status(), "PROVISIONAL")
}

func TestVerdict_FinalWhenAllResolved(t *testing.T) {
	fixtures := []Fixture{
		fixture(1, 27, villa, wol, AwayWin),
		fixture(2, 27, liv, whu, HomeWin),
		fixture(3, 27, che, bou, HomeWin),
		fixture(4, 27, utd, bou, AwayWin),
	}

	rows := ComputeStandings(baselineClubs(), fixtures)
	q := Verdict(rows, fixtures)

	require.True(t, q.Final)
	assert.Equal(t, "FINAL", q.Status())
	// Villa 50, Chelsea 50, Liverpool 48, Utd 48 (GD 7)
	assert.Equal(t, ManUnited, q.MissesOut.Team.ID)

	qualified := q.Qualified()
	require.Len(t, qualified, 3)
	assert.Equal(t, Chelsea, qualified[0].Team.ID)
	assert.Equal(t, AstonVilla, qualified[1].Team.ID)
	assert.Equal(t, Liverpool, qualified[2].Team.ID)
}
