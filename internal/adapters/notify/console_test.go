package notify_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/alejandrodnm/top5sim/internal/adapters/notify"
	"github.com/alejandrodnm/top5sim/internal/dataset"
	"github.com/alejandrodnm/top5sim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bakedVerdict(t *testing.T, resolveAll bool) domain.Qualification {
	t.Helper()
	d, err := dataset.Baked()
	require.NoError(t, err)
	if resolveAll {
		for i := range d.Fixtures {
			d.Fixtures[i].Outcome = domain.Draw
		}
	}
	return domain.Verdict(domain.ComputeStandings(d.Clubs, d.Fixtures), d.Fixtures)
}

func TestConsole_NotifyStandings(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, domain.DefaultScoreline())

	require.NoError(t, c.NotifyStandings(context.Background(), bakedVerdict(t, false)))

	out := buf.String()
	assert.Contains(t, out, "PROVISIONAL (0/42 predicted)")
	assert.Contains(t, out, "Aston Villa FC")
	assert.Contains(t, out, "Liverpool FC")
	assert.Contains(t, out, "+20") // GD de Chelsea
	assert.Contains(t, out, "out")
	assert.Less(t, strings.Index(out, "Aston Villa FC"), strings.Index(out, "Liverpool FC"))
}

func TestConsole_NotifyWeek(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, domain.DefaultScoreline())

	fixtures := []domain.Fixture{
		{
			ID: 9, Matchweek: 28, Date: "2026-03-07T15:00:00Z",
			Home:          domain.Team{ID: domain.ManUnited, Name: "Manchester United FC", ShortName: "Man United"},
			Away:          domain.Team{ID: domain.AstonVilla, Name: "Aston Villa FC", ShortName: "Aston Villa"},
			Probabilities: domain.Probabilities{Home: 0.41, Draw: 0.27, Away: 0.32},
			Outcome:       domain.AwayWin,
		},
		{
			ID: 10, Matchweek: 28,
			Home:          domain.Team{ID: domain.Liverpool, Name: "Liverpool FC"},
			Away:          domain.Team{ID: 76, Name: "Wolverhampton Wanderers FC"},
			Probabilities: domain.DefaultProbabilities,
		},
	}

	require.NoError(t, c.NotifyWeek(context.Background(), 28, fixtures))

	out := buf.String()
	assert.Contains(t, out, "MATCHWEEK 28")
	assert.Contains(t, out, "2026-03-07")
	assert.Contains(t, out, "A Aston Villa")
	assert.Contains(t, out, "41%")
	assert.Contains(t, out, "TBD")
	assert.Contains(t, out, "Wolverhampton W...")
	assert.NotContains(t, out, "Wanderers FC")
}

func TestConsole_NotifyWeek_TruncatesByRune(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, domain.DefaultScoreline())

	// "Real Sociedad " ocupa 14 bytes: un corte por bytes partiría la É.
	fixtures := []domain.Fixture{{
		ID: 3, Matchweek: 29,
		Home:          domain.Team{ID: 92, Name: "Real Sociedad Émile Fútbol Club"},
		Away:          domain.Team{ID: domain.Chelsea, Name: "Chelsea FC"},
		Probabilities: domain.DefaultProbabilities,
	}}

	require.NoError(t, c.NotifyWeek(context.Background(), 29, fixtures))

	out := buf.String()
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, "Real Sociedad É...")
}

func TestConsole_NotifyBanner(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, domain.DefaultScoreline())

	q := bakedVerdict(t, true)
	require.True(t, q.Final)
	require.NoError(t, c.NotifyBanner(context.Background(), q))

	out := buf.String()
	assert.Contains(t, out, "FINAL: "+q.MissesOut.Team.Name+" misses out")
	for _, club := range q.Qualified() {
		assert.Contains(t, out, club.Team.Name)
	}
}

func TestConsole_ExplainerUsesScoreline(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, domain.Scoreline{WinFor: 2, WinAgainst: 1, DrawGoals: 0})

	require.NoError(t, c.NotifyExplainer(context.Background()))
	assert.Contains(t, buf.String(), "2-1 for a win and 0-0 for a draw")
}

func TestConsole_PrintRefreshReport(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, domain.DefaultScoreline())

	c.PrintRefreshReport(domain.RefreshReport{
		RunID:    "6f1c2a9e-0000-4000-8000-000000000000",
		Season:   "2025-26",
		Matchday: 27,
		Output:   "season.yaml",
		Fixtures: 42,
		Excluded: 1,
		FirstMW:  27,
		LastMW:   38,
		Clubs: []domain.ClubSchedule{
			{Team: domain.Team{Name: "Aston Villa FC"}, Played: 26, Remaining: 12},
			{Team: domain.Team{Name: "Chelsea FC"}, Played: 27, Remaining: 12},
		},
		Warnings: []string{"Chelsea FC: standings played 27 but 26 finished matches"},
	})

	out := buf.String()
	assert.Contains(t, out, "REFRESH 6f1c2a9e")
	assert.Contains(t, out, "MW27-MW38")
	assert.Contains(t, out, "39 !")
	assert.Contains(t, out, "WARNINGS (1)")
}

func TestConsole_PrintHistory(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, domain.DefaultScoreline())

	c.PrintHistory(nil)
	assert.Contains(t, buf.String(), "No refresh runs")

	buf.Reset()
	c.PrintHistory([]domain.RefreshRun{{
		ID:        "abcdef0123456789",
		FetchedAt: time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC),
		Season:    "2025-26",
		Matchday:  27,
		Fixtures:  42,
		Warnings:  []string{"a", "b"},
	}})
	out := buf.String()
	assert.Contains(t, out, "abcdef01")
	assert.Contains(t, out, "2026-02-27 09:00")
}

func TestConsole_NotifyMessage(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, domain.DefaultScoreline())
	require.NoError(t, c.NotifyMessage(context.Background(), "hello"))
	assert.Equal(t, "  >> hello\n", buf.String())
}
