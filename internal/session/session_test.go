package session_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alejandrodnm/top5sim/internal/dataset"
	"github.com/alejandrodnm/top5sim/internal/domain"
	"github.com/alejandrodnm/top5sim/internal/predictions"
	"github.com/alejandrodnm/top5sim/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockNotifier struct {
	standings []domain.Qualification
	weeks     []int
	banners   []domain.Qualification
	messages  []string
	explained int
	helped    int
	err       error
}

func (m *mockNotifier) NotifyStandings(_ context.Context, q domain.Qualification) error {
	m.standings = append(m.standings, q)
	return m.err
}

func (m *mockNotifier) NotifyWeek(_ context.Context, mw int, _ []domain.Fixture) error {
	m.weeks = append(m.weeks, mw)
	return m.err
}

func (m *mockNotifier) NotifyBanner(_ context.Context, q domain.Qualification) error {
	m.banners = append(m.banners, q)
	return m.err
}

func (m *mockNotifier) NotifyExplainer(_ context.Context) error {
	m.explained++
	return m.err
}

func (m *mockNotifier) NotifyHelp(_ context.Context) error {
	m.helped++
	return m.err
}

func (m *mockNotifier) NotifyMessage(_ context.Context, msg string) error {
	m.messages = append(m.messages, msg)
	return m.err
}

func (m *mockNotifier) last() domain.Qualification {
	return m.standings[len(m.standings)-1]
}

// --- helpers ---

func newSession(t *testing.T, picker predictions.Picker) (*session.Session, *predictions.Store, *mockNotifier) {
	t.Helper()
	d, err := dataset.Baked()
	require.NoError(t, err)
	store := predictions.NewStore(d.Fixtures, picker)
	n := &mockNotifier{}
	return session.New(d.Clubs, store, n, domain.DefaultScoreline()), store, n
}

func firstFixture(t *testing.T, store *predictions.Store, home, away domain.TeamID) domain.Fixture {
	t.Helper()
	for _, f := range store.Fixtures() {
		if f.Home.ID == home && f.Away.ID == away {
			return f
		}
	}
	t.Fatalf("no fixture %d v %d", home, away)
	return domain.Fixture{}
}

// --- tests ---

func TestDispatch_PickRecomputesAndRenders(t *testing.T) {
	s, store, n := newSession(t, predictions.Fixed(domain.Draw))
	ctx := context.Background()

	villaHome := firstFixture(t, store, domain.AstonVilla, 76)
	livHome := firstFixture(t, store, domain.Liverpool, 563)

	require.NoError(t, s.Dispatch(ctx, session.Pick{FixtureID: villaHome.ID, Outcome: domain.AwayWin}))
	require.NoError(t, s.Dispatch(ctx, session.Pick{FixtureID: livHome.ID, Outcome: domain.HomeWin}))

	require.Len(t, n.standings, 2)
	q := n.last()
	assert.False(t, q.Final)
	assert.Equal(t, 2, q.Resolved)

	var order []domain.TeamID
	var points []int
	for _, r := range q.Rows {
		order = append(order, r.ID())
		points = append(points, r.Points)
	}
	assert.Equal(t, []domain.TeamID{domain.AstonVilla, domain.Liverpool, domain.ManUnited, domain.Chelsea}, order)
	assert.Equal(t, []int{50, 48, 48, 47}, points)
	assert.Empty(t, n.banners)
}

func TestDispatch_InvalidPickIsNoop(t *testing.T) {
	s, store, n := newSession(t, predictions.Fixed(domain.Draw))
	ctx := context.Background()

	err := s.Dispatch(ctx, session.Pick{FixtureID: 404, Outcome: domain.HomeWin})
	assert.ErrorIs(t, err, predictions.ErrUnknownFixture)

	err = s.Dispatch(ctx, session.Pick{FixtureID: 1, Outcome: domain.Outcome(12)})
	assert.ErrorIs(t, err, predictions.ErrInvalidOutcome)

	assert.Equal(t, 0, store.Resolved())
	assert.Empty(t, n.standings)
}

func TestDispatch_SimulateAllShowsBanner(t *testing.T) {
	s, store, n := newSession(t, predictions.NewUniformPicker(11))
	ctx := context.Background()

	require.NoError(t, s.Dispatch(ctx, session.SimulateAll{}))

	assert.True(t, store.Complete())
	require.Len(t, n.banners, 1)
	q := n.banners[0]
	assert.True(t, q.Final)
	assert.Equal(t, q.Rows[3].Club, q.MissesOut)
	assert.Contains(t, n.messages[0], "42")
}

func TestDispatch_SimulateWeek(t *testing.T) {
	s, store, n := newSession(t, predictions.Fixed(domain.HomeWin))
	ctx := context.Background()

	require.NoError(t, s.Dispatch(ctx, session.SimulateWeek{Matchweek: 27}))
	assert.Equal(t, []int{27}, n.weeks)
	assert.Equal(t, len(store.Week(27)), store.Resolved())
	assert.Empty(t, n.banners)

	err := s.Dispatch(ctx, session.SimulateWeek{Matchweek: 40})
	assert.ErrorIs(t, err, predictions.ErrInvalidMatchweek)
}

func TestDispatch_ResetRestoresBaseline(t *testing.T) {
	s, _, n := newSession(t, predictions.NewUniformPicker(3))
	ctx := context.Background()
	baseline := s.Standings()

	require.NoError(t, s.Dispatch(ctx, session.SimulateAll{}))
	require.NoError(t, s.Dispatch(ctx, session.Reset{}))

	assert.Equal(t, baseline.Rows, n.last().Rows)
	assert.Equal(t, 0, n.last().Resolved)
}

func TestDispatch_ShowWeekUnknown(t *testing.T) {
	s, _, n := newSession(t, predictions.Fixed(domain.Draw))
	err := s.Dispatch(context.Background(), session.ShowWeek{Matchweek: 12})
	assert.ErrorIs(t, err, predictions.ErrInvalidMatchweek)
	assert.Empty(t, n.weeks)
}

func TestDispatch_NotifierErrorPropagates(t *testing.T) {
	s, _, n := newSession(t, predictions.Fixed(domain.Draw))
	n.err = errors.New("closed pipe")
	assert.EqualError(t, s.Dispatch(context.Background(), session.ShowTable{}), "closed pipe")
}

func TestRun_ScriptedSession(t *testing.T) {
	s, store, n := newSession(t, predictions.Fixed(domain.AwayWin))

	script := strings.Join([]string{
		"help",
		"1 h",
		"pick 99 h", // ignorado
		"bogus",     // ignorado
		"",
		"sim 28",
		"week 30",
		"explain",
		"sim all",
		"quit",
		"reset", // nunca se procesa
	}, "\n")

	require.NoError(t, s.Run(context.Background(), strings.NewReader(script)))

	assert.Equal(t, 1, n.helped)
	assert.Equal(t, 1, n.explained)
	assert.Equal(t, []int{28, 30}, n.weeks)
	assert.True(t, store.Complete())
	f, _ := store.Fixture(1)
	assert.Equal(t, domain.HomeWin, f.Outcome)
	require.Len(t, n.banners, 1)
	assert.GreaterOrEqual(t, len(n.messages), 3)
}

func TestRun_StopsAtEOF(t *testing.T) {
	s, store, n := newSession(t, predictions.Fixed(domain.Draw))
	require.NoError(t, s.Run(context.Background(), strings.NewReader("sim 27\n")))
	assert.Equal(t, len(store.Week(27)), store.Resolved())
	assert.Len(t, n.standings, 2) // inicial + tras la simulación
}

func TestRun_CancelledContext(t *testing.T) {
	s, _, _ := newSession(t, predictions.Fixed(domain.Draw))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, s.Run(ctx, strings.NewReader("")))
}
