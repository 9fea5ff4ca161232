package scenario

import (
	"testing"
	"time"

	"github.com/apetersson/cfbsim/internal/season"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func sampleSnapshot(t *testing.T) season.SeasonSnapshot {
	t.Helper()
	return season.SeasonSnapshot{
		Year: 2025,
		Conferences: []season.Conference{
			{Name: "TST", Teams: []season.TeamName{"BYU", "Utah", "TCU"}},
		},
		Games: []season.Game{
			season.NewCompletedGame(mustDate(t, "2025-09-01T00:00:00Z"), "BYU", "TCU", false, 31, 14),
			season.NewScheduledGame(mustDate(t, "2025-09-15T00:00:00Z"), "BYU", "Utah", false, 0.6),
		},
	}
}

func TestWinExactlyProbabilityAndHolds(t *testing.T) {
	snap := sampleSnapshot(t)
	cond, err := WinExactly(snap, "BYU", 2, nil, nil, "")
	require.NoError(t, err)
	assert.InDelta(t, 0.6, cond.Probability(), 1e-9)
	assert.Contains(t, cond.String(), "BYU")

	rolled, err := snap.Roll(func(float64) bool { return true })
	require.NoError(t, err)
	ok, err := cond.Holds(rolled)
	require.NoError(t, err)
	assert.True(t, ok)

	lost, err := snap.Roll(func(float64) bool { return false })
	require.NoError(t, err)
	ok, err = cond.Holds(lost)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWinExactlyForcedWinnersMatchesTarget(t *testing.T) {
	snap := sampleSnapshot(t)
	target := 1
	cond, err := WinExactly(snap, "BYU", target, nil, nil, "")
	require.NoError(t, err)

	forced, err := cond.ForcedWinners(func() float64 { return 0 }, snap)
	require.NoError(t, err)
	assert.Len(t, forced, 1)
	for _, winner := range forced {
		assert.Equal(t, "Utah", winner)
	}
}

func TestWinOutComputesFullRemainingWinCount(t *testing.T) {
	snap := sampleSnapshot(t)
	cond, err := WinOut(snap, "BYU")
	require.NoError(t, err)
	assert.InDelta(t, 0.6, cond.Probability(), 1e-9)
}

func TestBeatHoldsAndForces(t *testing.T) {
	snap := sampleSnapshot(t)
	cond, err := Beat(snap, "BYU", "Utah")
	require.NoError(t, err)
	assert.InDelta(t, 0.6, cond.Probability(), 1e-9)

	forced, err := cond.ForcedWinners(nil, snap)
	require.NoError(t, err)
	assert.Len(t, forced, 1)

	rolled, err := snap.Roll(func(float64) bool { return true })
	require.NoError(t, err)
	ok, err := cond.Holds(rolled)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBeatUnknownMatchupErrors(t *testing.T) {
	snap := sampleSnapshot(t)
	_, err := Beat(snap, "Utah", "TCU")
	require.Error(t, err)
}

func TestWinOutExceptPossiblyAllowsNamedLossOnly(t *testing.T) {
	snap := sampleSnapshot(t)
	cond, err := WinOutExceptPossibly(snap, "BYU", []season.TeamName{"Utah"})
	require.NoError(t, err)
	// BYU's only remaining game is against Utah, which is in possibleLosses,
	// so there's no separable factor and the probability is vacuously 1.
	assert.Equal(t, 1.0, cond.Probability())

	rolled, err := snap.Roll(func(float64) bool { return false })
	require.NoError(t, err)
	ok, err := cond.Holds(rolled)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAnyOutcomeAlwaysHolds(t *testing.T) {
	snap := sampleSnapshot(t)
	cond := AnyOutcome()
	assert.Equal(t, 1.0, cond.Probability())
	ok, err := cond.Holds(snap)
	require.NoError(t, err)
	assert.True(t, ok)
	forced, err := cond.ForcedWinners(nil, snap)
	require.NoError(t, err)
	assert.Empty(t, forced)
}
