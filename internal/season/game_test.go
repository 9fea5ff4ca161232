package season

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return d
}

func TestGameWinProbabilitySymmetric(t *testing.T) {
	g := NewScheduledGame(mustDate(t, "2025-09-06T00:00:00Z"), "BYU", "Kansas", false, 0.65)
	pA, err := g.WinProbability("BYU")
	require.NoError(t, err)
	pB, err := g.WinProbability("Kansas")
	require.NoError(t, err)
	assert.InDelta(t, 0.65, pA, 1e-9)
	assert.InDelta(t, 0.35, pB, 1e-9)
}

func TestGameWinProbabilityUnknownTeam(t *testing.T) {
	g := NewScheduledGame(mustDate(t, "2025-09-06T00:00:00Z"), "BYU", "Kansas", false, 0.65)
	_, err := g.WinProbability("Utah")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTeam))
}

func TestGameCompletedWinnerAndProbability(t *testing.T) {
	g := NewCompletedGame(mustDate(t, "2025-09-06T00:00:00Z"), "BYU", "Kansas", false, 31, 17)
	winner, ok := g.Winner()
	require.True(t, ok)
	assert.Equal(t, "BYU", winner)
	assert.False(t, g.IsTie())

	pWinner, err := g.WinProbability("BYU")
	require.NoError(t, err)
	assert.Equal(t, 1.0, pWinner)

	pLoser, err := g.WinProbability("Kansas")
	require.NoError(t, err)
	assert.Equal(t, 0.0, pLoser)
}

func TestGameTie(t *testing.T) {
	g := NewCompletedGame(mustDate(t, "2025-09-06T00:00:00Z"), "BYU", "Kansas", false, 24, 24)
	assert.True(t, g.IsTie())
	_, ok := g.Winner()
	assert.False(t, ok)
}

func TestGameForceOutcomeIfNotOver(t *testing.T) {
	g := NewScheduledGame(mustDate(t, "2025-09-06T00:00:00Z"), "BYU", "Kansas", false, 0.65)
	forced, err := g.ForceOutcomeIfNotOver("Kansas", true)
	require.NoError(t, err)
	winner, ok := forced.Winner()
	require.True(t, ok)
	assert.Equal(t, "Kansas", winner)

	// Already-over games are untouched.
	over := NewCompletedGame(mustDate(t, "2025-09-06T00:00:00Z"), "BYU", "Kansas", false, 10, 7)
	unchanged, err := over.ForceOutcomeIfNotOver("Kansas", true)
	require.NoError(t, err)
	winner, ok = unchanged.Winner()
	require.True(t, ok)
	assert.Equal(t, "BYU", winner)
}

func TestGameRollForcedWinnerTakesPrecedence(t *testing.T) {
	g := NewScheduledGame(mustDate(t, "2025-09-06T00:00:00Z"), "BYU", "Kansas", false, 0.1)
	roller := func(p float64) bool { return false } // would pick TeamB without forcing
	rolled, err := g.Roll(roller, map[TeamName]struct{}{"BYU": {}}, nil)
	require.NoError(t, err)
	winner, _ := rolled.Winner()
	assert.Equal(t, "BYU", winner)
}

func TestGameRollForcedLoserTakesPrecedence(t *testing.T) {
	g := NewScheduledGame(mustDate(t, "2025-09-06T00:00:00Z"), "BYU", "Kansas", false, 0.9)
	roller := func(p float64) bool { return true } // would pick TeamA without forcing
	rolled, err := g.Roll(roller, nil, map[TeamName]struct{}{"BYU": {}})
	require.NoError(t, err)
	winner, _ := rolled.Winner()
	assert.Equal(t, "Kansas", winner)
}

func TestGameRollUsesRollerWhenUnforced(t *testing.T) {
	g := NewScheduledGame(mustDate(t, "2025-09-06T00:00:00Z"), "BYU", "Kansas", false, 0.5)
	rolled, err := g.Roll(func(p float64) bool { return true }, nil, nil)
	require.NoError(t, err)
	winner, _ := rolled.Winner()
	assert.Equal(t, "BYU", winner)

	rolled, err = g.Roll(func(p float64) bool { return false }, nil, nil)
	require.NoError(t, err)
	winner, _ = rolled.Winner()
	assert.Equal(t, "Kansas", winner)
}

func TestGameCloneIsIndependent(t *testing.T) {
	g := NewCompletedGame(mustDate(t, "2025-09-06T00:00:00Z"), "BYU", "Kansas", false, 10, 7)
	clone := g.Clone()
	clone.FinalScore[0] = 99
	assert.Equal(t, 10, g.FinalScore[0])
}
