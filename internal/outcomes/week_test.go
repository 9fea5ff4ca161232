package outcomes

import (
	"testing"

	"github.com/apetersson/cfbsim/internal/season"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekOutcomesAcceptTracksWinnerCombinationAndCCGPairing(t *testing.T) {
	snap := threeTeamSnapshot(t)
	cv, err := snap.Conference("TST")
	require.NoError(t, err)

	matchup := season.NewTeamPair("A", "C")
	w := NewWeekOutcomes([]season.TeamPair{matchup})
	ccg := season.NewTeamPair("A", "B")
	require.NoError(t, w.Accept(cv, ccg))

	assert.Equal(t, 1, w.TotalCount)
	key := season.NewTeamNamesFromSlice([]season.TeamName{"A"})
	require.Contains(t, w.Permutations, key)
	assert.Equal(t, 1, w.Permutations[key][ccg])
}

func TestWeekOutcomesAcceptErrorsWhenMatchupUnresolved(t *testing.T) {
	snap := threeTeamSnapshot(t)
	cv, err := snap.Conference("TST")
	require.NoError(t, err)

	w := NewWeekOutcomes([]season.TeamPair{season.NewTeamPair("A", "B")})
	require.Error(t, w.Accept(cv, season.NewTeamPair("A", "B")))
}

func TestWeekOutcomesProbInCCGGivenWinnersConditionsOnSubset(t *testing.T) {
	snap := threeTeamSnapshot(t)
	cv, err := snap.Conference("TST")
	require.NoError(t, err)

	matchup := season.NewTeamPair("A", "C")
	w := NewWeekOutcomes([]season.TeamPair{matchup})
	require.NoError(t, w.Accept(cv, season.NewTeamPair("A", "B")))

	winners := map[season.TeamName]struct{}{"A": {}}
	assert.Equal(t, 1.0, w.ProbInCCGGivenWinners(winners, "A"))
	assert.Equal(t, 0.0, w.ProbInCCGGivenWinners(winners, "C"))
	assert.Equal(t, 1.0, w.ProbOfWinners(winners))
}

func TestWeekOutcomesMergeSumsPermutations(t *testing.T) {
	snap := threeTeamSnapshot(t)
	cv, err := snap.Conference("TST")
	require.NoError(t, err)
	matchup := season.NewTeamPair("A", "C")

	a := NewWeekOutcomes([]season.TeamPair{matchup})
	require.NoError(t, a.Accept(cv, season.NewTeamPair("A", "B")))
	b := a.ShallowClone()
	require.NoError(t, b.Accept(cv, season.NewTeamPair("A", "B")))

	merged := a.ShallowClone()
	merged.Merge(a)
	merged.Merge(b)
	assert.Equal(t, 2, merged.TotalCount)
}
