package outcomes

import (
	"testing"

	"github.com/apetersson/cfbsim/internal/season"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamSeasonOutcomesAcceptBucketsByExactLosses(t *testing.T) {
	snap := threeTeamSnapshot(t)
	cv, err := snap.Conference("TST")
	require.NoError(t, err)

	acc := NewTeamSeasonOutcomes()
	tv := cv.Teams["C"]
	require.NoError(t, acc.Accept(cv, tv, season.NewTeamPair("A", "B")))

	assert.Equal(t, 1, acc.TotalSeasons)
	assert.Equal(t, 1, acc.WinCounts[0])
	assert.Equal(t, 0, acc.MadeCCG)
	lostToBoth := season.NewTeamNamesFromSlice([]season.TeamName{"A", "B"})
	require.Contains(t, acc.LostTo, lostToBoth)
	assert.Equal(t, 1, acc.LostTo[lostToBoth].TotalSeasons)
}

func TestTeamSeasonOutcomesAcceptUnbeatenTeamHasEmptyLostToKey(t *testing.T) {
	snap := threeTeamSnapshot(t)
	cv, err := snap.Conference("TST")
	require.NoError(t, err)

	acc := NewTeamSeasonOutcomes()
	tv := cv.Teams["A"]
	ccg := season.NewTeamPair("A", "B")
	require.NoError(t, acc.Accept(cv, tv, ccg))

	require.Contains(t, acc.LostTo, season.TeamNames(""))
	assert.Equal(t, 1, acc.MadeCCG)
	assert.Equal(t, 1, acc.WinCountsInCCG[1])
}

func TestTeamSeasonOutcomesMergeSumsBuckets(t *testing.T) {
	snap := threeTeamSnapshot(t)
	cv, err := snap.Conference("TST")
	require.NoError(t, err)
	tv := cv.Teams["C"]
	ccg := season.NewTeamPair("A", "B")

	a := NewTeamSeasonOutcomes()
	require.NoError(t, a.Accept(cv, tv, ccg))
	b := NewTeamSeasonOutcomes()
	require.NoError(t, b.Accept(cv, tv, ccg))

	merged := NewTeamSeasonOutcomes()
	merged.Merge(a)
	merged.Merge(b)

	assert.Equal(t, 2, merged.TotalSeasons)
	assert.Equal(t, 2, merged.WinCounts[0])
	lostToBoth := season.NewTeamNamesFromSlice([]season.TeamName{"A", "B"})
	assert.Equal(t, 2, merged.LostTo[lostToBoth].TotalSeasons)
}

func TestTeamSeasonOutcomesWinCountSummaryReflectsHistogram(t *testing.T) {
	acc := NewTeamSeasonOutcomes()
	acc.WinCounts = map[int]int{1: 1, 3: 1}
	summary := acc.WinCountSummary()
	assert.Equal(t, 2.0, summary.Mean)
	assert.Equal(t, 1.0, summary.Min)
	assert.Equal(t, 3.0, summary.Max)
}

func TestTeamSeasonOutcomesWinCountSummaryEmptyIsZero(t *testing.T) {
	acc := NewTeamSeasonOutcomes()
	assert.Equal(t, float64(0), acc.WinCountSummary().Mean)
}
