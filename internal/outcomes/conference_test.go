package outcomes

import (
	"testing"

	"github.com/apetersson/cfbsim/internal/season"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConferenceSeasonOutcomesAcceptTalliesEveryTeam(t *testing.T) {
	snap := threeTeamSnapshot(t)
	cv, err := snap.Conference("TST")
	require.NoError(t, err)

	acc := NewConferenceSeasonOutcomes(2)
	ccg := season.NewTeamPair("A", "B")
	require.NoError(t, acc.Accept(cv, ccg))

	assert.Equal(t, 1, acc.TotalSeasons)
	require.Contains(t, acc.Teams, season.TeamName("A"))
	require.Contains(t, acc.Teams, season.TeamName("C"))
	assert.Equal(t, 1, acc.Teams["A"].WinCounts[1])
	assert.Equal(t, 1, acc.Teams["C"].WinCounts[0])
	assert.Equal(t, 1.0, acc.ProbInCCG("A"))
	assert.Equal(t, 0.0, acc.ProbInCCG("C"))
}

func TestConferenceSeasonOutcomesProbFinalWinCountUsesSeasonLength(t *testing.T) {
	snap := threeTeamSnapshot(t)
	cv, err := snap.Conference("TST")
	require.NoError(t, err)

	acc := NewConferenceSeasonOutcomes(12)
	require.NoError(t, acc.Accept(cv, season.NewTeamPair("A", "B")))

	dist := acc.ProbFinalWinCount("C")
	require.Contains(t, dist, 10)
	assert.Equal(t, 1.0, dist[10])
}

func TestConferenceSeasonOutcomesWinCountSummaryDelegatesToTeam(t *testing.T) {
	snap := threeTeamSnapshot(t)
	cv, err := snap.Conference("TST")
	require.NoError(t, err)

	acc := NewConferenceSeasonOutcomes(2)
	require.NoError(t, acc.Accept(cv, season.NewTeamPair("A", "B")))

	assert.Equal(t, 1.0, acc.WinCountSummary("A").Mean)
	assert.Equal(t, float64(0), acc.WinCountSummary("nonexistent").Mean)
}

func TestConferenceSeasonOutcomesMergeWithZeroIsIdentity(t *testing.T) {
	snap := threeTeamSnapshot(t)
	cv, err := snap.Conference("TST")
	require.NoError(t, err)

	acc := NewConferenceSeasonOutcomes(2)
	require.NoError(t, acc.Accept(cv, season.NewTeamPair("A", "B")))

	merged := NewConferenceSeasonOutcomes(2)
	merged.Merge(acc)
	merged.Merge(NewConferenceSeasonOutcomes(2))

	assert.Equal(t, acc.TotalSeasons, merged.TotalSeasons)
	assert.Equal(t, acc.ProbInCCG("A"), merged.ProbInCCG("A"))
}

func TestConferenceSeasonOutcomesShardedMergeMatchesSingleAccumulator(t *testing.T) {
	snap := threeTeamSnapshot(t)
	cv, err := snap.Conference("TST")
	require.NoError(t, err)
	pair := season.NewTeamPair("A", "B")

	whole := NewConferenceSeasonOutcomes(2)
	for i := 0; i < 10; i++ {
		require.NoError(t, whole.Accept(cv, pair))
	}

	shardA := NewConferenceSeasonOutcomes(2)
	shardB := NewConferenceSeasonOutcomes(2)
	for i := 0; i < 4; i++ {
		require.NoError(t, shardA.Accept(cv, pair))
	}
	for i := 0; i < 6; i++ {
		require.NoError(t, shardB.Accept(cv, pair))
	}
	merged := NewConferenceSeasonOutcomes(2)
	merged.Merge(shardA)
	merged.Merge(shardB)

	assert.Equal(t, whole.TotalSeasons, merged.TotalSeasons)
	assert.Equal(t, whole.ProbInCCG("A"), merged.ProbInCCG("A"))
	assert.Equal(t, whole.Teams["A"].WinCounts, merged.Teams["A"].WinCounts)
}
