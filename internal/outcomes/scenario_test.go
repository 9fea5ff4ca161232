package outcomes

import (
	"testing"

	"github.com/apetersson/cfbsim/internal/season"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCondition struct {
	holds   bool
	err     error
	prob    float64
	factors map[season.TeamPair]float64
	label   string
}

func (f fakeCondition) Holds(season.SeasonSnapshot) (bool, error)        { return f.holds, f.err }
func (f fakeCondition) Probability() float64                            { return f.prob }
func (f fakeCondition) ProbabilityFactors() map[season.TeamPair]float64 { return f.factors }
func (f fakeCondition) ForcedWinners(season.UniformRoller, season.SeasonSnapshot) (map[season.GameKey]season.TeamName, error) {
	return nil, nil
}
func (f fakeCondition) String() string { return f.label }

func TestScenarioOutcomesHoldsRequiresEveryCondition(t *testing.T) {
	snap := threeTeamSnapshot(t)
	s := NewScenarioOutcomes(
		fakeCondition{holds: true, label: "a"},
		fakeCondition{holds: false, label: "b"},
	)
	ok, err := s.Holds(snap)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScenarioOutcomesProbabilityDedupsSharedFactor(t *testing.T) {
	pair := season.NewTeamPair("A", "B")
	s := NewScenarioOutcomes(
		fakeCondition{prob: 0.5, factors: map[season.TeamPair]float64{pair: 0.5}},
		fakeCondition{prob: 0.5, factors: map[season.TeamPair]float64{pair: 0.5}},
	)
	assert.InDelta(t, 0.5, s.Probability(), 1e-9)
}

func TestScenarioOutcomesProbabilityMultipliesIndependentConditions(t *testing.T) {
	s := NewScenarioOutcomes(
		fakeCondition{prob: 0.5, factors: map[season.TeamPair]float64{season.NewTeamPair("A", "B"): 0.5}},
		fakeCondition{prob: 0.4, factors: map[season.TeamPair]float64{season.NewTeamPair("C", "D"): 0.4}},
	)
	assert.InDelta(t, 0.2, s.Probability(), 1e-9)
}

func TestScenarioOutcomesAcceptSkipsSeasonsNotHoldingAndTalliesCCG(t *testing.T) {
	snap := threeTeamSnapshot(t)
	s := NewScenarioOutcomes(fakeCondition{holds: true})

	require.NoError(t, s.Accept(snap, []season.TeamPair{season.NewTeamPair("A", "B")}))
	assert.Equal(t, 1, s.TotalSeasons)
	assert.Equal(t, 1.0, s.ProbInCCG("A"))
	assert.Equal(t, 0.0, s.ProbInCCG("C"))

	s2 := NewScenarioOutcomes(fakeCondition{holds: false})
	require.NoError(t, s2.Accept(snap, []season.TeamPair{season.NewTeamPair("A", "B")}))
	assert.Equal(t, 0, s2.TotalSeasons)
}

func TestScenarioOutcomesDescriptionJoinsConditionsOrUsesOverride(t *testing.T) {
	s := NewScenarioOutcomes(
		fakeCondition{label: "A wins out"},
		fakeCondition{label: "B beats C"},
	)
	assert.Equal(t, "A wins out, B beats C", s.Description(", "))

	s.DescriptionOverride = "custom"
	assert.Equal(t, "custom", s.Description(", "))
}

func TestScenarioOutcomesMergeSumsTallies(t *testing.T) {
	snap := threeTeamSnapshot(t)
	pair := season.NewTeamPair("A", "B")
	a := NewScenarioOutcomes(fakeCondition{holds: true})
	require.NoError(t, a.Accept(snap, []season.TeamPair{pair}))
	b := NewScenarioOutcomes(fakeCondition{holds: true})
	require.NoError(t, b.Accept(snap, []season.TeamPair{pair}))

	merged := NewScenarioOutcomes()
	merged.Merge(a)
	merged.Merge(b)
	assert.Equal(t, 2, merged.TotalSeasons)
	assert.Equal(t, 1.0, merged.ProbInCCG("A"))
}
