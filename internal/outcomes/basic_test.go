package outcomes

import (
	"testing"

	"github.com/apetersson/cfbsim/internal/season"
	"github.com/stretchr/testify/assert"
)

func TestBasicTeamSeasonOutcomesAcceptTalliesStandingAndCCG(t *testing.T) {
	b := NewBasicTeamSeasonOutcomes()
	standing := season.Standing{Position: 1, TierSize: 2}
	pair := season.NewTeamPair("A", "B")

	b.Accept("A", standing, pair)

	assert.Equal(t, 1, b.TotalSeasons)
	assert.Equal(t, 1, b.MadeCCG)
	assert.Equal(t, 1, b.Standing[standing])
	assert.Equal(t, 1, b.CCGParticipants[pair])
}

func TestBasicTeamSeasonOutcomesMergeWithZeroIsIdentity(t *testing.T) {
	b := NewBasicTeamSeasonOutcomes()
	standing := season.Standing{Position: 1, TierSize: 1}
	b.Accept("A", standing, season.NewTeamPair("A", "B"))

	merged := NewBasicTeamSeasonOutcomes()
	merged.Merge(b)
	merged.Merge(NewBasicTeamSeasonOutcomes())

	assert.Equal(t, b.TotalSeasons, merged.TotalSeasons)
	assert.Equal(t, b.MadeCCG, merged.MadeCCG)
	assert.Equal(t, b.Standing, merged.Standing)
	assert.Equal(t, b.CCGParticipants, merged.CCGParticipants)
}

func TestBasicTeamSeasonOutcomesMergeIsCommutativeAndAssociative(t *testing.T) {
	standing1 := season.Standing{Position: 1, TierSize: 2}
	standing2 := season.Standing{Position: 2, TierSize: 2}
	pair := season.NewTeamPair("A", "B")

	build := func(acceptances func(*BasicTeamSeasonOutcomes)) *BasicTeamSeasonOutcomes {
		b := NewBasicTeamSeasonOutcomes()
		acceptances(b)
		return b
	}
	a := build(func(b *BasicTeamSeasonOutcomes) { b.Accept("A", standing1, pair) })
	bb := build(func(b *BasicTeamSeasonOutcomes) { b.Accept("A", standing2, pair) })
	c := build(func(b *BasicTeamSeasonOutcomes) { b.Accept("B", standing1, pair) })

	left := NewBasicTeamSeasonOutcomes()
	left.Merge(a)
	left.Merge(bb)
	left.Merge(c)

	right := NewBasicTeamSeasonOutcomes()
	right.Merge(c)
	right.Merge(a)
	right.Merge(bb)

	assert.Equal(t, left, right)
}
