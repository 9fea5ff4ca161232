// Package outcomes accumulates the results of many rolled seasons into
// monoidal tallies: every type here exposes an Accept method that folds in
// one rolled season's result, and a Merge method satisfying the monoid
// laws (Merge(a, Zero) == a, associative, commutative) so that per-shard
// tallies from a worker pool can be combined by plain addition.
package outcomes

import "github.com/apetersson/cfbsim/internal/season"

// BasicTeamSeasonOutcomes is the smallest outcome tally: how often a team
// reached some standing and which pair of teams played in the
// championship game, conditioned on nothing else. It's the leaf value
// TeamSeasonOutcomes.LostTo buckets by "lost to exactly this set of
// teams".
type BasicTeamSeasonOutcomes struct {
	TotalSeasons    int
	MadeCCG         int
	Standing        map[season.Standing]int
	CCGParticipants map[season.TeamPair]int
}

// NewBasicTeamSeasonOutcomes returns a zero-valued accumulator.
func NewBasicTeamSeasonOutcomes() *BasicTeamSeasonOutcomes {
	return &BasicTeamSeasonOutcomes{
		Standing:        map[season.Standing]int{},
		CCGParticipants: map[season.TeamPair]int{},
	}
}

// Accept folds in one rolled season's result for a single team.
func (b *BasicTeamSeasonOutcomes) Accept(team season.TeamName, standing season.Standing, ccgTeams season.TeamPair) {
	b.TotalSeasons++
	b.Standing[standing]++
	b.CCGParticipants[ccgTeams]++
	if ccgTeams.Contains(team) {
		b.MadeCCG++
	}
}

// Merge folds another accumulator's tallies into this one.
func (b *BasicTeamSeasonOutcomes) Merge(other *BasicTeamSeasonOutcomes) {
	if other == nil {
		return
	}
	b.TotalSeasons += other.TotalSeasons
	b.MadeCCG += other.MadeCCG
	for standing, count := range other.Standing {
		b.Standing[standing] += count
	}
	for pair, count := range other.CCGParticipants {
		b.CCGParticipants[pair] += count
	}
}
