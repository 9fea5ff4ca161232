// Package scenario builds the concrete, checkable conditions that
// internal/outcomes.ScenarioOutcomes evaluates and forces — "BYU finishes
// 11-1", "Utah beats Colorado", "BYU loses only to Texas Tech". Every
// constructor here except AnyOutcome takes the current (unrolled) season so
// it can compute the condition's probability once, up front, rather than on
// every roll.
package scenario

import (
	"fmt"

	"github.com/apetersson/cfbsim/internal/outcomes"
	"github.com/apetersson/cfbsim/internal/season"
)

// condition is the shared implementation backing every constructor in
// this package; it satisfies outcomes.ScenarioCondition.
type condition struct {
	description string
	probability float64
	factors     map[season.TeamPair]float64
	holds       func(rolled season.SeasonSnapshot) (bool, error)
	force       func(roller season.UniformRoller, current season.SeasonSnapshot) (map[season.GameKey]season.TeamName, error)
}

func (c condition) Holds(rolled season.SeasonSnapshot) (bool, error) { return c.holds(rolled) }
func (c condition) Probability() float64                            { return c.probability }
func (c condition) ProbabilityFactors() map[season.TeamPair]float64 { return c.factors }
func (c condition) ForcedWinners(roller season.UniformRoller, current season.SeasonSnapshot) (map[season.GameKey]season.TeamName, error) {
	return c.force(roller, current)
}
func (c condition) String() string { return c.description }

var _ outcomes.ScenarioCondition = condition{}

// beatSet returns the opponents a team has beaten outright (decided,
// non-tie wins) among its games.
func beatSet(tv season.TeamView) map[season.TeamName]struct{} {
	out := map[season.TeamName]struct{}{}
	for _, g := range tv.Games {
		if !g.IsOver() || g.IsTie() {
			continue
		}
		winner, ok := g.Winner()
		if !ok || winner != tv.Team {
			continue
		}
		opp, err := g.Opponent(tv.Team)
		if err == nil {
			out[opp] = struct{}{}
		}
	}
	return out
}

// lossSet returns the opponents a team has lost to outright.
func lossSet(tv season.TeamView) map[season.TeamName]struct{} {
	out := map[season.TeamName]struct{}{}
	for _, g := range tv.Games {
		if !g.IsOver() || g.IsTie() {
			continue
		}
		winner, ok := g.Winner()
		if !ok || winner == tv.Team {
			continue
		}
		opp, err := g.Opponent(tv.Team)
		if err == nil {
			out[opp] = struct{}{}
		}
	}
	return out
}

func supersetOf(set, required map[season.TeamName]struct{}) bool {
	for team := range required {
		if _, ok := set[team]; !ok {
			return false
		}
	}
	return true
}

// forceViaConstrainedRoll draws a single joint outcome for team's
// remaining games under opts and reports it as a forced-winner map,
// suitable for season.ScenarioForcer.
func forceViaConstrainedRoll(current season.SeasonSnapshot, team season.TeamName, opts season.ConstrainedRollOptions, roller season.UniformRoller) (map[season.GameKey]season.TeamName, error) {
	tv, err := current.Team(team)
	if err != nil {
		return nil, err
	}
	rolled, err := tv.Roll(func(float64) bool { return true }, roller, opts)
	if err != nil {
		return nil, err
	}
	out := map[season.GameKey]season.TeamName{}
	for _, g := range rolled {
		if winner, ok := g.Winner(); ok {
			out[g.Key()] = winner
		}
	}
	return out, nil
}

func namesOf(set map[season.TeamName]struct{}) []season.TeamName {
	out := make([]season.TeamName, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	return out
}

func joinShortNames(names []season.TeamName) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += ShortName(n)
	}
	return out
}

func errNoGame(a, b season.TeamName) error {
	return fmt.Errorf("%w: no scheduled game between %s and %s", season.ErrUnknownTeam, a, b)
}
