// Package tiebreak implements the ordered cascade of rules conferences use
// to resolve a tie in the standings: head-to-head record, performance
// against common opponents, strength of conference schedule, total wins,
// and finally a coin toss. Rules are plain functions over a Context, run
// in sequence by Seed until only one team (or a final pair) remains.
package tiebreak

import (
	"fmt"
	"sort"

	"github.com/apetersson/cfbsim/internal/season"
)

// TeamSet is an unordered group of team names.
type TeamSet = map[season.TeamName]struct{}

// Context carries everything a rule needs to evaluate a tie: the full
// conference definition (for its exclusion knobs), every member team's
// precomputed view, and the conference's current standings tiers (used by
// AgainstHighestCommonOpponent to walk from the top of the table down).
type Context struct {
	Conference season.Conference
	Teams      map[season.TeamName]season.TeamView
	AllNames   TeamSet
	Standings  []TeamSet

	// Roller draws from the uniform(0, 1) distribution; only CoinToss
	// consults it.
	Roller season.UniformRoller
}

// Rule resolves, or partially resolves, a tie among a group of teams into
// an ordered list of tiers, best first. A rule that cannot distinguish any
// of the teams returns them as a single unchanged tier.
type Rule func(ctx Context, tied TeamSet) ([]TeamSet, error)

// DefaultCascade is the standard six-rule tiebreak order.
var DefaultCascade = []Rule{
	HeadToHead,
	AgainstAllCommonOpponents,
	AgainstHighestCommonOpponent,
	StrengthOfConferenceSchedule,
	TotalWinsInTwelveGameSeason,
	CoinToss,
}

func without(set TeamSet, team season.TeamName) TeamSet {
	out := make(TeamSet, len(set))
	for t := range set {
		if t != team {
			out[t] = struct{}{}
		}
	}
	return out
}

func intersect(a, b TeamSet) TeamSet {
	out := TeamSet{}
	for t := range a {
		if _, ok := b[t]; ok {
			out[t] = struct{}{}
		}
	}
	return out
}

// sortedWithTies groups set by key(team) and returns the groups ordered
// from highest key to lowest, keeping exact ties together in one tier.
func sortedWithTies(set TeamSet, key func(season.TeamName) float64) []TeamSet {
	type scored struct {
		team season.TeamName
		val  float64
	}
	scoredTeams := make([]scored, 0, len(set))
	for t := range set {
		scoredTeams = append(scoredTeams, scored{team: t, val: key(t)})
	}
	sort.Slice(scoredTeams, func(i, j int) bool {
		if scoredTeams[i].val != scoredTeams[j].val {
			return scoredTeams[i].val > scoredTeams[j].val
		}
		return scoredTeams[i].team < scoredTeams[j].team
	})

	var tiers []TeamSet
	i := 0
	for i < len(scoredTeams) {
		j := i + 1
		for j < len(scoredTeams) && scoredTeams[j].val == scoredTeams[i].val {
			j++
		}
		tier := TeamSet{}
		for _, s := range scoredTeams[i:j] {
			tier[s.team] = struct{}{}
		}
		tiers = append(tiers, tier)
		i = j
	}
	return tiers
}

// HeadToHead breaks the tie by round-robin record among the tied teams
// alone: a team that has beaten every other tied team separates out on
// top immediately. Failing that, if every tied team has played every
// other tied team, the group is ranked by record against each other;
// otherwise the round robin is incomplete and the tie carries forward
// unresolved.
func HeadToHead(ctx Context, tied TeamSet) ([]TeamSet, error) {
	for team := range tied {
		others := without(tied, team)
		tv, ok := ctx.Teams[team]
		if !ok {
			return nil, fmt.Errorf("%w: %s", season.ErrUnknownTeam, team)
		}
		if !tv.HasPlayedAll(others) {
			continue
		}
		record := tv.FilteredRecord(others)
		if record.Wins == len(others) {
			return []TeamSet{{team: {}}, others}, nil
		}
	}
	for team := range tied {
		tv := ctx.Teams[team]
		if !tv.HasPlayedAll(without(tied, team)) {
			return []TeamSet{tied}, nil
		}
	}
	return sortedWithTies(tied, func(team season.TeamName) float64 {
		return ctx.Teams[team].FilteredWinPercentage(without(tied, team))
	}), nil
}

// allCommonOpponents returns every team (within the universe of names
// known to the conference) that each of teams has played, minus any pair
// the conference flags as excluded from common-opponent consideration.
func allCommonOpponents(ctx Context, teams TeamSet) TeamSet {
	common := TeamSet{}
	for name := range ctx.AllNames {
		common[name] = struct{}{}
	}
	for team := range teams {
		played := TeamSet{}
		tv := ctx.Teams[team]
		for opp := range ctx.AllNames {
			if tv.HasPlayed(opp) {
				played[opp] = struct{}{}
			}
		}
		common = intersect(common, played)
	}
	for team := range teams {
		for excluded := range ctx.Conference.ExcludedOpponents(team) {
			delete(common, excluded)
		}
	}
	return common
}

// AgainstAllCommonOpponents ranks the tied teams by win percentage against
// the full set of opponents common to all of them.
func AgainstAllCommonOpponents(ctx Context, tied TeamSet) ([]TeamSet, error) {
	common := allCommonOpponents(ctx, tied)
	return sortedWithTies(tied, func(team season.TeamName) float64 {
		return ctx.Teams[team].FilteredWinPercentage(common)
	}), nil
}

// AgainstHighestCommonOpponent walks the conference standings from the
// top, at each tier narrowing to the common opponents still shared by the
// shrinking tied group, until the tie breaks into a group of fewer than
// three or the standings are exhausted.
func AgainstHighestCommonOpponent(ctx Context, tied TeamSet) ([]TeamSet, error) {
	common := allCommonOpponents(ctx, tied)
	var resolvedTail []TeamSet
	for _, tier := range ctx.Standings {
		tierCommon := intersect(tier, common)
		results := sortedWithTies(tied, func(team season.TeamName) float64 {
			return ctx.Teams[team].FilteredWinPercentage(tierCommon)
		})
		if len(results) > 1 {
			if len(results[0]) < 3 {
				return append(results, resolvedTail...), nil
			}
			tied = results[0]
			resolvedTail = append(results[1:], resolvedTail...)
			common = allCommonOpponents(ctx, tied)
		}
	}
	return append([]TeamSet{tied}, resolvedTail...), nil
}

// StrengthOfConferenceSchedule ranks the tied teams by their conference
// opponents' aggregate win percentage against the whole conference.
func StrengthOfConferenceSchedule(ctx Context, tied TeamSet) ([]TeamSet, error) {
	return sortedWithTies(tied, func(team season.TeamName) float64 {
		tv := ctx.Teams[team]
		opponents := TeamSet{}
		for opp := range ctx.AllNames {
			if tv.HasPlayed(opp) {
				opponents[opp] = struct{}{}
			}
		}
		opponents = subtractSet(opponents, ctx.Conference.ExcludedOpponents(team))
		if ctx.Conference.ExcludeTiedTeamsFromSOS {
			opponents = subtractSet(opponents, without(tied, team))
		}
		var wins, played int
		for opp := range opponents {
			oppTV, ok := ctx.Teams[opp]
			if !ok {
				continue
			}
			rec := oppTV.FilteredRecord(ctx.AllNames)
			wins += rec.Wins
			played += rec.Wins + rec.Losses + rec.Ties
		}
		if played == 0 {
			return 0
		}
		return float64(wins) / float64(played)
	}), nil
}

func subtractSet(set, remove TeamSet) TeamSet {
	out := make(TeamSet, len(set))
	for t := range set {
		if _, ok := remove[t]; ok {
			continue
		}
		out[t] = struct{}{}
	}
	return out
}

// TotalWinsInTwelveGameSeason ranks the tied teams by raw win count over
// games that count toward the capped-length season (see
// season.Game.CountsTowardTwelve).
func TotalWinsInTwelveGameSeason(ctx Context, tied TeamSet) ([]TeamSet, error) {
	return sortedWithTies(tied, func(team season.TeamName) float64 {
		tv := ctx.Teams[team]
		wins := 0
		for _, g := range tv.Games {
			if !g.CountsTowardTwelve {
				continue
			}
			if winner, ok := g.Winner(); ok && winner == team {
				wins++
			}
		}
		return float64(wins)
	}), nil
}

// CoinToss is the cascade's last resort: an unweighted random draw among
// the still-tied teams.
func CoinToss(ctx Context, tied TeamSet) ([]TeamSet, error) {
	if ctx.Roller == nil {
		return nil, fmt.Errorf("%w: no roller supplied for coin toss", season.ErrIndeterminate)
	}
	ordered := make([]season.TeamName, 0, len(tied))
	for t := range tied {
		ordered = append(ordered, t)
	}
	sort.Strings(ordered)
	idx := int(ctx.Roller() * float64(len(ordered)))
	if idx >= len(ordered) {
		idx = len(ordered) - 1
	}
	winner := ordered[idx]
	return []TeamSet{{winner: {}}, without(tied, winner)}, nil
}
