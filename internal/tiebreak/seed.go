package tiebreak

import (
	"fmt"

	"github.com/apetersson/cfbsim/internal/season"
)

// Seed adapts a tiebreak cascade into a season.ConferenceSeeder: given a
// still-tied group of teams (one of ConferenceView's standings tiers), it
// repeatedly runs the cascade until every team is ordered, restarting it
// from the first rule on the teams left after each extracted seed (see
// orderTiedGroup).
func Seed(cascade []Rule) season.ConferenceSeeder {
	return func(view season.ConferenceView, tied []season.TeamName, roller season.UniformRoller) ([]season.TeamName, error) {
		allNames := TeamSet{}
		for _, t := range view.Conference.Teams {
			allNames[t] = struct{}{}
		}
		ctx := Context{
			Conference: view.Conference,
			Teams:      view.Teams,
			AllNames:   allNames,
			Standings:  toTeamSets(view.Standings),
			Roller:     roller,
		}
		set := TeamSet{}
		for _, t := range tied {
			set[t] = struct{}{}
		}
		return orderTiedGroup(cascade, ctx, set)
	}
}

func toTeamSets(standings []map[season.TeamName]struct{}) []TeamSet {
	out := make([]TeamSet, len(standings))
	for i, tier := range standings {
		out[i] = tier
	}
	return out
}

func namesList(set TeamSet) []season.TeamName {
	out := make([]season.TeamName, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	return out
}

// orderTiedGroup fully orders a group of tied teams, mirroring how a
// conference championship seeder extracts its seeds one at a time: the
// multi-team tiebreaker narrows the cascade's head tier rule by rule until
// it names a clear winner or a final pair, then the caller recomputes the
// remaining teams from the ORIGINAL tied set and restarts the whole
// cascade on that residual from rule 0 — it never reuses the finer
// sub-partition a single rule pass produced for the teams that weren't
// extracted. A rule splitting a 4-team tie into {A}, {B,C}, {D} in one
// pass, for instance, must not seed B ahead of D just because that pass
// happened to rank {B,C} before {D}; {B,C,D} is re-compared from scratch.
func orderTiedGroup(cascade []Rule, ctx Context, tied TeamSet) ([]season.TeamName, error) {
	if len(tied) <= 1 {
		return namesList(tied), nil
	}
	if len(tied) == 2 {
		return twoTeamBreak(cascade, ctx, tied)
	}

	current := tied
	for _, rule := range cascade {
		result, err := rule(ctx, current)
		if err != nil {
			return nil, err
		}
		if len(result) == 0 {
			return nil, fmt.Errorf("%w: rule produced no tiers for %v", season.ErrIndeterminate, namesList(current))
		}
		current = result[0]
		if len(current) <= 2 {
			break
		}
	}

	if len(current) > 2 {
		return nil, fmt.Errorf("%w: could not fully resolve tie among %v", season.ErrIndeterminate, namesList(current))
	}
	if len(current) == 2 {
		return twoTeamBreak(cascade, ctx, current)
	}

	seed := namesList(current)[0]
	residual := TeamSet{}
	for t := range tied {
		if t != seed {
			residual[t] = struct{}{}
		}
	}
	rest, err := orderTiedGroup(cascade, ctx, residual)
	if err != nil {
		return nil, err
	}
	return append([]season.TeamName{seed}, rest...), nil
}

// twoTeamBreak resolves a two-team tie the way a dedicated two-team
// tiebreaker does: it tries each rule in turn against the ORIGINAL pair,
// never narrowing the comparison scope the way the multi-team cascade
// above does, stopping at the first rule that actually distinguishes them.
func twoTeamBreak(cascade []Rule, ctx Context, pair TeamSet) ([]season.TeamName, error) {
	for _, rule := range cascade {
		result, err := rule(ctx, pair)
		if err != nil {
			return nil, err
		}
		if len(result) == 0 {
			return nil, fmt.Errorf("%w: rule produced no tiers for %v", season.ErrIndeterminate, namesList(pair))
		}
		if len(result) > 1 {
			return append(namesList(result[0]), namesList(result[1])...), nil
		}
	}
	return nil, fmt.Errorf("%w: could not fully resolve tie among %v", season.ErrIndeterminate, namesList(pair))
}
