package scenario

import (
	"fmt"

	"github.com/apetersson/cfbsim/internal/outcomes"
	"github.com/apetersson/cfbsim/internal/season"
)

// WinExactly requires team to finish with exactly winCount wins, and
// optionally to have beaten every team in wins and lost to every team in
// losses. description overrides the generated label if non-empty.
func WinExactly(snap season.SeasonSnapshot, team season.TeamName, winCount int, wins, losses map[season.TeamName]struct{}, description string) (outcomes.ScenarioCondition, error) {
	tv, err := snap.Team(team)
	if err != nil {
		return nil, err
	}
	opts := season.ConstrainedRollOptions{ForceTotalWins: &winCount, ForceWinsAgainst: wins, ForceLossesAgainst: losses}
	prob, factors, err := tv.ProbabilityOfConstraint(opts)
	if err != nil {
		return nil, err
	}

	if description == "" {
		totalGames := len(tv.Games)
		description = fmt.Sprintf("%s %d-%d", ShortName(team), winCount, totalGames-winCount)
		if len(wins) > 0 {
			description += fmt.Sprintf(", beat %s", joinShortNames(namesOf(wins)))
		}
		if len(losses) > 0 {
			description += fmt.Sprintf(", lost to %s", joinShortNames(namesOf(losses)))
		}
	}

	return condition{
		description: description,
		probability: prob,
		factors:     factors,
		holds: func(rolled season.SeasonSnapshot) (bool, error) {
			rtv, err := rolled.Team(team)
			if err != nil {
				return false, err
			}
			if rtv.Record().Wins != winCount {
				return false, nil
			}
			if len(wins) == 0 && len(losses) == 0 {
				return true, nil
			}
			return supersetOf(beatSet(rtv), wins) && supersetOf(lossSet(rtv), losses), nil
		},
		force: func(roller season.UniformRoller, current season.SeasonSnapshot) (map[season.GameKey]season.TeamName, error) {
			return forceViaConstrainedRoll(current, team, opts, roller)
		},
	}, nil
}

// WinAtMost requires team to finish with at most maxWinCount wins, and
// optionally to have beaten every team in wins and lost to every team in
// losses.
func WinAtMost(snap season.SeasonSnapshot, team season.TeamName, maxWinCount int, wins, losses map[season.TeamName]struct{}) (outcomes.ScenarioCondition, error) {
	tv, err := snap.Team(team)
	if err != nil {
		return nil, err
	}
	opts := season.ConstrainedRollOptions{ForceMaxWins: &maxWinCount, ForceWinsAgainst: wins, ForceLossesAgainst: losses}
	prob, factors, err := tv.ProbabilityOfConstraint(opts)
	if err != nil {
		return nil, err
	}

	totalGames := len(tv.Games)
	description := fmt.Sprintf("%s %d-%d or worse", ShortName(team), maxWinCount, totalGames-maxWinCount)
	if len(wins) > 0 {
		description += fmt.Sprintf(", beat %s", joinShortNames(namesOf(wins)))
	}
	if len(losses) > 0 {
		description += fmt.Sprintf(", lost to %s", joinShortNames(namesOf(losses)))
	}

	return condition{
		description: description,
		probability: prob,
		factors:     factors,
		holds: func(rolled season.SeasonSnapshot) (bool, error) {
			rtv, err := rolled.Team(team)
			if err != nil {
				return false, err
			}
			if rtv.Record().Wins > maxWinCount {
				return false, nil
			}
			if len(wins) == 0 && len(losses) == 0 {
				return true, nil
			}
			return supersetOf(beatSet(rtv), wins) && supersetOf(lossSet(rtv), losses), nil
		},
		force: func(roller season.UniformRoller, current season.SeasonSnapshot) (map[season.GameKey]season.TeamName, error) {
			return forceViaConstrainedRoll(current, team, opts, roller)
		},
	}, nil
}

// WinOut requires team to win every one of its remaining games.
func WinOut(snap season.SeasonSnapshot, team season.TeamName) (outcomes.ScenarioCondition, error) {
	tv, err := snap.Team(team)
	if err != nil {
		return nil, err
	}
	totalWins := tv.Record().Wins + len(tv.Remaining())
	return WinExactly(snap, team, totalWins, nil, nil, "")
}

// WinOutExcept requires team to win every remaining game except for
// losing to each team in losses.
func WinOutExcept(snap season.SeasonSnapshot, team season.TeamName, losses map[season.TeamName]struct{}) (outcomes.ScenarioCondition, error) {
	tv, err := snap.Team(team)
	if err != nil {
		return nil, err
	}
	winCount := tv.Record().Wins + len(tv.Remaining()) - len(losses)
	description := fmt.Sprintf("%s lose to %s", ShortName(team), joinShortNames(namesOf(losses)))
	return WinExactly(snap, team, winCount, nil, losses, description)
}

// WinOutExceptPossibly requires team to win every remaining game except
// possibly those against the teams in possibleLosses — those games may go
// either way without breaking the condition.
func WinOutExceptPossibly(snap season.SeasonSnapshot, team season.TeamName, possibleLosses []season.TeamName) (outcomes.ScenarioCondition, error) {
	tv, err := snap.Team(team)
	if err != nil {
		return nil, err
	}
	allowed := map[season.TeamName]struct{}{}
	for _, n := range possibleLosses {
		allowed[n] = struct{}{}
	}
	for n := range lossSet(tv) {
		allowed[n] = struct{}{}
	}

	prob := 1.0
	factors := map[season.TeamPair]float64{}
	for _, g := range tv.Remaining() {
		opp, err := g.Opponent(team)
		if err != nil {
			return nil, err
		}
		if _, possible := allowed[opp]; possible {
			continue
		}
		p, err := g.WinProbability(team)
		if err != nil {
			return nil, err
		}
		prob *= p
		factors[season.NewTeamPair(team, opp)] = p
	}

	lossWord := "loss"
	if len(possibleLosses) > 1 {
		lossWord = "losses"
	}
	description := fmt.Sprintf("%s only possible %s: %s", ShortName(team), lossWord, joinShortNames(possibleLosses))

	return condition{
		description: description,
		probability: prob,
		factors:     factors,
		holds: func(rolled season.SeasonSnapshot) (bool, error) {
			rtv, err := rolled.Team(team)
			if err != nil {
				return false, err
			}
			return supersetOf(allowed, lossSet(rtv)), nil
		},
		force: func(roller season.UniformRoller, current season.SeasonSnapshot) (map[season.GameKey]season.TeamName, error) {
			ctv, err := current.Team(team)
			if err != nil {
				return nil, err
			}
			out := map[season.GameKey]season.TeamName{}
			for _, g := range ctv.Remaining() {
				opp, err := g.Opponent(team)
				if err != nil {
					return nil, err
				}
				if _, possible := allowed[opp]; possible {
					continue
				}
				out[g.Key()] = team
			}
			return out, nil
		},
	}, nil
}

// Beat requires winner to have beaten loser outright.
func Beat(snap season.SeasonSnapshot, winner, loser season.TeamName) (outcomes.ScenarioCondition, error) {
	tv, err := snap.Team(winner)
	if err != nil {
		return nil, err
	}
	game, ok := tv.GameAgainst(loser)
	if !ok {
		return nil, errNoGame(winner, loser)
	}
	p, err := game.WinProbability(winner)
	if err != nil {
		return nil, err
	}
	pair := season.NewTeamPair(winner, loser)
	gameKey := game.Key()

	return condition{
		description: fmt.Sprintf("%s beat %s", ShortName(winner), ShortName(loser)),
		probability: p,
		factors:     map[season.TeamPair]float64{pair: p},
		holds: func(rolled season.SeasonSnapshot) (bool, error) {
			rtv, err := rolled.Team(winner)
			if err != nil {
				return false, err
			}
			_, ok := beatSet(rtv)[loser]
			return ok, nil
		},
		force: func(_ season.UniformRoller, _ season.SeasonSnapshot) (map[season.GameKey]season.TeamName, error) {
			return map[season.GameKey]season.TeamName{gameKey: winner}, nil
		},
	}, nil
}

// AnyOutcome is the vacuous condition: always holds, forces nothing, and
// contributes no factor to a scenario's joint probability.
func AnyOutcome() outcomes.ScenarioCondition {
	return condition{
		description: "Overall",
		probability: 1.0,
		factors:     map[season.TeamPair]float64{},
		holds:       func(season.SeasonSnapshot) (bool, error) { return true, nil },
		force: func(season.UniformRoller, season.SeasonSnapshot) (map[season.GameKey]season.TeamName, error) {
			return map[season.GameKey]season.TeamName{}, nil
		},
	}
}
