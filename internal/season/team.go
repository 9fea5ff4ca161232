package season

import (
	"fmt"
	"math/bits"
	"sort"
)

// Record is a team's won-lost-tied tally.
type Record struct {
	Wins   int
	Losses int
	Ties   int
}

// WinPercentage returns (wins + ties/2) / (wins + losses + ties), counting
// each tie as half a win. Returns 0 if no games have been played.
func (r Record) WinPercentage() float64 {
	denom := float64(r.Wins + r.Losses + r.Ties)
	if denom == 0 {
		return 0
	}
	return (float64(r.Wins) + 0.5*float64(r.Ties)) / denom
}

// TeamView is a team's precomputed position within a SeasonSnapshot: its
// full schedule plus the record/predicted-record bookkeeping derived from
// it. Built once by newTeamView and never mutated afterward.
type TeamView struct {
	Team  TeamName
	Games []Game

	played    []Game
	remaining []Game

	record Record
}

func newTeamView(team TeamName, games []Game) TeamView {
	sorted := make([]Game, len(games))
	copy(sorted, games)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	tv := TeamView{Team: team, Games: sorted}
	for _, g := range sorted {
		if g.IsOver() {
			tv.played = append(tv.played, g)
		} else {
			tv.remaining = append(tv.remaining, g)
		}
	}
	tv.record = tallyRecord(team, tv.played)
	return tv
}

func tallyRecord(team TeamName, played []Game) Record {
	var r Record
	for _, g := range played {
		winner, decided := g.Winner()
		switch {
		case g.IsTie():
			r.Ties++
		case decided && winner == team:
			r.Wins++
		case decided:
			r.Losses++
		}
	}
	return r
}

// PredictedWinPercentage blends the played record with the expected value
// of each remaining game's win probability.
func (tv TeamView) PredictedWinPercentage() float64 {
	wins := float64(tv.record.Wins) + 0.5*float64(tv.record.Ties)
	total := float64(tv.record.Wins + tv.record.Losses + tv.record.Ties)
	for _, g := range tv.remaining {
		p, _ := g.WinProbability(tv.Team)
		wins += p
		total++
	}
	if total == 0 {
		return 0
	}
	return wins / total
}

// HasPlayed reports whether the team has a decided game against opponent.
func (tv TeamView) HasPlayed(opponent TeamName) bool {
	for _, g := range tv.played {
		if g.Contains(opponent) {
			return true
		}
	}
	return false
}

// GameAgainst returns the (played or scheduled) game between this team
// and opponent, if one exists on the schedule.
func (tv TeamView) GameAgainst(opponent TeamName) (Game, bool) {
	for _, g := range tv.Games {
		if g.Contains(opponent) {
			return g, true
		}
	}
	return Game{}, false
}

// PlaysAny reports whether the team has any game, played or not, against
// any team in opponents.
func (tv TeamView) PlaysAny(opponents map[TeamName]struct{}) bool {
	for _, g := range tv.Games {
		other, err := g.Opponent(tv.Team)
		if err != nil {
			continue
		}
		if _, ok := opponents[other]; ok {
			return true
		}
	}
	return false
}

// HasPlayedAll reports whether the team has a decided game against every
// team in opponents.
func (tv TeamView) HasPlayedAll(opponents map[TeamName]struct{}) bool {
	for opp := range opponents {
		if !tv.HasPlayed(opp) {
			return false
		}
	}
	return true
}

// Record returns the team's played win-loss-tie record.
func (tv TeamView) Record() Record { return tv.record }

// Remaining returns the team's not-yet-decided games, in date order.
func (tv TeamView) Remaining() []Game { return tv.remaining }

// Played returns the team's decided games, in date order.
func (tv TeamView) Played() []Game { return tv.played }

// FilteredRecord returns the played record restricted to games against
// opponents in included. Tiebreaker rules pass the set of opponents they
// care about (tied teams, common opponents, conference members minus the
// conference's special-case exclusions).
func (tv TeamView) FilteredRecord(included map[TeamName]struct{}) Record {
	var filtered []Game
	for _, g := range tv.played {
		other, err := g.Opponent(tv.Team)
		if err != nil {
			continue
		}
		if _, ok := included[other]; !ok {
			continue
		}
		filtered = append(filtered, g)
	}
	return tallyRecord(tv.Team, filtered)
}

// FilteredWinPercentage is FilteredRecord's win percentage.
func (tv TeamView) FilteredWinPercentage(included map[TeamName]struct{}) float64 {
	return tv.FilteredRecord(included).WinPercentage()
}

// ConstrainedRollOptions narrows the space of outcomes TeamView.Roll draws
// from for this team's remaining games. At most one of ForceTotalWins and
// ForceMaxWins may be set.
type ConstrainedRollOptions struct {
	ForceTotalWins     *int
	ForceMaxWins       *int
	ForceWinsAgainst   map[TeamName]struct{}
	ForceLossesAgainst map[TeamName]struct{}
}

func (o ConstrainedRollOptions) forcedWins() map[TeamName]struct{} {
	if o.ForceWinsAgainst == nil {
		return map[TeamName]struct{}{}
	}
	return o.ForceWinsAgainst
}

func (o ConstrainedRollOptions) forcedLosses() map[TeamName]struct{} {
	if o.ForceLossesAgainst == nil {
		return map[TeamName]struct{}{}
	}
	return o.ForceLossesAgainst
}

// Roll draws one outcome for each of the team's remaining games, honoring
// ConstrainedRollOptions. When neither ForceTotalWins nor ForceMaxWins is
// set, each remaining game is drawn independently. When one of them is
// set, games not already forced by ForceWinsAgainst/ForceLossesAgainst are
// drawn jointly from the distribution conditioned on the team's win total
// landing at exactly ForceTotalWins, or at most ForceMaxWins, by
// enumerating which subset of the free games the team loses.
func (tv TeamView) Roll(roller BinaryRoller, uniform UniformRoller, opts ConstrainedRollOptions) ([]Game, error) {
	forcedWins, forcedLosses, err := opts.validate(tv.Team, tv.remaining)
	if err != nil {
		return nil, err
	}

	if opts.ForceTotalWins == nil && opts.ForceMaxWins == nil {
		rolled := make([]Game, len(tv.remaining))
		for i, g := range tv.remaining {
			rg, err := g.Roll(roller, forcedWins, forcedLosses)
			if err != nil {
				return nil, err
			}
			rolled[i] = rg
		}
		return rolled, nil
	}

	plan, err := tv.planConstrainedRoll(opts, forcedWins, forcedLosses)
	if err != nil {
		return nil, err
	}

	lossSubset, err := drawLossSubset(uniform, tv.Team, plan.freeGames, plan.minLosses, plan.maxLosses)
	if err != nil {
		return nil, err
	}

	rolled := make([]Game, 0, len(tv.remaining))
	rolled = append(rolled, plan.forcedGames...)
	for i, g := range plan.freeGames {
		win := lossSubset&(1<<uint(i)) == 0
		fg, ferr := g.ForceOutcomeIfNotOver(tv.Team, win)
		if ferr != nil {
			return nil, ferr
		}
		rolled = append(rolled, fg)
	}
	return rolled, nil
}

// constrainedRollPlan is the outcome of partitioning a team's remaining
// games into those force-decided by ConstrainedRollOptions and those left
// free to vary, plus the loss-count bounds the free games must satisfy.
type constrainedRollPlan struct {
	forcedGames    []Game
	forcedFactors  map[TeamPair]float64
	freeGames      []Game
	forcedWinCount int
	minLosses, maxLosses int
}

func (o ConstrainedRollOptions) validate(team TeamName, remaining []Game) (forcedWins, forcedLosses map[TeamName]struct{}, err error) {
	if o.ForceTotalWins != nil && o.ForceMaxWins != nil {
		return nil, nil, fmt.Errorf("%w: ForceTotalWins and ForceMaxWins are mutually exclusive", ErrInconsistentForcing)
	}
	forcedWins = o.forcedWins()
	forcedLosses = o.forcedLosses()
	for opponent := range forcedWins {
		if _, ok := forcedLosses[opponent]; ok {
			return nil, nil, fmt.Errorf("%w: %s is forced to both win and lose against %s", ErrInconsistentForcing, team, opponent)
		}
	}

	remainingOpponents := make(map[TeamName]struct{}, len(remaining))
	for _, g := range remaining {
		other, oerr := g.Opponent(team)
		if oerr != nil {
			continue
		}
		remainingOpponents[other] = struct{}{}
	}
	for opponent := range forcedWins {
		if _, ok := remainingOpponents[opponent]; !ok {
			return nil, nil, fmt.Errorf("%w: %s has no remaining game against %s to force a win in", ErrInconsistentForcing, team, opponent)
		}
	}
	for opponent := range forcedLosses {
		if _, ok := remainingOpponents[opponent]; !ok {
			return nil, nil, fmt.Errorf("%w: %s has no remaining game against %s to force a loss in", ErrInconsistentForcing, team, opponent)
		}
	}
	return forcedWins, forcedLosses, nil
}

func (tv TeamView) planConstrainedRoll(opts ConstrainedRollOptions, forcedWins, forcedLosses map[TeamName]struct{}) (constrainedRollPlan, error) {
	var plan constrainedRollPlan
	plan.forcedFactors = map[TeamPair]float64{}
	plan.forcedWinCount = tv.record.Wins
	for _, g := range tv.remaining {
		other, err := g.Opponent(tv.Team)
		if err != nil {
			return plan, err
		}
		_, mustWin := forcedWins[other]
		_, mustLose := forcedLosses[other]
		switch {
		case mustWin:
			p, perr := g.WinProbability(tv.Team)
			if perr != nil {
				return plan, perr
			}
			fg, ferr := g.ForceOutcomeIfNotOver(tv.Team, true)
			if ferr != nil {
				return plan, ferr
			}
			plan.forcedGames = append(plan.forcedGames, fg)
			plan.forcedFactors[NewTeamPair(tv.Team, other)] = p
			plan.forcedWinCount++
		case mustLose:
			p, perr := g.WinProbability(tv.Team)
			if perr != nil {
				return plan, perr
			}
			fg, ferr := g.ForceOutcomeIfNotOver(tv.Team, false)
			if ferr != nil {
				return plan, ferr
			}
			plan.forcedGames = append(plan.forcedGames, fg)
			plan.forcedFactors[NewTeamPair(tv.Team, other)] = 1 - p
		default:
			plan.freeGames = append(plan.freeGames, g)
		}
	}

	maxAchievable := plan.forcedWinCount + len(plan.freeGames)

	if opts.ForceTotalWins != nil {
		target := *opts.ForceTotalWins
		if target < plan.forcedWinCount || target > maxAchievable {
			return plan, fmt.Errorf("%w: %s cannot finish with exactly %d wins (forced %d, max achievable %d)",
				ErrScenarioInvalid, tv.Team, target, plan.forcedWinCount, maxAchievable)
		}
		losses := maxAchievable - target
		plan.minLosses, plan.maxLosses = losses, losses
		return plan, nil
	}

	target := *opts.ForceMaxWins
	if target < plan.forcedWinCount {
		return plan, fmt.Errorf("%w: %s already has %d wins, more than the requested max of %d",
			ErrScenarioInvalid, tv.Team, plan.forcedWinCount, target)
	}
	plan.minLosses = len(plan.freeGames) - min(target-plan.forcedWinCount, len(plan.freeGames))
	if plan.minLosses < 0 {
		plan.minLosses = 0
	}
	plan.maxLosses = len(plan.freeGames)
	return plan, nil
}

// ProbabilityOfConstraint returns the exact probability mass of the
// outcome space ConstrainedRollOptions describes, plus a breakdown of
// that probability by the individual game matchups whose result was
// named explicitly (via ForceWinsAgainst/ForceLossesAgainst) rather than
// summed over jointly. Games left free to vary within a win-count target
// contribute to the total but aren't separable into a per-game factor,
// since their probability only exists jointly with the other free games.
func (tv TeamView) ProbabilityOfConstraint(opts ConstrainedRollOptions) (float64, map[TeamPair]float64, error) {
	forcedWins, forcedLosses, err := opts.validate(tv.Team, tv.remaining)
	if err != nil {
		return 0, nil, err
	}

	factors := map[TeamPair]float64{}
	if opts.ForceTotalWins == nil && opts.ForceMaxWins == nil {
		return 1, factors, nil
	}

	plan, err := tv.planConstrainedRoll(opts, forcedWins, forcedLosses)
	if err != nil {
		return 0, nil, err
	}

	prob := 1.0
	for pair, p := range plan.forcedFactors {
		factors[pair] = p
		prob *= p
	}

	total, err := lossSubsetWeightTotal(tv.Team, plan.freeGames, plan.minLosses, plan.maxLosses)
	if err != nil {
		return 0, nil, err
	}
	return prob * total, factors, nil
}

type lossSubsetBucket struct {
	mask   uint64
	weight float64
}

// enumerateLossSubsets enumerates every subset of freeGames (encoded as a
// bitmask, bit i set meaning "team loses game i") whose popcount falls
// within [minLosses, maxLosses], weighted by its joint probability under
// the games' independent win probabilities.
func enumerateLossSubsets(team TeamName, freeGames []Game, minLosses, maxLosses int) ([]lossSubsetBucket, float64, error) {
	n := len(freeGames)
	if n > 63 {
		return nil, 0, fmt.Errorf("%w: %s has too many unforced remaining games (%d) to enumerate", ErrScenarioInvalid, team, n)
	}
	probs := make([]float64, n)
	for i, g := range freeGames {
		p, err := g.WinProbability(team)
		if err != nil {
			return nil, 0, err
		}
		probs[i] = p
	}

	var buckets []lossSubsetBucket
	var total float64
	limit := uint64(1) << uint(n)
	for mask := uint64(0); mask < limit; mask++ {
		losses := bits.OnesCount64(mask)
		if losses < minLosses || losses > maxLosses {
			continue
		}
		weight := 1.0
		for i := 0; i < n; i++ {
			if mask&(1<<uint(i)) != 0 {
				weight *= 1 - probs[i]
			} else {
				weight *= probs[i]
			}
		}
		if weight > 0 {
			buckets = append(buckets, lossSubsetBucket{mask: mask, weight: weight})
			total += weight
		}
	}
	return buckets, total, nil
}

// lossSubsetWeightTotal returns the total probability mass across every
// feasible loss subset, i.e. the probability that team's loss count among
// freeGames falls within [minLosses, maxLosses].
func lossSubsetWeightTotal(team TeamName, freeGames []Game, minLosses, maxLosses int) (float64, error) {
	_, total, err := enumerateLossSubsets(team, freeGames, minLosses, maxLosses)
	return total, err
}

// drawLossSubset draws one loss subset from the distribution described by
// enumerateLossSubsets via a cumulative bucket walk against uniform()*total.
func drawLossSubset(uniform UniformRoller, team TeamName, freeGames []Game, minLosses, maxLosses int) (uint64, error) {
	buckets, total, err := enumerateLossSubsets(team, freeGames, minLosses, maxLosses)
	if err != nil {
		return 0, err
	}
	if len(buckets) == 0 || total <= 0 {
		return 0, fmt.Errorf("%w: no feasible outcome for %s within the requested loss count", ErrScenarioInvalid, team)
	}

	draw := uniform() * total
	var cumulative float64
	for _, b := range buckets {
		cumulative += b.weight
		if draw <= cumulative {
			return b.mask, nil
		}
	}
	return buckets[len(buckets)-1].mask, nil
}
