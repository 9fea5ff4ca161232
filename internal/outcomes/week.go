package outcomes

import (
	"fmt"

	"github.com/apetersson/cfbsim/internal/season"
)

// WeekOutcomes tracks, for a fixed slate of games (Matchups), how often
// each possible combination of winners occurred across many rolled
// seasons, and what the conference's championship game pairing was in
// each case — answering "given these teams won this week, how likely is X
// to make the championship game".
type WeekOutcomes struct {
	Matchups   []season.TeamPair
	TotalCount int

	// Permutations maps a canonical (sorted) set of this week's winners
	// to how often each championship-game pairing followed from it.
	Permutations map[season.TeamNames]map[season.TeamPair]int
}

// NewWeekOutcomes builds a zero-valued accumulator for the given slate.
func NewWeekOutcomes(matchups []season.TeamPair) *WeekOutcomes {
	return &WeekOutcomes{Matchups: matchups, Permutations: map[season.TeamNames]map[season.TeamPair]int{}}
}

// Accept folds in one rolled conference's result: it locates the winner
// of each tracked matchup and tallies the championship-game pairing that
// followed.
func (w *WeekOutcomes) Accept(cv season.ConferenceView, ccgTeams season.TeamPair) error {
	winners := make([]season.TeamName, 0, len(w.Matchups))
	for _, matchup := range w.Matchups {
		tv, ok := cv.Teams[matchup[0]]
		if !ok {
			return fmt.Errorf("%w: %s", season.ErrUnknownTeam, matchup[0])
		}
		game, ok := tv.GameAgainst(matchup[1])
		if !ok {
			return fmt.Errorf("%w: no game between %s and %s", season.ErrSnapshotMalformed, matchup[0], matchup[1])
		}
		winner, ok := game.Winner()
		if !ok {
			return fmt.Errorf("%w: %s vs %s has no decided winner", season.ErrInconsistentForcing, matchup[0], matchup[1])
		}
		winners = append(winners, winner)
	}
	if len(winners) != len(w.Matchups) {
		return fmt.Errorf("%w: not every tracked matchup was found", season.ErrSnapshotMalformed)
	}

	key := season.NewTeamNamesFromSlice(winners)
	bucket, ok := w.Permutations[key]
	if !ok {
		bucket = map[season.TeamPair]int{}
		w.Permutations[key] = bucket
	}
	bucket[ccgTeams]++
	w.TotalCount++
	return nil
}

// ProbInCCGGivenWinners returns the conditional probability that ccgTarget
// made the championship game, given that every team in winners won its
// tracked game (other tracked games may have gone either way).
func (w *WeekOutcomes) ProbInCCGGivenWinners(winners map[season.TeamName]struct{}, ccgTarget season.TeamName) float64 {
	var count, inCCG int
	for allWinners, results := range w.Permutations {
		if !supersetOf(allWinners, winners) {
			continue
		}
		for ccgTeams, c := range results {
			count += c
			if ccgTeams.Contains(ccgTarget) {
				inCCG += c
			}
		}
	}
	if count == 0 {
		return 0
	}
	return float64(inCCG) / float64(count)
}

// ProbOfWinners returns the fraction of rolled seasons in which every team
// in winners won its tracked game.
func (w *WeekOutcomes) ProbOfWinners(winners map[season.TeamName]struct{}) float64 {
	if w.TotalCount == 0 {
		return 0
	}
	count := 0
	for allWinners, results := range w.Permutations {
		if !supersetOf(allWinners, winners) {
			continue
		}
		for _, c := range results {
			count += c
		}
	}
	return float64(count) / float64(w.TotalCount)
}

func supersetOf(all season.TeamNames, subset map[season.TeamName]struct{}) bool {
	members := map[season.TeamName]struct{}{}
	for _, name := range all.Names() {
		members[name] = struct{}{}
	}
	for name := range subset {
		if _, ok := members[name]; !ok {
			return false
		}
	}
	return true
}

// ShallowClone returns a fresh, zero-valued accumulator for the same
// slate of tracked matchups.
func (w *WeekOutcomes) ShallowClone() *WeekOutcomes {
	return NewWeekOutcomes(w.Matchups)
}

// Merge folds another accumulator's tallies into this one.
func (w *WeekOutcomes) Merge(other *WeekOutcomes) {
	if other == nil {
		return
	}
	w.TotalCount += other.TotalCount
	for winners, matchups := range other.Permutations {
		bucket, ok := w.Permutations[winners]
		if !ok {
			bucket = map[season.TeamPair]int{}
			w.Permutations[winners] = bucket
		}
		for matchup, count := range matchups {
			bucket[matchup] += count
		}
	}
}
