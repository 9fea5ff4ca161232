package outcomes

import (
	"github.com/apetersson/cfbsim/internal/probability"
	"github.com/apetersson/cfbsim/internal/season"
)

// TeamSeasonOutcomes is a single team's full outcome tally across many
// rolled seasons: its win-count distribution, how often it made the
// championship game, its standing distribution, and — bucketed by the
// exact set of teams it lost to — the finer-grained BasicTeamSeasonOutcomes
// needed to answer "given these losses, how often did X make the CCG".
type TeamSeasonOutcomes struct {
	TotalSeasons   int
	WinCounts      map[int]int
	WinCountsInCCG map[int]int
	MadeCCG        int
	Standing       map[season.Standing]int
	LostTo         map[season.TeamNames]*BasicTeamSeasonOutcomes
}

// NewTeamSeasonOutcomes returns a zero-valued accumulator.
func NewTeamSeasonOutcomes() *TeamSeasonOutcomes {
	return &TeamSeasonOutcomes{
		WinCounts:      map[int]int{},
		WinCountsInCCG: map[int]int{},
		Standing:       map[season.Standing]int{},
		LostTo:         map[season.TeamNames]*BasicTeamSeasonOutcomes{},
	}
}

// Accept folds in one rolled season's result for this team, given the
// conference view it finished in and the pair that played the
// championship game.
func (t *TeamSeasonOutcomes) Accept(cv season.ConferenceView, team season.TeamView, ccgTeams season.TeamPair) error {
	standing, ok := cv.Standing(team.Team)
	if !ok {
		return season.ErrUnknownTeam
	}
	lostTo := lossesAgainst(team)

	t.TotalSeasons++
	t.Standing[standing]++
	t.WinCounts[team.Record().Wins]++
	if ccgTeams.Contains(team.Team) {
		t.MadeCCG++
		t.WinCountsInCCG[team.Record().Wins]++
	}
	bucket, ok := t.LostTo[lostTo]
	if !ok {
		bucket = NewBasicTeamSeasonOutcomes()
		t.LostTo[lostTo] = bucket
	}
	bucket.Accept(team.Team, standing, ccgTeams)
	return nil
}

func lossesAgainst(team season.TeamView) season.TeamNames {
	var losses []season.TeamName
	for _, g := range team.Games {
		if !g.IsOver() || g.IsTie() {
			continue
		}
		winner, _ := g.Winner()
		if winner == team.Team {
			continue
		}
		opp, err := g.Opponent(team.Team)
		if err != nil {
			continue
		}
		losses = append(losses, opp)
	}
	return season.NewTeamNamesFromSlice(losses)
}

// WinCountSummary reduces WinCounts to a mean/stddev/min/max summary,
// letting callers sanity-check or report a team's win-total distribution
// without walking the raw histogram themselves.
func (t *TeamSeasonOutcomes) WinCountSummary() probability.Summary {
	return probability.Summarize(probability.WinCountSample(t.WinCounts))
}

// Merge folds another accumulator's tallies into this one.
func (t *TeamSeasonOutcomes) Merge(other *TeamSeasonOutcomes) {
	if other == nil {
		return
	}
	t.TotalSeasons += other.TotalSeasons
	for wins, count := range other.WinCounts {
		t.WinCounts[wins] += count
	}
	for wins, count := range other.WinCountsInCCG {
		t.WinCountsInCCG[wins] += count
	}
	t.MadeCCG += other.MadeCCG
	for standing, count := range other.Standing {
		t.Standing[standing] += count
	}
	for lost, bucket := range other.LostTo {
		existing, ok := t.LostTo[lost]
		if !ok {
			existing = NewBasicTeamSeasonOutcomes()
			t.LostTo[lost] = existing
		}
		existing.Merge(bucket)
	}
}
