// Package render prints simulation results as tables, using the same
// text/tabwriter style as the teacher's main() — thin, non-core, and
// deliberately dumb about anything beyond formatting.
package render

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/apetersson/cfbsim/internal/outcomes"
	"github.com/apetersson/cfbsim/internal/season"
)

// Pct formats a probability in [0,1] as a percentage string. Ported from
// the teacher's pct helper.
func Pct(x float64) string { return fmt.Sprintf("%.1f%%", x*100) }

func newTabwriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
}

// ConferenceOutcomes prints one row per team, in conference-membership
// order: its division (when the conference has any), its probability of
// reaching the championship game, and its single most likely final
// record, in the teacher's "Team\tDirect\tPlayoff\t..." tabwriter table
// style.
func ConferenceOutcomes(w io.Writer, conf season.Conference, acc *outcomes.ConferenceSeasonOutcomes) error {
	tw := newTabwriter(w)
	showDivisions := len(conf.Divisions) > 0
	if showDivisions {
		fmt.Fprintln(tw, "Team\tDivision\tCCG\tMost Likely Record\tMean Wins")
	} else {
		fmt.Fprintln(tw, "Team\tCCG\tMost Likely Record\tMean Wins")
	}
	for _, team := range conf.Teams {
		ccg := acc.ProbInCCG(team)
		record, prob := mostLikelyRecord(acc, team)
		meanWins := fmt.Sprintf("%.1f", acc.WinCountSummary(team).Mean)
		if showDivisions {
			division, _ := conf.DivisionOf(team)
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s (%s)\t%s\n", team, division.Name, Pct(ccg), record, Pct(prob), meanWins)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s (%s)\t%s\n", team, Pct(ccg), record, Pct(prob), meanWins)
	}
	return tw.Flush()
}

func mostLikelyRecord(acc *outcomes.ConferenceSeasonOutcomes, team season.TeamName) (string, float64) {
	dist := acc.ProbFinalWinCount(team)
	wins := make([]int, 0, len(dist))
	for w := range dist {
		wins = append(wins, w)
	}
	sort.Ints(wins)

	bestWins, bestProb := 0, 0.0
	for _, w := range wins {
		if p := dist[w]; p > bestProb {
			bestWins, bestProb = w, p
		}
	}
	return fmt.Sprintf("%d-%d", bestWins, acc.SeasonLength-bestWins), bestProb
}

// Fixtures prints each not-yet-decided game's win probability, adapting the
// teacher's "Match\tHome Win\tDraw\tAway Win" table — the draw column is
// dropped since college football games don't end in ties.
func Fixtures(w io.Writer, snap season.SeasonSnapshot) error {
	tw := newTabwriter(w)
	fmt.Fprintln(tw, "Match\tA Win\tB Win")
	for _, g := range snap.Games {
		if g.IsOver() {
			continue
		}
		p, err := g.WinProbability(g.TeamA)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s vs %s\t%s\t%s\n", g.TeamA, g.TeamB, Pct(p), Pct(1-p))
	}
	return tw.Flush()
}

// Week prints the probability of each tracked matchup's first-listed team
// winning, using the accumulated WeekOutcomes.
func Week(w io.Writer, week *outcomes.WeekOutcomes) error {
	tw := newTabwriter(w)
	fmt.Fprintln(tw, "Matchup\tProbability")
	for _, m := range week.Matchups {
		prob := week.ProbOfWinners(map[season.TeamName]struct{}{m[0]: {}})
		fmt.Fprintf(tw, "%s over %s\t%s\n", m[0], m[1], Pct(prob))
	}
	return tw.Flush()
}

// Scenario prints one scenario's empirical frequency across a run next to
// its analytic estimate, for sanity-checking the simulation against the
// closed-form probability.
func Scenario(w io.Writer, name string, iterations int, so *outcomes.ScenarioOutcomes) {
	empirical := 0.0
	if iterations > 0 {
		empirical = float64(so.TotalSeasons) / float64(iterations)
	}
	fmt.Fprintf(w, "%s: empirical %s over %d iterations (analytic estimate %s)\n",
		name, Pct(empirical), iterations, Pct(so.Probability()))
}
