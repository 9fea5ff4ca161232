// Package probability collects generic win-probability and summary-stat
// helpers. Nothing in internal/season or internal/simulate depends on this
// package directly — win probabilities in this domain are supplied on each
// Game, not derived — but it ships as an example provider (EloWin/
// DrawProbability) callers can use to populate Game.TeamAWinProbability from
// ratings, plus the gonum-backed summary stats that
// outcomes.TeamSeasonOutcomes.WinCountSummary builds on.
package probability

import "math"

// EloWin returns the win probability of a team rated a against a team rated
// b under the standard logistic Elo model. Ported from the teacher's
// eloWin.
func EloWin(a, b float64) float64 {
	return 1 / (1 + math.Pow(10, (b-a)/400))
}

// DrawProbability estimates a draw probability from the Elo rating delta
// between two teams (positive favors the first), scaled by drawR, a
// sport-specific draw propensity constant. Ported from the teacher's
// Config.drawProb.
func DrawProbability(delta, drawR float64) float64 {
	w := 1 / (1 + math.Pow(10, -delta/400))
	return 2 * w * (1 - w) * drawR
}
