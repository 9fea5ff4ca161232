package season

import (
	"fmt"
	"time"
)

// Game is an immutable record of a single matchup. Exactly one of
// FinalScore or TeamAWinProbability is set; the two teams are always
// distinct. Games are never mutated in place — Clone, Roll, and
// ForceOutcomeIfNotOver all return a new value.
type Game struct {
	Date                time.Time
	TeamA               TeamName
	TeamB               TeamName
	Neutral             bool
	FinalScore          *[2]int
	TeamAWinProbability *float64

	// CountsTowardTwelve marks whether this game should be included when a
	// tiebreaker rule counts wins within a capped-length season (see
	// tiebreak.TotalWinsInTwelveGameSeason). Defaults to true; a conference's
	// Hawaii-exception or foreign-tour games are flagged false at ingestion
	// instead of being matched by team name.
	CountsTowardTwelve bool
}

// NewScheduledGame builds a not-yet-played game with a modeled win
// probability for the away team.
func NewScheduledGame(date time.Time, teamA, teamB TeamName, neutral bool, teamAWinProbability float64) Game {
	p := teamAWinProbability
	return Game{Date: date, TeamA: teamA, TeamB: teamB, Neutral: neutral, TeamAWinProbability: &p, CountsTowardTwelve: true}
}

// NewCompletedGame builds an already-played game with a final score.
func NewCompletedGame(date time.Time, teamA, teamB TeamName, neutral bool, scoreA, scoreB int) Game {
	score := [2]int{scoreA, scoreB}
	return Game{Date: date, TeamA: teamA, TeamB: teamB, Neutral: neutral, FinalScore: &score, CountsTowardTwelve: true}
}

// IsOver reports whether the game has a final score.
func (g Game) IsOver() bool { return g.FinalScore != nil }

// Winner returns the winning team, if the game is over and not a tie.
func (g Game) Winner() (TeamName, bool) {
	if !g.IsOver() {
		return "", false
	}
	switch {
	case g.FinalScore[0] > g.FinalScore[1]:
		return g.TeamA, true
	case g.FinalScore[1] > g.FinalScore[0]:
		return g.TeamB, true
	default:
		return "", false
	}
}

// IsTie reports whether the game ended in a tie. Only meaningful if IsOver.
func (g Game) IsTie() bool {
	return g.IsOver() && g.FinalScore[0] == g.FinalScore[1]
}

// Contains reports whether the given team is a participant in this game.
func (g Game) Contains(team TeamName) bool {
	return team == g.TeamA || team == g.TeamB
}

// WinProbability returns the win probability of the given team: 1 if it
// won, 0 if it lost or tied, else the modeled probability (mirrored for
// the home side).
func (g Game) WinProbability(team TeamName) (float64, error) {
	if !g.Contains(team) {
		return 0, fmt.Errorf("%w: %s is not a participant in %s vs %s", ErrUnknownTeam, team, g.TeamA, g.TeamB)
	}
	if g.IsOver() {
		if winner, ok := g.Winner(); ok && winner == team {
			return 1, nil
		}
		return 0, nil
	}
	if team == g.TeamA {
		return *g.TeamAWinProbability, nil
	}
	return 1 - *g.TeamAWinProbability, nil
}

// Opponent returns the other team in the game.
func (g Game) Opponent(team TeamName) (TeamName, error) {
	if !g.Contains(team) {
		return "", fmt.Errorf("%w: %s is not a participant in %s vs %s", ErrUnknownTeam, team, g.TeamA, g.TeamB)
	}
	if team == g.TeamB {
		return g.TeamA, nil
	}
	return g.TeamB, nil
}

// Clone returns a deep copy safe to mutate independently.
func (g Game) Clone() Game {
	clone := g
	if g.FinalScore != nil {
		score := *g.FinalScore
		clone.FinalScore = &score
	}
	if g.TeamAWinProbability != nil {
		p := *g.TeamAWinProbability
		clone.TeamAWinProbability = &p
	}
	return clone
}

func (g Game) cloneWithScore(scoreA, scoreB int) Game {
	clone := g.Clone()
	score := [2]int{scoreA, scoreB}
	clone.FinalScore = &score
	clone.TeamAWinProbability = nil
	return clone
}

// ForceOutcomeIfNotOver returns a clone with the given team forced to win
// or lose. A no-op if the game is already over.
func (g Game) ForceOutcomeIfNotOver(team TeamName, win bool) (Game, error) {
	if g.IsOver() {
		return g, nil
	}
	if !g.Contains(team) {
		return Game{}, fmt.Errorf("%w: can't force %s's outcome in %s vs %s", ErrUnknownTeam, team, g.TeamA, g.TeamB)
	}
	teamAWins := (win && team == g.TeamA) || (!win && team == g.TeamB)
	if teamAWins {
		return g.cloneWithScore(1, 0), nil
	}
	return g.cloneWithScore(0, 1), nil
}

// Roll resolves an undecided game: a forced winner or loser takes
// precedence, else a uniform draw decides the away team's fate. Margin is
// not modeled; the result carries a canonical (1,0) or (0,1) score.
func (g Game) Roll(roller BinaryRoller, forceWinners, forceLosers map[TeamName]struct{}) (Game, error) {
	if g.IsOver() {
		return g, nil
	}
	if _, ok := forceWinners[g.TeamA]; ok {
		return g.ForceOutcomeIfNotOver(g.TeamA, true)
	}
	if _, ok := forceWinners[g.TeamB]; ok {
		return g.ForceOutcomeIfNotOver(g.TeamB, true)
	}
	if _, ok := forceLosers[g.TeamA]; ok {
		return g.ForceOutcomeIfNotOver(g.TeamA, false)
	}
	if _, ok := forceLosers[g.TeamB]; ok {
		return g.ForceOutcomeIfNotOver(g.TeamB, false)
	}
	if roller(*g.TeamAWinProbability) {
		return g.cloneWithScore(1, 0), nil
	}
	return g.cloneWithScore(0, 1), nil
}

// GameKey uniquely identifies a matchup by its ordered (date, team_a,
// team_b) triple.
type GameKey struct {
	Date  time.Time
	TeamA TeamName
	TeamB TeamName
}

// Key returns the matchup's identity within a SeasonSnapshot.
func (g Game) Key() GameKey {
	return GameKey{Date: g.Date, TeamA: g.TeamA, TeamB: g.TeamB}
}
