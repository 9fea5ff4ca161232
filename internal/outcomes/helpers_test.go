package outcomes

import (
	"testing"
	"time"

	"github.com/apetersson/cfbsim/internal/season"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func alphabeticalSeeder(_ season.ConferenceView, tied []season.TeamName, _ season.UniformRoller) ([]season.TeamName, error) {
	ordered := make([]season.TeamName, len(tied))
	copy(ordered, tied)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j] < ordered[j-1]; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}
	return ordered, nil
}

func teamGamesFor(games []season.Game, team season.TeamName) []season.Game {
	var out []season.Game
	for _, g := range games {
		if g.Contains(team) {
			out = append(out, g)
		}
	}
	return out
}

// threeTeamSnapshot builds a fully-decided 3-team round robin where A and B
// both beat C, leaving A and B tied atop the standings.
func threeTeamSnapshot(t *testing.T) season.SeasonSnapshot {
	t.Helper()
	season.RegisterSeeder("outcomes-test-alphabetical", alphabeticalSeeder)
	return season.SeasonSnapshot{
		Year: 2025,
		Conferences: []season.Conference{
			{Name: "TST", Teams: []season.TeamName{"A", "B", "C"}, Seeder: "outcomes-test-alphabetical"},
		},
		Games: []season.Game{
			season.NewCompletedGame(mustDate(t, "2025-09-01T00:00:00Z"), "A", "C", false, 1, 0),
			season.NewCompletedGame(mustDate(t, "2025-09-08T00:00:00Z"), "B", "C", false, 1, 0),
		},
	}
}
