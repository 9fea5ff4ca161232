package simulate

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

// twoTeamSnapshot is a single conference with no championship game: A and B
// play one coinflip game, so outcome distributions are trivial to check by
// hand.
func twoTeamSnapshot(t *testing.T) season.SeasonSnapshot {
	t.Helper()
	return season.SeasonSnapshot{
		Year: 2025,
		Conferences: []season.Conference{
			{Name: "TST", Teams: []season.TeamName{"A", "B"}},
		},
		Games: []season.Game{
			season.NewScheduledGame(mustDate(t, "2025-09-01T00:00:00Z"), "A", "B", false, 0.5),
		},
	}
}
