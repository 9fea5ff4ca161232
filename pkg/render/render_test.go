package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/apetersson/cfbsim/internal/outcomes"
	"github.com/apetersson/cfbsim/internal/season"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return d
}

func decidedSnapshot(t *testing.T) season.SeasonSnapshot {
	t.Helper()
	return season.SeasonSnapshot{
		Year: 2025,
		Conferences: []season.Conference{
			{Name: "TST", Teams: []season.TeamName{"A", "B"}},
		},
		Games: []season.Game{
			season.NewCompletedGame(mustDate(t, "2025-09-01T00:00:00Z"), "A", "B", false, 21, 10),
		},
	}
}

func TestPctFormatsAsPercentage(t *testing.T) {
	assert.Equal(t, "50.0%", Pct(0.5))
	assert.Equal(t, "100.0%", Pct(1))
	assert.Equal(t, "0.0%", Pct(0))
}

func TestConferenceOutcomesPrintsOneRowPerTeam(t *testing.T) {
	snap := decidedSnapshot(t)
	cv, err := snap.Conference("TST")
	require.NoError(t, err)

	acc := outcomes.NewConferenceSeasonOutcomes(1)
	require.NoError(t, acc.Accept(cv, season.TeamPair{}))

	var buf bytes.Buffer
	require.NoError(t, ConferenceOutcomes(&buf, snap.Conferences[0], acc))
	out := buf.String()
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "B")
	assert.Contains(t, out, "1-0")
	assert.Contains(t, out, "0-1")
	assert.Contains(t, out, "Mean Wins")
	assert.NotContains(t, out, "Division")
}

func TestConferenceOutcomesPrintsDivisionColumnWhenPresent(t *testing.T) {
	snap := season.SeasonSnapshot{
		Year: 2025,
		Conferences: []season.Conference{
			{
				Name:  "TST",
				Teams: []season.TeamName{"A", "B"},
				Divisions: []season.Division{
					{Name: "North", Teams: []season.TeamName{"A"}},
					{Name: "South", Teams: []season.TeamName{"B"}},
				},
			},
		},
		Games: []season.Game{
			season.NewCompletedGame(mustDate(t, "2025-09-01T00:00:00Z"), "A", "B", false, 21, 10),
		},
	}
	cv, err := snap.Conference("TST")
	require.NoError(t, err)

	acc := outcomes.NewConferenceSeasonOutcomes(1)
	require.NoError(t, acc.Accept(cv, season.TeamPair{}))

	var buf bytes.Buffer
	require.NoError(t, ConferenceOutcomes(&buf, snap.Conferences[0], acc))
	out := buf.String()
	assert.Contains(t, out, "Division")
	assert.Contains(t, out, "North")
	assert.Contains(t, out, "South")
}

func TestFixturesSkipsDecidedGames(t *testing.T) {
	snap := season.SeasonSnapshot{
		Games: []season.Game{
			season.NewScheduledGame(mustDate(t, "2025-09-01T00:00:00Z"), "A", "B", false, 0.6),
			season.NewCompletedGame(mustDate(t, "2025-09-08T00:00:00Z"), "A", "C", false, 20, 10),
		},
	}
	var buf bytes.Buffer
	require.NoError(t, Fixtures(&buf, snap))
	out := buf.String()
	assert.Contains(t, out, "A vs B")
	assert.NotContains(t, out, "A vs C")
}

func TestWeekPrintsMatchupProbability(t *testing.T) {
	snap := decidedSnapshot(t)
	cv, err := snap.Conference("TST")
	require.NoError(t, err)

	week := outcomes.NewWeekOutcomes([]season.TeamPair{season.NewTeamPair("A", "B")})
	require.NoError(t, week.Accept(cv, season.TeamPair{}))

	var buf bytes.Buffer
	require.NoError(t, Week(&buf, week))
	assert.Contains(t, buf.String(), "A over B")
	assert.Contains(t, buf.String(), "100.0%")
}

func TestScenarioReportsEmpiricalAndAnalytic(t *testing.T) {
	so := outcomes.NewScenarioOutcomes()
	var buf bytes.Buffer
	Scenario(&buf, "always", 10, so)
	assert.Contains(t, buf.String(), "always")
	assert.Contains(t, buf.String(), "analytic estimate")
}
