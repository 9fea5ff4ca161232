package outcomes

import (
	"github.com/apetersson/cfbsim/internal/probability"
	"github.com/apetersson/cfbsim/internal/season"
)

// ConferenceSeasonOutcomes is the top-level tally for one conference
// across many rolled seasons, and the source of the derived probability
// queries a report ultimately prints.
type ConferenceSeasonOutcomes struct {
	TotalSeasons int
	Teams        map[season.TeamName]*TeamSeasonOutcomes
	// SeasonLength is the number of games a complete season-long record is
	// expected to span; ProbFinalWinCount reports wins as SeasonLength
	// minus the number of losses a bucket was keyed by, matching how the
	// underlying tiebreaker rules count a fixed-length season.
	SeasonLength int

	ccgParticipants map[string]*ccgTally
}

type ccgTally struct {
	Pairs []season.TeamPair
	Count int
}

// NewConferenceSeasonOutcomes returns a zero-valued accumulator for a
// conference whose season runs seasonLength games.
func NewConferenceSeasonOutcomes(seasonLength int) *ConferenceSeasonOutcomes {
	return &ConferenceSeasonOutcomes{
		Teams:           map[season.TeamName]*TeamSeasonOutcomes{},
		SeasonLength:    seasonLength,
		ccgParticipants: map[string]*ccgTally{},
	}
}

func ccgKey(pairs []season.TeamPair) string {
	s := ""
	for _, p := range pairs {
		s += p[0] + "~" + p[1] + "|"
	}
	return s
}

func (c *ConferenceSeasonOutcomes) acceptCCG(pairs []season.TeamPair) {
	key := ccgKey(pairs)
	entry, ok := c.ccgParticipants[key]
	if !ok {
		entry = &ccgTally{Pairs: pairs}
		c.ccgParticipants[key] = entry
	}
	entry.Count++
}

// Accept folds in one rolled conference's result: every team's outcome
// plus the pair that played in the championship game for this rolled
// season (nil/empty if the conference has no championship game).
func (c *ConferenceSeasonOutcomes) Accept(cv season.ConferenceView, ccgTeams season.TeamPair) error {
	c.TotalSeasons++
	c.acceptCCG([]season.TeamPair{ccgTeams})
	for name, tv := range cv.Teams {
		outcome, ok := c.Teams[name]
		if !ok {
			outcome = NewTeamSeasonOutcomes()
			c.Teams[name] = outcome
		}
		if err := outcome.Accept(cv, tv, ccgTeams); err != nil {
			return err
		}
	}
	return nil
}

// ProbInCCG returns the fraction of rolled seasons in which team played in
// the championship game.
func (c *ConferenceSeasonOutcomes) ProbInCCG(team season.TeamName) float64 {
	if c.TotalSeasons == 0 {
		return 0
	}
	count := 0
	for _, entry := range c.ccgParticipants {
		if pairsContain(entry.Pairs, team) {
			count += entry.Count
		}
	}
	return float64(count) / float64(c.TotalSeasons)
}

func pairsContain(pairs []season.TeamPair, team season.TeamName) bool {
	for _, p := range pairs {
		if p.Contains(team) {
			return true
		}
	}
	return false
}

// ProbInCCGGivenSpecificLosses returns, for each exact set of teams the
// team could have lost to, the conditional probability that ccgTarget
// made the championship game.
func (c *ConferenceSeasonOutcomes) ProbInCCGGivenSpecificLosses(team, ccgTarget season.TeamName) map[season.TeamNames]float64 {
	teamOutcomes, ok := c.Teams[team]
	if !ok {
		return nil
	}
	result := map[season.TeamNames]float64{}
	for losses, bucket := range teamOutcomes.LostTo {
		if bucket.TotalSeasons == 0 {
			continue
		}
		count := 0
		for pair, pairCount := range bucket.CCGParticipants {
			if pair.Contains(ccgTarget) {
				count += pairCount
			}
		}
		prob := float64(count) / float64(bucket.TotalSeasons)
		if prob > 0 {
			result[losses] = prob
		}
	}
	return result
}

// ProbInCCGGivenTotalLosses returns, for each possible number of losses,
// the conditional probability that ccgTarget made the championship game.
func (c *ConferenceSeasonOutcomes) ProbInCCGGivenTotalLosses(team, ccgTarget season.TeamName) map[int]float64 {
	teamOutcomes, ok := c.Teams[team]
	if !ok {
		return nil
	}
	ccgMade := map[int]int{}
	total := map[int]int{}
	for losses, bucket := range teamOutcomes.LostTo {
		count := 0
		for pair, cnt := range bucket.CCGParticipants {
			if pair.Contains(ccgTarget) {
				count += cnt
			}
		}
		n := losses.Len()
		ccgMade[n] += count
		total[n] += bucket.TotalSeasons
	}
	result := map[int]float64{}
	for n, count := range ccgMade {
		if total[n] == 0 {
			continue
		}
		result[n] = float64(count) / float64(total[n])
	}
	return result
}

// ProbFinalWinCount returns, for each possible final win total, the
// fraction of all rolled seasons that produced it.
func (c *ConferenceSeasonOutcomes) ProbFinalWinCount(team season.TeamName) map[int]float64 {
	teamOutcomes, ok := c.Teams[team]
	if !ok || c.TotalSeasons == 0 {
		return nil
	}
	byLosses := map[int]int{}
	for losses, bucket := range teamOutcomes.LostTo {
		byLosses[losses.Len()] += bucket.TotalSeasons
	}
	result := map[int]float64{}
	for losses, count := range byLosses {
		result[c.SeasonLength-losses] = float64(count) / float64(c.TotalSeasons)
	}
	return result
}

// WinCountSummary reduces team's win-total distribution to a mean/stddev/
// min/max summary. The zero Summary is returned for an untracked team.
func (c *ConferenceSeasonOutcomes) WinCountSummary(team season.TeamName) probability.Summary {
	teamOutcomes, ok := c.Teams[team]
	if !ok {
		return probability.Summary{}
	}
	return teamOutcomes.WinCountSummary()
}

// Merge folds another accumulator's tallies into this one.
func (c *ConferenceSeasonOutcomes) Merge(other *ConferenceSeasonOutcomes) {
	if other == nil {
		return
	}
	c.TotalSeasons += other.TotalSeasons
	for team, outcome := range other.Teams {
		existing, ok := c.Teams[team]
		if !ok {
			existing = NewTeamSeasonOutcomes()
			c.Teams[team] = existing
		}
		existing.Merge(outcome)
	}
	for key, entry := range other.ccgParticipants {
		existing, ok := c.ccgParticipants[key]
		if !ok {
			existing = &ccgTally{Pairs: entry.Pairs}
			c.ccgParticipants[key] = existing
		}
		existing.Count += entry.Count
	}
}
