package outcomes

import "github.com/apetersson/cfbsim/internal/season"

// ScenarioCondition is one named, checkable, forceable constraint on how a
// season can unfold — e.g. "BYU finishes 11-1" or "Utah beats Colorado".
// Built by the constructors in the scenario package; outcomes only needs
// to evaluate and combine them.
type ScenarioCondition interface {
	// Holds reports whether rolled satisfies this condition.
	Holds(rolled season.SeasonSnapshot) (bool, error)
	// Probability is this condition's independent probability of holding,
	// as computed at construction time from the season's win probabilities.
	Probability() float64
	// ProbabilityFactors breaks Probability down by the individual game
	// matchups that contributed to it, so ScenarioOutcomes can avoid
	// double-counting a game two conditions both reference.
	ProbabilityFactors() map[season.TeamPair]float64
	// ForcedWinners returns the game outcomes this condition requires,
	// suitable for use as a season.ScenarioForcer.
	ForcedWinners(roller season.UniformRoller, current season.SeasonSnapshot) (map[season.GameKey]season.TeamName, error)
	// String describes the condition for report labels.
	String() string
}

// ScenarioOutcomes tallies how often a rolled season satisfies every one
// of a set of conditions simultaneously, and — among seasons that do — how
// the championship game turned out.
type ScenarioOutcomes struct {
	Conditions          []ScenarioCondition
	DescriptionOverride string

	TotalSeasons    int
	ccgParticipants map[string]*ccgTally
}

// NewScenarioOutcomes builds a zero-valued accumulator for the given
// conditions, all of which must hold for a rolled season to count.
func NewScenarioOutcomes(conditions ...ScenarioCondition) *ScenarioOutcomes {
	return &ScenarioOutcomes{Conditions: conditions, ccgParticipants: map[string]*ccgTally{}}
}

// Holds reports whether rolled satisfies every condition.
func (s *ScenarioOutcomes) Holds(rolled season.SeasonSnapshot) (bool, error) {
	for _, c := range s.Conditions {
		ok, err := c.Holds(rolled)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Probability is the joint probability of every condition holding,
// correcting for any individual game matchup referenced by more than one
// condition so it isn't counted as independent twice.
func (s *ScenarioOutcomes) Probability() float64 {
	prob := 1.0
	seen := map[season.TeamPair]struct{}{}
	for _, c := range s.Conditions {
		prob *= c.Probability()
		for pair, p := range c.ProbabilityFactors() {
			if _, ok := seen[pair]; ok {
				if p != 0 {
					prob /= p
				}
			}
			seen[pair] = struct{}{}
		}
	}
	return prob
}

// Description joins every condition's description, or returns the
// override if one was supplied.
func (s *ScenarioOutcomes) Description(separator string) string {
	if s.DescriptionOverride != "" {
		return s.DescriptionOverride
	}
	out := ""
	for i, c := range s.Conditions {
		if i > 0 {
			out += separator
		}
		out += c.String()
	}
	return out
}

// Accept folds in one rolled season if it satisfies every condition.
func (s *ScenarioOutcomes) Accept(rolled season.SeasonSnapshot, ccgTeams []season.TeamPair) error {
	ok, err := s.Holds(rolled)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	s.TotalSeasons++
	key := ccgKey(ccgTeams)
	entry, exists := s.ccgParticipants[key]
	if !exists {
		entry = &ccgTally{Pairs: ccgTeams}
		s.ccgParticipants[key] = entry
	}
	entry.Count++
	return nil
}

// ProbInCCG returns the fraction of accepted seasons in which team played
// in any tracked championship game.
func (s *ScenarioOutcomes) ProbInCCG(team season.TeamName) float64 {
	denom := s.TotalSeasons
	if denom == 0 {
		denom = 1
	}
	count := 0
	for _, entry := range s.ccgParticipants {
		if pairsContain(entry.Pairs, team) {
			count += entry.Count
		}
	}
	return float64(count) / float64(denom)
}

// Merge folds another accumulator's tallies into this one.
func (s *ScenarioOutcomes) Merge(other *ScenarioOutcomes) {
	if other == nil {
		return
	}
	s.TotalSeasons += other.TotalSeasons
	for key, entry := range other.ccgParticipants {
		existing, ok := s.ccgParticipants[key]
		if !ok {
			existing = &ccgTally{Pairs: entry.Pairs}
			s.ccgParticipants[key] = existing
		}
		existing.Count += entry.Count
	}
}
