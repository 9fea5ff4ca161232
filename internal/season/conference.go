package season

import "fmt"

// Division groups a subset of a conference's teams for divisional standings
// (not every conference uses divisions; Divisions may be empty).
type Division struct {
	Name  string
	Teams []TeamName
}

func (d Division) hasTeam(team TeamName) bool {
	for _, t := range d.Teams {
		if t == team {
			return true
		}
	}
	return false
}

// Conference is the static definition of a conference: its membership and
// the knobs that steer tiebreaker computation away from hardcoded
// team-name special cases and toward data supplied at ingestion.
type Conference struct {
	Name       ConferenceName
	Teams      []TeamName
	Divisions  []Division
	Seeder     SeederKey

	// HasChampionshipGame marks whether this conference plays a
	// championship game between its top two seeds (ChampionshipParticipants)
	// rather than crowning its top seed outright (Champion).
	HasChampionshipGame bool

	// ExcludedPairsForTiebreakers lists team pairs whose head-to-head game
	// (and shared-opponent reach via that game) is disregarded when
	// computing tiebreaker standings, generalizing prior-season
	// exclusions that used to be matched by literal team name.
	ExcludedPairsForTiebreakers []TeamPair

	// ExcludedGamePredicate, when non-nil, makes CountsForTiebreakers
	// report false for any game for which it returns true. The rules in
	// internal/tiebreak do not call CountsForTiebreakers, so this
	// predicate does not change their results.
	ExcludedGamePredicate func(Game) bool

	// ExcludeTiedTeamsFromSOS controls whether StrengthOfConferenceSchedule
	// leaves the other tied teams out of each tied team's opponent set.
	// The default, false, keeps them in, as the original did.
	ExcludeTiedTeamsFromSOS bool
}

// ExcludedOpponents returns the set of teams whose game against team is
// excluded from tiebreaker computation, per ExcludedPairsForTiebreakers.
func (c Conference) ExcludedOpponents(team TeamName) map[TeamName]struct{} {
	excluded := map[TeamName]struct{}{}
	for _, pair := range c.ExcludedPairsForTiebreakers {
		if pair.Contains(team) {
			if pair[0] == team {
				excluded[pair[1]] = struct{}{}
			} else {
				excluded[pair[0]] = struct{}{}
			}
		}
	}
	return excluded
}

// CountsForTiebreakers reports whether g is neither matched by
// ExcludedGamePredicate nor played between an ExcludedPairsForTiebreakers
// pair.
func (c Conference) CountsForTiebreakers(g Game) bool {
	if c.ExcludedGamePredicate != nil && c.ExcludedGamePredicate(g) {
		return false
	}
	for _, pair := range c.ExcludedPairsForTiebreakers {
		if pair[0] == g.TeamA && pair[1] == g.TeamB {
			return false
		}
		if pair[0] == g.TeamB && pair[1] == g.TeamA {
			return false
		}
	}
	return true
}

func subtract(set, remove map[TeamName]struct{}) map[TeamName]struct{} {
	out := make(map[TeamName]struct{}, len(set))
	for t := range set {
		if _, excluded := remove[t]; excluded {
			continue
		}
		out[t] = struct{}{}
	}
	return out
}

// HasTeam reports whether team is a member of this conference.
func (c Conference) HasTeam(team TeamName) bool {
	for _, t := range c.Teams {
		if t == team {
			return true
		}
	}
	return false
}

// DivisionOf returns the division team belongs to, if the conference
// defines divisions and team is assigned to one.
func (c Conference) DivisionOf(team TeamName) (Division, bool) {
	for _, d := range c.Divisions {
		if d.hasTeam(team) {
			return d, true
		}
	}
	return Division{}, false
}

// validateDivisions enforces spec.md §3's divisions invariant: every
// division team is a conference member, and divisions are pairwise
// disjoint. A conference with no divisions trivially satisfies this.
func (c Conference) validateDivisions() error {
	members := map[TeamName]struct{}{}
	for _, t := range c.Teams {
		members[t] = struct{}{}
	}
	assigned := map[TeamName]string{}
	for _, d := range c.Divisions {
		for _, t := range d.Teams {
			if _, ok := members[t]; !ok {
				return fmt.Errorf("%w: conference %s: division %s team %s is not a conference member",
					ErrSnapshotMalformed, c.Name, d.Name, t)
			}
			if other, ok := assigned[t]; ok {
				return fmt.Errorf("%w: conference %s: team %s is in both division %s and %s",
					ErrSnapshotMalformed, c.Name, t, other, d.Name)
			}
			assigned[t] = d.Name
		}
	}
	return nil
}

// ConferenceSeeder resolves a tiebreak among tied teams in a conference,
// returning them in championship-game-seeding order (best seed first), or
// an error (typically wrapping ErrIndeterminate) if the rules can't
// resolve the tie. roller supplies the coin-toss rule's randomness; it may
// be nil if the caller is certain no tie will reach that rule.
type ConferenceSeeder func(view ConferenceView, tied []TeamName, roller UniformRoller) ([]TeamName, error)

// ConferenceView is a conference's precomputed standings within a
// SeasonSnapshot: the grouped-by-filtered-win-percentage tiers, from best
// to worst, with ties still grouped together pending a seeder.
type ConferenceView struct {
	Conference Conference
	Teams      map[TeamName]TeamView

	// Standings is ordered best-tier-first; each entry is the set of
	// teams tied at that tier by filtered win percentage.
	Standings []map[TeamName]struct{}
}

func newConferenceView(conf Conference, teams map[TeamName]TeamView) ConferenceView {
	cv := ConferenceView{Conference: conf, Teams: teams}
	cv.Standings = groupByFilteredWinPercentage(conf, teams)
	return cv
}

func groupByFilteredWinPercentage(conf Conference, teams map[TeamName]TeamView) []map[TeamName]struct{} {
	type scored struct {
		team TeamName
		pct  float64
	}
	members := map[TeamName]struct{}{}
	for _, t := range conf.Teams {
		members[t] = struct{}{}
	}
	scoredTeams := make([]scored, 0, len(conf.Teams))
	for _, t := range conf.Teams {
		tv, ok := teams[t]
		if !ok {
			continue
		}
		included := subtract(members, conf.ExcludedOpponents(t))
		scoredTeams = append(scoredTeams, scored{team: t, pct: tv.FilteredWinPercentage(included)})
	}
	sortScoredDescending(scoredTeams)

	var tiers []map[TeamName]struct{}
	i := 0
	for i < len(scoredTeams) {
		j := i + 1
		for j < len(scoredTeams) && scoredTeams[j].pct == scoredTeams[i].pct {
			j++
		}
		tier := map[TeamName]struct{}{}
		for _, s := range scoredTeams[i:j] {
			tier[s.team] = struct{}{}
		}
		tiers = append(tiers, tier)
		i = j
	}
	return tiers
}

func sortScoredDescending(s []struct {
	team TeamName
	pct  float64
}) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j].pct > s[j-1].pct; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// Standing reports team's position within its conference: 1-indexed by
// tier, with TierSize reflecting how many teams share that tier before a
// seeder breaks the remaining ties.
func (cv ConferenceView) Standing(team TeamName) (Standing, bool) {
	position := 1
	for _, tier := range cv.Standings {
		if _, ok := tier[team]; ok {
			return Standing{Position: position, TierSize: len(tier)}, true
		}
		position += len(tier)
	}
	return Standing{}, false
}

// ChampionshipParticipants returns the two teams that play in the
// conference championship game: the top tier reduced to a single team (or
// pair, for a 2-team top tier) via the conference's seeder, else the top
// two distinct tiers' leaders.
func (cv ConferenceView) ChampionshipParticipants(roller UniformRoller) ([2]TeamName, error) {
	seeder, err := resolveSeeder(cv.Conference.Seeder)
	if err != nil {
		return [2]TeamName{}, err
	}
	seeded, err := seedStandings(cv, seeder, roller)
	if err != nil {
		return [2]TeamName{}, err
	}
	if len(seeded) < 2 {
		return [2]TeamName{}, ErrIndeterminate
	}
	return [2]TeamName{seeded[0], seeded[1]}, nil
}

// Champion returns the conference's single best team by seeded standing,
// for conferences without a championship game. ok is false when the
// conference has a championship game instead — use ChampionshipParticipants
// for those.
func (cv ConferenceView) Champion(roller UniformRoller) (TeamName, bool, error) {
	if cv.Conference.HasChampionshipGame {
		return "", false, nil
	}
	seeder, err := resolveSeeder(cv.Conference.Seeder)
	if err != nil {
		return "", false, err
	}
	seeded, err := seedStandings(cv, seeder, roller)
	if err != nil {
		return "", false, err
	}
	if len(seeded) == 0 {
		return "", false, ErrIndeterminate
	}
	return seeded[0], true, nil
}

func seedStandings(cv ConferenceView, seeder ConferenceSeeder, roller UniformRoller) ([]TeamName, error) {
	var ordered []TeamName
	for _, tier := range cv.Standings {
		if len(tier) == 1 {
			for t := range tier {
				ordered = append(ordered, t)
			}
			continue
		}
		tied := make([]TeamName, 0, len(tier))
		for t := range tier {
			tied = append(tied, t)
		}
		resolved, err := seeder(cv, tied, roller)
		if err != nil {
			return nil, err
		}
		ordered = append(ordered, resolved...)
	}
	return ordered, nil
}

var seederRegistry = map[SeederKey]ConferenceSeeder{}

// RegisterSeeder installs a named tiebreak cascade so Conference values
// can reference it by SeederKey without importing the tiebreak package
// directly (avoiding an import cycle between season and tiebreak).
func RegisterSeeder(key SeederKey, seeder ConferenceSeeder) {
	seederRegistry[key] = seeder
}

func resolveSeeder(key SeederKey) (ConferenceSeeder, error) {
	seeder, ok := seederRegistry[key]
	if !ok {
		return nil, ErrUnknownConference
	}
	return seeder, nil
}
