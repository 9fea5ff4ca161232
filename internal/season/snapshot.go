package season

import "fmt"

// ScenarioForcer supplies a set of outcomes to force before rolling a
// SeasonSnapshot: specific games whose winner is fixed, independent of
// any per-team win-count constraint. Multiple forcers may be combined in
// a single Roll call; they must agree on any game they both mention.
type ScenarioForcer interface {
	ForcedWinners() map[GameKey]TeamName
}

// SeasonSnapshot is the full state of a season at a point in time: every
// conference's membership and every game, played or scheduled.
type SeasonSnapshot struct {
	Year        int
	Conferences []Conference
	Games       []Game
}

func (s SeasonSnapshot) teamGames(team TeamName) []Game {
	var games []Game
	for _, g := range s.Games {
		if g.Contains(team) {
			games = append(games, g)
		}
	}
	return games
}

func (s SeasonSnapshot) conferenceOf(team TeamName) (Conference, bool) {
	for _, c := range s.Conferences {
		if c.HasTeam(team) {
			return c, true
		}
	}
	return Conference{}, false
}

// Team returns the precomputed view for a single team.
func (s SeasonSnapshot) Team(name TeamName) (TeamView, error) {
	if _, ok := s.conferenceOf(name); !ok {
		return TeamView{}, fmt.Errorf("%w: %s", ErrUnknownTeam, name)
	}
	return newTeamView(name, s.teamGames(name)), nil
}

// Conference returns the precomputed view for a named conference.
func (s SeasonSnapshot) Conference(name ConferenceName) (ConferenceView, error) {
	for _, c := range s.Conferences {
		if c.Name != name {
			continue
		}
		teams := make(map[TeamName]TeamView, len(c.Teams))
		for _, t := range c.Teams {
			tv, err := s.Team(t)
			if err != nil {
				return ConferenceView{}, err
			}
			teams[t] = tv
		}
		return newConferenceView(c, teams), nil
	}
	return ConferenceView{}, fmt.Errorf("%w: %s", ErrUnknownConference, name)
}

// Filter returns a SeasonSnapshot restricted to the games and teams of a
// single conference.
func (s SeasonSnapshot) Filter(name ConferenceName) (SeasonSnapshot, error) {
	var conf Conference
	found := false
	for _, c := range s.Conferences {
		if c.Name == name {
			conf = c
			found = true
			break
		}
	}
	if !found {
		return SeasonSnapshot{}, fmt.Errorf("%w: %s", ErrUnknownConference, name)
	}
	members := map[TeamName]struct{}{}
	for _, t := range conf.Teams {
		members[t] = struct{}{}
	}
	var games []Game
	for _, g := range s.Games {
		if _, ok := members[g.TeamA]; ok {
			games = append(games, g)
			continue
		}
		if _, ok := members[g.TeamB]; ok {
			games = append(games, g)
		}
	}
	return SeasonSnapshot{Year: s.Year, Conferences: []Conference{conf}, Games: games}, nil
}

// Clone returns a deep copy of the snapshot safe to roll independently.
func (s SeasonSnapshot) Clone() SeasonSnapshot {
	games := make([]Game, len(s.Games))
	for i, g := range s.Games {
		games[i] = g.Clone()
	}
	confs := make([]Conference, len(s.Conferences))
	copy(confs, s.Conferences)
	return SeasonSnapshot{Year: s.Year, Conferences: confs, Games: games}
}

// Roll resolves every undecided game in the snapshot, honoring any forced
// winners contributed by forcers. Forcers that disagree on the winner of
// the same game produce ErrForcingConflict.
func (s SeasonSnapshot) Roll(roller BinaryRoller, forcers ...ScenarioForcer) (SeasonSnapshot, error) {
	forced := map[GameKey]TeamName{}
	for _, f := range forcers {
		for key, winner := range f.ForcedWinners() {
			if existing, ok := forced[key]; ok && existing != winner {
				return SeasonSnapshot{}, fmt.Errorf("%w: conflicting forced winners for %s vs %s",
					ErrForcingConflict, key.TeamA, key.TeamB)
			}
			forced[key] = winner
		}
	}

	out := s.Clone()
	for i, g := range out.Games {
		if g.IsOver() {
			continue
		}
		if winner, ok := forced[g.Key()]; ok {
			rolled, err := g.ForceOutcomeIfNotOver(winner, true)
			if err != nil {
				return SeasonSnapshot{}, err
			}
			out.Games[i] = rolled
			continue
		}
		rolled, err := g.Roll(roller, nil, nil)
		if err != nil {
			return SeasonSnapshot{}, err
		}
		out.Games[i] = rolled
	}
	return out, nil
}
