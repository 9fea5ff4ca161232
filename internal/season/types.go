// Package season models a conference football season: games, teams,
// conferences, and the snapshot that ties them together. Every value here
// is immutable once constructed; rolling or forcing an outcome always
// returns a new value rather than mutating in place.
package season

import (
	"sort"
	"strings"
)

// TeamName is the unambiguous common name for a team, e.g. "BYU" or "Utah".
// Equality is case- and whitespace-sensitive.
type TeamName = string

// ConferenceName is the short name of a conference, e.g. "B12".
type ConferenceName = string

// SeederKey resolves to a tiebreaker cascade in a seeder registry.
type SeederKey = string

// BinaryRoller draws from the binary distribution with the given
// probability of success.
type BinaryRoller func(p float64) bool

// UniformRoller draws from the uniform(0, 1) distribution.
type UniformRoller func() float64

// Standing is a team's position in a conference, 1-indexed, alongside the
// number of teams that shared that position before tiebreaking.
type Standing struct {
	Position int
	TierSize int
}

// TeamPair is an unordered pair of teams, canonicalized so that TeamA <
// TeamB, making it usable as a map key regardless of input order.
type TeamPair [2]TeamName

// NewTeamPair builds a canonical TeamPair from two team names.
func NewTeamPair(a, b TeamName) TeamPair {
	if a <= b {
		return TeamPair{a, b}
	}
	return TeamPair{b, a}
}

// Contains reports whether the pair contains the given team.
func (p TeamPair) Contains(team TeamName) bool {
	return p[0] == team || p[1] == team
}

// TeamNames is a canonical, order-independent tuple of team names, usable
// as a map key (e.g. for "lost to this exact set of opponents" tallies).
type TeamNames string

// NewTeamNames builds a canonical TeamNames key from a set of team names.
func NewTeamNames(names map[TeamName]struct{}) TeamNames {
	list := make([]string, 0, len(names))
	for n := range names {
		list = append(list, n)
	}
	sort.Strings(list)
	return TeamNames(strings.Join(list, "|"))
}

// NewTeamNamesFromSlice builds a canonical TeamNames key from a slice,
// sorting a copy so the caller's slice order is irrelevant.
func NewTeamNamesFromSlice(names []TeamName) TeamNames {
	list := make([]string, len(names))
	copy(list, names)
	sort.Strings(list)
	return TeamNames(strings.Join(list, "|"))
}

// Names splits the canonical tuple back into its member team names.
func (t TeamNames) Names() []TeamName {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), "|")
}

// Len reports how many teams are encoded in the tuple.
func (t TeamNames) Len() int {
	if t == "" {
		return 0
	}
	return strings.Count(string(t), "|") + 1
}
