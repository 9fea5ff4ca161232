// Package simulate runs many independent rolls of a season to completion,
// sharded across a worker pool, and folds the results into the monoidal
// accumulators in internal/outcomes.
package simulate

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/apetersson/cfbsim/internal/outcomes"
	"github.com/apetersson/cfbsim/internal/season"
	"github.com/sirupsen/logrus"
)

// Simulator owns the unrolled season and the accumulators each rolled
// season feeds into: one ConferenceSeasonOutcomes and one WeekOutcomes per
// conference, plus zero or more scenarios tracked across the same rolls.
type Simulator struct {
	season             season.SeasonSnapshot
	conferenceOutcomes map[season.ConferenceName]*outcomes.ConferenceSeasonOutcomes
	weekOutcomes       map[season.ConferenceName]*outcomes.WeekOutcomes
	scenarios          []*outcomes.ScenarioOutcomes

	// Workers caps the worker pool size. Zero means runtime.NumCPU(),
	// matching the teacher's simulate().
	Workers int

	Log *logrus.Logger
}

// New builds a Simulator over snap. weekEnd bounds the WeekOutcomes window
// together with now; pass DefaultWeekEnd(now) for the "next Sunday" window
// the original tool defaulted to. scenarios, if any, are tracked across
// every Simulate call in addition to the per-conference tallies.
func New(snap season.SeasonSnapshot, scenarios []*outcomes.ScenarioOutcomes, now, weekEnd time.Time) Simulator {
	weekOutcomes := make(map[season.ConferenceName]*outcomes.WeekOutcomes, len(snap.Conferences))
	conferenceOutcomes := make(map[season.ConferenceName]*outcomes.ConferenceSeasonOutcomes, len(snap.Conferences))
	for _, conf := range snap.Conferences {
		weekOutcomes[conf.Name] = outcomes.NewWeekOutcomes(weekMatchups(snap, conf, now, weekEnd))
		conferenceOutcomes[conf.Name] = outcomes.NewConferenceSeasonOutcomes(conferenceSeasonLength(snap, conf))
	}
	return Simulator{
		season:             snap,
		conferenceOutcomes: conferenceOutcomes,
		weekOutcomes:       weekOutcomes,
		scenarios:          scenarios,
		Log:                logrus.StandardLogger(),
	}
}

// WithWorkers returns a copy of s capped to the given worker pool size. A
// count <= 0 restores the runtime.NumCPU() default.
func (s Simulator) WithWorkers(n int) Simulator {
	s.Workers = n
	return s
}

func weekMatchups(snap season.SeasonSnapshot, conf season.Conference, now, weekEnd time.Time) []season.TeamPair {
	members := make(map[season.TeamName]struct{}, len(conf.Teams))
	for _, t := range conf.Teams {
		members[t] = struct{}{}
	}
	var matchups []season.TeamPair
	for _, g := range snap.Games {
		if g.Date.Before(now) || g.Date.After(weekEnd) {
			continue
		}
		_, aIn := members[g.TeamA]
		_, bIn := members[g.TeamB]
		if aIn || bIn {
			matchups = append(matchups, season.NewTeamPair(g.TeamA, g.TeamB))
		}
	}
	return matchups
}

// conferenceSeasonLength generalizes the original's hardcoded 12-game
// season to however many CountsTowardTwelve games the conference's
// longest-scheduled member actually plays.
func conferenceSeasonLength(snap season.SeasonSnapshot, conf season.Conference) int {
	longest := 0
	for _, name := range conf.Teams {
		tv, err := snap.Team(name)
		if err != nil {
			continue
		}
		count := 0
		for _, g := range tv.Games {
			if g.CountsTowardTwelve {
				count++
			}
		}
		if count > longest {
			longest = count
		}
	}
	return longest
}

// ConferenceOutcomes returns the accumulated tally for a conference, or nil
// if name wasn't part of the simulated season.
func (s Simulator) ConferenceOutcomes(name season.ConferenceName) *outcomes.ConferenceSeasonOutcomes {
	return s.conferenceOutcomes[name]
}

// Conference returns the static definition of a conference that was part
// of the simulated season, for callers (reports) that need its membership
// or divisions alongside the accumulated tally.
func (s Simulator) Conference(name season.ConferenceName) (season.Conference, bool) {
	for _, c := range s.season.Conferences {
		if c.Name == name {
			return c, true
		}
	}
	return season.Conference{}, false
}

// WeekOutcomes returns the accumulated championship-pairing tally for a
// conference's tracked week-of-interest games, or nil if name wasn't part
// of the simulated season.
func (s Simulator) WeekOutcomes(name season.ConferenceName) *outcomes.WeekOutcomes {
	return s.weekOutcomes[name]
}

// Scenarios returns the scenario accumulators tracked alongside Simulate.
func (s Simulator) Scenarios() []*outcomes.ScenarioOutcomes { return s.scenarios }

// shallowClone returns a Simulator over the same season but with fresh,
// zero-valued conference/week/scenario accumulators — the unit a worker
// shard accumulates into before its results are merged back into the
// caller's Simulator. Mirrors the original's Simulator.shallow_clone,
// generalized to cover scenarios too.
func (s Simulator) shallowClone() Simulator {
	weekOutcomes := make(map[season.ConferenceName]*outcomes.WeekOutcomes, len(s.weekOutcomes))
	for name, week := range s.weekOutcomes {
		weekOutcomes[name] = week.ShallowClone()
	}
	conferenceOutcomes := make(map[season.ConferenceName]*outcomes.ConferenceSeasonOutcomes, len(s.conferenceOutcomes))
	for name, conf := range s.conferenceOutcomes {
		conferenceOutcomes[name] = outcomes.NewConferenceSeasonOutcomes(conf.SeasonLength)
	}
	scenarios := make([]*outcomes.ScenarioOutcomes, len(s.scenarios))
	for i, sc := range s.scenarios {
		scenarios[i] = outcomes.NewScenarioOutcomes(sc.Conditions...)
	}
	return Simulator{
		season:             s.season,
		conferenceOutcomes: conferenceOutcomes,
		weekOutcomes:       weekOutcomes,
		scenarios:          scenarios,
		Workers:            s.Workers,
		Log:                s.Log,
	}
}

// merge folds a worker shard's accumulators into s.
func (s Simulator) merge(shard Simulator) {
	for name, acc := range shard.conferenceOutcomes {
		s.conferenceOutcomes[name].Merge(acc)
	}
	for name, week := range shard.weekOutcomes {
		s.weekOutcomes[name].Merge(week)
	}
	for i, sc := range shard.scenarios {
		if i < len(s.scenarios) {
			s.scenarios[i].Merge(sc)
		}
	}
}

func rolledCCGPairs(rolled season.SeasonSnapshot, roller season.UniformRoller) (map[season.ConferenceName]season.TeamPair, error) {
	pairs := make(map[season.ConferenceName]season.TeamPair, len(rolled.Conferences))
	for _, conf := range rolled.Conferences {
		if !conf.HasChampionshipGame {
			pairs[conf.Name] = season.TeamPair{}
			continue
		}
		cv, err := rolled.Conference(conf.Name)
		if err != nil {
			return nil, err
		}
		participants, err := cv.ChampionshipParticipants(roller)
		if err != nil {
			return nil, err
		}
		pairs[conf.Name] = season.NewTeamPair(participants[0], participants[1])
	}
	return pairs, nil
}

func sortedCCGList(pairs map[season.ConferenceName]season.TeamPair) []season.TeamPair {
	names := make([]season.ConferenceName, 0, len(pairs))
	for name := range pairs {
		names = append(names, name)
	}
	sort.Strings(names)
	list := make([]season.TeamPair, len(names))
	for i, name := range names {
		list[i] = pairs[name]
	}
	return list
}

// acceptRoll folds one rolled season into every per-conference accumulator
// this Simulator owns.
func (s Simulator) acceptRoll(rolled season.SeasonSnapshot, ccgPairs map[season.ConferenceName]season.TeamPair) error {
	for _, conf := range rolled.Conferences {
		cv, err := rolled.Conference(conf.Name)
		if err != nil {
			return err
		}
		pair := ccgPairs[conf.Name]
		if err := s.conferenceOutcomes[conf.Name].Accept(cv, pair); err != nil {
			return err
		}
		if err := s.weekOutcomes[conf.Name].Accept(cv, pair); err != nil {
			return err
		}
	}
	return nil
}

// workerCounts splits iterations across up to maxWorkers workers
// (runtime.NumCPU() when maxWorkers <= 0), distributing the remainder across the first workers — the
// same split the teacher's simulate() computes via
// simsPerWorker/remainingSims.
func workerCounts(iterations, maxWorkers int) []int {
	numWorkers := maxWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > iterations {
		numWorkers = iterations
	}
	if numWorkers < 1 {
		numWorkers = 1
	}
	perWorker := iterations / numWorkers
	remainder := iterations % numWorkers
	counts := make([]int, numWorkers)
	for i := range counts {
		counts[i] = perWorker
		if i < remainder {
			counts[i]++
		}
	}
	return counts
}

// runWorkers fans work out across len(counts) goroutines, each invoked with
// its worker ID, iteration count, and an independently seeded PRNG, and
// waits for all of them before returning the first error encountered (if
// any). Generalizes the teacher's runtime.NumCPU() + sync.WaitGroup +
// buffered-channel fan-in in simulate.go's simulate().
func runWorkers(counts []int, newPRNG func(seed int64) PRNG, work func(workerID, n int, prng PRNG) error) error {
	var wg sync.WaitGroup
	errs := make(chan error, len(counts))
	for workerID, n := range counts {
		wg.Add(1)
		go func(workerID, n int) {
			defer wg.Done()
			seed := time.Now().UnixNano() + int64(workerID)
			errs <- work(workerID, n, newPRNG(seed))
		}(workerID, n)
	}
	wg.Wait()
	close(errs)

	var firstErr error
	for err := range errs {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Simulate rolls the season iterations times, folding every roll into the
// per-conference accumulators and any tracked scenarios, sharded across a
// worker pool of at most Workers goroutines (the host's CPU count when
// Workers <= 0).
func (s Simulator) Simulate(iterations int, newPRNG func(seed int64) PRNG) error {
	if iterations <= 0 {
		return nil
	}
	counts := workerCounts(iterations, s.Workers)
	shards := make([]Simulator, len(counts))

	err := runWorkers(counts, newPRNG, func(workerID, n int, prng PRNG) error {
		shard := s.shallowClone()
		roller := BinaryRoller(prng)
		uniform := UniformRoller(prng)
		for i := 0; i < n; i++ {
			rolled, err := shard.season.Roll(roller)
			if err != nil {
				return err
			}
			ccgPairs, err := rolledCCGPairs(rolled, uniform)
			if err != nil {
				return err
			}
			if err := shard.acceptRoll(rolled, ccgPairs); err != nil {
				return err
			}
			if len(shard.scenarios) > 0 {
				ccgList := sortedCCGList(ccgPairs)
				for _, scenario := range shard.scenarios {
					if err := scenario.Accept(rolled, ccgList); err != nil {
						return err
					}
				}
			}
		}
		shards[workerID] = shard
		return nil
	})
	if err != nil {
		return err
	}
	for _, shard := range shards {
		s.merge(shard)
	}
	if s.Log != nil {
		s.Log.WithField("iterations", iterations).WithField("workers", len(counts)).Debug("simulate complete")
	}
	return nil
}

type staticForcer map[season.GameKey]season.TeamName

func (f staticForcer) ForcedWinners() map[season.GameKey]season.TeamName { return f }

// SimulateScenario rolls the season iterations times with scenario's own
// conditions forced in, folding every roll into scenario. A forced roll
// that still fails to satisfy scenario's conditions is a logic error — the
// original tool's loop retried without incrementing its counter, masking
// the defect, even though the very next line unconditionally raised an
// exception, suggesting the author meant it to be fatal. Here,
// ErrScenarioInvalid aborts the whole run immediately instead of retrying,
// since a well-formed scenario's forced winners always make its own
// conditions hold.
func (s Simulator) SimulateScenario(scenario *outcomes.ScenarioOutcomes, iterations int, newPRNG func(seed int64) PRNG) error {
	if iterations <= 0 {
		return nil
	}
	counts := workerCounts(iterations, s.Workers)
	shards := make([]*outcomes.ScenarioOutcomes, len(counts))

	err := runWorkers(counts, newPRNG, func(workerID, n int, prng PRNG) error {
		roller := BinaryRoller(prng)
		uniform := UniformRoller(prng)
		shard := outcomes.NewScenarioOutcomes(scenario.Conditions...)
		shard.DescriptionOverride = scenario.DescriptionOverride

		for i := 0; i < n; i++ {
			forcers := make([]season.ScenarioForcer, 0, len(scenario.Conditions))
			for _, cond := range scenario.Conditions {
				forced, err := cond.ForcedWinners(uniform, s.season)
				if err != nil {
					return err
				}
				forcers = append(forcers, staticForcer(forced))
			}
			rolled, err := s.season.Roll(roller, forcers...)
			if err != nil {
				return err
			}
			before := shard.TotalSeasons
			if err := shard.Accept(rolled, nil); err != nil {
				return err
			}
			if shard.TotalSeasons <= before {
				return fmt.Errorf("%w: %q produced an unsatisfied roll on iteration %d despite forcing",
					season.ErrScenarioInvalid, scenario.Description(", "), i)
			}
		}
		shards[workerID] = shard
		return nil
	})
	if err != nil {
		return err
	}
	for _, shard := range shards {
		scenario.Merge(shard)
	}
	return nil
}
