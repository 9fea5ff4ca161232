// Package config loads a season snapshot and a run configuration from disk.
// The run configuration keeps the teacher's dual JSON/YAML loader
// (filepath.Ext switch, same library choices) but describes a Monte-Carlo
// run over a conference season instead of a World-Cup group.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apetersson/cfbsim/internal/outcomes"
	"github.com/apetersson/cfbsim/internal/scenario"
	"github.com/apetersson/cfbsim/internal/season"
	yaml "gopkg.in/yaml.v2"
)

const defaultNumberOfSimulations = 100_000

// RunConfig describes one Monte-Carlo run: how many iterations, which PRNG
// and how many workers to run them with, which snapshot file to load, and
// any named scenarios to track alongside the base simulation.
type RunConfig struct {
	NumberOfSimulations int              `json:"numberOfSimulations" yaml:"numberOfSimulations"`
	PRNG                string           `json:"prng" yaml:"prng"`
	Workers             int              `json:"workers" yaml:"workers"`
	SnapshotPath        string           `json:"snapshotPath" yaml:"snapshotPath"`
	Conference          string           `json:"conference" yaml:"conference"`
	Scenarios           []ScenarioConfig `json:"scenarios" yaml:"scenarios"`
}

// ScenarioConfig names a scenario and the conditions that define it.
type ScenarioConfig struct {
	Name       string            `json:"name" yaml:"name"`
	Conditions []ConditionConfig `json:"conditions" yaml:"conditions"`
}

// ConditionConfig is the wire shape of one scenario.ScenarioCondition
// constructor call. Kind selects the constructor; the remaining fields are
// interpreted according to Kind, matching the condition kinds of
// internal/scenario.
type ConditionConfig struct {
	Kind           string   `json:"kind" yaml:"kind"`
	Team           string   `json:"team" yaml:"team"`
	Wins           int      `json:"wins" yaml:"wins"`
	MaxWins        int      `json:"maxWins" yaml:"maxWins"`
	Winner         string   `json:"winner" yaml:"winner"`
	Loser          string   `json:"loser" yaml:"loser"`
	BeatTeams      []string `json:"beatTeams" yaml:"beatTeams"`
	LossTeams      []string `json:"lossTeams" yaml:"lossTeams"`
	PossibleLosses []string `json:"possibleLosses" yaml:"possibleLosses"`
}

// LoadRunConfig reads a RunConfig from path, dispatching on file extension
// the same way the teacher's loadConfig does, and fills in defaults for
// zero-valued fields. Unlike the teacher, validation errors are returned
// rather than fatal — only cmd/cfbsim is allowed to exit the process.
func LoadRunConfig(path string) (RunConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("read run config %s: %w", path, err)
	}

	var c RunConfig
	switch ext := filepath.Ext(path); ext {
	case ".json":
		if err := json.Unmarshal(raw, &c); err != nil {
			return RunConfig{}, fmt.Errorf("parse JSON run config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &c); err != nil {
			return RunConfig{}, fmt.Errorf("parse YAML run config %s: %w", path, err)
		}
	default:
		return RunConfig{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	if c.NumberOfSimulations <= 0 {
		c.NumberOfSimulations = defaultNumberOfSimulations
	}
	if c.PRNG == "" {
		c.PRNG = "xorshift32"
	}
	if c.PRNG != "math" && c.PRNG != "xorshift32" {
		return RunConfig{}, fmt.Errorf("%w: %q", ErrUnknownPRNG, c.PRNG)
	}
	if c.SnapshotPath == "" {
		return RunConfig{}, fmt.Errorf("config error: snapshotPath cannot be empty")
	}

	return c, nil
}

// LoadSnapshot reads a SeasonSnapshot from the line-oriented wire format at
// path (internal/season's Serialize/DeserializeSnapshot format).
func LoadSnapshot(path string) (season.SeasonSnapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return season.SeasonSnapshot{}, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	defer f.Close()

	snap, err := season.DeserializeSnapshot(f)
	if err != nil {
		return season.SeasonSnapshot{}, fmt.Errorf("deserialize snapshot %s: %w", path, err)
	}
	return snap, nil
}

// BuildScenario turns a ScenarioConfig into a tracked ScenarioOutcomes
// accumulator, resolving each condition against snap via the
// internal/scenario constructors.
func BuildScenario(snap season.SeasonSnapshot, cfg ScenarioConfig) (*outcomes.ScenarioOutcomes, error) {
	conditions := make([]outcomes.ScenarioCondition, 0, len(cfg.Conditions))
	for _, cc := range cfg.Conditions {
		cond, err := buildCondition(snap, cc)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", cfg.Name, err)
		}
		conditions = append(conditions, cond)
	}
	return outcomes.NewScenarioOutcomes(conditions...), nil
}

func buildCondition(snap season.SeasonSnapshot, cc ConditionConfig) (outcomes.ScenarioCondition, error) {
	switch cc.Kind {
	case "win_exactly":
		return scenario.WinExactly(snap, season.TeamName(cc.Team), cc.Wins, teamSet(cc.BeatTeams), teamSet(cc.LossTeams), "")
	case "win_at_most":
		return scenario.WinAtMost(snap, season.TeamName(cc.Team), cc.MaxWins, teamSet(cc.BeatTeams), teamSet(cc.LossTeams))
	case "win_out":
		return scenario.WinOut(snap, season.TeamName(cc.Team))
	case "win_out_except":
		return scenario.WinOutExcept(snap, season.TeamName(cc.Team), teamSet(cc.LossTeams))
	case "win_out_except_possibly":
		return scenario.WinOutExceptPossibly(snap, season.TeamName(cc.Team), teamNames(cc.PossibleLosses))
	case "beat":
		return scenario.Beat(snap, season.TeamName(cc.Winner), season.TeamName(cc.Loser))
	case "any_outcome":
		return scenario.AnyOutcome(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownConditionKind, cc.Kind)
	}
}

func teamSet(names []string) map[season.TeamName]struct{} {
	if len(names) == 0 {
		return nil
	}
	set := make(map[season.TeamName]struct{}, len(names))
	for _, n := range names {
		set[season.TeamName(n)] = struct{}{}
	}
	return set
}

func teamNames(names []string) []season.TeamName {
	if len(names) == 0 {
		return nil
	}
	out := make([]season.TeamName, len(names))
	for i, n := range names {
		out[i] = season.TeamName(n)
	}
	return out
}
