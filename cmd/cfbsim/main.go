// Command cfbsim is the Monte-Carlo college-football conference outcome
// simulator CLI.
//
// Usage:
//
//	cfbsim simulate --config run.yaml --conference TST
//	cfbsim scenario --config run.yaml --scenario "BYU wins out"
//	cfbsim week --config run.yaml --conference TST
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/apetersson/cfbsim/internal/config"
	"github.com/apetersson/cfbsim/internal/outcomes"
	"github.com/apetersson/cfbsim/internal/season"
	"github.com/apetersson/cfbsim/internal/simulate"
	"github.com/apetersson/cfbsim/internal/tiebreak"
	"github.com/apetersson/cfbsim/pkg/render"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	runLog  = logrus.StandardLogger()
	prng    string
	cfgPath string
)

// standardSeederKey is the Conference.Seeder value a snapshot uses to
// request the default six-rule tiebreaker cascade.
const standardSeederKey = "standard"

func init() {
	season.RegisterSeeder(standardSeederKey, tiebreak.Seed(tiebreak.DefaultCascade))
}

func main() {
	root := &cobra.Command{
		Use:   "cfbsim",
		Short: "Monte-Carlo college football conference outcome simulator",
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "run.yaml", "path to the run config (YAML or JSON)")
	root.PersistentFlags().StringVar(&prng, "prng", "", "PRNG to use: 'math' or 'xorshift32' (overrides the config file)")

	root.AddCommand(simulateCmd())
	root.AddCommand(scenarioCmd())
	root.AddCommand(weekCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadRun reads the run config and the snapshot it points at, applying the
// --prng override if one was given. Config/deserialization errors are fatal
// here — this is the one place in the repo allowed to call log.Fatalf,
// since internal/* returns errors instead of exiting.
func loadRun() (config.RunConfig, simulate.Simulator) {
	cfg, err := config.LoadRunConfig(cfgPath)
	if err != nil {
		log.Fatalf("load run config: %v", err)
	}
	if prng != "" {
		cfg.PRNG = prng
	}

	snap, err := config.LoadSnapshot(cfg.SnapshotPath)
	if err != nil {
		log.Fatalf("load snapshot: %v", err)
	}

	scenarios := make([]*outcomes.ScenarioOutcomes, 0, len(cfg.Scenarios))
	for _, sc := range cfg.Scenarios {
		so, err := config.BuildScenario(snap, sc)
		if err != nil {
			log.Fatalf("build scenario %q: %v", sc.Name, err)
		}
		scenarios = append(scenarios, so)
	}

	now := time.Now()
	weekEnd := simulate.DefaultWeekEnd(now)
	sim := simulate.New(snap, scenarios, now, weekEnd).WithWorkers(cfg.Workers)
	return cfg, sim
}

func newPRNGFactory(choice string) func(seed int64) simulate.PRNG {
	if choice == "math" {
		return func(seed int64) simulate.PRNG { return simulate.NewMathRandPRNG(seed) }
	}
	return func(seed int64) simulate.PRNG { return simulate.NewXorshift32PRNG(seed) }
}

func simulateCmd() *cobra.Command {
	var conference string
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the full Monte-Carlo simulation over a season and print conference outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, sim := loadRun()

			start := time.Now()
			runLog.WithFields(logrus.Fields{"iterations": cfg.NumberOfSimulations, "prng": cfg.PRNG}).Info("simulation starting")
			if err := sim.Simulate(cfg.NumberOfSimulations, newPRNGFactory(cfg.PRNG)); err != nil {
				return fmt.Errorf("simulate: %w", err)
			}
			runLog.WithField("elapsed", time.Since(start)).Info("simulation finished")

			name := conference
			if name == "" {
				name = cfg.Conference
			}
			acc := sim.ConferenceOutcomes(name)
			if acc == nil {
				return fmt.Errorf("conference %q was not part of the simulated season", name)
			}
			conf, _ := sim.Conference(name)
			return render.ConferenceOutcomes(os.Stdout, conf, acc)
		},
	}
	cmd.Flags().StringVar(&conference, "conference", "", "conference to report on (defaults to the config's conference)")
	return cmd
}

func scenarioCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Run one named scenario from the config and report its probability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, sim := loadRun()

			idx := -1
			for i, sc := range cfg.Scenarios {
				if sc.Name == name {
					idx = i
					break
				}
			}
			if idx < 0 {
				return fmt.Errorf("unknown scenario %q", name)
			}
			so := sim.Scenarios()[idx]

			runLog.WithFields(logrus.Fields{"scenario": name, "iterations": cfg.NumberOfSimulations}).Info("scenario simulation starting")
			if err := sim.SimulateScenario(so, cfg.NumberOfSimulations, newPRNGFactory(cfg.PRNG)); err != nil {
				return fmt.Errorf("simulate scenario %q: %w", name, err)
			}

			render.Scenario(os.Stdout, name, cfg.NumberOfSimulations, so)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "scenario", "", "name of the scenario to run (required)")
	cmd.MarkFlagRequired("scenario")
	return cmd
}

func weekCmd() *cobra.Command {
	var conference string
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Run the simulation and report this week's matchup probabilities for one conference",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, sim := loadRun()

			if err := sim.Simulate(cfg.NumberOfSimulations, newPRNGFactory(cfg.PRNG)); err != nil {
				return fmt.Errorf("simulate: %w", err)
			}

			name := conference
			if name == "" {
				name = cfg.Conference
			}
			week := sim.WeekOutcomes(name)
			if week == nil {
				return fmt.Errorf("conference %q was not part of the simulated season", name)
			}
			return render.Week(os.Stdout, week)
		},
	}
	cmd.Flags().StringVar(&conference, "conference", "", "conference to report on (defaults to the config's conference)")
	return cmd
}
