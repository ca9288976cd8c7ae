package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/signalsfoundry/space-traffic-simulator/core"
	"github.com/signalsfoundry/space-traffic-simulator/feeds"
	"github.com/signalsfoundry/space-traffic-simulator/internal/observability"
	"github.com/signalsfoundry/space-traffic-simulator/model"
)

var (
	scenarioPath string

	beforeLEO        int
	beforeMEO        int
	beforeGEO        int
	beforeCongestion float64
	beforeCollision  float64

	stormKp  float64
	neoCount int

	propagateDebris bool
	referenceTime   string
	stepperName     string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a scenario file against a traffic snapshot and print the result as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		ctx := cmd.Context()

		shutdown, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer observability.ShutdownWithTimeout(ctx, shutdown, log)

		f, err := os.Open(scenarioPath)
		if err != nil {
			return fmt.Errorf("open scenario %q: %w", scenarioPath, err)
		}
		defer f.Close()

		scenario, err := core.LoadScenario(f)
		if err != nil {
			return err
		}

		before := model.OrbitalRegimeState{
			ObjectsInLEO:         beforeLEO,
			ObjectsInMEO:         beforeMEO,
			ObjectsInGEO:         beforeGEO,
			AverageCongestion:    beforeCongestion,
			CollisionProbability: beforeCollision,
		}

		opts := core.EvaluateOptions{
			PropagateDebris: propagateDebris,
		}
		// Feed data is supplied on the command line here; a fetch failure
		// upstream simply leaves these at their unavailable defaults.
		if stormKp > 0 {
			opts.StormRiskMultiplier = feeds.SpaceWeatherFrom([]feeds.StormRecord{{KpIndex: stormKp}}).RiskMultiplier()
		}
		opts.AsteroidInfluence = feeds.NearEarthObjectsFrom(neoCount).Influence()

		if referenceTime != "" {
			at, err := time.Parse(time.RFC3339, referenceTime)
			if err != nil {
				return fmt.Errorf("parse --at: %w", err)
			}
			opts.At = at
		}

		collector, err := observability.NewSimCollector(nil)
		if err != nil {
			return fmt.Errorf("init metrics: %w", err)
		}

		evaluator := core.NewEvaluator(log, collector)
		if stepperName == "rk4" {
			evaluator.Stepper = core.RK4Step
		}

		result, err := evaluator.Evaluate(ctx, scenario, before, opts)
		if err != nil && result == nil {
			return err
		}
		if err != nil {
			// Numeric fault: report the partial result but exit non-zero.
			log.Warn(ctx, "evaluation completed with fault", loggingError(err))
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if encodeErr := enc.Encode(result); encodeErr != nil {
			return encodeErr
		}
		return err
	},
}

func init() {
	evaluateCmd.Flags().StringVar(&scenarioPath, "scenario", "configs/scenario.yaml", "path to the scenario YAML")

	evaluateCmd.Flags().IntVar(&beforeLEO, "objects-leo", 3240, "tracked objects in LEO before the event")
	evaluateCmd.Flags().IntVar(&beforeMEO, "objects-meo", 520, "tracked objects in MEO before the event")
	evaluateCmd.Flags().IntVar(&beforeGEO, "objects-geo", 1980, "tracked objects in GEO before the event")
	evaluateCmd.Flags().Float64Var(&beforeCongestion, "congestion", 0.42, "average congestion before the event [0,1]")
	evaluateCmd.Flags().Float64Var(&beforeCollision, "collision-probability", 0.0031, "collision probability before the event [0,1]")

	evaluateCmd.Flags().Float64Var(&stormKp, "storm-kp", 0, "max planetary K-index from the space-weather feed (0 = unavailable)")
	evaluateCmd.Flags().IntVar(&neoCount, "neo-count", 0, "near-Earth object count from the NEO feed (0 = unavailable)")

	evaluateCmd.Flags().BoolVar(&propagateDebris, "propagate-debris", false, "propagate a representative debris fragment for breakup scenarios")
	evaluateCmd.Flags().StringVar(&referenceTime, "at", "", "reference time (RFC 3339) for periodic density factors; defaults to the launch time")
	evaluateCmd.Flags().StringVar(&stepperName, "stepper", "euler", "debris propagation integrator (euler or rk4)")
}
