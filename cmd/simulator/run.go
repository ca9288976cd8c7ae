package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/signalsfoundry/space-traffic-simulator/catalog"
	"github.com/signalsfoundry/space-traffic-simulator/internal/logging"
	"github.com/signalsfoundry/space-traffic-simulator/internal/observability"
	"github.com/signalsfoundry/space-traffic-simulator/timectrl"
)

var (
	runDuration    time.Duration
	runTick        time.Duration
	runAccelerated bool
	runCatalogPath string
	runListenAddr  string
	runMinProb     float64
	runStartTime   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the tracking daemon: periodic state refresh, conjunction screening, and metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		ctx := cmd.Context()

		shutdown, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer observability.ShutdownWithTimeout(ctx, shutdown, log)

		collector, err := observability.NewSimCollector(nil)
		if err != nil {
			return fmt.Errorf("init metrics: %w", err)
		}

		store := catalog.New()
		f, err := os.Open(runCatalogPath)
		if err != nil {
			return fmt.Errorf("open catalog %q: %w", runCatalogPath, err)
		}
		added, err := catalog.Load(store, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		log.Info(ctx, "catalog loaded", logging.Int("objects", len(added)))
		collector.SetCatalogSize(store.Len())

		if runListenAddr != "" {
			mux := http.NewServeMux()
			mux.Handle("/metrics", collector.Handler())
			mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				fmt.Fprintln(w, "ok")
			})
			go func() {
				if err := http.ListenAndServe(runListenAddr, mux); err != nil {
					log.Error(ctx, "metrics listener failed", loggingError(err))
				}
			}()
			log.Info(ctx, "metrics listening", logging.String("addr", runListenAddr))
		}

		start := time.Now().UTC()
		if runStartTime != "" {
			start, err = time.Parse(time.RFC3339, runStartTime)
			if err != nil {
				return fmt.Errorf("parse --start: %w", err)
			}
		}

		mode := timectrl.RealTime
		if runAccelerated {
			mode = timectrl.Accelerated
		}
		tc := timectrl.NewTimeController(start, runTick, mode)

		tc.AddListener(func(simTime time.Time) {
			store.UpdateStates(simTime)

			snapshot := store.RegimeCounts()
			collector.SetRegimeCounts(snapshot.ObjectsInLEO, snapshot.ObjectsInMEO, snapshot.ObjectsInGEO, snapshot.AverageCongestion)

			conjunctions := store.ScreenConjunctions(runMinProb)
			collector.SetConjunctionCount(len(conjunctions))
			for _, c := range conjunctions {
				log.Warn(ctx, "conjunction detected",
					logging.String("object_a", c.ObjectA),
					logging.String("object_b", c.ObjectB),
					logging.Float64("separation_m", c.SeparationM),
					logging.Float64("probability", c.Probability),
				)
			}

			log.Debug(ctx, "tick",
				logging.String("sim_time", simTime.Format(time.RFC3339)),
				logging.Int("leo", snapshot.ObjectsInLEO),
				logging.Int("meo", snapshot.ObjectsInMEO),
				logging.Int("geo", snapshot.ObjectsInGEO),
			)
		})

		log.Info(ctx, "starting simulation",
			logging.String("duration", runDuration.String()),
			logging.String("tick", runTick.String()),
			logging.Int("mode", int(mode)),
		)
		done := tc.Start(runDuration)
		select {
		case <-done:
		case <-ctx.Done():
			tc.Stop()
			<-done
			return ctx.Err()
		}
		log.Info(ctx, "simulation complete")
		return nil
	},
}

func init() {
	runCmd.Flags().DurationVar(&runDuration, "duration", 60*time.Second, "total simulation duration (0 = run until interrupted)")
	runCmd.Flags().DurationVar(&runTick, "tick", time.Second, "tick interval")
	runCmd.Flags().BoolVar(&runAccelerated, "accelerated", false, "run in accelerated mode (vs real-time)")
	runCmd.Flags().StringVar(&runCatalogPath, "catalog", "configs/catalog.yaml", "path to the tracked-object catalog YAML")
	runCmd.Flags().StringVar(&runListenAddr, "listen", ":9090", "address for /metrics and /healthz (empty disables)")
	runCmd.Flags().Float64Var(&runMinProb, "min-probability", 0.001, "conjunction screening probability threshold")
	runCmd.Flags().StringVar(&runStartTime, "start", "", "simulation start time (RFC 3339); defaults to now")
}
