package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/signalsfoundry/space-traffic-simulator/core"
	"github.com/signalsfoundry/space-traffic-simulator/model"
)

var (
	propAltitudeKm  float64
	propEccentric   float64
	propInclination float64
	propRAAN        float64
	propArgPerigee  float64
	propTrueAnomaly float64

	propStepSec     float64
	propDurationSec float64

	propMassKg  float64
	propDragCd  float64
	propAreaM2  float64
	propStepper string
	propFull    bool
)

var propagateCmd = &cobra.Command{
	Use:   "propagate",
	Short: "Propagate an orbit from Keplerian elements and print the trajectory",
	RunE: func(cmd *cobra.Command, args []string) error {
		elements := model.OrbitalElements{
			SemiMajorAxisKm: core.EarthRadiusM/1000 + propAltitudeKm,
			Eccentricity:    propEccentric,
			InclinationDeg:  propInclination,
			RAANDeg:         propRAAN,
			ArgPerigeeDeg:   propArgPerigee,
			TrueAnomalyDeg:  propTrueAnomaly,
		}

		initial, err := core.ToCartesian(elements)
		if err != nil {
			return err
		}

		prop := core.NewPropagator(model.SatelliteParameters{
			MassKg:             propMassKg,
			DragCoefficient:    propDragCd,
			CrossSectionalArea: propAreaM2,
		})
		if propStepper == "rk4" {
			prop.Stepper = core.RK4Step
		}

		traj, err := prop.Propagate(cmd.Context(), initial, propStepSec, propDurationSec)
		if err != nil && !errors.Is(err, core.ErrNumericFault) {
			return err
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v (trajectory truncated after %d points)\n", err, len(traj.Points))
		}

		if propFull {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(traj)
		}

		first := traj.Points[0]
		last := traj.Points[len(traj.Points)-1]
		fmt.Printf("points=%d truncated=%v\n", len(traj.Points), traj.Truncated)
		fmt.Printf("t=%8.1f s  r=%.3f km  v=%.3f km/s\n", first.TimeSec, first.State.Radius()/1000, first.State.Speed()/1000)
		fmt.Printf("t=%8.1f s  r=%.3f km  v=%.3f km/s\n", last.TimeSec, last.State.Radius()/1000, last.State.Speed()/1000)
		return nil
	},
}

func init() {
	propagateCmd.Flags().Float64Var(&propAltitudeKm, "altitude-km", 550, "initial altitude above the mean Earth radius")
	propagateCmd.Flags().Float64Var(&propEccentric, "eccentricity", 0, "orbit eccentricity [0,1)")
	propagateCmd.Flags().Float64Var(&propInclination, "inclination-deg", 53, "inclination in degrees")
	propagateCmd.Flags().Float64Var(&propRAAN, "raan-deg", 0, "right ascension of the ascending node in degrees")
	propagateCmd.Flags().Float64Var(&propArgPerigee, "argp-deg", 0, "argument of perigee in degrees")
	propagateCmd.Flags().Float64Var(&propTrueAnomaly, "true-anomaly-deg", 0, "true anomaly in degrees")

	propagateCmd.Flags().Float64Var(&propStepSec, "step-sec", 1, "integration step in seconds")
	propagateCmd.Flags().Float64Var(&propDurationSec, "duration-sec", 600, "propagation duration in seconds")

	propagateCmd.Flags().Float64Var(&propMassKg, "mass-kg", 1000, "object mass")
	propagateCmd.Flags().Float64Var(&propDragCd, "drag-coefficient", 2.2, "drag coefficient")
	propagateCmd.Flags().Float64Var(&propAreaM2, "cross-section-m2", 1, "cross-sectional area")
	propagateCmd.Flags().StringVar(&propStepper, "stepper", "euler", "integrator (euler or rk4)")
	propagateCmd.Flags().BoolVar(&propFull, "full", false, "print the full trajectory as JSON instead of a summary")
}
