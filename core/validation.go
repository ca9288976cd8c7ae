package core

import (
	"errors"
	"fmt"

	"github.com/signalsfoundry/space-traffic-simulator/model"
)

// ErrInvalidScenario flags scenario parameters outside their documented
// ranges. The wrapped message names the offending field so the caller can
// surface it directly.
var ErrInvalidScenario = errors.New("invalid scenario")

// Documented parameter ranges for a scenario.
const (
	MinAltitudeKm = 100.0
	MaxAltitudeKm = 5000.0

	MinInclinationDeg = 0.0
	MaxInclinationDeg = 180.0

	MinVelocityKmS = 0.0
	MaxVelocityKmS = 15.0

	MinMassKg = 1.0
	MaxMassKg = 10000.0
)

// ValidateScenario rejects out-of-range parameters before any computation
// runs. Values are never clamped or defaulted.
func ValidateScenario(s model.Scenario) error {
	if !s.EventType.Valid() {
		return fmt.Errorf("%w: event type %q is not one of launch, adjustment, breakup", ErrInvalidScenario, s.EventType)
	}

	p := s.Parameters
	if p.AltitudeKm < MinAltitudeKm || p.AltitudeKm > MaxAltitudeKm {
		return fmt.Errorf("%w: altitude %.1f km outside [%.0f, %.0f]", ErrInvalidScenario, p.AltitudeKm, MinAltitudeKm, MaxAltitudeKm)
	}
	if p.InclinationDeg < MinInclinationDeg || p.InclinationDeg > MaxInclinationDeg {
		return fmt.Errorf("%w: inclination %.1f° outside [%.0f, %.0f]", ErrInvalidScenario, p.InclinationDeg, MinInclinationDeg, MaxInclinationDeg)
	}
	if p.VelocityKmS < MinVelocityKmS || p.VelocityKmS > MaxVelocityKmS {
		return fmt.Errorf("%w: velocity %.2f km/s outside [%.0f, %.0f]", ErrInvalidScenario, p.VelocityKmS, MinVelocityKmS, MaxVelocityKmS)
	}
	if p.MassKg < MinMassKg || p.MassKg > MaxMassKg {
		return fmt.Errorf("%w: mass %.1f kg outside [%.0f, %.0f]", ErrInvalidScenario, p.MassKg, MinMassKg, MaxMassKg)
	}
	if p.LaunchTime.IsZero() {
		return fmt.Errorf("%w: launch time is required", ErrInvalidScenario)
	}
	return nil
}
