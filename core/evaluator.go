package core

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/space-traffic-simulator/internal/logging"
	"github.com/signalsfoundry/space-traffic-simulator/model"
)

const tracerName = "github.com/signalsfoundry/space-traffic-simulator/core"

// Congestion scaling applied by each event type.
const (
	launchCongestionScale  = 1.01
	breakupCongestionScale = 1.1
)

// debrisMassPerFragmentKg converts breakup mass into a fragment count.
const debrisMassPerFragmentKg = 100.0

// Default representative-fragment propagation window.
const (
	defaultDebrisStepSec     = 1.0
	defaultDebrisDurationSec = 600.0
)

// EvaluationRecorder receives metrics about completed evaluations. The
// observability collector implements it; a nil recorder disables metrics.
type EvaluationRecorder interface {
	RecordEvaluation(eventType, outcome string, seconds float64)
	SetRegimeCounts(leo, meo, geo int, avgCongestion float64)
}

// EvaluateOptions carries the optional inputs of an evaluation. External
// feed data arrives here as plain scalars, already derived by the caller
// from the feeds boundary; zero values mean "feed unavailable" and degrade
// to identity multipliers.
type EvaluateOptions struct {
	// Satellite describes the physical object for debris propagation.
	Satellite *model.SatelliteParameters

	// StormRiskMultiplier scales the final risk score (>= 1). Zero means
	// no space-weather data: multiplier 1.
	StormRiskMultiplier float64

	// AsteroidInfluence scales breakup debris distribution (>= 1). Zero
	// means no NEO data: multiplier 1.
	AsteroidInfluence float64

	// At is the reference time for the periodic density factors. Zero
	// falls back to the scenario launch time, keeping the evaluation a
	// pure function of its inputs.
	At time.Time

	// PropagateDebris enables the representative-fragment propagation for
	// breakup scenarios.
	PropagateDebris bool
}

// RiskFactor is a coarse structured annotation of what drives the score.
type RiskFactor struct {
	Factor      string
	Severity    string // low, medium, high
	Description string
}

// EvaluationResult is the complete output of one scenario evaluation.
type EvaluationResult struct {
	Before model.OrbitalRegimeState
	After  model.OrbitalRegimeState
	Delta  model.RegimeDelta

	RiskPercent float64
	Density     DensityEstimate
	RiskFactors []RiskFactor

	// Breakup only: fragment count and, when requested, the propagated
	// representative-fragment trajectory.
	DebrisCount int
	Debris      *model.Trajectory
}

// Evaluator turns a validated scenario into a before/after traffic snapshot
// plus a risk/congestion delta. It holds no state across calls: identical
// inputs produce identical results.
type Evaluator struct {
	// Stepper selects the debris-propagation integrator. Nil means Euler.
	Stepper Stepper

	// DebrisStepSec/DebrisDurationSec bound the representative-fragment
	// propagation. Zero values use the defaults.
	DebrisStepSec     float64
	DebrisDurationSec float64

	log     logging.Logger
	metrics EvaluationRecorder
}

// NewEvaluator constructs an evaluator. Both arguments may be nil.
func NewEvaluator(log logging.Logger, metrics EvaluationRecorder) *Evaluator {
	if log == nil {
		log = logging.Noop()
	}
	return &Evaluator{log: log, metrics: metrics}
}

// Evaluate runs a single scenario against the supplied traffic snapshot.
//
// Validation failures reject the call before any computation. A numeric
// fault during debris propagation returns the partial result alongside an
// error wrapping ErrNumericFault: the fault is surfaced, never masked, but
// everything computed up to it remains usable.
func (e *Evaluator) Evaluate(ctx context.Context, s model.Scenario, before model.OrbitalRegimeState, opts EvaluateOptions) (*EvaluationResult, error) {
	start := time.Now()

	if err := ValidateScenario(s); err != nil {
		e.record(string(s.EventType), "invalid", start)
		return nil, err
	}

	ctx, log := logging.WithEvaluationLogger(ctx, e.log)
	ctx, span := otel.Tracer(tracerName).Start(ctx, "evaluator/evaluate", trace.WithAttributes(
		attribute.String("event_type", string(s.EventType)),
		attribute.Float64("altitude_km", s.Parameters.AltitudeKm),
		attribute.Float64("mass_kg", s.Parameters.MassKg),
	))
	defer span.End()

	at := opts.At
	if at.IsZero() {
		at = s.Parameters.LaunchTime
	}

	p := s.Parameters
	density := EstimateDensity(p.AltitudeKm, p.InclinationDeg, at)

	result := &EvaluationResult{
		Before:  before,
		Density: density,
	}

	after := before
	var faultErr error

	switch s.EventType {
	case model.EventLaunch:
		addToRegime(&after, density.Regime, 1)
		after.AverageCongestion = clamp01(before.AverageCongestion * launchCongestionScale)
		after.CollisionProbability = clamp01(before.CollisionProbability * launchCongestionScale)

	case model.EventAdjustment:
		// Object count and congestion are untouched; only the risk score
		// is recomputed from the (possibly altered) parameters.

	case model.EventBreakup:
		faultErr = e.applyBreakup(ctx, s, opts, density, &after, result)
	}

	result.After = after

	// Baseline risk against the unchanged snapshot gives the delta a
	// meaningful reference point.
	baseline := ScenarioRisk(before, before, p)
	risk := ScenarioRisk(before, after, p)
	if s.EventType == model.EventBreakup {
		risk = math.Min(risk*2, MaxRiskPercent)
	}
	risk = math.Min(risk*stormMultiplier(opts), MaxRiskPercent)

	result.RiskPercent = risk
	result.RiskFactors = riskFactors(p)
	result.Delta = model.RegimeDelta{
		NewObjects:       after.TotalObjects() - before.TotalObjects(),
		CongestionChange: after.AverageCongestion - before.AverageCongestion,
		RiskChange:       risk - baseline,
	}

	outcome := "ok"
	if faultErr != nil {
		outcome = "fault"
		span.RecordError(faultErr)
	}
	e.record(string(s.EventType), outcome, start)
	if e.metrics != nil {
		e.metrics.SetRegimeCounts(after.ObjectsInLEO, after.ObjectsInMEO, after.ObjectsInGEO, after.AverageCongestion)
	}

	log.Info(ctx, "scenario evaluated",
		logging.String("event_type", string(s.EventType)),
		logging.String("regime", density.Regime.String()),
		logging.Float64("risk_percent", risk),
		logging.Int("new_objects", result.Delta.NewObjects),
	)

	return result, faultErr
}

// applyBreakup distributes debris across regimes and optionally propagates
// a representative fragment. It returns a non-nil error only for a numeric
// fault; the partial trajectory is still attached to the result.
func (e *Evaluator) applyBreakup(ctx context.Context, s model.Scenario, opts EvaluateOptions, density DensityEstimate, after *model.OrbitalRegimeState, result *EvaluationResult) error {
	p := s.Parameters
	debris := int(math.Floor(p.MassKg / debrisMassPerFragmentKg))
	result.DebrisCount = debris

	influence := opts.AsteroidInfluence
	if influence < 1 {
		influence = 1
	}

	// 70/20/10 split across LEO/MEO/GEO, each share scaled by the NEO
	// influence and floored. The running remainder caps the allocation so
	// fragments are never invented, whatever the multiplier.
	remaining := debris
	leo := allocateDebris(0.7, debris, influence, &remaining)
	meo := allocateDebris(0.2, debris, influence, &remaining)
	geo := allocateDebris(0.1, debris, influence, &remaining)

	after.ObjectsInLEO += leo
	after.ObjectsInMEO += meo
	after.ObjectsInGEO += geo
	after.AverageCongestion = clamp01(after.AverageCongestion * breakupCongestionScale)
	after.CollisionProbability = clamp01(after.CollisionProbability * 2)

	if !opts.PropagateDebris {
		return nil
	}

	initial, err := ToCartesian(model.OrbitalElements{
		SemiMajorAxisKm: EarthRadiusM/1000 + p.AltitudeKm,
		InclinationDeg:  p.InclinationDeg,
	})
	if err != nil {
		// Scenario altitude ranges guarantee a valid orbit; treat anything
		// else as a fault in the same class as a propagation failure.
		return fmt.Errorf("%w: representative fragment state: %v", ErrNumericFault, err)
	}

	params := model.SatelliteParameters{
		MassKg:             p.MassKg,
		DragCoefficient:    2.2,
		CrossSectionalArea: 1.0,
	}
	if opts.Satellite != nil {
		params = *opts.Satellite
	}

	prop := NewPropagator(params)
	if e.Stepper != nil {
		prop.Stepper = e.Stepper
	}

	step := e.DebrisStepSec
	if step <= 0 {
		step = defaultDebrisStepSec
	}
	duration := e.DebrisDurationSec
	if duration <= 0 {
		duration = defaultDebrisDurationSec
	}

	traj, err := prop.Propagate(ctx, initial, step, duration)
	result.Debris = &traj
	if err != nil {
		return err
	}
	return nil
}

// allocateDebris floors share*debris*influence, capped by the remainder.
func allocateDebris(share float64, debris int, influence float64, remaining *int) int {
	n := int(math.Floor(share * float64(debris) * influence))
	if n > *remaining {
		n = *remaining
	}
	*remaining -= n
	return n
}

func addToRegime(s *model.OrbitalRegimeState, regime model.Regime, n int) {
	switch regime {
	case model.RegimeLEO:
		s.ObjectsInLEO += n
	case model.RegimeMEO:
		s.ObjectsInMEO += n
	case model.RegimeGEO:
		s.ObjectsInGEO += n
	}
}

func stormMultiplier(opts EvaluateOptions) float64 {
	if opts.StormRiskMultiplier < 1 {
		return 1
	}
	return opts.StormRiskMultiplier
}

// riskFactors attaches coarse structured annotations for the main risk
// drivers of the supplied parameters.
func riskFactors(p model.ScenarioParameters) []RiskFactor {
	var factors []RiskFactor
	if p.AltitudeKm < 400 {
		severity := "medium"
		if p.AltitudeKm < 300 {
			severity = "high"
		}
		factors = append(factors, RiskFactor{
			Factor:      "low altitude",
			Severity:    severity,
			Description: fmt.Sprintf("%.0f km altitude increases atmospheric drag and reentry risk", p.AltitudeKm),
		})
	}
	if p.MassKg > 2000 {
		factors = append(factors, RiskFactor{
			Factor:      "high mass",
			Severity:    "high",
			Description: fmt.Sprintf("%.0f kg object poses greater fragmentation risk", p.MassKg),
		})
	}
	if p.InclinationDeg > 70 && p.InclinationDeg < 110 {
		factors = append(factors, RiskFactor{
			Factor:      "polar inclination",
			Severity:    "medium",
			Description: fmt.Sprintf("%.0f° inclination crosses many orbital planes", p.InclinationDeg),
		})
	}
	return factors
}

func (e *Evaluator) record(eventType, outcome string, start time.Time) {
	if e.metrics == nil {
		return
	}
	e.metrics.RecordEvaluation(eventType, outcome, time.Since(start).Seconds())
}
