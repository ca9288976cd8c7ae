package core

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/signalsfoundry/space-traffic-simulator/model"
)

var (
	// ErrNumericFault is returned when propagation produces a non-finite
	// state. The trajectory computed up to that step is still returned.
	ErrNumericFault = errors.New("numeric fault")

	// ErrInvalidTimeStep is returned for non-positive step sizes or
	// negative durations.
	ErrInvalidTimeStep = errors.New("invalid time step")
)

// AccelFunc computes the total acceleration (m/s²) acting on a state.
type AccelFunc func(model.StateVector) r3.Vec

// Stepper advances a state by dt seconds under the given acceleration
// model. Integrators are plain functions so a caller can swap the default
// first-order method for a higher-order one without touching the
// propagation contract.
type Stepper func(sv model.StateVector, dt float64, accel AccelFunc) model.StateVector

// EulerStep is the reference first-order integrator: velocity is updated
// from the acceleration, then position from the updated velocity. Adequate
// for short-duration debris-dispersion estimates, not for multi-orbit
// precision work.
func EulerStep(sv model.StateVector, dt float64, accel AccelFunc) model.StateVector {
	a := accel(sv)
	vel := r3.Add(sv.Velocity, r3.Scale(dt, a))
	return model.StateVector{
		Position: r3.Add(sv.Position, r3.Scale(dt, vel)),
		Velocity: vel,
	}
}

// RK4Step is a classical fourth-order Runge-Kutta integrator over the
// coupled position/velocity system.
func RK4Step(sv model.StateVector, dt float64, accel AccelFunc) model.StateVector {
	type deriv struct {
		dPos r3.Vec
		dVel r3.Vec
	}

	eval := func(s model.StateVector) deriv {
		return deriv{dPos: s.Velocity, dVel: accel(s)}
	}
	advance := func(s model.StateVector, d deriv, h float64) model.StateVector {
		return model.StateVector{
			Position: r3.Add(s.Position, r3.Scale(h, d.dPos)),
			Velocity: r3.Add(s.Velocity, r3.Scale(h, d.dVel)),
		}
	}

	k1 := eval(sv)
	k2 := eval(advance(sv, k1, dt/2))
	k3 := eval(advance(sv, k2, dt/2))
	k4 := eval(advance(sv, k3, dt))

	sixth := dt / 6
	return model.StateVector{
		Position: r3.Add(sv.Position, r3.Scale(sixth,
			r3.Add(r3.Add(k1.dPos, r3.Scale(2, r3.Add(k2.dPos, k3.dPos))), k4.dPos))),
		Velocity: r3.Add(sv.Velocity, r3.Scale(sixth,
			r3.Add(r3.Add(k1.dVel, r3.Scale(2, r3.Add(k2.dVel, k3.dVel))), k4.dVel))),
	}
}

// Propagator integrates a state forward under two-body gravity plus the
// configured perturbations, producing the full trajectory synchronously.
type Propagator struct {
	Stepper Stepper
	Forces  Forces

	// MaxSteps bounds the number of integration steps regardless of the
	// requested duration. Zero means no cap beyond the duration itself.
	MaxSteps int
}

// NewPropagator returns a propagator with the reference configuration:
// Euler stepping, J2 enabled, and drag below the default ceiling for the
// given object.
func NewPropagator(params model.SatelliteParameters) *Propagator {
	return &Propagator{
		Stepper: EulerStep,
		Forces: Forces{
			J2:           true,
			Drag:         true,
			DragCeilingM: DefaultDragCeilingM,
			Params:       params,
		},
	}
}

// Propagate integrates initial forward for durationSec in fixed steps of
// stepSec, returning the trajectory with the initial state as its first
// point. The context is checked every step so long runs stay cancellable.
//
// If a step produces a non-finite state, the trajectory computed so far is
// returned with Truncated set alongside an error wrapping ErrNumericFault.
// Cancellation likewise returns the truncated trajectory with the context
// error.
func (p *Propagator) Propagate(ctx context.Context, initial model.StateVector, stepSec, durationSec float64) (model.Trajectory, error) {
	if stepSec <= 0 || math.IsNaN(stepSec) {
		return model.Trajectory{}, fmt.Errorf("%w: step %.6f s must be positive", ErrInvalidTimeStep, stepSec)
	}
	if durationSec < 0 || math.IsNaN(durationSec) {
		return model.Trajectory{}, fmt.Errorf("%w: duration %.6f s must be non-negative", ErrInvalidTimeStep, durationSec)
	}

	stepper := p.Stepper
	if stepper == nil {
		stepper = EulerStep
	}

	steps := int(durationSec / stepSec)
	if p.MaxSteps > 0 && steps > p.MaxSteps {
		steps = p.MaxSteps
	}

	traj := model.Trajectory{Points: make([]model.TrajectoryPoint, 0, steps+1)}
	traj.Points = append(traj.Points, model.TrajectoryPoint{State: initial})

	if !finiteState(initial) {
		traj.Truncated = true
		return traj, fmt.Errorf("%w: initial state is non-finite", ErrNumericFault)
	}

	state := initial
	for i := 1; i <= steps; i++ {
		if err := ctx.Err(); err != nil {
			traj.Truncated = true
			return traj, err
		}

		state = stepper(state, stepSec, p.Forces.Acceleration)
		if !finiteState(state) {
			traj.Truncated = true
			return traj, fmt.Errorf("%w: at step %d (t=%.1f s)", ErrNumericFault, i, float64(i)*stepSec)
		}
		traj.Points = append(traj.Points, model.TrajectoryPoint{
			State:   state,
			TimeSec: float64(i) * stepSec,
		})
	}
	return traj, nil
}

func finiteState(sv model.StateVector) bool {
	return finiteVec(sv.Position) && finiteVec(sv.Velocity)
}

func finiteVec(v r3.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}
