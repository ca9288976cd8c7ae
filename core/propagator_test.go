package core

import (
	"context"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/signalsfoundry/space-traffic-simulator/model"
)

func TestPropagateIncludesInitialState(t *testing.T) {
	p := &Propagator{Stepper: EulerStep}
	initial := leoState(550)

	traj, err := p.Propagate(context.Background(), initial, 1, 10)
	if err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if len(traj.Points) != 11 {
		t.Fatalf("got %d points, want 11 (initial + 10 steps)", len(traj.Points))
	}
	if traj.Points[0].State != initial || traj.Points[0].TimeSec != 0 {
		t.Errorf("first point = %+v, want the initial state at t=0", traj.Points[0])
	}
	if traj.Points[10].TimeSec != 10 {
		t.Errorf("last point t = %v, want 10", traj.Points[10].TimeSec)
	}
	if traj.Truncated {
		t.Error("trajectory marked truncated on a clean run")
	}
}

func TestPropagateCircularOrbitRadius(t *testing.T) {
	initial := leoState(550)
	r0 := initial.Radius()

	cases := []struct {
		name   string
		step   Stepper
		relTol float64
	}{
		// Semi-implicit Euler keeps the orbit bounded but wobbles; RK4
		// holds the radius to numerical precision at this step size.
		{"euler", EulerStep, 1e-2},
		{"rk4", RK4Step, 1e-8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &Propagator{Stepper: tc.step}
			traj, err := p.Propagate(context.Background(), initial, 1, 600)
			if err != nil {
				t.Fatalf("Propagate: %v", err)
			}
			for _, pt := range traj.Points {
				if rel := math.Abs(pt.State.Radius()-r0) / r0; rel > tc.relTol {
					t.Fatalf("radius drift %.2e at t=%.0f s exceeds %.0e", rel, pt.TimeSec, tc.relTol)
				}
			}
		})
	}
}

func TestPropagateRejectsInvalidStep(t *testing.T) {
	p := &Propagator{}
	cases := []struct {
		name     string
		step     float64
		duration float64
	}{
		{"zero step", 0, 60},
		{"negative step", -1, 60},
		{"NaN step", math.NaN(), 60},
		{"negative duration", 1, -60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Propagate(context.Background(), leoState(550), tc.step, tc.duration)
			if !errors.Is(err, ErrInvalidTimeStep) {
				t.Fatalf("error = %v, want ErrInvalidTimeStep", err)
			}
		})
	}
}

func TestPropagateCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &Propagator{}
	traj, err := p.Propagate(ctx, leoState(550), 1, 600)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if !traj.Truncated {
		t.Error("cancelled trajectory not marked truncated")
	}
	if len(traj.Points) != 1 {
		t.Errorf("got %d points, want just the initial state", len(traj.Points))
	}
}

func TestPropagateNonFiniteInitialState(t *testing.T) {
	initial := leoState(550)
	initial.Position.X = math.NaN()

	p := &Propagator{}
	traj, err := p.Propagate(context.Background(), initial, 1, 60)
	if !errors.Is(err, ErrNumericFault) {
		t.Fatalf("error = %v, want ErrNumericFault", err)
	}
	if !traj.Truncated || len(traj.Points) != 1 {
		t.Errorf("traj = %d points truncated=%v, want 1 point truncated", len(traj.Points), traj.Truncated)
	}
}

func TestPropagateFaultReturnsPartialTrajectory(t *testing.T) {
	faultAt := 3
	n := 0
	poison := func(sv model.StateVector, dt float64, accel AccelFunc) model.StateVector {
		n++
		if n == faultAt {
			sv.Velocity = r3.Vec{X: math.Inf(1)}
			return sv
		}
		return EulerStep(sv, dt, accel)
	}

	p := &Propagator{Stepper: poison}
	traj, err := p.Propagate(context.Background(), leoState(550), 1, 60)
	if !errors.Is(err, ErrNumericFault) {
		t.Fatalf("error = %v, want ErrNumericFault", err)
	}
	if !traj.Truncated {
		t.Error("faulted trajectory not marked truncated")
	}
	if len(traj.Points) != faultAt {
		t.Errorf("got %d points, want %d (initial + steps before the fault)", len(traj.Points), faultAt)
	}
}

func TestPropagateMaxSteps(t *testing.T) {
	p := &Propagator{MaxSteps: 5}
	traj, err := p.Propagate(context.Background(), leoState(550), 1, 600)
	if err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if len(traj.Points) != 6 {
		t.Errorf("got %d points, want 6 (initial + MaxSteps)", len(traj.Points))
	}
}

func TestPropagateNilStepperDefaultsToEuler(t *testing.T) {
	want, err := (&Propagator{Stepper: EulerStep}).Propagate(context.Background(), leoState(550), 1, 10)
	if err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	got, err := (&Propagator{}).Propagate(context.Background(), leoState(550), 1, 10)
	if err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if got.Points[10].State != want.Points[10].State {
		t.Errorf("final state = %+v, want Euler result %+v", got.Points[10].State, want.Points[10].State)
	}
}
