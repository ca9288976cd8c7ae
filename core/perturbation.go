package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/signalsfoundry/space-traffic-simulator/model"
)

// GravityAcceleration returns the two-body gravitational acceleration (m/s²)
// at the given state. Singular at r=0; NaN/Inf propagate and are caught by
// the propagator's per-step fault check.
func GravityAcceleration(sv model.StateVector) r3.Vec {
	r := r3.Norm(sv.Position)
	return r3.Scale(-MuEarth/(r*r*r), sv.Position)
}

// J2Acceleration returns the closed-form J2 oblateness perturbation (m/s²).
// It depends on position only; velocity plays no part in this term.
func J2Acceleration(sv model.StateVector) r3.Vec {
	x, y, z := sv.Position.X, sv.Position.Y, sv.Position.Z
	r2 := x*x + y*y + z*z
	r5 := r2 * r2 * math.Sqrt(r2)
	zr2 := z * z / r2

	k := -1.5 * J2 * MuEarth * EarthEquatorialRadiusM * EarthEquatorialRadiusM / r5
	return r3.Vec{
		X: k * x * (1 - 5*zr2),
		Y: k * y * (1 - 5*zr2),
		Z: k * z * (3 - 5*zr2),
	}
}

// AtmosphericDrag returns the drag force (newtons) on an object with the
// given parameters, using an exponential atmosphere and the standard
// ½·ρ·v²·Cd·A magnitude directed against the velocity. Above ceilingM of
// altitude the force is zero.
func AtmosphericDrag(sv model.StateVector, p model.SatelliteParameters, ceilingM float64) r3.Vec {
	alt := r3.Norm(sv.Position) - EarthRadiusM
	if alt > ceilingM {
		return r3.Vec{}
	}

	speed := r3.Norm(sv.Velocity)
	if speed == 0 {
		return r3.Vec{}
	}

	rho := SeaLevelDensity * math.Exp(-alt/ScaleHeightM)
	mag := 0.5 * rho * speed * speed * p.DragCoefficient * p.CrossSectionalArea
	return r3.Scale(-mag/speed, sv.Velocity)
}

// Forces bundles the perturbations applied during propagation. The zero
// value means two-body gravity only.
type Forces struct {
	J2 bool

	// Drag enables the atmospheric drag term for objects described by
	// Params, applied below DragCeilingM of altitude.
	Drag         bool
	DragCeilingM float64
	Params       model.SatelliteParameters
}

// Acceleration returns the total acceleration (m/s²) acting on the state.
func (f Forces) Acceleration(sv model.StateVector) r3.Vec {
	acc := GravityAcceleration(sv)
	if f.J2 {
		acc = r3.Add(acc, J2Acceleration(sv))
	}
	if f.Drag && f.Params.MassKg > 0 {
		drag := AtmosphericDrag(sv, f.Params, f.DragCeilingM)
		acc = r3.Add(acc, r3.Scale(1/f.Params.MassKg, drag))
	}
	return acc
}
