package core

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/signalsfoundry/space-traffic-simulator/model"
)

var (
	// ErrDegenerateOrbit flags elements that do not describe a closed orbit
	// (eccentricity >= 1 or non-positive semi-major axis).
	ErrDegenerateOrbit = errors.New("degenerate orbit")

	// ErrDegenerateVector flags state vectors whose geometry makes the
	// conversion angles undefined (zero position, rectilinear motion).
	ErrDegenerateVector = errors.New("degenerate state vector")
)

// Tolerances below which an orbit is treated as circular or equatorial.
// The conversion applies the same convention in both directions, so the
// round-trip property holds at these boundaries by construction:
//   - circular (e ~ 0): argument of perigee is 0 and the true anomaly slot
//     carries the argument of latitude (angle from the ascending node);
//   - equatorial (i ~ 0 or i ~ 180): RAAN is 0 and the remaining angles are
//     measured from the inertial x-axis. The node vector vanishes for both
//     the prograde and the retrograde case, so both take this convention.
const (
	circularEps   = 1e-8
	equatorialEps = 1e-8 // radians
)

// ToCartesian converts Keplerian elements to an ECI state vector.
// It solves position and velocity in the orbital plane from the true anomaly
// and eccentricity, then rotates through the 3-1-3 Euler sequence
// (RAAN, inclination, argument of perigee) into the inertial frame.
func ToCartesian(el model.OrbitalElements) (model.StateVector, error) {
	if el.SemiMajorAxisKm <= 0 {
		return model.StateVector{}, fmt.Errorf("%w: semi-major axis %.3f km must be positive", ErrDegenerateOrbit, el.SemiMajorAxisKm)
	}
	if el.Eccentricity < 0 || el.Eccentricity >= 1 {
		return model.StateVector{}, fmt.Errorf("%w: eccentricity %.6f outside [0, 1)", ErrDegenerateOrbit, el.Eccentricity)
	}

	a := el.SemiMajorAxisKm * 1000
	e := el.Eccentricity
	i := deg2rad(el.InclinationDeg)
	raan := deg2rad(el.RAANDeg)
	argp := deg2rad(el.ArgPerigeeDeg)
	nu := deg2rad(el.TrueAnomalyDeg)

	// Fold undefined angles into the true anomaly so that degenerate inputs
	// still map to a consistent state.
	if e < circularEps {
		nu += argp
		argp = 0
		if i < equatorialEps {
			nu += raan
			raan = 0
		}
	} else if i < equatorialEps {
		argp += raan
		raan = 0
	}

	p := a * (1 - e*e)
	sinNu, cosNu := math.Sincos(nu)
	r := p / (1 + e*cosNu)

	posPQW := r3.Vec{X: r * cosNu, Y: r * sinNu}
	vScale := math.Sqrt(MuEarth / p)
	velPQW := r3.Vec{X: -vScale * sinNu, Y: vScale * (e + cosNu)}

	return model.StateVector{
		Position: perifocalToECI(i, argp, raan, posPQW),
		Velocity: perifocalToECI(i, argp, raan, velPQW),
	}, nil
}

// ToKeplerian converts an ECI state vector to Keplerian elements following
// Vallado's RV2COE. Degenerate geometries use the convention documented on
// circularEps/equatorialEps.
func ToKeplerian(sv model.StateVector) (model.OrbitalElements, error) {
	r := r3.Norm(sv.Position)
	v := r3.Norm(sv.Velocity)
	if r == 0 {
		return model.OrbitalElements{}, fmt.Errorf("%w: zero position", ErrDegenerateVector)
	}

	h := r3.Cross(sv.Position, sv.Velocity)
	hNorm := r3.Norm(h)
	if hNorm == 0 {
		return model.OrbitalElements{}, fmt.Errorf("%w: zero angular momentum", ErrDegenerateVector)
	}

	// Eccentricity vector and semi-major axis via vis-viva.
	rv := r3.Dot(sv.Position, sv.Velocity)
	eVec := r3.Sub(
		r3.Scale((v*v-MuEarth/r)/MuEarth, sv.Position),
		r3.Scale(rv/MuEarth, sv.Velocity),
	)
	e := r3.Norm(eVec)
	if e >= 1 {
		return model.OrbitalElements{}, fmt.Errorf("%w: eccentricity %.6f outside [0, 1)", ErrDegenerateOrbit, e)
	}
	energy := v*v/2 - MuEarth/r
	a := -MuEarth / (2 * energy)

	i := math.Acos(clampUnit(h.Z / hNorm))
	equatorial := i < equatorialEps || i > math.Pi-equatorialEps

	n := r3.Cross(r3.Vec{Z: 1}, h)
	nNorm := r3.Norm(n)

	var raan, argp, nu float64
	switch {
	case equatorial && e < circularEps:
		// Circular equatorial: true longitude from the x-axis.
		nu = math.Acos(clampUnit(sv.Position.X / r))
		if sv.Position.Y < 0 {
			nu = 2*math.Pi - nu
		}

	case equatorial:
		// Elliptical equatorial: longitude of perigee from the x-axis.
		argp = math.Acos(clampUnit(eVec.X / e))
		if eVec.Y < 0 {
			argp = 2*math.Pi - argp
		}
		nu = trueAnomalyFrom(eVec, e, sv, r, rv)

	case e < circularEps:
		// Circular inclined: argument of latitude from the ascending node.
		raan = raanFromNode(n, nNorm)
		nu = math.Acos(clampUnit(r3.Dot(n, sv.Position) / (nNorm * r)))
		if sv.Position.Z < 0 {
			nu = 2*math.Pi - nu
		}

	default:
		raan = raanFromNode(n, nNorm)
		argp = math.Acos(clampUnit(r3.Dot(n, eVec) / (nNorm * e)))
		if eVec.Z < 0 {
			argp = 2*math.Pi - argp
		}
		nu = trueAnomalyFrom(eVec, e, sv, r, rv)
	}

	return model.OrbitalElements{
		SemiMajorAxisKm: a / 1000,
		Eccentricity:    e,
		InclinationDeg:  rad2deg(i),
		RAANDeg:         rad2deg(wrapTwoPi(raan)),
		ArgPerigeeDeg:   rad2deg(wrapTwoPi(argp)),
		TrueAnomalyDeg:  rad2deg(wrapTwoPi(nu)),
	}, nil
}

func raanFromNode(n r3.Vec, nNorm float64) float64 {
	raan := math.Acos(clampUnit(n.X / nNorm))
	if n.Y < 0 {
		raan = 2*math.Pi - raan
	}
	return raan
}

func trueAnomalyFrom(eVec r3.Vec, e float64, sv model.StateVector, r, rv float64) float64 {
	nu := math.Acos(clampUnit(r3.Dot(eVec, sv.Position) / (e * r)))
	if rv < 0 {
		nu = 2*math.Pi - nu
	}
	return nu
}

// perifocalToECI rotates a perifocal (PQW) vector into the inertial frame.
func perifocalToECI(i, argp, raan float64, v r3.Vec) r3.Vec {
	sinArgp, cosArgp := math.Sincos(argp)
	sinI, cosI := math.Sincos(i)
	sinRAAN, cosRAAN := math.Sincos(raan)

	return r3.Vec{
		X: (cosRAAN*cosArgp-sinRAAN*sinArgp*cosI)*v.X + (-cosRAAN*sinArgp-sinRAAN*cosArgp*cosI)*v.Y,
		Y: (sinRAAN*cosArgp+cosRAAN*sinArgp*cosI)*v.X + (-sinRAAN*sinArgp+cosRAAN*cosArgp*cosI)*v.Y,
		Z: sinArgp*sinI*v.X + cosArgp*sinI*v.Y,
	}
}

func clampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

func wrapTwoPi(x float64) float64 {
	x = math.Mod(x, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}
	return x
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
func rad2deg(r float64) float64 { return r * 180 / math.Pi }
