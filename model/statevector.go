package model

import "gonum.org/v1/gonum/spatial/r3"

// StateVector is an Earth-centered inertial position/velocity pair.
// Position is in metres, velocity in metres per second.
type StateVector struct {
	Position r3.Vec
	Velocity r3.Vec
}

// Speed returns the velocity magnitude in m/s.
func (s StateVector) Speed() float64 {
	return r3.Norm(s.Velocity)
}

// Radius returns the geocentric distance in metres.
func (s StateVector) Radius() float64 {
	return r3.Norm(s.Position)
}
