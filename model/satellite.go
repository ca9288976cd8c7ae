package model

// SatelliteParameters describes the physical properties of a simulated
// object that matter for drag and debris modelling.
type SatelliteParameters struct {
	MassKg             float64 // > 0
	DragCoefficient    float64 // dimensionless, > 0
	CrossSectionalArea float64 // m², > 0
}
