package model

// OrbitalElements is the classical Keplerian description of a two-body orbit
// at an instant. Angles are in degrees, the semi-major axis in kilometres.
//
// A value with Eccentricity >= 1 or a non-positive semi-major axis does not
// describe a closed orbit and is rejected by the conversion layer.
type OrbitalElements struct {
	SemiMajorAxisKm float64 // > 0
	Eccentricity    float64 // [0, 1)
	InclinationDeg  float64 // [0, 180]
	RAANDeg         float64 // [0, 360)
	ArgPerigeeDeg   float64 // [0, 360)
	TrueAnomalyDeg  float64 // [0, 360)
}
