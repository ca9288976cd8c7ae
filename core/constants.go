package core

// Physical constants used by the simulation core. SI units unless the name
// says otherwise.
const (
	// MuEarth is the Earth gravitational parameter (m³/s²).
	MuEarth = 3.986004418e14

	// EarthRadiusM is the mean Earth radius used for altitude computation.
	EarthRadiusM = 6371000.0

	// EarthEquatorialRadiusM enters the J2 oblateness term.
	EarthEquatorialRadiusM = 6378137.0

	// J2 is the Earth oblateness coefficient.
	J2 = 1.08262668e-3

	// SeaLevelDensity is the atmosphere density at zero altitude (kg/m³).
	SeaLevelDensity = 1.225

	// ScaleHeightM controls the exponential falloff of the atmosphere model.
	ScaleHeightM = 8500.0

	// DefaultDragCeilingM is the altitude above which drag is treated as
	// negligible. A tunable threshold, not a physical law.
	DefaultDragCeilingM = 1000e3
)

// Regime boundaries (km of altitude). Half-open intervals: an object exactly
// at a boundary belongs to the higher regime.
const (
	LEOMaxAltitudeKm = 2000.0
	GEOAltitudeKm    = 35786.0
)

// NominalLEOVelocityKmS anchors the velocity term of the risk score.
const NominalLEOVelocityKmS = 7.8
