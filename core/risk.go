package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/signalsfoundry/space-traffic-simulator/model"
)

// MaxRiskPercent caps every reported risk score. Risk is never reported as
// certain; the gap leaves room for "the event did not occur".
const MaxRiskPercent = 95.0

// CombinedCollisionRadiusM is the hard-body radius sum used by the pairwise
// estimator. A simplification: a real implementation would integrate a
// Mahalanobis-weighted probability over the combined covariance ellipsoid.
const CombinedCollisionRadiusM = 10.0

// Individual caps for the weighted terms of the scenario risk score.
const (
	congestionRiskCap  = 40.0
	inclinationRiskCap = 10.0
	velocityRiskCap    = 12.0
	massRiskCap        = 10.0
)

// ScenarioRisk combines post-event congestion, altitude band, inclination,
// velocity, and mass into a bounded risk percentage. Each term is capped
// individually and the sum is hard-capped at MaxRiskPercent.
func ScenarioRisk(before, after model.OrbitalRegimeState, p model.ScenarioParameters) float64 {
	risk := math.Min(after.AverageCongestion*congestionRiskCap, congestionRiskCap)
	risk += altitudeBandRisk(p.AltitudeKm)
	risk += math.Min(inclinationRiskCap*math.Abs(math.Sin(deg2rad(p.InclinationDeg))), inclinationRiskCap)
	risk += math.Min(velocityRiskCap*(p.VelocityKmS/NominalLEOVelocityKmS), velocityRiskCap)
	risk += math.Min(massRiskCap*(p.MassKg/1000), massRiskCap)

	if risk < 0 {
		return 0
	}
	return math.Min(risk, MaxRiskPercent)
}

// altitudeBandRisk is a fixed per-band constant: very-low orbits are the
// riskiest (drag, dense traffic, reentry), GEO the safest.
func altitudeBandRisk(altitudeKm float64) float64 {
	switch {
	case altitudeKm < 300:
		return 25
	case altitudeKm < 600:
		return 18
	case altitudeKm < LEOMaxAltitudeKm:
		return 12
	case altitudeKm < GEOAltitudeKm:
		return 6
	default:
		return 3
	}
}

// PairwiseCollisionProbability estimates the probability of collision
// between two tracked objects from their positions alone. Inside the
// combined collision radius the probability is exactly 1; it decays
// exponentially out to ten radii and is exactly 0 beyond that.
func PairwiseCollisionProbability(a, b model.StateVector) float64 {
	d := r3.Norm(r3.Sub(a.Position, b.Position))
	switch {
	case d <= CombinedCollisionRadiusM:
		return 1
	case d >= 10*CombinedCollisionRadiusM:
		return 0
	default:
		return math.Exp(-(d - CombinedCollisionRadiusM) / (2 * CombinedCollisionRadiusM))
	}
}
