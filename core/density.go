package core

import (
	"math"
	"time"

	"github.com/signalsfoundry/space-traffic-simulator/model"
)

// Per-regime base densities, normalized to [0, 1]. LEO carries by far the
// largest share of the catalog, GEO the smallest.
const (
	baseDensityLEO = 0.72
	baseDensityMEO = 0.38
	baseDensityGEO = 0.21
)

// lunarPeriodDays is the synodic month driving the lunar-gravity factor.
const lunarPeriodDays = 29.53

// DensityEstimate is the output of the congestion estimator: a per-regime
// base figure and the same figure after time-varying perturbation factors.
type DensityEstimate struct {
	Base      float64
	Perturbed float64
	Regime    model.Regime
}

// ClassifyRegime maps an altitude to its orbital regime. Boundaries are
// half-open: exactly 2000 km is MEO, exactly 35786 km is GEO.
func ClassifyRegime(altitudeKm float64) model.Regime {
	switch {
	case altitudeKm < LEOMaxAltitudeKm:
		return model.RegimeLEO
	case altitudeKm < GEOAltitudeKm:
		return model.RegimeMEO
	default:
		return model.RegimeGEO
	}
}

// EstimateDensity derives a normalized orbital-density figure for the given
// altitude and inclination. The reference time is an explicit input: the
// daily solar-pressure and monthly lunar-gravity factors are deterministic
// functions of it, so two calls with the same arguments always agree.
func EstimateDensity(altitudeKm, inclinationDeg float64, at time.Time) DensityEstimate {
	regime := ClassifyRegime(altitudeKm)

	var base float64
	switch regime {
	case model.RegimeLEO:
		base = baseDensityLEO
	case model.RegimeMEO:
		base = baseDensityMEO
	default:
		base = baseDensityGEO
	}

	perturbed := base *
		inclinationFactor(inclinationDeg) *
		altitudeFactor(altitudeKm, regime) *
		j2Factor(inclinationDeg) *
		dragFactor(altitudeKm, regime) *
		solarFactor(at) *
		lunarFactor(at)

	return DensityEstimate{
		Base:      base,
		Perturbed: clamp01(perturbed),
		Regime:    regime,
	}
}

// inclinationFactor reflects the crowding of near-polar and mid-inclination
// shells relative to equatorial ones.
func inclinationFactor(inclinationDeg float64) float64 {
	return 0.8 + 0.4*math.Abs(math.Sin(deg2rad(inclinationDeg)))
}

// altitudeFactor peaks around the most populated LEO shells (~800 km) and
// flattens out for the higher regimes.
func altitudeFactor(altitudeKm float64, regime model.Regime) float64 {
	if regime != model.RegimeLEO {
		return 1.0
	}
	f := 1.2 - math.Abs(altitudeKm-800)/2000
	if f < 0.6 {
		f = 0.6
	}
	return f
}

// j2Factor models the J2-driven plane-precession crowding, strongest for
// inclined orbits.
func j2Factor(inclinationDeg float64) float64 {
	s := math.Sin(deg2rad(inclinationDeg))
	return 1 + 0.1*s*s
}

// dragFactor thins out the lowest LEO shells, where drag removes debris
// quickly. Outside LEO it is identity.
func dragFactor(altitudeKm float64, regime model.Regime) float64 {
	if regime != model.RegimeLEO {
		return 1.0
	}
	f := 1 - 0.2*math.Exp(-(altitudeKm-100)/200)
	if f < 0.8 {
		f = 0.8
	}
	return f
}

// solarFactor is a small daily-periodic modulation from solar pressure.
func solarFactor(at time.Time) float64 {
	secOfDay := float64(at.UTC().Hour()*3600 + at.UTC().Minute()*60 + at.UTC().Second())
	return 1 + 0.05*math.Sin(2*math.Pi*secOfDay/86400)
}

// lunarFactor is a small monthly-periodic modulation from lunar gravity.
func lunarFactor(at time.Time) float64 {
	day := float64(at.UTC().YearDay()) + float64(at.UTC().Hour())/24
	return 1 + 0.02*math.Sin(2*math.Pi*day/lunarPeriodDays)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
