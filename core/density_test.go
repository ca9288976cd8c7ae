package core

import (
	"testing"
	"time"

	"github.com/signalsfoundry/space-traffic-simulator/model"
)

func TestClassifyRegimeBoundaries(t *testing.T) {
	cases := []struct {
		altitudeKm float64
		want       model.Regime
	}{
		{100, model.RegimeLEO},
		{1999.999, model.RegimeLEO},
		{2000, model.RegimeMEO},
		{20200, model.RegimeMEO},
		{35785.999, model.RegimeMEO},
		{35786, model.RegimeGEO},
		{40000, model.RegimeGEO},
	}
	for _, tc := range cases {
		if got := ClassifyRegime(tc.altitudeKm); got != tc.want {
			t.Errorf("ClassifyRegime(%v) = %v, want %v", tc.altitudeKm, got, tc.want)
		}
	}
}

func TestEstimateDensityBaseOrdering(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	leo := EstimateDensity(550, 53, at)
	meo := EstimateDensity(20200, 53, at)
	geo := EstimateDensity(35786, 0, at)

	if !(leo.Base > meo.Base && meo.Base > geo.Base) {
		t.Errorf("base densities LEO %v, MEO %v, GEO %v: want strictly decreasing", leo.Base, meo.Base, geo.Base)
	}
	if leo.Regime != model.RegimeLEO || meo.Regime != model.RegimeMEO || geo.Regime != model.RegimeGEO {
		t.Errorf("regimes = %v, %v, %v", leo.Regime, meo.Regime, geo.Regime)
	}
}

func TestEstimateDensityDeterministic(t *testing.T) {
	at := time.Date(2026, 3, 1, 6, 30, 0, 0, time.UTC)
	a := EstimateDensity(550, 53, at)
	b := EstimateDensity(550, 53, at)
	if a != b {
		t.Errorf("two identical calls disagree: %+v vs %+v", a, b)
	}
}

func TestEstimateDensityTimeDependence(t *testing.T) {
	// The solar factor peaks mid-morning UTC and is neutral at midnight.
	midnight := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	morning := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)

	a := EstimateDensity(550, 53, midnight)
	b := EstimateDensity(550, 53, morning)
	if a.Perturbed == b.Perturbed {
		t.Errorf("perturbed density identical at midnight and 06:00 (%v); solar factor not applied", a.Perturbed)
	}
	if a.Base != b.Base {
		t.Errorf("base density changed with time: %v vs %v", a.Base, b.Base)
	}
}

func TestEstimateDensityBounded(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for _, alt := range []float64{100, 300, 550, 800, 1500, 2000, 20200, 35786, 40000} {
		for _, inc := range []float64{0, 28.5, 53, 90, 98, 180} {
			est := EstimateDensity(alt, inc, at)
			if est.Perturbed < 0 || est.Perturbed > 1 {
				t.Errorf("EstimateDensity(%v, %v) perturbed = %v, outside [0, 1]", alt, inc, est.Perturbed)
			}
		}
	}
}

func TestEstimateDensityInclinationCrowding(t *testing.T) {
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	equatorial := EstimateDensity(550, 0, at)
	polar := EstimateDensity(550, 90, at)
	if polar.Perturbed <= equatorial.Perturbed {
		t.Errorf("polar density %v not above equatorial %v at the same altitude", polar.Perturbed, equatorial.Perturbed)
	}
}
