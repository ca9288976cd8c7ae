// Package feeds models the boundary to external enrichment data sources
// (space weather, near-Earth objects). The core never fetches anything:
// callers fetch, wrap whatever came back in a tagged sample, and pass the
// derived scalar multipliers into an evaluation.
//
// An unavailable feed and an empty feed are treated identically: every
// multiplier degrades to the identity, keeping the simulation usable when
// enrichment data is missing.
package feeds

import "time"

// StormRecord is one space-weather observation. Only the planetary K-index
// matters to the simulation; everything else the upstream API returns is
// dropped at this boundary.
type StormRecord struct {
	KpIndex    float64
	ObservedAt time.Time
}

// SpaceWeather is a tagged sample of space-weather data: either available
// with records, or not. There is no error variant; a failed fetch maps to
// the unavailable sample.
type SpaceWeather struct {
	Available bool
	Records   []StormRecord
}

// NoSpaceWeather is the unavailable space-weather sample.
func NoSpaceWeather() SpaceWeather { return SpaceWeather{} }

// SpaceWeatherFrom wraps fetched records. An empty slice yields the
// unavailable sample, by design.
func SpaceWeatherFrom(records []StormRecord) SpaceWeather {
	if len(records) == 0 {
		return SpaceWeather{}
	}
	return SpaceWeather{Available: true, Records: records}
}

// RiskMultiplier derives a risk scaling factor >= 1 from the strongest
// observed geomagnetic activity. Unavailable data yields exactly 1.
func (w SpaceWeather) RiskMultiplier() float64 {
	if !w.Available {
		return 1.0
	}
	maxKp := 0.0
	for _, r := range w.Records {
		if r.KpIndex > maxKp {
			maxKp = r.KpIndex
		}
	}
	switch {
	case maxKp >= 7:
		return 1.5
	case maxKp >= 5:
		return 1.2
	default:
		return 1.0
	}
}

// NearEarthObjects is a tagged sample from a near-Earth-object feed.
type NearEarthObjects struct {
	Available bool
	Count     int
}

// NoNearEarthObjects is the unavailable NEO sample.
func NoNearEarthObjects() NearEarthObjects { return NearEarthObjects{} }

// NearEarthObjectsFrom wraps a fetched object count. A non-positive count
// yields the unavailable sample.
func NearEarthObjectsFrom(count int) NearEarthObjects {
	if count <= 0 {
		return NearEarthObjects{}
	}
	return NearEarthObjects{Available: true, Count: count}
}

// Influence derives the debris-distribution multiplier >= 1 used by breakup
// scenarios. Unavailable data yields exactly 1; a crowded NEO environment
// raises it, capped at 1.5.
func (n NearEarthObjects) Influence() float64 {
	if !n.Available {
		return 1.0
	}
	infl := 1.0 + float64(n.Count)/200.0
	if infl > 1.5 {
		infl = 1.5
	}
	return infl
}
