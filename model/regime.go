package model

// Regime is an altitude-banded orbital regime.
type Regime int

const (
	RegimeLEO Regime = iota
	RegimeMEO
	RegimeGEO
)

// String implements the stringer interface.
func (r Regime) String() string {
	switch r {
	case RegimeLEO:
		return "LEO"
	case RegimeMEO:
		return "MEO"
	case RegimeGEO:
		return "GEO"
	}
	return "unknown"
}

// OrbitalRegimeState is a snapshot of the traffic environment: how many
// objects occupy each regime and how congested/risky the environment is
// overall. AverageCongestion and CollisionProbability are normalized to
// [0, 1].
type OrbitalRegimeState struct {
	ObjectsInLEO         int
	ObjectsInMEO         int
	ObjectsInGEO         int
	AverageCongestion    float64
	CollisionProbability float64
}

// TotalObjects returns the object count summed across regimes.
func (s OrbitalRegimeState) TotalObjects() int {
	return s.ObjectsInLEO + s.ObjectsInMEO + s.ObjectsInGEO
}

// RegimeDelta is the derived difference between a before/after
// OrbitalRegimeState pair.
type RegimeDelta struct {
	NewObjects       int
	CongestionChange float64
	RiskChange       float64
}
