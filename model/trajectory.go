package model

// TrajectoryPoint is a propagated state at an offset from the propagation
// epoch.
type TrajectoryPoint struct {
	State   StateVector
	TimeSec float64 // seconds since the propagation epoch
}

// Trajectory is the ordered, finite output of a propagation run. It is
// produced once and never mutated afterwards.
//
// Truncated is set when the propagation was cut short, either by a numeric
// fault or by caller cancellation; Points then holds everything computed up
// to that step.
type Trajectory struct {
	Points    []TrajectoryPoint
	Truncated bool
}
