package model

import "time"

// EventType identifies what kind of traffic event a scenario describes.
type EventType string

const (
	EventLaunch     EventType = "launch"
	EventAdjustment EventType = "adjustment"
	EventBreakup    EventType = "breakup"
)

// Valid reports whether the event type is one of the supported kinds.
func (e EventType) Valid() bool {
	switch e {
	case EventLaunch, EventAdjustment, EventBreakup:
		return true
	}
	return false
}

// ScenarioParameters are the user-supplied physical parameters of an event.
// Ranges are enforced by the validation layer before any computation runs.
type ScenarioParameters struct {
	AltitudeKm     float64   // [100, 5000]
	InclinationDeg float64   // [0, 180]
	VelocityKmS    float64   // [0, 15]
	MassKg         float64   // [1, 10000]
	LaunchTime     time.Time // must be set
}

// Scenario is the input to a single evaluation. It is transient: nothing
// about it survives beyond the evaluation call.
type Scenario struct {
	EventType  EventType
	Parameters ScenarioParameters
}
