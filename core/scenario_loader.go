package core

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/signalsfoundry/space-traffic-simulator/model"
)

// internal YAML shapes – kept unexported so we're free to evolve them.
type scenarioYAML struct {
	EventType  string             `yaml:"event_type"`
	Parameters scenarioParamsYAML `yaml:"parameters"`
}

type scenarioParamsYAML struct {
	AltitudeKm     float64 `yaml:"altitude_km"`
	InclinationDeg float64 `yaml:"inclination_deg"`
	VelocityKmS    float64 `yaml:"velocity_km_s"`
	MassKg         float64 `yaml:"mass_kg"`
	LaunchTime     string  `yaml:"launch_time"` // RFC 3339
}

// LoadScenario reads a YAML scenario from r and validates it against the
// documented parameter ranges. It fails on YAML errors, a malformed launch
// time, or any out-of-range field.
func LoadScenario(r io.Reader) (model.Scenario, error) {
	var payload scenarioYAML
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return model.Scenario{}, fmt.Errorf("LoadScenario: decode failed: %w", err)
	}

	var launchTime time.Time
	if payload.Parameters.LaunchTime != "" {
		t, err := time.Parse(time.RFC3339, payload.Parameters.LaunchTime)
		if err != nil {
			return model.Scenario{}, fmt.Errorf("%w: launch time %q is not RFC 3339", ErrInvalidScenario, payload.Parameters.LaunchTime)
		}
		launchTime = t
	}

	s := model.Scenario{
		EventType: model.EventType(payload.EventType),
		Parameters: model.ScenarioParameters{
			AltitudeKm:     payload.Parameters.AltitudeKm,
			InclinationDeg: payload.Parameters.InclinationDeg,
			VelocityKmS:    payload.Parameters.VelocityKmS,
			MassKg:         payload.Parameters.MassKg,
			LaunchTime:     launchTime,
		},
	}

	if err := ValidateScenario(s); err != nil {
		return model.Scenario{}, err
	}
	return s, nil
}
