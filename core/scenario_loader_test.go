package core

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/signalsfoundry/space-traffic-simulator/model"
)

const goodScenarioYAML = `
event_type: launch
parameters:
  altitude_km: 550
  inclination_deg: 53
  velocity_km_s: 7.7
  mass_kg: 260
  launch_time: "2026-03-01T12:00:00Z"
`

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario(strings.NewReader(goodScenarioYAML))
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if s.EventType != model.EventLaunch {
		t.Errorf("event type = %q, want launch", s.EventType)
	}
	want := model.ScenarioParameters{
		AltitudeKm:     550,
		InclinationDeg: 53,
		VelocityKmS:    7.7,
		MassKg:         260,
		LaunchTime:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if !s.Parameters.LaunchTime.Equal(want.LaunchTime) {
		t.Errorf("launch time = %v, want %v", s.Parameters.LaunchTime, want.LaunchTime)
	}
	s.Parameters.LaunchTime = want.LaunchTime
	if s.Parameters != want {
		t.Errorf("parameters = %+v, want %+v", s.Parameters, want)
	}
}

func TestLoadScenarioRejects(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"malformed yaml", "event_type: [launch"},
		{"bad launch time", strings.Replace(goodScenarioYAML, "2026-03-01T12:00:00Z", "march first", 1)},
		{"out of range altitude", strings.Replace(goodScenarioYAML, "altitude_km: 550", "altitude_km: 50", 1)},
		{"unknown event", strings.Replace(goodScenarioYAML, "event_type: launch", "event_type: deorbit", 1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadScenario(strings.NewReader(tc.yaml)); err == nil {
				t.Fatal("LoadScenario accepted a bad document")
			}
		})
	}
}

func TestLoadScenarioRangeErrorIsTyped(t *testing.T) {
	bad := strings.Replace(goodScenarioYAML, "mass_kg: 260", "mass_kg: 0", 1)
	_, err := LoadScenario(strings.NewReader(bad))
	if !errors.Is(err, ErrInvalidScenario) {
		t.Fatalf("error = %v, want ErrInvalidScenario", err)
	}
}
