package core

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/signalsfoundry/space-traffic-simulator/model"
)

func validScenario() model.Scenario {
	return model.Scenario{
		EventType: model.EventLaunch,
		Parameters: model.ScenarioParameters{
			AltitudeKm:     550,
			InclinationDeg: 53,
			VelocityKmS:    7.7,
			MassKg:         260,
			LaunchTime:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestValidateScenarioAccepts(t *testing.T) {
	if err := ValidateScenario(validScenario()); err != nil {
		t.Fatalf("ValidateScenario: %v", err)
	}
}

func TestValidateScenarioRejects(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*model.Scenario)
		keyword string
	}{
		{"unknown event type", func(s *model.Scenario) { s.EventType = "deorbit" }, "event type"},
		{"altitude too low", func(s *model.Scenario) { s.Parameters.AltitudeKm = 99.9 }, "altitude"},
		{"altitude too high", func(s *model.Scenario) { s.Parameters.AltitudeKm = 5001 }, "altitude"},
		{"negative inclination", func(s *model.Scenario) { s.Parameters.InclinationDeg = -1 }, "inclination"},
		{"retrograde overflow", func(s *model.Scenario) { s.Parameters.InclinationDeg = 180.5 }, "inclination"},
		{"negative velocity", func(s *model.Scenario) { s.Parameters.VelocityKmS = -0.1 }, "velocity"},
		{"velocity too high", func(s *model.Scenario) { s.Parameters.VelocityKmS = 15.1 }, "velocity"},
		{"mass too low", func(s *model.Scenario) { s.Parameters.MassKg = 0.5 }, "mass"},
		{"mass too high", func(s *model.Scenario) { s.Parameters.MassKg = 10001 }, "mass"},
		{"missing launch time", func(s *model.Scenario) { s.Parameters.LaunchTime = time.Time{} }, "launch time"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validScenario()
			tc.mutate(&s)
			err := ValidateScenario(s)
			if !errors.Is(err, ErrInvalidScenario) {
				t.Fatalf("error = %v, want ErrInvalidScenario", err)
			}
			if !strings.Contains(err.Error(), tc.keyword) {
				t.Errorf("error %q does not name the field %q", err, tc.keyword)
			}
		})
	}
}

func TestValidateScenarioBoundaryValues(t *testing.T) {
	// Range endpoints are inclusive.
	cases := []func(*model.Scenario){
		func(s *model.Scenario) { s.Parameters.AltitudeKm = MinAltitudeKm },
		func(s *model.Scenario) { s.Parameters.AltitudeKm = MaxAltitudeKm },
		func(s *model.Scenario) { s.Parameters.InclinationDeg = MaxInclinationDeg },
		func(s *model.Scenario) { s.Parameters.VelocityKmS = MaxVelocityKmS },
		func(s *model.Scenario) { s.Parameters.MassKg = MinMassKg },
		func(s *model.Scenario) { s.Parameters.MassKg = MaxMassKg },
	}
	for i, mutate := range cases {
		s := validScenario()
		mutate(&s)
		if err := ValidateScenario(s); err != nil {
			t.Errorf("case %d: boundary value rejected: %v", i, err)
		}
	}
}
