package model

import "testing"

func TestRegimeString(t *testing.T) {
	cases := []struct {
		regime Regime
		want   string
	}{
		{RegimeLEO, "LEO"},
		{RegimeMEO, "MEO"},
		{RegimeGEO, "GEO"},
	}
	for _, tc := range cases {
		if got := tc.regime.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestTotalObjects(t *testing.T) {
	s := OrbitalRegimeState{ObjectsInLEO: 3240, ObjectsInMEO: 520, ObjectsInGEO: 1980}
	if got := s.TotalObjects(); got != 5740 {
		t.Errorf("TotalObjects() = %d, want 5740", got)
	}
}

func TestEventTypeValid(t *testing.T) {
	for _, et := range []EventType{EventLaunch, EventAdjustment, EventBreakup} {
		if !et.Valid() {
			t.Errorf("EventType(%q).Valid() = false, want true", et)
		}
	}
	if EventType("deorbit").Valid() {
		t.Error(`EventType("deorbit").Valid() = true, want false`)
	}
	if EventType("").Valid() {
		t.Error(`empty EventType valid, want invalid`)
	}
}
