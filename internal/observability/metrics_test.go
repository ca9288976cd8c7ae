package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewSimCollectorReRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	a, err := NewSimCollector(reg)
	if err != nil {
		t.Fatalf("first NewSimCollector: %v", err)
	}
	b, err := NewSimCollector(reg)
	if err != nil {
		t.Fatalf("second NewSimCollector: %v", err)
	}

	// Both collectors must drive the same underlying series.
	a.RecordEvaluation("launch", "ok", 0.01)
	b.RecordEvaluation("launch", "ok", 0.02)
	got := testutil.ToFloat64(a.Evaluations.WithLabelValues("launch", "ok"))
	if got != 2 {
		t.Errorf("sim_evaluations_total = %v, want 2", got)
	}
}

func TestRecordEvaluation(t *testing.T) {
	c, err := NewSimCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewSimCollector: %v", err)
	}

	c.RecordEvaluation("breakup", "fault", 0.5)
	c.RecordEvaluation("breakup", "ok", 0.1)
	c.RecordEvaluation("breakup", "ok", 0.1)

	if got := testutil.ToFloat64(c.Evaluations.WithLabelValues("breakup", "ok")); got != 2 {
		t.Errorf("ok evaluations = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.Evaluations.WithLabelValues("breakup", "fault")); got != 1 {
		t.Errorf("fault evaluations = %v, want 1", got)
	}
}

func TestSetRegimeCounts(t *testing.T) {
	c, err := NewSimCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewSimCollector: %v", err)
	}

	c.SetRegimeCounts(3241, 520, 1980, 0.4242)

	cases := []struct {
		regime string
		want   float64
	}{
		{"leo", 3241},
		{"meo", 520},
		{"geo", 1980},
	}
	for _, tc := range cases {
		if got := testutil.ToFloat64(c.RegimeObjects.WithLabelValues(tc.regime)); got != tc.want {
			t.Errorf("sim_regime_objects{regime=%q} = %v, want %v", tc.regime, got, tc.want)
		}
	}
	if got := testutil.ToFloat64(c.AverageCongestion); got != 0.4242 {
		t.Errorf("sim_average_congestion = %v, want 0.4242", got)
	}
}

func TestDaemonGauges(t *testing.T) {
	c, err := NewSimCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewSimCollector: %v", err)
	}

	c.SetCatalogSize(12)
	c.SetConjunctionCount(3)

	if got := testutil.ToFloat64(c.CatalogObjects); got != 12 {
		t.Errorf("sim_catalog_objects = %v, want 12", got)
	}
	if got := testutil.ToFloat64(c.Conjunctions); got != 3 {
		t.Errorf("sim_conjunctions = %v, want 3", got)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *SimCollector
	c.RecordEvaluation("launch", "ok", 0.01)
	c.SetRegimeCounts(1, 2, 3, 0.5)
	c.SetCatalogSize(1)
	c.SetConjunctionCount(1)
}
