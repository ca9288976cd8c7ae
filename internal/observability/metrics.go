package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SimCollector bundles Prometheus metrics for the simulation core and the
// daemon run loop, and provides a ready-to-serve /metrics handler.
type SimCollector struct {
	gatherer prometheus.Gatherer

	Evaluations        *prometheus.CounterVec
	EvaluationDuration *prometheus.HistogramVec

	RegimeObjects     *prometheus.GaugeVec
	AverageCongestion prometheus.Gauge
	CatalogObjects    prometheus.Gauge
	Conjunctions      prometheus.Gauge
}

// NewSimCollector registers simulation Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry when
// nil. Re-registration returns the existing collectors instead of failing,
// so tests can construct collectors repeatedly.
func NewSimCollector(reg prometheus.Registerer) (*SimCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	evaluations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sim_evaluations_total",
		Help: "Total number of scenario evaluations, labeled by event type and outcome.",
	}, []string{"event_type", "outcome"})
	evaluations, err := registerCounterVec(reg, evaluations, "sim_evaluations_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sim_evaluation_duration_seconds",
		Help:    "Scenario evaluation latency in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"event_type"})
	durations, err = registerHistogramVec(reg, durations, "sim_evaluation_duration_seconds")
	if err != nil {
		return nil, err
	}

	regimeObjects := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sim_regime_objects",
		Help: "Current number of tracked objects per orbital regime.",
	}, []string{"regime"})
	regimeObjects, err = registerGaugeVec(reg, regimeObjects, "sim_regime_objects")
	if err != nil {
		return nil, err
	}

	congestion, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sim_average_congestion",
		Help: "Normalized average congestion of the last evaluated snapshot.",
	}), "sim_average_congestion")
	if err != nil {
		return nil, err
	}
	catalogObjects, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sim_catalog_objects",
		Help: "Current number of objects in the tracked-object catalog.",
	}), "sim_catalog_objects")
	if err != nil {
		return nil, err
	}
	conjunctions, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sim_conjunctions",
		Help: "Conjunction pairs above the screening threshold at the last refresh.",
	}), "sim_conjunctions")
	if err != nil {
		return nil, err
	}

	return &SimCollector{
		gatherer:           gatherer,
		Evaluations:        evaluations,
		EvaluationDuration: durations,
		RegimeObjects:      regimeObjects,
		AverageCongestion:  congestion,
		CatalogObjects:     catalogObjects,
		Conjunctions:       conjunctions,
	}, nil
}

// RecordEvaluation satisfies the core EvaluationRecorder interface.
func (c *SimCollector) RecordEvaluation(eventType, outcome string, seconds float64) {
	if c == nil {
		return
	}
	if c.Evaluations != nil {
		c.Evaluations.WithLabelValues(eventType, outcome).Inc()
	}
	if c.EvaluationDuration != nil {
		c.EvaluationDuration.WithLabelValues(eventType).Observe(seconds)
	}
}

// SetRegimeCounts satisfies the core EvaluationRecorder interface so the
// evaluator can drive gauge values directly.
func (c *SimCollector) SetRegimeCounts(leo, meo, geo int, avgCongestion float64) {
	if c == nil {
		return
	}
	if c.RegimeObjects != nil {
		c.RegimeObjects.WithLabelValues("leo").Set(float64(leo))
		c.RegimeObjects.WithLabelValues("meo").Set(float64(meo))
		c.RegimeObjects.WithLabelValues("geo").Set(float64(geo))
	}
	if c.AverageCongestion != nil {
		c.AverageCongestion.Set(avgCongestion)
	}
}

// SetCatalogSize records the tracked-object count.
func (c *SimCollector) SetCatalogSize(n int) {
	if c == nil || c.CatalogObjects == nil {
		return
	}
	c.CatalogObjects.Set(float64(n))
}

// SetConjunctionCount records the screened conjunction pair count.
func (c *SimCollector) SetConjunctionCount(n int) {
	if c == nil || c.Conjunctions == nil {
		return
	}
	c.Conjunctions.Set(float64(n))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *SimCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
