package producer

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for the orchestration producer.
// All metrics use the maestro_orchestration_ namespace.
type Metrics struct {
	RunsTotal     *prometheus.CounterVec
	RunDuration   prometheus.Histogram
	EventsEmitted *prometheus.CounterVec
	TokensTotal   prometheus.Counter
	ActiveRuns    prometheus.Gauge
}

// NewMetrics creates and registers producer metrics on the given registry.
// Returns nil if reg is nil.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		return nil
	}

	m := &Metrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "maestro",
			Subsystem: "orchestration",
			Name:      "runs_total",
			Help:      "Total orchestration runs by final status.",
		}, []string{"status"}),

		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "maestro",
			Subsystem: "orchestration",
			Name:      "run_duration_seconds",
			Help:      "Orchestration run duration in seconds.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}),

		EventsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "maestro",
			Subsystem: "orchestration",
			Name:      "events_emitted_total",
			Help:      "Total protocol events emitted by type.",
		}, []string{"type"}),

		TokensTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "maestro",
			Subsystem: "orchestration",
			Name:      "tokens_total",
			Help:      "Total estimated tokens across completed runs.",
		}),

		ActiveRuns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "maestro",
			Subsystem: "orchestration",
			Name:      "active_runs",
			Help:      "Number of orchestration runs currently streaming.",
		}),
	}

	reg.MustRegister(
		m.RunsTotal,
		m.RunDuration,
		m.EventsEmitted,
		m.TokensTotal,
		m.ActiveRuns,
	)

	return m
}
