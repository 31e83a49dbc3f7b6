package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "testnames"

// PrometheusMetrics implements NamingMetrics with Prometheus
// collectors.
type PrometheusMetrics struct {
	names       *prometheus.CounterVec
	repeats     *prometheus.CounterVec
	invocations *prometheus.CounterVec
	durations   *prometheus.HistogramVec
	active      prometheus.Gauge
}

// NewPrometheusMetrics creates the collectors and registers them on
// reg. A nil reg leaves them unregistered.
func NewPrometheusMetrics(
	reg prometheus.Registerer,
) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		names: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "names_total",
				Help:      "Test names produced, by suite and kind.",
			},
			[]string{"suite", "kind"},
		),
		repeats: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "repeat_indices_total",
				Help:      "Repeat indices handed out, by suite.",
			},
			[]string{"suite"},
		),
		invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "invocations_total",
				Help:      "Finished invocations, by suite and status.",
			},
			[]string{"suite", "status"},
		),
		durations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "invocation_duration_seconds",
				Help:      "Invocation wall-clock duration.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"suite"},
		),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_invocations",
			Help:      "Invocations currently running.",
		}),
	}

	if reg == nil {
		return m, nil
	}
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PrometheusMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.names, m.repeats, m.invocations, m.durations, m.active,
	}
}

func (m *PrometheusMetrics) RecordName(suite, kind string) {
	m.names.WithLabelValues(suite, kind).Inc()
}

func (m *PrometheusMetrics) RecordRepeat(suite string) {
	m.repeats.WithLabelValues(suite).Inc()
}

func (m *PrometheusMetrics) RecordInvocation(
	suite, status string, duration time.Duration,
) {
	m.invocations.WithLabelValues(suite, status).Inc()
	m.durations.WithLabelValues(suite).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) InvocationStarted() {
	m.active.Inc()
}

func (m *PrometheusMetrics) InvocationFinished() {
	m.active.Dec()
}
