package toast

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "notedeck").
	Namespace string

	// Subsystem is the metrics subsystem (default: "toast").
	Subsystem string

	// Buckets are the histogram buckets for toast lifetimes, in seconds.
	Buckets []float64

	// Registry is the registerer to use (default: prometheus.DefaultRegisterer).
	Registry prometheus.Registerer
}

// MetricsOption configures NewMetrics.
type MetricsOption func(*MetricsConfig)

func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "notedeck",
		Subsystem: "toast",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 300},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics observes engine activity. A nil *Metrics is valid and records nothing.
type Metrics struct {
	publishedTotal *prometheus.CounterVec
	endedTotal     *prometheus.CounterVec
	lifetime       *prometheus.HistogramVec
	active         prometheus.Gauge
	actionFailures prometheus.Counter
}

// NewMetrics registers the collectors. Registering twice on the same
// registry panics, as promauto does.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(cfg.Registry)

	return &Metrics{
		publishedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "published_total",
			Help:      "Total number of toasts published",
		}, []string{"variant"}),

		endedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "ended_total",
			Help:      "Total number of toasts removed, by reason",
		}, []string{"reason"}),

		lifetime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "lifetime_seconds",
			Help:      "Time from publish to removal in seconds",
			Buckets:   cfg.Buckets,
		}, []string{"reason"}),

		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "active",
			Help:      "Number of live toasts",
		}),

		actionFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "action_failures_total",
			Help:      "Total number of toast action callbacks that failed",
		}),
	}
}

func (m *Metrics) published(v Variant) {
	if m == nil {
		return
	}
	m.publishedTotal.WithLabelValues(string(v)).Inc()
}

func (m *Metrics) ended(reason EventKind, t Toast, now time.Time) {
	if m == nil {
		return
	}
	m.endedTotal.WithLabelValues(string(reason)).Inc()
	m.lifetime.WithLabelValues(string(reason)).Observe(now.Sub(t.CreatedAt).Seconds())
}

func (m *Metrics) setActive(n int) {
	if m == nil {
		return
	}
	m.active.Set(float64(n))
}

func (m *Metrics) actionFailed() {
	if m == nil {
		return
	}
	m.actionFailures.Inc()
}
