package render

import (
	stderrors "errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/hyperoop/internal/errors"
)

// MetricsConfig configures render metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "hyperoop").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for pass duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures render metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "hyperoop",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics counts render work. A nil *Metrics records nothing.
type Metrics struct {
	renders       prometheus.Counter
	skipped       prometheus.Counter
	created       prometheus.Counter
	removed       prometheus.Counter
	callbacks     prometheus.Counter
	errors        *prometheus.CounterVec
	renderSeconds prometheus.Histogram
}

// NewMetrics registers render metrics. Registering twice with the same
// registry panics, as promauto does.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}

	return &Metrics{
		renders:   counter("renders_total", "Total number of render passes"),
		skipped:   counter("render_skipped_total", "Render passes whose patch was left to a pending pass"),
		created:   counter("nodes_created_total", "DOM nodes created by the patcher"),
		removed:   counter("nodes_removed_total", "DOM nodes removed by the patcher"),
		callbacks: counter("lifecycle_callbacks_total", "Lifecycle callbacks run after patching"),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_errors_total",
			Help:        "Render passes that failed, by error code",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),
		renderSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Render pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
	}
}

func (m *Metrics) observeRender(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.renders.Inc()
	m.renderSeconds.Observe(d.Seconds())
	if err != nil {
		code := "unknown"
		var e *errors.Error
		if stderrors.As(err, &e) && e.Code != "" {
			code = e.Code
		}
		m.errors.WithLabelValues(code).Inc()
	}
}

func (m *Metrics) skip() {
	if m != nil {
		m.skipped.Inc()
	}
}

func (m *Metrics) create() {
	if m != nil {
		m.created.Inc()
	}
}

func (m *Metrics) remove() {
	if m != nil {
		m.removed.Inc()
	}
}

func (m *Metrics) callback() {
	if m != nil {
		m.callbacks.Inc()
	}
}
