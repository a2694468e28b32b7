package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/markup/pkg/markup"
	"github.com/vango-dev/markup/pkg/render"
)

// Config configures the collector.
type Config struct {
	// Namespace is the metrics namespace (default: "markup").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render sizes in bytes.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the render size histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "markup",
		Buckets:   prometheus.ExponentialBuckets(64, 4, 8), // 64B to 1MB
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector records arena and renderer activity.
type Collector struct {
	mutations   *prometheus.CounterVec
	identifiers prometheus.Gauge
	renderBytes prometheus.Histogram
	documents   *prometheus.CounterVec
}

var (
	_ markup.Observer = (*Collector)(nil)
	_ render.Observer = (*Collector)(nil)
)

// NewCollector registers the markup metrics and returns their collector.
// It panics if the metrics are already registered with the registry.
func NewCollector(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mutations_total",
			Help:        "Total number of tree operations by result",
			ConstLabels: config.ConstLabels,
		}, []string{"op", "result"}),

		identifiers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "identifiers_registered",
			Help:        "Number of identifiers registered across all trees of the arena",
			ConstLabels: config.ConstLabels,
		}),

		renderBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_bytes",
			Help:        "Size of rendered text in bytes",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		documents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "documents_written_total",
			Help:        "Total number of document writes by sink and result",
			ConstLabels: config.ConstLabels,
		}, []string{"sink", "result"}),
	}
}

// Observe implements markup.Observer.
func (c *Collector) Observe(e markup.Event) {
	c.mutations.WithLabelValues(string(e.Op), Result(e.Err)).Inc()
	c.identifiers.Set(float64(e.Identifiers))
}

// ObserveRender implements render.Observer.
func (c *Collector) ObserveRender(bytes int) {
	c.renderBytes.Observe(float64(bytes))
}

// ObserveDocument implements render.Observer.
func (c *Collector) ObserveDocument(sink string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.documents.WithLabelValues(sink, result).Inc()
}

// Result maps an operation error to its metric label.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, markup.ErrInvalidTag):
		return "invalid_tag"
	case errors.Is(err, markup.ErrDuplicateIdentifier):
		return "duplicate_identifier"
	case errors.Is(err, markup.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, markup.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
