// Package metrics exposes Prometheus instrumentation for the evidence pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for file processing.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Processing outcomes by category and code ("ok" on success)
	Outcomes *prometheus.CounterVec

	// End-to-end processing latency by category
	Duration *prometheus.HistogramVec

	// Bytes removed by image normalization
	BytesSaved prometheus.Counter

	// Output size divided by input size for normalized images
	CompressionRatio prometheus.Histogram

	// Fast path decisions: "hit" or "miss"
	FastPath *prometheus.CounterVec
}

// New registers all pipeline metrics with reg.
// Pass prometheus.DefaultRegisterer for the process-wide registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "evidencekit_process_outcomes_total",
			Help: "Total processing outcomes by category and result code",
		}, []string{"category", "code"}),

		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "evidencekit_process_duration_seconds",
			Help:    "Duration of file processing including normalization",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"category"}),

		BytesSaved: factory.NewCounter(prometheus.CounterOpts{
			Name: "evidencekit_normalize_bytes_saved_total",
			Help: "Bytes removed by image normalization",
		}),

		CompressionRatio: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "evidencekit_normalize_compression_ratio",
			Help:    "Normalized size divided by original size",
			Buckets: []float64{0.05, 0.1, 0.2, 0.3, 0.5, 0.75, 1, 1.5},
		}),

		FastPath: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "evidencekit_normalize_fast_path_total",
			Help: "Images returned unchanged (hit) or re-encoded (miss)",
		}, []string{"result"}),
	}
}

// IncrementOutcome records a processing outcome.
func (m *Metrics) IncrementOutcome(category, code string) {
	if m != nil {
		m.Outcomes.WithLabelValues(category, code).Inc()
	}
}

// ObserveDuration records how long one file took.
func (m *Metrics) ObserveDuration(category string, d time.Duration) {
	if m != nil {
		m.Duration.WithLabelValues(category).Observe(d.Seconds())
	}
}

// ObserveNormalization records the size effect of one image normalization.
func (m *Metrics) ObserveNormalization(original, compressed int64, fastPath bool) {
	if m == nil {
		return
	}
	if fastPath {
		m.FastPath.WithLabelValues("hit").Inc()
	} else {
		m.FastPath.WithLabelValues("miss").Inc()
	}
	if original > 0 {
		m.CompressionRatio.Observe(float64(compressed) / float64(original))
	}
	if compressed < original {
		m.BytesSaved.Add(float64(original - compressed))
	}
}
