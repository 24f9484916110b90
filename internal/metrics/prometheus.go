package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcomes used as the "outcome" label.
const (
	OutcomeOK          = "ok"
	OutcomeLoadError   = "load_error"
	OutcomeFilterError = "filter_error"
	OutcomeEmptySignal = "empty_signal"
	OutcomeCanceled    = "canceled"
	OutcomeError       = "error"
)

var outcomes = []string{
	OutcomeOK,
	OutcomeLoadError,
	OutcomeFilterError,
	OutcomeEmptySignal,
	OutcomeCanceled,
	OutcomeError,
}

// Stage buckets: a few milliseconds for short records up to seconds for
// hour-long Holter traces.
var defaultBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// Recorder holds the pipeline metrics. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	namespace string
	subsystem string
	buckets   []float64
	enabled   bool
	registry  *prometheus.Registry

	runs             *prometheus.CounterVec
	runDuration      prometheus.Histogram
	stageDuration    *prometheus.HistogramVec
	samplesProcessed prometheus.Counter
	lastSignalLength prometheus.Gauge
}

// New creates a Recorder. Metrics are registered on a private registry
// unless WithPrometheusRegistry supplies one.
func New(opts ...Option) *Recorder {
	r := &Recorder{
		namespace: "ecg",
		subsystem: "pipeline",
		buckets:   defaultBuckets,
		enabled:   true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.registry == nil {
		r.registry = prometheus.NewRegistry()
	}

	r.initializeMetrics()
	return r
}

func (r *Recorder) initializeMetrics() {
	auto := promauto.With(r.registry)

	r.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "runs_total",
		Help:      "Pipeline runs by outcome",
	}, []string{"outcome"})

	r.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "run_duration_seconds",
		Help:      "Wall time of complete pipeline runs",
		Buckets:   r.buckets,
	})

	r.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "stage_duration_seconds",
		Help:      "Wall time per pipeline stage",
		Buckets:   r.buckets,
	}, []string{"stage"})

	r.samplesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "samples_processed_total",
		Help:      "Signal samples loaded by successful load stages",
	})

	r.lastSignalLength = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "last_signal_length",
		Help:      "Number of samples in the most recently loaded signal",
	})

	// Expose every outcome series at zero.
	for _, o := range outcomes {
		r.runs.WithLabelValues(o)
	}
}

func (r *Recorder) active() bool {
	return r != nil && r.enabled
}

// Registry returns the registry the metrics are registered on.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ValidateOutcome reports whether outcome is one of the Outcome* labels.
func ValidateOutcome(outcome string) error {
	for _, o := range outcomes {
		if o == outcome {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownOutcome, outcome)
}

// RecordRun counts a finished run and observes its duration. Unknown
// outcomes are counted as OutcomeError.
func (r *Recorder) RecordRun(outcome string, elapsed time.Duration) {
	if !r.active() {
		return
	}
	if ValidateOutcome(outcome) != nil {
		outcome = OutcomeError
	}
	r.runs.WithLabelValues(outcome).Inc()
	r.runDuration.Observe(elapsed.Seconds())
}

// ObserveStage records the duration of one pipeline stage.
func (r *Recorder) ObserveStage(stage string, elapsed time.Duration) {
	if !r.active() {
		return
	}
	r.stageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
}

// RecordSamples adds n loaded samples.
func (r *Recorder) RecordSamples(n int) {
	if !r.active() || n <= 0 {
		return
	}
	r.samplesProcessed.Add(float64(n))
	r.lastSignalLength.Set(float64(n))
}
