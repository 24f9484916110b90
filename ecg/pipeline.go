package ecg

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-ecg/internal/config"
	"github.com/cwbudde/algo-ecg/internal/metrics"
)

// Stage names used in logs and metrics.
const (
	StageLoad     = "load"
	StageFilter   = "filter"
	StageSpectrum = "spectrum"
	StageSummary  = "summary"
)

// Request is one pipeline invocation.
type Request struct {
	Data     []byte     // MAT-file contents
	Filter   FilterSpec // Kind FilterNone skips filtering
	Variable string     // optional explicit variable name
}

// Result holds everything derived from one request.
type Result struct {
	RunID    string
	Record   *Record
	Filtered []float64 // Record.Signal itself when no filter was applied
	Spectrum Spectrum
	Summary  Summary
}

// Pipeline runs Load, Filter, ComputeSpectrum and Summarize in sequence.
// It holds no per-run state and is safe for concurrent use.
type Pipeline struct {
	logger  *zap.Logger
	metrics *metrics.Recorder
	opts    []Option
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder. Nil disables metrics.
func WithMetrics(r *metrics.Recorder) PipelineOption {
	return func(p *Pipeline) { p.metrics = r }
}

// WithOptions adds stage options applied to every run.
func WithOptions(opts ...Option) PipelineOption {
	return func(p *Pipeline) { p.opts = append(p.opts, opts...) }
}

// FromConfig applies the sample rate and bandpass edge of cfg.
func FromConfig(cfg *config.Config) PipelineOption {
	return func(p *Pipeline) {
		if cfg == nil {
			return
		}
		p.opts = append(p.opts,
			WithProcessorConfig(cfg.ProcessorConfig()),
			WithBandLowHz(cfg.BandpassLowHz),
		)
	}
}

// NewPipeline creates a Pipeline.
func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Run processes one request. The first failing stage aborts the run and
// its error is returned unchanged, so callers can match *LoadError,
// *FilterError and *EmptySignalError. The context is checked before each
// stage.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	runID := uuid.NewString()
	log := p.logger.With(zap.String("run_id", runID))
	start := time.Now()

	log.Debug("run started",
		zap.Int("bytes", len(req.Data)),
		zap.Stringer("filter", req.Filter.Kind),
		zap.Float64("cutoff_hz", req.Filter.CutoffHz),
		zap.Int("order", req.Filter.Order),
		zap.String("variable", req.Variable),
	)

	res, err := p.run(ctx, log, req)
	elapsed := time.Since(start)
	outcome := outcomeOf(err)
	p.metrics.RecordRun(outcome, elapsed)

	if err != nil {
		log.Warn("run failed", zap.String("outcome", outcome), zap.Duration("elapsed", elapsed), zap.Error(err))
		return nil, err
	}

	res.RunID = runID
	log.Info("run finished",
		zap.String("variable", res.Record.Name),
		zap.Int("samples", res.Record.Len()),
		zap.Int("bins", res.Spectrum.Len()),
		zap.Duration("elapsed", elapsed),
	)
	return res, nil
}

func (p *Pipeline) run(ctx context.Context, log *zap.Logger, req Request) (*Result, error) {
	opts := p.opts
	if req.Variable != "" {
		opts = append(opts[:len(opts):len(opts)], WithVariable(req.Variable))
	}

	res := &Result{}

	err := p.stage(ctx, log, StageLoad, func() (err error) {
		res.Record, err = Load(req.Data, opts...)
		return err
	})
	if err != nil {
		return nil, err
	}
	p.metrics.RecordSamples(res.Record.Len())

	err = p.stage(ctx, log, StageFilter, func() (err error) {
		res.Filtered, err = Filter(res.Record.Signal, req.Filter, opts...)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, log, StageSpectrum, func() (err error) {
		res.Spectrum, err = ComputeSpectrum(res.Filtered, opts...)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, log, StageSummary, func() (err error) {
		res.Summary, err = Summarize(res.Filtered)
		return err
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (p *Pipeline) stage(ctx context.Context, log *zap.Logger, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	p.metrics.ObserveStage(name, elapsed)

	if err != nil {
		log.Debug("stage failed", zap.String("stage", name), zap.Duration("elapsed", elapsed), zap.Error(err))
		return err
	}
	log.Debug("stage done", zap.String("stage", name), zap.Duration("elapsed", elapsed))
	return nil
}

func outcomeOf(err error) string {
	var (
		loadErr   *LoadError
		filterErr *FilterError
	)
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeCanceled
	case errors.As(err, &loadErr):
		return metrics.OutcomeLoadError
	case errors.As(err, &filterErr):
		return metrics.OutcomeFilterError
	case errors.Is(err, ErrEmptySignal):
		return metrics.OutcomeEmptySignal
	default:
		return metrics.OutcomeError
	}
}
