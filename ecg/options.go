package ecg

import (
	"fmt"

	"github.com/cwbudde/algo-ecg/dsp/core"
)

// DefaultBandLowHz is the fixed lower edge of the bandpass filter.
const DefaultBandLowHz = 0.5

type options struct {
	proc      core.ProcessorConfig
	variable  string
	bandLowHz float64
	err       error // first invalid option, reported by every stage
}

// Option configures the stage functions.
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{
		proc:      core.DefaultProcessorConfig(),
		bandLowHz: DefaultBandLowHz,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithSampleRate sets the sample rate used for the time axis, the filter
// design and the spectrum frequencies. A rate that is not positive and
// finite makes the stage fail with ErrInvalidSampleRate.
func WithSampleRate(hz float64) Option {
	return func(o *options) {
		cfg := o.proc
		cfg.SampleRate = hz
		o.setProc(cfg)
	}
}

// WithProcessorConfig replaces the whole processing context. An invalid
// config makes the stage fail with ErrInvalidSampleRate.
func WithProcessorConfig(cfg core.ProcessorConfig) Option {
	return func(o *options) { o.setProc(cfg) }
}

func (o *options) setProc(cfg core.ProcessorConfig) {
	if err := cfg.Validate(); err != nil {
		if o.err == nil {
			o.err = fmt.Errorf("%w: %v", ErrInvalidSampleRate, err)
		}
		return
	}
	o.proc = cfg
}

// WithVariable makes Load pick the named variable instead of the first
// acceptable one. An empty name keeps the positional default.
func WithVariable(name string) Option {
	return func(o *options) { o.variable = name }
}

// WithBandLowHz sets the lower edge of the bandpass filter.
func WithBandLowHz(hz float64) Option {
	return func(o *options) { o.bandLowHz = hz }
}
