package core

import (
	"fmt"
	"math"
)

// DefaultSampleRate is the ECG sample rate assumed when a recording carries
// no usable rate of its own.
const DefaultSampleRate = 250.0

// ProcessorConfig defines the sample-rate context shared by loading,
// filtering and spectral analysis.
type ProcessorConfig struct {
	SampleRate float64
}

// DefaultProcessorConfig returns the ECG defaults.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: DefaultSampleRate,
	}
}

// Nyquist returns half the sample rate.
func (c ProcessorConfig) Nyquist() float64 {
	return c.SampleRate / 2
}

// Validate reports whether the sample rate is usable: positive and finite.
func (c ProcessorConfig) Validate() error {
	if !(c.SampleRate > 0) || math.IsInf(c.SampleRate, 1) {
		return fmt.Errorf("core: sample rate must be positive and finite: %v", c.SampleRate)
	}
	return nil
}

// TimeAxis returns t[i] = i / SampleRate for n samples.
func (c ProcessorConfig) TimeAxis(n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / c.SampleRate
	}
	return out
}
