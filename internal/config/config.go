// Package config defines the ECG tool configuration and its loading.
//
// Values are layered from defaults, an optional YAML file and ECG_*
// environment variables, in that order of precedence.
package config

import (
	"fmt"

	"github.com/cwbudde/algo-ecg/dsp/core"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogDevelopment selects the console encoder instead of JSON.
	LogDevelopment bool `koanf:"log_development"`

	// SampleRate is the assumed acquisition rate in Hz, shared by loading,
	// filtering and spectral analysis.
	SampleRate float64 `koanf:"sample_rate"`

	// FilterOrder is the Butterworth order used when none is given.
	FilterOrder int `koanf:"filter_order"`

	// BandpassLowHz is the fixed lower edge of the bandpass filter.
	BandpassLowHz float64 `koanf:"bandpass_low_hz"`

	// DefaultCutoffHz, CutoffMinHz and CutoffMaxHz bound the cutoff offered
	// to interactive callers.
	DefaultCutoffHz float64 `koanf:"default_cutoff_hz"`
	CutoffMinHz     float64 `koanf:"cutoff_min_hz"`
	CutoffMaxHz     float64 `koanf:"cutoff_max_hz"`

	// WindowSeconds caps the default visible time window.
	WindowSeconds float64 `koanf:"window_seconds"`

	// MetricsEnabled and MetricsNamespace configure the Prometheus recorder.
	MetricsEnabled   bool   `koanf:"metrics_enabled"`
	MetricsNamespace string `koanf:"metrics_namespace"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		SampleRate:       core.DefaultSampleRate,
		FilterOrder:      4,
		BandpassLowHz:    0.5,
		DefaultCutoffHz:  50,
		CutoffMinHz:      1,
		CutoffMaxHz:      125,
		WindowSeconds:    10,
		MetricsEnabled:   true,
		MetricsNamespace: "ecg",
	}
}

// ProcessorConfig returns the sample-rate context described by c.
func (c *Config) ProcessorConfig() core.ProcessorConfig {
	return core.ProcessorConfig{SampleRate: c.SampleRate}
}

// Validate checks the numeric ranges against the Nyquist frequency.
func (c *Config) Validate() error {
	if !(c.SampleRate > 0) {
		return fmt.Errorf("%w: sample_rate must be > 0, got %v", ErrInvalidConfig, c.SampleRate)
	}
	if c.FilterOrder <= 0 {
		return fmt.Errorf("%w: filter_order must be > 0, got %d", ErrInvalidConfig, c.FilterOrder)
	}

	nyquist := c.SampleRate / 2
	if !(c.CutoffMinHz > 0) || c.CutoffMinHz > c.CutoffMaxHz || c.CutoffMaxHz > nyquist {
		return fmt.Errorf("%w: cutoff bounds [%v, %v] must lie in (0, %v]", ErrInvalidConfig, c.CutoffMinHz, c.CutoffMaxHz, nyquist)
	}
	if c.DefaultCutoffHz < c.CutoffMinHz || c.DefaultCutoffHz > c.CutoffMaxHz {
		return fmt.Errorf("%w: default_cutoff_hz %v outside [%v, %v]", ErrInvalidConfig, c.DefaultCutoffHz, c.CutoffMinHz, c.CutoffMaxHz)
	}
	if !(c.BandpassLowHz > 0) || c.BandpassLowHz >= nyquist {
		return fmt.Errorf("%w: bandpass_low_hz %v must lie in (0, %v)", ErrInvalidConfig, c.BandpassLowHz, nyquist)
	}
	if !(c.WindowSeconds > 0) {
		return fmt.Errorf("%w: window_seconds must be > 0, got %v", ErrInvalidConfig, c.WindowSeconds)
	}
	return nil
}
