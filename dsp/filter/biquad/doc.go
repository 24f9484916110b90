// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Multiple sections can be
// cascaded via [Chain] for higher-order filters. [FiltFilt] runs a cascade
// forward and backward over a finite record for zero-phase filtering.
//
// This package provides the processing runtime only. Coefficient design
// (Butterworth lowpass, highpass and bandpass) lives in
// dsp/filter/design/pass.
package biquad
