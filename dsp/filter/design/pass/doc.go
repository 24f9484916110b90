// Package pass designs Butterworth lowpass, highpass and bandpass filters as
// cascades of biquad sections for use with dsp/filter/biquad.
//
// All designs use the bilinear transform prewarped at the band edges, so the
// -3 dB points land exactly on the requested frequencies.
package pass
