// Package spectrum computes one-sided DFT magnitude spectra of real signals.
//
// The transform itself is delegated to algo-fft, which handles lengths
// that are not powers of two; this package decides which bins are
// reported and how their magnitudes are formed.
package spectrum
