// Package frequency computes shape descriptors of one-sided magnitude
// spectra: centroid, spread, flatness, rolloff, bandwidth and band energy.
//
// All functions take the bin frequencies explicitly, so spectra of odd and
// even length and any sample rate are handled alike.
package frequency
