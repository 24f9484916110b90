// Package ecg turns a MAT-file recording into the values an ECG viewer
// displays: the selected signal with its time axis, an optionally
// zero-phase filtered copy, the one-sided magnitude spectrum and summary
// statistics.
//
// The stage functions [Load], [Filter], [ComputeSpectrum] and [Summarize]
// are pure and safe for concurrent use. [Pipeline] chains them for one
// request and adds logging and metrics.
package ecg
