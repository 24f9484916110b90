// Package core holds the processing context shared across the ECG pipeline.
//
// The sample rate lives here once and is threaded through the loader, the
// filter stage and the spectral analyzer so the components cannot disagree.
package core
