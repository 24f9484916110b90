// Package time computes time-domain statistics of sampled signals.
//
// [Summarize] returns the fixed five-value summary shown next to an ECG
// trace; [Calculate] adds shape descriptors such as RMS, crest factor and
// higher moments.
package time
