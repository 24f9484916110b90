package ecg

import "math"

// DefaultWindowSeconds is the longest time window shown by default.
const DefaultWindowSeconds = 10.0

// exampleSamples is the length of ExampleSignal.
const exampleSamples = 1000

// WindowSeconds returns the default visible window for a recording of the
// given duration: min(maxSeconds, floor(duration)), never below one second.
// A non-positive maxSeconds selects DefaultWindowSeconds.
func WindowSeconds(duration, maxSeconds float64) float64 {
	if !(maxSeconds > 0) {
		maxSeconds = DefaultWindowSeconds
	}
	w := math.Min(maxSeconds, math.Floor(duration))
	if !(w >= 1) {
		return 1
	}
	return w
}

// Window returns the leading part of the record with Time <= seconds.
// The returned slices share storage with the record.
func (r *Record) Window(seconds float64) (t, signal []float64) {
	n := 0
	for n < len(r.Time) && r.Time[n] <= seconds {
		n++
	}
	return r.Time[:n], r.Signal[:n]
}

// ExampleSignal returns the placeholder trace shown before any recording
// is loaded: one period of sin(t) sampled at 1000 evenly spaced points of
// [0, 2π], end points included.
func ExampleSignal() (t, signal []float64) {
	t = make([]float64, exampleSamples)
	signal = make([]float64, exampleSamples)
	step := 2 * math.Pi / float64(exampleSamples-1)
	for i := range t {
		t[i] = step * float64(i)
		signal[i] = math.Sin(t[i])
	}
	return t, signal
}
