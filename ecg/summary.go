package ecg

import (
	"errors"
	"fmt"

	timestats "github.com/cwbudde/algo-ecg/stats/time"
)

// SummaryKeys lists the keys of Summary.Map in display order.
var SummaryKeys = []string{"Mean", "StdDev", "Min", "Max", "Range"}

// Summary holds descriptive statistics of a signal. StdDev is the
// population standard deviation.
type Summary struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Range  float64
}

// Map returns the statistics keyed by SummaryKeys.
func (s Summary) Map() map[string]float64 {
	return map[string]float64{
		"Mean":   s.Mean,
		"StdDev": s.StdDev,
		"Min":    s.Min,
		"Max":    s.Max,
		"Range":  s.Range,
	}
}

// Summarize computes mean, population standard deviation, min, max and
// range. An empty signal yields an *EmptySignalError.
func Summarize(signal []float64) (Summary, error) {
	s, err := timestats.Summarize(signal)
	if errors.Is(err, timestats.ErrEmptySignal) {
		return Summary{}, &EmptySignalError{Op: "summarize"}
	}
	if err != nil {
		return Summary{}, fmt.Errorf("ecg: summarize: %w", err)
	}
	return Summary(s), nil
}
