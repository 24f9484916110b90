package time

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrEmptySignal is returned by Summarize for a zero-length signal.
var ErrEmptySignal = errors.New("stats: empty signal")

// Summary holds the five descriptive statistics reported for a recording.
type Summary struct {
	Mean   float64
	StdDev float64 // population (divisor N)
	Min    float64
	Max    float64
	Range  float64 // Max - Min
}

// Summarize computes mean, population standard deviation, min, max and
// range. An empty signal is rejected instead of producing NaN.
func Summarize(signal []float64) (Summary, error) {
	if len(signal) == 0 {
		return Summary{}, ErrEmptySignal
	}

	mean, std := stat.PopMeanStdDev(signal, nil)
	lo := floats.Min(signal)
	hi := floats.Max(signal)

	return Summary{
		Mean:   mean,
		StdDev: std,
		Min:    lo,
		Max:    hi,
		Range:  hi - lo,
	}, nil
}

// Stats holds extended time-domain descriptors of a signal.
type Stats struct {
	Length        int
	Mean          float64
	Variance      float64 // population
	StdDev        float64
	RMS           float64
	Max           float64
	MaxPos        int
	Min           float64
	MinPos        int
	Peak          float64 // max(|max|, |min|)
	Range         float64 // max - min
	CrestFactor   float64 // peak / RMS
	Energy        float64 // sum of squares
	ZeroCrossings int
	Skewness      float64
	Kurtosis      float64 // excess
}

// Calculate computes all descriptors in a single pass using Welford's
// online algorithm for numerical stability on higher-order moments.
// An empty signal yields the zero Stats.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{}
	}

	var (
		mean, m2, m3, m4 float64

		sumSq         float64
		maxVal        = signal[0]
		maxPos        int
		minVal        = signal[0]
		minPos        int
		zeroCrossings int
	)

	for i, x := range signal {
		ni := float64(i + 1) // 1-based count after this sample
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 must be updated before M3, and M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		sumSq += x * x

		if x > maxVal {
			maxVal = x
			maxPos = i
		}
		if x < minVal {
			minVal = x
			minPos = i
		}

		if i > 0 && signal[i-1]*x < 0 {
			zeroCrossings++
		}
	}

	nf := float64(n)
	rms := math.Sqrt(sumSq / nf)
	peak := math.Max(math.Abs(maxVal), math.Abs(minVal))

	var crest float64
	if rms != 0 {
		crest = peak / rms
	}

	variance := m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m4/nf)/(variance*variance) - 3
	}

	return Stats{
		Length:        n,
		Mean:          mean,
		Variance:      variance,
		StdDev:        math.Sqrt(variance),
		RMS:           rms,
		Max:           maxVal,
		MaxPos:        maxPos,
		Min:           minVal,
		MinPos:        minPos,
		Peak:          peak,
		Range:         maxVal - minVal,
		CrestFactor:   crest,
		Energy:        sumSq,
		ZeroCrossings: zeroCrossings,
		Skewness:      skewness,
		Kurtosis:      kurtosis,
	}
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// ZeroCrossings returns the number of zero crossings in the signal.
// A crossing is counted when consecutive samples have opposite signs.
func ZeroCrossings(signal []float64) int {
	var count int
	for i := 1; i < len(signal); i++ {
		if signal[i-1]*signal[i] < 0 {
			count++
		}
	}
	return count
}
