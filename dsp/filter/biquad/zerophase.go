package biquad

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSections is returned when a zero-phase pass is requested without
	// any filter sections.
	ErrNoSections = errors.New("biquad: no filter sections")
	// ErrSignalTooShort is returned when the input is not longer than the
	// edge padding required by FiltFilt.
	ErrSignalTooShort = errors.New("biquad: signal too short for zero-phase filtering")
)

// PadLen returns the number of samples FiltFilt mirrors onto each end of
// the input: three times the length of the cascade's denominator.
func PadLen(coeffs []Coefficients) int {
	return 3 * (NewChain(coeffs).Order() + 1)
}

// FiltFilt filters x forward and then backward through the cascade so the
// output has zero phase shift and twice the magnitude response in dB.
//
// Both ends are extended by odd reflection about the end samples and each
// pass starts from the steady state for its first sample, which keeps start
// and end transients small. The input is left untouched.
func FiltFilt(coeffs []Coefficients, x []float64) ([]float64, error) {
	if len(coeffs) == 0 {
		return nil, ErrNoSections
	}

	chain := NewChain(coeffs)
	pad := 3 * (chain.Order() + 1)
	n := len(x)
	if n <= pad {
		return nil, fmt.Errorf("%w: %d samples, need more than %d", ErrSignalTooShort, n, pad)
	}

	ext := oddExtend(x, pad)

	chain.SetSteadyState(ext[0])
	chain.ProcessBlock(ext)

	reverse(ext)
	chain.SetSteadyState(ext[0])
	chain.ProcessBlock(ext)
	reverse(ext)

	out := make([]float64, n)
	copy(out, ext[pad:pad+n])
	return out, nil
}

// oddExtend returns x with pad samples reflected through each end point.
// Requires pad < len(x).
func oddExtend(x []float64, pad int) []float64 {
	n := len(x)
	ext := make([]float64, n+2*pad)

	first, last := x[0], x[n-1]
	for i := 0; i < pad; i++ {
		ext[i] = 2*first - x[pad-i]
		ext[pad+n+i] = 2*last - x[n-2-i]
	}
	copy(ext[pad:], x)

	return ext
}

func reverse(buf []float64) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}
