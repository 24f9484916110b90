package spectrum

import (
	"errors"
	"fmt"
	"math"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrEmptySignal is returned when a transform is requested for zero samples.
	ErrEmptySignal = errors.New("spectrum: empty signal")
	// ErrInvalidSampleRate is returned for non-positive or non-finite rates.
	ErrInvalidSampleRate = errors.New("spectrum: sample rate must be > 0")
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// The modulus is computed by algo-vecmath, which dispatches to SIMD kernels
// when available. Scratch buffers are pooled internally, so in steady state
// this allocates only the output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out
}

// NonNegativeBins returns how many DFT bins of an n-point transform have a
// non-negative frequency in the conventional FFT ordering: ceil(n/2).
//
// For even n the Nyquist bin is reported at -fs/2 by that convention and is
// therefore not counted.
func NonNegativeBins(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + 1) / 2
}

// Frequencies returns the bin centre frequencies k*sampleRate/n for the
// first NonNegativeBins(n) bins.
func Frequencies(n int, sampleRate float64) []float64 {
	bins := NonNegativeBins(n)
	if bins == 0 {
		return nil
	}
	out := make([]float64, bins)
	for k := range out {
		out[k] = float64(k) * sampleRate / float64(n)
	}
	return out
}

// OneSided computes the DFT of the whole signal (no window, no zero
// padding) and returns the non-negative frequency bins with their
// magnitudes |X[k]|. Magnitudes are neither normalised by n nor squared.
func OneSided(signal []float64, sampleRate float64) (freqs, mags []float64, err error) {
	n := len(signal)
	if n == 0 {
		return nil, nil, ErrEmptySignal
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	freqs = Frequencies(n, sampleRate)
	if n == 1 {
		return freqs, []float64{math.Abs(signal[0])}, nil
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range signal {
		in[i] = complex(v, 0)
	}
	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	mags = Magnitude(out[:len(freqs)])
	return freqs, mags, nil
}

// PeakBin returns the index of the largest magnitude, skipping the first
// skip bins (typically 1 to ignore DC). Returns -1 if no bin qualifies.
func PeakBin(mags []float64, skip int) int {
	if skip < 0 {
		skip = 0
	}
	peak := -1
	for i := skip; i < len(mags); i++ {
		if peak < 0 || mags[i] > mags[peak] {
			peak = i
		}
	}
	return peak
}
