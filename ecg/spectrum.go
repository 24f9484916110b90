package ecg

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/cwbudde/algo-ecg/dsp/spectrum"
	frequencystats "github.com/cwbudde/algo-ecg/stats/frequency"
)

// Spectrum is the one-sided DFT magnitude spectrum of a signal.
// Frequencies ascend from 0 and pair index-wise with Magnitudes.
type Spectrum struct {
	Frequencies []float64
	Magnitudes  []float64
}

// Len returns the number of bins.
func (s Spectrum) Len() int { return len(s.Frequencies) }

// Peak is one spectral bin.
type Peak struct {
	Bin         int
	FrequencyHz float64
	Magnitude   float64
}

// ComputeSpectrum returns |X[k]| of the unwindowed, unpadded DFT for the
// bins with non-negative frequency, ceil(N/2) of them. Magnitudes are not
// normalised by N.
func ComputeSpectrum(signal []float64, opts ...Option) (Spectrum, error) {
	if len(signal) == 0 {
		return Spectrum{}, &EmptySignalError{Op: "spectrum"}
	}

	o := newOptions(opts)
	if o.err != nil {
		return Spectrum{}, fmt.Errorf("ecg: spectrum: %w", o.err)
	}
	freqs, mags, err := spectrum.OneSided(signal, o.proc.SampleRate)
	if err != nil {
		return Spectrum{}, fmt.Errorf("ecg: spectrum: %w", err)
	}
	return Spectrum{Frequencies: freqs, Magnitudes: mags}, nil
}

// Dominant returns the strongest bin above DC. ok is false when the
// spectrum has no such bin.
func (s Spectrum) Dominant() (p Peak, ok bool) {
	k := spectrum.PeakBin(s.Magnitudes, 1)
	if k < 0 {
		return Peak{}, false
	}
	return Peak{Bin: k, FrequencyHz: s.Frequencies[k], Magnitude: s.Magnitudes[k]}, true
}

// TopPeaks returns up to n local maxima above DC, strongest first.
func (s Spectrum) TopPeaks(n int) []Peak {
	if n <= 0 {
		return nil
	}

	m := s.Magnitudes
	var peaks []Peak
	for k := 1; k < len(m); k++ {
		if m[k] < m[k-1] || (k+1 < len(m) && m[k] < m[k+1]) {
			continue
		}
		peaks = append(peaks, Peak{Bin: k, FrequencyHz: s.Frequencies[k], Magnitude: m[k]})
	}

	slices.SortStableFunc(peaks, func(a, b Peak) int {
		return cmp.Compare(b.Magnitude, a.Magnitude)
	})
	if len(peaks) > n {
		peaks = peaks[:n]
	}
	return peaks
}

// Band returns the bins with lowHz <= f <= highHz.
func (s Spectrum) Band(lowHz, highHz float64) Spectrum {
	lo, _ := slices.BinarySearch(s.Frequencies, lowHz)
	hi := lo
	for hi < len(s.Frequencies) && s.Frequencies[hi] <= highHz {
		hi++
	}
	return Spectrum{Frequencies: s.Frequencies[lo:hi], Magnitudes: s.Magnitudes[lo:hi]}
}

// Shape returns centroid, spread, flatness, rolloff and -3 dB bandwidth
// of the spectrum.
func (s Spectrum) Shape() frequencystats.Stats {
	return frequencystats.Calculate(s.Frequencies, s.Magnitudes)
}

// EnergyRatio returns the share of spectral energy between lowHz and
// highHz, both inclusive.
func (s Spectrum) EnergyRatio(lowHz, highHz float64) float64 {
	return frequencystats.BandEnergyRatio(s.Frequencies, s.Magnitudes, lowHz, highHz)
}
