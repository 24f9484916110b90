package frequency

import "math"

// DefaultRolloff is the energy fraction used by Calculate for Rolloff.
const DefaultRolloff = 0.85

// Stats holds shape descriptors of a one-sided magnitude spectrum.
type Stats struct {
	BinCount  int
	DC        float64 // bin 0 magnitude
	PeakHz    float64 // strongest bin above DC
	PeakMag   float64
	Energy    float64 // sum of squared magnitudes
	Centroid  float64 // Hz, magnitude weighted
	Spread    float64 // Hz, standard deviation around the centroid
	Flatness  float64 // Wiener entropy of bins above DC, 0..1
	Rolloff   float64 // Hz below which DefaultRolloff of the energy lies
	Bandwidth float64 // Hz between the -3 dB points around the peak
}

// Calculate computes all descriptors. freqs and magnitude must pair
// index-wise with freqs ascending from DC; the shorter length is used.
func Calculate(freqs, magnitude []float64) Stats {
	n := min(len(freqs), len(magnitude))
	if n == 0 {
		return Stats{}
	}
	freqs, magnitude = freqs[:n], magnitude[:n]

	s := Stats{BinCount: n, DC: magnitude[0]}
	var sum float64
	peak := -1
	for i, v := range magnitude {
		sum += v
		s.Energy += v * v
		if i > 0 && (peak < 0 || v > magnitude[peak]) {
			peak = i
		}
	}
	if peak > 0 {
		s.PeakHz = freqs[peak]
		s.PeakMag = magnitude[peak]
	}

	s.Centroid = centroid(freqs, magnitude, sum)
	s.Spread = spread(freqs, magnitude, s.Centroid, sum)
	s.Flatness = Flatness(magnitude)
	s.Rolloff = rolloff(freqs, magnitude, DefaultRolloff, s.Energy)
	s.Bandwidth = Bandwidth(freqs, magnitude)
	return s
}

// Centroid returns the spectral centroid in Hz.
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
func Centroid(freqs, magnitude []float64) float64 {
	var sum float64
	for _, v := range magnitude {
		sum += v
	}
	return centroid(freqs, magnitude, sum)
}

func centroid(freqs, magnitude []float64, sumMag float64) float64 {
	if len(magnitude) < 2 || sumMag == 0 {
		return 0
	}
	var weighted float64
	for i, v := range magnitude {
		weighted += freqs[i] * v
	}
	return weighted / sumMag
}

func spread(freqs, magnitude []float64, cent, sumMag float64) float64 {
	if len(magnitude) < 2 || sumMag == 0 {
		return 0
	}
	var weighted float64
	for i, v := range magnitude {
		d := freqs[i] - cent
		weighted += d * d * v
	}
	return math.Sqrt(weighted / sumMag)
}

// Flatness returns the spectral flatness in the range 0..1:
// the geometric over the arithmetic mean of the bins above DC.
// Any zero bin makes the result 0.
func Flatness(magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	var sumLin, sumLog float64
	for _, v := range magnitude[1:] {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}

	bins := float64(n - 1)
	return math.Exp(sumLog/bins) / (sumLin / bins)
}

// Rolloff returns the frequency below which the given fraction (0..1) of
// the spectral energy lies.
func Rolloff(freqs, magnitude []float64, fraction float64) float64 {
	var energy float64
	for _, v := range magnitude {
		energy += v * v
	}
	return rolloff(freqs, magnitude, fraction, energy)
}

func rolloff(freqs, magnitude []float64, fraction, total float64) float64 {
	if len(magnitude) < 2 || total == 0 {
		return 0
	}
	threshold := fraction * total
	var cum float64
	for i, v := range magnitude {
		cum += v * v
		if cum >= threshold {
			return freqs[i]
		}
	}
	return freqs[len(freqs)-1]
}

// BandEnergyRatio returns the share of spectral energy in lowHz..highHz,
// both inclusive. An all-zero spectrum yields 0.
func BandEnergyRatio(freqs, magnitude []float64, lowHz, highHz float64) float64 {
	var total, band float64
	for i, v := range magnitude {
		e := v * v
		total += e
		if freqs[i] >= lowHz && freqs[i] <= highHz {
			band += e
		}
	}
	if total == 0 {
		return 0
	}
	return band / total
}

// Bandwidth returns the distance in Hz between the points left and right
// of the strongest bin where the magnitude falls to peak/sqrt(2),
// linearly interpolated between bins.
func Bandwidth(freqs, magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	peak := 0
	for i, v := range magnitude {
		if v > magnitude[peak] {
			peak = i
		}
	}
	if magnitude[peak] == 0 {
		return 0
	}
	threshold := magnitude[peak] / math.Sqrt2

	lower := freqs[0]
	for i := peak; i >= 1; i-- {
		if magnitude[i-1] <= threshold && magnitude[i] > threshold {
			lower = interpFreq(freqs[i-1], freqs[i], magnitude[i-1], magnitude[i], threshold)
			break
		}
	}

	upper := freqs[n-1]
	for i := peak; i < n-1; i++ {
		if magnitude[i+1] <= threshold && magnitude[i] > threshold {
			upper = interpFreq(freqs[i], freqs[i+1], magnitude[i], magnitude[i+1], threshold)
			break
		}
	}

	return max(upper-lower, 0)
}

// interpFreq finds where the magnitude crosses threshold between two bins.
func interpFreq(fLow, fHigh, magLow, magHigh, threshold float64) float64 {
	denom := magHigh - magLow
	if denom == 0 {
		return (fLow + fHigh) / 2
	}
	t := (threshold - magLow) / denom
	return fLow + t*(fHigh-fLow)
}
