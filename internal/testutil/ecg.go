package testutil

import "math"

// wave is one Gaussian component of a heartbeat, positioned by the
// fraction of the RR interval at which it peaks.
type wave struct {
	amp, center, width float64
}

// P, Q, R, S and T deflections of a single beat.
var beat = [...]wave{
	{amp: 0.08, center: 0.18, width: 0.03},
	{amp: -0.12, center: 0.30, width: 0.01},
	{amp: 1.00, center: 0.32, width: 0.008},
	{amp: -0.25, center: 0.35, width: 0.012},
	{amp: 0.25, center: 0.60, width: 0.06},
}

// SyntheticECG generates a non-clinical ECG-like trace: a slow baseline
// wander plus Gaussian P-QRS-T waves repeated at heartRateBPM, with
// deterministic noise of the given amplitude.
func SyntheticECG(sampleRate, heartRateBPM, noise float64, length int) []float64 {
	out := make([]float64, length)
	if sampleRate <= 0 || heartRateBPM <= 0 {
		return out
	}

	jitter := Noise(7, noise, length)
	beatsPerSample := heartRateBPM / 60 / sampleRate
	for i := range out {
		t := float64(i) / sampleRate
		_, phase := math.Modf(beatsPerSample * float64(i))

		v := 0.05 * math.Sin(2*math.Pi*0.33*t)
		for _, w := range beat {
			z := (phase - w.center) / w.width
			v += w.amp * math.Exp(-0.5*z*z)
		}
		out[i] = v + jitter[i]
	}
	return out
}

// AddPowerlineHum adds a sinusoidal interference of freqHz to x in place
// and returns it.
func AddPowerlineHum(x []float64, freqHz, sampleRate, amplitude float64) []float64 {
	hum := Sine(freqHz, sampleRate, amplitude, len(x))
	for i := range x {
		x[i] += hum[i]
	}
	return x
}
