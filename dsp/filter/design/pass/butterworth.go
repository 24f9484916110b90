package pass

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/cwbudde/algo-ecg/dsp/filter/biquad"
)

// ButterworthLP designs a lowpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0). Returns nil
// when order <= 0 or freq is not strictly between 0 and Nyquist.
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 || !validFreq(freq, sampleRate) {
		return nil
	}
	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	n2 := order / 2
	for i := n2 - 1; i >= 0; i-- {
		q := butterworthQ(order, i)
		sections = append(sections, lowpassRBJ(freq, q, sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, butterworthFirstOrderLP(freq, sampleRate))
	}
	return sections
}

// ButterworthHP designs a highpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0). Returns nil
// when order <= 0 or freq is not strictly between 0 and Nyquist.
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 || !validFreq(freq, sampleRate) {
		return nil
	}
	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	n2 := order / 2
	for i := n2 - 1; i >= 0; i-- {
		q := butterworthQ(order, i)
		sections = append(sections, highpassRBJ(freq, q, sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, butterworthFirstOrderHP(freq, sampleRate))
	}
	return sections
}

// ButterworthBP designs a bandpass Butterworth cascade passing lowHz..highHz.
//
// The lowpass prototype of the given order is shifted to the band, so the
// result has 2*order poles in order biquad sections, each with zeros at
// z=1 and z=-1. Gain is unity at the geometric band centre. Returns nil
// unless 0 < lowHz < highHz < Nyquist and order > 0.
func ButterworthBP(lowHz, highHz float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 || !validFreq(lowHz, sampleRate) || !validFreq(highHz, sampleRate) || lowHz >= highHz {
		return nil
	}

	kl, _ := bilinearK(lowHz, sampleRate)
	kh, _ := bilinearK(highHz, sampleRate)
	wl, wh := 2*kl, 2*kh
	bw := wh - wl
	w0 := math.Sqrt(wl * wh)

	poles := make([]complex128, 0, 2*order)
	for k := 0; k < order; k++ {
		p := cmplx.Exp(complex(0, math.Pi*float64(2*k+order+1)/float64(2*order)))
		half := p * complex(bw/2, 0)
		disc := cmplx.Sqrt(half*half - complex(w0*w0, 0))
		for _, s := range []complex128{half + disc, half - disc} {
			poles = append(poles, (2+s)/(2-s))
		}
	}

	dens := pairPoles(poles)

	// Centre frequency after the bilinear mapping.
	fc := math.Atan(w0/2) * sampleRate / math.Pi

	sections := make([]biquad.Coefficients, 0, len(dens))
	for _, d := range dens {
		c := biquad.Coefficients{B0: 1, B2: -1, A1: d[0], A2: d[1]}
		g := cmplx.Abs(c.Response(fc, sampleRate))
		if g == 0 || math.IsNaN(g) || math.IsInf(g, 0) {
			return nil
		}
		c.B0 /= g
		c.B2 /= g
		sections = append(sections, c)
	}
	return sections
}

// pairPoles groups z-plane poles into real second-order denominators
// [a1, a2], ordered from the pole closest to the origin outwards.
func pairPoles(poles []complex128) [][2]float64 {
	const tol = 1e-10

	var (
		complexPoles []complex128
		realPoles    []float64
	)
	for _, p := range poles {
		switch {
		case imag(p) > tol:
			complexPoles = append(complexPoles, p)
		case imag(p) >= -tol:
			realPoles = append(realPoles, real(p))
		}
	}

	type den struct {
		a1, a2 float64
		radius float64
	}
	out := make([]den, 0, len(complexPoles)+len(realPoles)/2)
	for _, p := range complexPoles {
		r := cmplx.Abs(p)
		out = append(out, den{a1: -2 * real(p), a2: r * r, radius: r})
	}

	sort.Float64s(realPoles)
	for i := 0; i+1 < len(realPoles); i += 2 {
		r1, r2 := realPoles[i], realPoles[i+1]
		out = append(out, den{a1: -(r1 + r2), a2: r1 * r2, radius: math.Max(math.Abs(r1), math.Abs(r2))})
	}
	if len(realPoles)%2 != 0 {
		r := realPoles[len(realPoles)-1]
		out = append(out, den{a1: -r, radius: math.Abs(r)})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].radius < out[j].radius })

	result := make([][2]float64, len(out))
	for i, d := range out {
		result[i] = [2]float64{d.a1, d.a2}
	}
	return result
}
