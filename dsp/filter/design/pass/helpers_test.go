package pass

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-ecg/dsp/filter/biquad"
)

const ecgRate = 250.0

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func magChain(c *biquad.Chain, freq, sr float64) float64 {
	return cmplx.Abs(c.Response(freq, sr))
}

func assertFiniteCoefficients(t *testing.T, c biquad.Coefficients) {
	t.Helper()
	v := []float64{c.B0, c.B1, c.B2, c.A1, c.A2}
	for i := range v {
		if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
			t.Fatalf("invalid coefficient[%d]=%v", i, v[i])
		}
	}
}

func assertStable(t *testing.T, coeffs []biquad.Coefficients) {
	t.Helper()
	for i, c := range coeffs {
		assertFiniteCoefficients(t, c)
		if !c.Stable() {
			t.Fatalf("section %d unstable: poles=%v coeff=%#v", i, c.Poles(), c)
		}
	}
}
