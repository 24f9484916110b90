package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-ecg/dsp/filter/biquad"
)

func ExampleSection_ProcessSample() {
	// Create a lowpass-like biquad section.
	s := biquad.NewSection(biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	})

	// Process an impulse.
	for i := range 6 {
		var x float64
		if i == 0 {
			x = 1
		}

		y := s.ProcessSample(x)
		fmt.Printf("y[%d] = %.6f\n", i, y)
	}
	// Output:
	// y[0] = 0.250000
	// y[1] = 0.550000
	// y[2] = 0.350000
	// y[3] = 0.048000
	// y[4] = -0.004400
	// y[5] = -0.002800
}

func ExampleFiltFilt() {
	coeffs := []biquad.Coefficients{{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}}

	x := make([]float64, 32)
	for i := range x {
		x[i] = 0.84 * 0.84
	}
	y, err := biquad.FiltFilt(coeffs, x)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("len=%d first=%.3f last=%.3f\n", len(y), y[0], y[len(y)-1])
	// Output:
	// len=32 first=1.000 last=1.000
}
