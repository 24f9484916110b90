package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-ecg/dsp/spectrum"
)

func ExampleOneSided() {
	freqs, mags, err := spectrum.OneSided([]float64{1, 0, -1, 0}, 4)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(freqs, mags)
	// Output:
	// [0 1] [0 2]
}
