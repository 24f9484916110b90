package time_test

import (
	"fmt"

	timestats "github.com/cwbudde/algo-ecg/stats/time"
)

func ExampleSummarize() {
	s, err := timestats.Summarize([]float64{1, 2, 3, 4, 5})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("mean=%.1f std=%.4f min=%.0f max=%.0f range=%.0f\n", s.Mean, s.StdDev, s.Min, s.Max, s.Range)

	// Output:
	// mean=3.0 std=1.4142 min=1 max=5 range=4
}

func ExampleCalculate() {
	s := timestats.Calculate([]float64{1, -1, 1, -1})
	fmt.Printf("rms=%.1f zc=%d\n", s.RMS, s.ZeroCrossings)

	// Output:
	// rms=1.0 zc=3
}
