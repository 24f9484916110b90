package time

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-ecg/internal/testutil"
)

const tolerance = 1e-10

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestSummarize_OneToFive(t *testing.T) {
	s, err := Summarize([]float64{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	want := Summary{Mean: 3, StdDev: math.Sqrt2, Min: 1, Max: 5, Range: 4}
	checks := []struct {
		name      string
		got, want float64
	}{
		{"Mean", s.Mean, want.Mean},
		{"StdDev", s.StdDev, want.StdDev},
		{"Min", s.Min, want.Min},
		{"Max", s.Max, want.Max},
		{"Range", s.Range, want.Range},
	}
	for _, c := range checks {
		if !almostEqual(c.got, c.want, tolerance) {
			t.Errorf("%s: got %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestSummarize_Empty(t *testing.T) {
	if _, err := Summarize(nil); !errors.Is(err, ErrEmptySignal) {
		t.Fatalf("err = %v, want ErrEmptySignal", err)
	}
	if _, err := Summarize([]float64{}); !errors.Is(err, ErrEmptySignal) {
		t.Fatalf("err = %v, want ErrEmptySignal", err)
	}
}

func TestSummarize_SingleSample(t *testing.T) {
	s, err := Summarize([]float64{-0.7})
	if err != nil {
		t.Fatal(err)
	}
	if s.Mean != -0.7 || s.StdDev != 0 || s.Min != -0.7 || s.Max != -0.7 || s.Range != 0 {
		t.Fatalf("got %+v", s)
	}
}

func TestSummarize_AgreesWithCalculate(t *testing.T) {
	x := testutil.SyntheticECG(250, 72, 0.02, 2500)
	s, err := Summarize(x)
	if err != nil {
		t.Fatal(err)
	}
	c := Calculate(x)
	if !almostEqual(s.Mean, c.Mean, 1e-9) || !almostEqual(s.StdDev, c.StdDev, 1e-9) {
		t.Fatalf("summary %+v disagrees with stats mean=%v std=%v", s, c.Mean, c.StdDev)
	}
	if s.Min != c.Min || s.Max != c.Max || s.Range != c.Range {
		t.Fatalf("extrema differ: %+v vs %+v", s, c)
	}
}

func TestCalculate_DCSignal(t *testing.T) {
	s := Calculate(testutil.Constant(1.0, 1000))

	if s.Length != 1000 {
		t.Errorf("Length: got %d, want 1000", s.Length)
	}
	if !almostEqual(s.Mean, 1.0, tolerance) || !almostEqual(s.RMS, 1.0, tolerance) {
		t.Errorf("Mean/RMS: got %g/%g, want 1/1", s.Mean, s.RMS)
	}
	if !almostEqual(s.CrestFactor, 1.0, tolerance) {
		t.Errorf("CrestFactor: got %g, want 1.0", s.CrestFactor)
	}
	if s.ZeroCrossings != 0 || !almostEqual(s.Variance, 0, tolerance) || !almostEqual(s.Range, 0, tolerance) {
		t.Errorf("unexpected spread: %+v", s)
	}
	if !almostEqual(s.Energy, 1000, tolerance) {
		t.Errorf("Energy: got %g, want 1000", s.Energy)
	}
}

func TestCalculate_SineWave(t *testing.T) {
	// 10 Hz at 250 Hz: 25 samples per cycle, 10 full cycles.
	s := Calculate(testutil.Sine(10, 250, 1.0, 250))

	expectedRMS := 1.0 / math.Sqrt(2)
	if !almostEqual(s.RMS, expectedRMS, 1e-6) {
		t.Errorf("RMS: got %g, want %g", s.RMS, expectedRMS)
	}
	if !almostEqual(s.Mean, 0, 1e-10) {
		t.Errorf("Mean: got %g, want ~0", s.Mean)
	}
	if !almostEqual(s.Variance, 0.5, 1e-6) {
		t.Errorf("Variance: got %g, want 0.5", s.Variance)
	}
	if !almostEqual(s.Skewness, 0, 1e-6) {
		t.Errorf("Skewness: got %g, want ~0", s.Skewness)
	}
	// Excess kurtosis of a sine is -1.5.
	if !almostEqual(s.Kurtosis, -1.5, 1e-6) {
		t.Errorf("Kurtosis: got %g, want -1.5", s.Kurtosis)
	}
}

func TestCalculate_SquareWave(t *testing.T) {
	signal := make([]float64, 1000)
	for i := range signal {
		signal[i] = 1
		if i%2 == 1 {
			signal[i] = -1
		}
	}
	s := Calculate(signal)

	if s.Max != 1 || s.Min != -1 || s.Range != 2 {
		t.Errorf("extrema: %+v", s)
	}
	if s.MaxPos != 0 || s.MinPos != 1 {
		t.Errorf("positions: max=%d min=%d", s.MaxPos, s.MinPos)
	}
	if s.ZeroCrossings != 999 {
		t.Errorf("ZeroCrossings: got %d, want 999", s.ZeroCrossings)
	}
	if !almostEqual(s.Variance, 1.0, tolerance) {
		t.Errorf("Variance: got %g, want 1.0", s.Variance)
	}
}

func TestCalculate_Empty(t *testing.T) {
	if s := Calculate(nil); s != (Stats{}) {
		t.Fatalf("Calculate(nil) = %+v, want zero", s)
	}
}

func TestHelpers(t *testing.T) {
	if got := RMS([]float64{3, -4}); !almostEqual(got, math.Sqrt(12.5), tolerance) {
		t.Fatalf("RMS = %v", got)
	}
	if RMS(nil) != 0 {
		t.Fatal("RMS(nil) != 0")
	}
	if got := ZeroCrossings([]float64{1, -1, -2, 3, 0, -1}); got != 2 {
		t.Fatalf("ZeroCrossings = %d, want 2", got)
	}
}
