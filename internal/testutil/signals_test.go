package testutil

import (
	"math"
	"testing"
)

func TestSine(t *testing.T) {
	// 10 Hz at 250 Hz: a quarter period is 6.25 samples, so sample 25
	// completes one full period.
	s := Sine(10, 250, 2, 26)
	if len(s) != 26 {
		t.Fatalf("len = %d, want 26", len(s))
	}
	if s[0] != 0 || math.Abs(s[25]) > 1e-12 {
		t.Fatalf("s[0] = %v, s[25] = %v, want 0", s[0], s[25])
	}
	for i, v := range s {
		if math.Abs(v) > 2 {
			t.Fatalf("s[%d] = %v exceeds amplitude", i, v)
		}
	}
}

func TestNoise(t *testing.T) {
	a := Noise(42, 0.5, 256)
	RequireNearlyEqual(t, Noise(42, 0.5, 256), a, 0)
	for i, v := range a {
		if v < -0.5 || v >= 0.5 {
			t.Fatalf("a[%d] = %v outside [-0.5, 0.5)", i, v)
		}
	}

	b := Noise(43, 0.5, 256)
	same := 0
	for i := range a {
		if a[i] == b[i] {
			same++
		}
	}
	if same == len(a) {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestImpulse(t *testing.T) {
	RequireNearlyEqual(t, Impulse(5, 2), []float64{0, 0, 1, 0, 0}, 0)
	RequireNearlyEqual(t, Impulse(3, 7), []float64{0, 0, 0}, 0)
	RequireNearlyEqual(t, Impulse(3, -1), []float64{0, 0, 0}, 0)
}

func TestConstant(t *testing.T) {
	RequireNearlyEqual(t, Constant(0.25, 3), []float64{0.25, 0.25, 0.25}, 0)
	if got := Constant(1, 0); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}
