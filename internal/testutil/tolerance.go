package testutil

import (
	"math"
	"testing"
)

// RequireNearlyEqual fails t unless got and want have the same length and
// agree element-wise within the absolute tolerance eps. The report names
// the worst index.
func RequireNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
		return
	}
	worst, diff := -1, 0.0
	for i := range got {
		if d := math.Abs(got[i] - want[i]); d > diff || math.IsNaN(d) {
			worst, diff = i, d
		}
	}
	if worst >= 0 && !(diff <= eps) {
		t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", worst, got[worst], want[worst], diff, eps)
	}
}

// RequireFinite fails t at the first NaN or Inf.
func RequireFinite(t testing.TB, x []float64) {
	t.Helper()
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireMirrored fails t unless x[center-k] and x[center+k] agree within
// eps for every k up to radius. A zero-phase filter maps a centred
// impulse to such a response.
func RequireMirrored(t testing.TB, x []float64, center, radius int, eps float64) {
	t.Helper()
	if center-radius < 0 || center+radius >= len(x) {
		t.Fatalf("radius %d around %d exceeds %d samples", radius, center, len(x))
		return
	}
	for k := 1; k <= radius; k++ {
		if d := math.Abs(x[center-k] - x[center+k]); !(d <= eps) {
			t.Fatalf("offset %d: %v vs %v (diff %v > eps %v)", k, x[center-k], x[center+k], d, eps)
		}
	}
}
