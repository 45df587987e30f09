package testutil

import (
	"fmt"
	"math"
	"testing"
)

// MaxAbsDiff returns the largest absolute sample difference between a and b
// and the index where it occurs.
func MaxAbsDiff(a, b []float64) (float64, int, error) {
	if len(a) != len(b) {
		return 0, -1, fmt.Errorf("testutil: length mismatch: %d vs %d", len(a), len(b))
	}

	worst, at := 0.0, -1

	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > worst || (at < 0 && d == worst) {
			worst, at = d, i
		}
	}

	return worst, at, nil
}

// RequireSliceNearlyEqual fails t when got and want differ in length or any
// sample differs by more than eps. The worst sample is reported.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	worst, at, err := MaxAbsDiff(got, want)
	if err != nil {
		t.Fatal(err)
	}

	if worst > eps {
		t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", at, got[at], want[at], worst, eps)
	}
}

// RequireFinite fails t at the first NaN or Inf sample.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}
