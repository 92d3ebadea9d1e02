// Package testutil holds assertions and deterministic signals shared by
// the package tests.
package testutil

import (
	"math"
	"testing"
)

// RequireNearlyEqual fails t if got and want differ by more than eps.
func RequireNearlyEqual(t *testing.T, got, want, eps float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > eps {
		t.Fatalf("got %v, want %v (eps %v)", got, want, eps)
	}
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireNonIncreasing fails t if any element exceeds its predecessor by
// more than eps.
func RequireNonIncreasing(t *testing.T, data []float64, eps float64) {
	t.Helper()
	for i := 1; i < len(data); i++ {
		if data[i] > data[i-1]+eps {
			t.Fatalf("index %d: %v rises above previous %v", i, data[i], data[i-1])
		}
	}
}

// RequireNonDecreasing fails t if any element falls below its predecessor
// by more than eps.
func RequireNonDecreasing(t *testing.T, data []float64, eps float64) {
	t.Helper()
	for i := 1; i < len(data); i++ {
		if data[i] < data[i-1]-eps {
			t.Fatalf("index %d: %v falls below previous %v", i, data[i], data[i-1])
		}
	}
}

// RequireWithin fails t if any element lies outside [lo, hi].
func RequireWithin(t *testing.T, data []float64, lo, hi float64) {
	t.Helper()
	for i, v := range data {
		if !(v >= lo && v <= hi) {
			t.Fatalf("index %d: %v outside [%v, %v]", i, v, lo, hi)
		}
	}
}

// Sweep returns n evenly spaced values from lo to hi inclusive.
func Sweep(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	out[n-1] = hi
	return out
}

// Map applies f to each element of in.
func Map(in []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}
