package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1) {
		t.Fatal("1 should be finite")
	}
	if IsFinite(math.NaN()) || IsFinite(math.Inf(1)) || IsFinite(math.Inf(-1)) {
		t.Fatal("NaN and Inf should not be finite")
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-6)
	db := LinearToDB(linear)
	if !NearlyEqual(db, -6, 1e-10) {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestZeroGainFloor(t *testing.T) {
	if ZeroGain <= 0 || ZeroGain >= 1e-4 {
		t.Fatalf("ZeroGain = %v, want a small positive floor", ZeroGain)
	}
	if !NearlyEqual(LinearToDB(ZeroGain), ZeroGainDB, 1e-9) {
		t.Fatalf("ZeroGain is %v dB, want %v", LinearToDB(ZeroGain), ZeroGainDB)
	}
}

func TestSmoothingCoefficient(t *testing.T) {
	if got := SmoothingCoefficient(0, 48000); got != 0 {
		t.Fatalf("zero time coefficient = %v, want 0", got)
	}

	c := SmoothingCoefficient(0.01, 48000)
	if c <= 0 || c >= 1 {
		t.Fatalf("coefficient = %v, want in (0,1)", c)
	}

	// After one time constant the remaining distance is 1/e.
	remaining := math.Pow(c, 0.01*48000)
	if !NearlyEqual(remaining, math.Exp(-1), 1e-9) {
		t.Fatalf("remaining after tau = %v, want %v", remaining, math.Exp(-1))
	}
}

func TestFlushDenormals(t *testing.T) {
	if FlushDenormals(1e-35) != 0 {
		t.Fatal("expected tiny value to be flushed")
	}
	if FlushDenormals(1e-3) != 1e-3 {
		t.Fatal("expected regular value to pass through")
	}
}

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]float64, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}

	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}

	if got := EnsureLen(buf, 16); len(got) != 16 {
		t.Fatalf("len = %d, want 16", len(got))
	}
}
