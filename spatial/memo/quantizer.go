package memo

import "math"

// Quantizer maps continuous values onto integer grid keys.
type Quantizer struct {
	// Step is the grid spacing. A non-positive step disables quantization
	// beyond rounding to the nearest integer.
	Step float64
}

// Key returns the index of the grid cell nearest to v.
// NaN maps to 0.
func (q Quantizer) Key(v float64) int64 {
	if q.Step > 0 {
		v /= q.Step
	}

	r := math.Round(v)
	switch {
	case math.IsNaN(r):
		return 0
	case r >= math.MaxInt64:
		return math.MaxInt64
	case r <= math.MinInt64:
		return math.MinInt64
	}

	return int64(r)
}

// Snap returns v rounded onto the grid.
func (q Quantizer) Snap(v float64) float64 {
	if q.Step > 0 {
		return float64(q.Key(v)) * q.Step
	}
	return float64(q.Key(v))
}
