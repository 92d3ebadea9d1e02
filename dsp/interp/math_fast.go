//go:build fastmath

package interp

import (
	"github.com/meko-christian/algo-approx"
)

// mathPow computes x^y as exp(y*ln(x)) using fast approximations.
// Only called with x > 0.
func mathPow(x, y float64) float64 {
	if x == 1 || y == 0 {
		return 1
	}
	return approx.FastExp(y * approx.FastLog(x))
}

// mathLog computes ln(x) using fast approximation.
func mathLog(x float64) float64 {
	return approx.FastLog(x)
}
