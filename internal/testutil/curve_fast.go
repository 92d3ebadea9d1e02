//go:build fastmath

package testutil

// CurveEps is the absolute tolerance for exact values of the power and
// logarithm shaped curves. The fastmath approximations carry a relative
// error of a few 1e-5.
const CurveEps = 1e-4
