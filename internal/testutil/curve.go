//go:build !fastmath

package testutil

// CurveEps is the absolute tolerance for exact values of the power and
// logarithm shaped curves.
const CurveEps = 1e-12
