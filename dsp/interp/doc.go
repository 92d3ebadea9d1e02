// Package interp provides the scalar interpolation curves shared by the
// spatial gain and filter models.
//
// Available curves:
//
//   - [Lerp]:    straight-line blend
//   - [LerpExp]: power-shaped blend, emphasising the start of the range
//   - [LerpLog]: logarithmic blend, emphasising the end of the range
//   - [Scale]:   remap a value from one range onto another
//
// Building with the fastmath tag swaps the power and logarithm
// evaluations for the approximations from algo-approx. Curve endpoints
// stay exact; interior points carry a relative error of a few 1e-5.
// Run the tests under both builds:
//
//	go test ./...
//	go test -tags fastmath ./...
package interp
