// Package geom provides the immutable vector and unit-quaternion value
// types used by the spatial packages.
//
// Axis convention: +Z is forward, +Y is up and +X is right. An identity
// orientation therefore faces +Z.
//
// All operations return new values; degenerate inputs (zero vectors,
// zero quaternions) short-circuit to zero or identity instead of
// producing NaN.
package geom
