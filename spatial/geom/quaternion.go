package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Quaternion is an immutable unit quaternion describing an orientation or
// an angular displacement.
type Quaternion struct {
	W, X, Y, Z float64
}

// Identity returns the identity rotation {1, 0, 0, 0}.
func Identity() Quaternion {
	return Quaternion{W: 1}
}

func quatFromMgl(q mgl64.Quat) Quaternion {
	return Quaternion{W: q.W, X: q.V[0], Y: q.V[1], Z: q.V[2]}
}

func (q Quaternion) mgl() mgl64.Quat {
	return mgl64.Quat{W: q.W, V: mgl64.Vec3{q.X, q.Y, q.Z}}
}

// FromAxisAngle returns the rotation of angle radians about axis.
// A zero axis yields identity.
func FromAxisAngle(axis Vector3d, angle float64) Quaternion {
	n := axis.Normalize()
	if n.IsZero() {
		return Identity()
	}
	return quatFromMgl(mgl64.QuatRotate(angle, n.mgl()))
}

// FromEuler returns the orientation for yaw (about +Y), pitch (about +X)
// and roll (about +Z), applied in that order.
func FromEuler(yaw, pitch, roll float64) Quaternion {
	return quatFromMgl(mgl64.AnglesToQuat(yaw, pitch, roll, mgl64.YXZ)).Normalize()
}

// IsZero reports whether all components are exactly zero.
func (q Quaternion) IsZero() bool {
	return q.W == 0 && q.X == 0 && q.Y == 0 && q.Z == 0
}

// IsIdentity reports whether q is exactly the identity rotation.
func (q Quaternion) IsIdentity() bool {
	return q.W == 1 && q.X == 0 && q.Y == 0 && q.Z == 0
}

// Length returns the quaternion norm.
func (q Quaternion) Length() float64 {
	return q.mgl().Len()
}

// Normalize returns q scaled to unit length. The zero quaternion and
// non-finite inputs normalize to identity.
func (q Quaternion) Normalize() Quaternion {
	l := q.Length()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Identity()
	}
	return quatFromMgl(q.mgl().Normalize())
}

// Conjugate returns the inverse rotation of a unit quaternion.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Multiply returns the normalized Hamilton product q·o.
// The product is not commutative: o is applied in q's local frame.
func (q Quaternion) Multiply(o Quaternion) Quaternion {
	return quatFromMgl(q.mgl().Mul(o.mgl())).Normalize()
}

// LerpFrom spherically interpolates from origin toward q by fraction t.
// t <= 0 yields origin and t >= 1 yields q (normalized).
//
// With origin set to identity this converts a per-second angular velocity
// into the rotation covered in t seconds.
func (q Quaternion) LerpFrom(origin Quaternion, t float64) Quaternion {
	switch {
	case t <= 0:
		return origin.Normalize()
	case t >= 1:
		return q.Normalize()
	}
	return quatFromMgl(mgl64.QuatSlerp(origin.mgl(), q.mgl(), t)).Normalize()
}

// Forward returns the direction q faces.
func (q Quaternion) Forward() Vector3d {
	return Forward.Rotate(q)
}

// Right returns the direction to the right of q.
func (q Quaternion) Right() Vector3d {
	return Right.Rotate(q)
}

// Up returns the up direction of q.
func (q Quaternion) Up() Vector3d {
	return Up.Rotate(q)
}

// ApproxEqual reports whether every component of q and o differs by at most eps.
func (q Quaternion) ApproxEqual(o Quaternion, eps float64) bool {
	return math.Abs(q.W-o.W) <= eps && math.Abs(q.X-o.X) <= eps &&
		math.Abs(q.Y-o.Y) <= eps && math.Abs(q.Z-o.Z) <= eps
}

// SameOrientation reports whether q and o describe the same rotation
// within eps, treating q and -q as equal.
func (q Quaternion) SameOrientation(o Quaternion, eps float64) bool {
	return q.mgl().OrientationEqualThreshold(o.mgl(), eps)
}
