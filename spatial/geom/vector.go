package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector3d is an immutable 3D vector.
type Vector3d struct {
	X, Y, Z float64
}

// Axis unit vectors.
var (
	Forward = Vector3d{Z: 1}
	Right   = Vector3d{X: 1}
	Up      = Vector3d{Y: 1}
)

// Vec returns the vector (x, y, z).
func Vec(x, y, z float64) Vector3d {
	return Vector3d{X: x, Y: y, Z: z}
}

func fromMgl(v mgl64.Vec3) Vector3d {
	return Vector3d{X: v[0], Y: v[1], Z: v[2]}
}

func (v Vector3d) mgl() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// IsZero reports whether all components are exactly zero.
func (v Vector3d) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Add returns v + o.
func (v Vector3d) Add(o Vector3d) Vector3d {
	return Vector3d{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Subtract returns v - o.
func (v Vector3d) Subtract(o Vector3d) Vector3d {
	return Vector3d{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v multiplied by factor.
func (v Vector3d) Scale(factor float64) Vector3d {
	return Vector3d{X: v.X * factor, Y: v.Y * factor, Z: v.Z * factor}
}

// Multiply returns the component-wise product of v and o.
func (v Vector3d) Multiply(o Vector3d) Vector3d {
	return Vector3d{X: v.X * o.X, Y: v.Y * o.Y, Z: v.Z * o.Z}
}

// DotProduct returns the 3-vector dot product of v and o.
func (v Vector3d) DotProduct(o Vector3d) float64 {
	return v.mgl().Dot(o.mgl())
}

// CrossProduct returns v × o.
func (v Vector3d) CrossProduct(o Vector3d) Vector3d {
	return fromMgl(v.mgl().Cross(o.mgl()))
}

// Distance returns the Euclidean norm of v, its distance to the origin.
func (v Vector3d) Distance() float64 {
	return v.mgl().Len()
}

// DistanceTo returns the Euclidean distance between v and o.
func (v Vector3d) DistanceTo(o Vector3d) float64 {
	return v.Subtract(o).Distance()
}

// Normalize returns the unit vector pointing along v.
// The zero vector normalizes to itself.
func (v Vector3d) Normalize() Vector3d {
	l := v.Distance()
	if l == 0 || math.IsNaN(l) {
		return Vector3d{}
	}
	return v.Scale(1 / l)
}

// Rotate returns v rotated by q.
func (v Vector3d) Rotate(q Quaternion) Vector3d {
	return fromMgl(q.mgl().Rotate(v.mgl()))
}

// ApproxEqual reports whether every component of v and o differs by at most eps.
func (v Vector3d) ApproxEqual(o Vector3d, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps && math.Abs(v.Z-o.Z) <= eps
}
