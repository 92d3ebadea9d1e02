// Package physics integrates the position and orientation of listener and
// emitter bodies once per frame.
package physics

import (
	"math"

	"github.com/cwbudde/algo-spatial/spatial/geom"
)

// Body is a physical entity with a transform and its rates of change.
//
// AngularVelocity is the rotation covered in one second. Body is not
// thread-safe.
type Body struct {
	Position        geom.Vector3d
	Orientation     geom.Quaternion
	Velocity        geom.Vector3d
	AngularVelocity geom.Quaternion
}

// NewBody returns a body at the origin, facing forward, at rest.
func NewBody() *Body {
	return &Body{
		Orientation:     geom.Identity(),
		AngularVelocity: geom.Identity(),
	}
}

// ResetPhysics zeroes velocity and sets angular velocity to identity.
// The transform is left where it is.
func (b *Body) ResetPhysics() {
	b.Velocity = geom.Vector3d{}
	b.AngularVelocity = geom.Identity()
}

// UpdatePhysics advances the body by delta seconds.
// A zero, negative or non-finite delta leaves the body unchanged.
func (b *Body) UpdatePhysics(delta float64) {
	if !(delta > 0) || math.IsInf(delta, 0) {
		return
	}

	if !b.AngularVelocity.IsIdentity() && !b.AngularVelocity.IsZero() {
		b.rotate(delta)
	}

	if !b.Velocity.IsZero() {
		b.Position = b.Position.Add(b.Velocity.Scale(delta))
	}
}

// rotate applies delta seconds of angular velocity. Whole seconds are
// applied as full turns so dropped-frame recovery steps above one second
// keep their angle.
func (b *Body) rotate(delta float64) {
	turns := math.Ceil(delta) - 1
	if turns > 0 {
		b.Orientation = b.Orientation.Multiply(power(b.AngularVelocity, uint64(turns)))
		delta -= turns
	}

	step := b.AngularVelocity.LerpFrom(geom.Identity(), delta)
	b.Orientation = b.Orientation.Multiply(step)
}

// power composes q with itself n times by repeated squaring.
func power(q geom.Quaternion, n uint64) geom.Quaternion {
	r := geom.Identity()
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			r = r.Multiply(q)
		}
		q = q.Multiply(q)
	}
	return r.Normalize()
}

// Euler returns the unit vector the body faces.
func (b *Body) Euler() geom.Vector3d {
	return b.Orientation.Forward()
}

// Right returns the unit vector pointing to the body's right.
func (b *Body) Right() geom.Vector3d {
	return b.Orientation.Right()
}

// Transform is a position and orientation snapshot of a body.
type Transform struct {
	Position    geom.Vector3d   `yaml:"position"`
	Orientation geom.Quaternion `yaml:"orientation"`
	Velocity    geom.Vector3d   `yaml:"velocity"`
	Angular     geom.Quaternion `yaml:"angularVelocity"`
}

// Snapshot captures the body's current state.
func (b *Body) Snapshot() Transform {
	return Transform{
		Position:    b.Position,
		Orientation: b.Orientation,
		Velocity:    b.Velocity,
		Angular:     b.AngularVelocity,
	}
}

// Restore replaces the body's state with t. Orientations are normalized.
func (b *Body) Restore(t Transform) {
	b.Position = t.Position
	b.Orientation = t.Orientation.Normalize()
	b.Velocity = t.Velocity
	b.AngularVelocity = t.Angular.Normalize()
}
