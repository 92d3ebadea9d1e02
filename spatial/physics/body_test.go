package physics

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-spatial/spatial/geom"
)

func movingBody() *Body {
	b := NewBody()
	b.Position = geom.Vec(1, 2, 3)
	b.Orientation = geom.FromEuler(0.3, 0, 0)
	b.Velocity = geom.Vec(2, 0, -1)
	b.AngularVelocity = geom.FromAxisAngle(geom.Up, math.Pi/2)
	return b
}

func TestNewBodyDefaults(t *testing.T) {
	b := NewBody()
	if !b.Position.IsZero() || !b.Velocity.IsZero() {
		t.Fatalf("position=%v velocity=%v, want zero", b.Position, b.Velocity)
	}
	if !b.Orientation.IsIdentity() || !b.AngularVelocity.IsIdentity() {
		t.Fatalf("orientation=%v angular=%v, want identity", b.Orientation, b.AngularVelocity)
	}
}

func TestUpdatePhysicsZeroDeltaIsNoop(t *testing.T) {
	b := movingBody()
	before := b.Snapshot()

	b.UpdatePhysics(0)

	if b.Position != before.Position || b.Orientation != before.Orientation {
		t.Fatalf("UpdatePhysics(0) changed state: %+v -> %+v", before, b.Snapshot())
	}
}

func TestUpdatePhysicsInvalidDeltaIgnored(t *testing.T) {
	for _, delta := range []float64{-1, math.NaN(), math.Inf(1)} {
		b := movingBody()
		before := b.Snapshot()
		b.UpdatePhysics(delta)
		if b.Snapshot() != before {
			t.Fatalf("UpdatePhysics(%v) changed state", delta)
		}
	}
}

func TestUpdatePhysicsIntegratesPosition(t *testing.T) {
	b := NewBody()
	b.Velocity = geom.Vec(2, 0, -1)

	b.UpdatePhysics(0.5)

	if want := geom.Vec(1, 0, -0.5); !b.Position.ApproxEqual(want, 1e-12) {
		t.Fatalf("position = %v, want %v", b.Position, want)
	}
}

func TestUpdatePhysicsIntegratesOrientation(t *testing.T) {
	b := NewBody()
	b.AngularVelocity = geom.FromAxisAngle(geom.Up, math.Pi/2)

	// Sixty ticks of one sixtieth of a second make a quarter turn.
	for range 60 {
		b.UpdatePhysics(1.0 / 60)
	}

	if got := b.Euler(); !got.ApproxEqual(geom.Right, 1e-9) {
		t.Fatalf("forward after 1s = %v, want %v", got, geom.Right)
	}
}

func TestUpdatePhysicsLargeDelta(t *testing.T) {
	b := NewBody()
	b.AngularVelocity = geom.FromAxisAngle(geom.Up, math.Pi/2)

	b.UpdatePhysics(2)

	if got := b.Euler(); !got.ApproxEqual(geom.Forward.Scale(-1), 1e-9) {
		t.Fatalf("forward after 2s = %v, want -Z", got)
	}
	if l := b.Orientation.Length(); math.Abs(l-1) > 1e-12 {
		t.Fatalf("orientation length = %v, want 1", l)
	}
}

func TestResetPhysics(t *testing.T) {
	b := movingBody()
	pos := b.Position

	b.ResetPhysics()

	if !b.Velocity.IsZero() || !b.AngularVelocity.IsIdentity() {
		t.Fatalf("velocity=%v angular=%v after reset", b.Velocity, b.AngularVelocity)
	}
	if b.Position != pos {
		t.Fatalf("reset moved the body: %v -> %v", pos, b.Position)
	}

	b.UpdatePhysics(1)
	if b.Position != pos {
		t.Fatalf("body at rest moved: %v -> %v", pos, b.Position)
	}
}

func TestSnapshotRestore(t *testing.T) {
	a := movingBody()
	b := NewBody()

	b.Restore(a.Snapshot())

	if b.Snapshot() != a.Snapshot() {
		t.Fatalf("restore mismatch: %+v vs %+v", b.Snapshot(), a.Snapshot())
	}
}

func TestUpdatePhysicsWholeTurns(t *testing.T) {
	b := NewBody()
	b.AngularVelocity = geom.FromAxisAngle(geom.Up, math.Pi/2)

	// 1000.5 s: 1000 quarter turns come back to forward, the half second adds 45°.
	b.UpdatePhysics(1000.5)

	want := geom.FromAxisAngle(geom.Up, math.Pi/4).Forward()
	if got := b.Euler(); !got.ApproxEqual(want, 1e-9) {
		t.Fatalf("forward after 1000.5s = %v, want %v", got, want)
	}
}
