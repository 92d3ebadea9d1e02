package geom

import (
	"math"
	"testing"
)

const eps = 1e-12

func TestVectorDistance(t *testing.T) {
	v := Vec(3, 4, 0)
	if got := v.Distance(); got != 5 {
		t.Fatalf("Distance() = %v, want 5", got)
	}
	if got := v.DistanceTo(Vec(3, 4, 12)); got != 12 {
		t.Fatalf("DistanceTo() = %v, want 12", got)
	}
	if got := (Vector3d{}).Distance(); got != 0 {
		t.Fatalf("zero Distance() = %v, want 0", got)
	}
}

func TestVectorDotAndScale(t *testing.T) {
	a := Vec(1, 2, 3)
	b := Vec(4, -5, 6)
	if got := a.DotProduct(b); got != 12 {
		t.Fatalf("DotProduct() = %v, want 12", got)
	}
	if got := a.Scale(2); got != Vec(2, 4, 6) {
		t.Fatalf("Scale() = %v, want {2 4 6}", got)
	}
	if got := a.Add(b).Subtract(b); got != a {
		t.Fatalf("Add/Subtract round trip = %v, want %v", got, a)
	}
	if got := a.Multiply(b); got != Vec(4, -10, 18) {
		t.Fatalf("Multiply() = %v", got)
	}
}

func TestVectorImmutable(t *testing.T) {
	a := Vec(1, 1, 1)
	_ = a.Scale(10)
	_ = a.Add(Vec(5, 5, 5))
	if a != Vec(1, 1, 1) {
		t.Fatalf("receiver mutated: %v", a)
	}
}

func TestVectorNormalize(t *testing.T) {
	n := Vec(0, 0, 10).Normalize()
	if !n.ApproxEqual(Forward, eps) {
		t.Fatalf("Normalize() = %v, want %v", n, Forward)
	}

	zero := Vector3d{}
	if got := zero.Normalize(); !got.IsZero() {
		t.Fatalf("zero Normalize() = %v, want zero", got)
	}
	if math.IsNaN(zero.Normalize().X) {
		t.Fatal("zero Normalize() produced NaN")
	}
}

func TestVectorCrossProduct(t *testing.T) {
	if got := Right.CrossProduct(Up); !got.ApproxEqual(Forward, eps) {
		t.Fatalf("Right x Up = %v, want %v", got, Forward)
	}
}

func TestIsZero(t *testing.T) {
	if !(Vector3d{}).IsZero() {
		t.Fatal("zero vector not detected")
	}
	if Vec(0, 1e-300, 0).IsZero() {
		t.Fatal("non-zero vector reported zero")
	}
}
