package math3d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(30)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec3(b *testing.B) {
	m := Placement(V3(1, 2, 3), 30, 2)
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = m.MulVec3(v)
	}
}

func BenchmarkVec3Unit(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_, _ = v.Unit()
	}
}

func BenchmarkToCameraView(b *testing.B) {
	p := V3(12, 1, -40)
	cam := V3(20, 2.5, 20)

	for b.Loop() {
		_ = p.ToCameraView(cam, 180)
	}
}

func BenchmarkIntersectPlane(b *testing.B) {
	front := V3(1, 2, -3)
	behind := V3(-2, 1, 4)
	n := NearPlaneNormal()

	for b.Loop() {
		_, _ = IntersectPlane(front, behind, n)
	}
}
