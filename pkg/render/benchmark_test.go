package render

import (
	"testing"

	"github.com/taigrr/sectorcam/pkg/math3d"
)

// BenchmarkProjectTriangle benchmarks the camera transform, clip and
// projection of a triangle fully in front of the camera.
func BenchmarkProjectTriangle(b *testing.B) {
	proj := newTestProjector(b, DefaultViewport())
	tri := NewTriangle3D(math3d.V3(-1, -1, -4), math3d.V3(1, -1, -4), math3d.V3(0, 1, -4))
	pose := Pose{Position: math3d.V3(0.5, 0, 1), Yaw: 12}
	dst := make([]Triangle2D, 0, 2)

	for b.Loop() {
		dst = proj.AppendProjected(dst[:0], tri, pose)
	}
}

// BenchmarkProjectTriangleClipped benchmarks a triangle straddling the
// near plane, which takes two plane intersections.
func BenchmarkProjectTriangleClipped(b *testing.B) {
	proj := newTestProjector(b, DefaultViewport())
	tri := NewTriangle3D(math3d.V3(-1, -1, -4), math3d.V3(1, -1, -4), math3d.V3(0, 1, 2))
	dst := make([]Triangle2D, 0, 2)

	for b.Loop() {
		dst = proj.AppendProjected(dst[:0], tri, Pose{})
	}
}

func BenchmarkFillSolid(b *testing.B) {
	fb := NewFramebuffer(320, 180)
	tri := tri2(10, 5, 300, 60, 120, 170)

	for b.Loop() {
		if err := FillSolid(tri, 0, 0, ColorWall, fb); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFillShaded(b *testing.B) {
	fb := NewFramebuffer(320, 180)
	tri := tri2(10, 5, 300, 60, 120, 170)

	for b.Loop() {
		FillShaded(tri, 0, 0, ColorWall, fb)
	}
}

func BenchmarkFillWireframe(b *testing.B) {
	fb := NewFramebuffer(320, 180)
	tri := tri2(10, 5, 300, 60, 120, 170)

	for b.Loop() {
		FillWireframe(tri, 0, 0, fb)
	}
}

// BenchmarkRenderFrame benchmarks a full frame of 32 wall triangles.
func BenchmarkRenderFrame(b *testing.B) {
	fb := NewFramebuffer(320, 180)
	proj := newTestProjector(b, Viewport{Width: 320, Height: 180, FOV: 0.73})
	r := NewRenderer(proj, fb)

	var tris []Triangle3D
	for i := range 32 {
		x := float64(i%8) - 4
		z := -float64(i/8) - 3
		tri := NewTriangle3D(math3d.V3(x, 1, z), math3d.V3(x, -1, z), math3d.V3(x+1, 1, z-1))
		tri.SetColor(ColorWall)
		tris = append(tris, tri)
	}

	for b.Loop() {
		fb.Clear(ColorBlack)
		if _, err := r.Render(tris, Pose{}); err != nil {
			b.Fatal(err)
		}
	}
}
