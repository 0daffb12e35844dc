package render

import (
	"testing"

	"github.com/taigrr/sectorcam/pkg/math3d"
)

func TestProjectSegment(t *testing.T) {
	proj := newTestProjector(t, Viewport{Width: 64, Height: 64, FOV: 0.73})
	g := NewGuides(proj, NewFramebuffer(64, 64))

	t.Run("in front", func(t *testing.T) {
		p1, p2 := math3d.V3(-1, 0, -3), math3d.V3(1, 0, -3)
		a, b, ok := g.ProjectSegment(p1, p2, Pose{})
		if !ok {
			t.Fatal("segment in front rejected")
		}
		if a != proj.Project(p1).XY() || b != proj.Project(p2).XY() {
			t.Errorf("got %v %v, want direct projection", a, b)
		}
	})

	t.Run("behind", func(t *testing.T) {
		if _, _, ok := g.ProjectSegment(math3d.V3(0, 0, 1), math3d.V3(1, 0, 4), Pose{}); ok {
			t.Error("segment behind the camera accepted")
		}
	})

	t.Run("crossing", func(t *testing.T) {
		for _, pts := range [][2]math3d.Vec3{
			{math3d.V3(1, 1, -5), math3d.V3(1, 1, 5)},
			{math3d.V3(1, 1, 5), math3d.V3(1, 1, -5)},
		} {
			a, b, ok := g.ProjectSegment(pts[0], pts[1], Pose{})
			if !ok {
				t.Fatalf("crossing segment %v rejected", pts)
			}
			if !a.IsFinite() || !b.IsFinite() {
				t.Errorf("crossing segment projected to %v %v", a, b)
			}
		}
	})
}

func TestGuidesDraw(t *testing.T) {
	proj := newTestProjector(t, Viewport{Width: 64, Height: 64, FOV: 0.73})
	fb := NewFramebuffer(64, 64)
	g := NewGuides(proj, fb)

	g.DrawGrid(math3d.V3(0, 0, -10), 10, 1, 1, Pose{}, ColorWall)
	if countColor(fb, ColorWall) == 0 {
		t.Error("grid in front of the camera drew nothing")
	}

	g.DrawBox(math3d.V3(-1, -1, -6), math3d.V3(1, 1, -4), Pose{}, ColorGreen)
	if countColor(fb, ColorGreen) == 0 {
		t.Error("box in front of the camera drew nothing")
	}

	fb.Clear(ColorBlack)
	g.DrawBox(math3d.V3(-1, -1, 4), math3d.V3(1, 1, 6), Pose{}, ColorGreen)
	g.DrawAxes(1, Pose{Position: math3d.V3(0, 0, -5)})
	if countColor(fb, ColorGreen) != 0 {
		t.Error("box behind the camera drew pixels")
	}
}
