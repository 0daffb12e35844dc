package render

import (
	"github.com/taigrr/sectorcam/pkg/math3d"
)

// Guides draws world-space reference lines (floor grid, boxes, axes) over a
// frame. Segments are clipped against the near plane like triangles are.
type Guides struct {
	proj    *Projector
	surface LineSurface
}

// NewGuides creates a guide drawer.
func NewGuides(proj *Projector, surface LineSurface) *Guides {
	return &Guides{proj: proj, surface: surface}
}

// ProjectSegment clips the world-space segment p1-p2 against the near plane
// as seen from pose and projects what is left. It reports false when
// nothing of the segment is in front of the camera.
func (g *Guides) ProjectSegment(p1, p2 math3d.Vec3, pose Pose) (a, b math3d.Vec2, ok bool) {
	c1 := pose.ToCameraView(p1)
	c2 := pose.ToCameraView(p2)

	behind1, behind2 := c1.Z >= 0, c2.Z >= 0
	switch {
	case behind1 && behind2:
		return a, b, false
	case behind1:
		if c1, ok = math3d.IntersectPlane(c2, c1, math3d.NearPlaneNormal()); !ok {
			return a, b, false
		}
	case behind2:
		if c2, ok = math3d.IntersectPlane(c1, c2, math3d.NearPlaneNormal()); !ok {
			return a, b, false
		}
	}
	a, b = g.proj.projectXY(c1), g.proj.projectXY(c2)
	return a, b, a.IsFinite() && b.IsFinite()
}

// DrawLine3D draws a world-space segment.
func (g *Guides) DrawLine3D(p1, p2 math3d.Vec3, pose Pose, color Color) {
	a, b, ok := g.ProjectSegment(p1, p2, pose)
	if !ok {
		return
	}
	g.surface.DrawLine(toPixel(a.X), toPixel(a.Y), toPixel(b.X), toPixel(b.Y), color)
}

// DrawBox draws the edges of the axis-aligned box spanning lo to hi.
func (g *Guides) DrawBox(lo, hi math3d.Vec3, pose Pose, color Color) {
	corners := [8]math3d.Vec3{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
	}

	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0}, // low z face
		{4, 5}, {5, 6}, {6, 7}, {7, 4}, // high z face
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	for _, e := range edges {
		g.DrawLine3D(corners[e[0]], corners[e[1]], pose, color)
	}
}

// DrawAxes draws the world axes from the origin in red, green and blue.
func (g *Guides) DrawAxes(length float64, pose Pose) {
	origin := math3d.Zero3()
	g.DrawLine3D(origin, math3d.V3(length, 0, 0), pose, ColorRed)
	g.DrawLine3D(origin, math3d.V3(0, length, 0), pose, ColorGreen)
	g.DrawLine3D(origin, math3d.V3(0, 0, length), pose, ColorBlue)
}

// DrawGrid draws a square grid on the plane y = level, centered on center.
func (g *Guides) DrawGrid(center math3d.Vec3, size, step, level float64, pose Pose, color Color) {
	if step <= 0 || size <= 0 {
		return
	}
	half := size / 2
	for d := -half; d <= half; d += step {
		g.DrawLine3D(
			math3d.V3(center.X+d, level, center.Z-half),
			math3d.V3(center.X+d, level, center.Z+half),
			pose, color)
		g.DrawLine3D(
			math3d.V3(center.X-half, level, center.Z+d),
			math3d.V3(center.X+half, level, center.Z+d),
			pose, color)
	}
}
