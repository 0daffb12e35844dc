package render

import (
	"math"

	"github.com/taigrr/sectorcam/pkg/math3d"
)

// Triangle3D is a world-space triangle with one flat color.
// Scenes build them once; the renderer only reads them.
type Triangle3D struct {
	V     [3]math3d.Vec3
	Color Color
}

// NewTriangle3D creates a white world-space triangle.
func NewTriangle3D(v0, v1, v2 math3d.Vec3) Triangle3D {
	return Triangle3D{
		V:     [3]math3d.Vec3{v0, v1, v2},
		Color: ColorWhite,
	}
}

// SetColor sets the triangle's flat color. Meant for scene construction.
func (t *Triangle3D) SetColor(c Color) {
	t.Color = c
}

// Area returns the triangle's area.
func (t Triangle3D) Area() float64 {
	return triangleArea3(t.V[0], t.V[1], t.V[2])
}

func triangleArea3(a, b, c math3d.Vec3) float64 {
	return b.Sub(a).Cross(c.Sub(a)).Len() / 2
}

// Triangle2D is a screen-space triangle. It carries no color; fills take
// the color separately. Recreated every frame.
type Triangle2D struct {
	V [3]math3d.Vec2
}

// NewTriangle2D creates a screen-space triangle.
func NewTriangle2D(v0, v1, v2 math3d.Vec2) Triangle2D {
	return Triangle2D{V: [3]math3d.Vec2{v0, v1, v2}}
}

// SetVert replaces vertex i (0, 1 or 2).
func (t *Triangle2D) SetVert(i int, x, y float64) {
	t.V[i].SetX(x)
	t.V[i].SetY(y)
}

// Sort returns a copy with vertices ordered by non-decreasing y.
// Ties keep their original order, so sorting is idempotent.
func (t Triangle2D) Sort() Triangle2D {
	v := t.V
	if v[1].Y < v[0].Y {
		v[0], v[1] = v[1], v[0]
	}
	if v[2].Y < v[1].Y {
		v[1], v[2] = v[2], v[1]
		if v[1].Y < v[0].Y {
			v[0], v[1] = v[1], v[0]
		}
	}
	return Triangle2D{V: v}
}

// Split decomposes the triangle into two triangles that each have one
// horizontal edge: the upper one ends on the middle vertex's row, the lower
// one starts there. A triangle with no height yields two zero-height halves.
func (t Triangle2D) Split() (upper, lower Triangle2D) {
	s := t.Sort()
	v0, m, v2 := s.V[0], s.V[1], s.V[2]

	newX := m.X
	if v2.Y != v0.Y {
		newX = (m.Y-v0.Y)*v0.Slope(v2) + v0.X
	}
	cut := math3d.V2(newX, m.Y)

	return NewTriangle2D(v0, m, cut), NewTriangle2D(m, cut, v2)
}

// Offset returns the triangle translated by (dx, dy).
func (t Triangle2D) Offset(dx, dy float64) Triangle2D {
	return NewTriangle2D(t.V[0].Offset(dx, dy), t.V[1].Offset(dx, dy), t.V[2].Offset(dx, dy))
}

// Area returns the triangle's unsigned area.
func (t Triangle2D) Area() float64 {
	a, b, c := t.V[0], t.V[1], t.V[2]
	return math.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) / 2
}

// IsFinite reports whether every coordinate is finite.
func (t Triangle2D) IsFinite() bool {
	return t.V[0].IsFinite() && t.V[1].IsFinite() && t.V[2].IsFinite()
}
