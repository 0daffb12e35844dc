package math3d

import "math"

// Vec2 represents a 2D vector or a screen-space point.
type Vec2 struct {
	X, Y float64
}

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Add returns the vector sum a + b.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

// Sub returns the vector difference a - b.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Negate returns the negated vector.
func (a Vec2) Negate() Vec2 {
	return Vec2{-a.X, -a.Y}
}

// Scale returns the scalar product a * s.
func (a Vec2) Scale(s float64) Vec2 {
	return Vec2{a.X * s, a.Y * s}
}

// Div returns the scalar division a / s.
func (a Vec2) Div(s float64) Vec2 {
	return Vec2{a.X / s, a.Y / s}
}

// Offset returns a translated by (dx, dy).
func (a Vec2) Offset(dx, dy float64) Vec2 {
	return Vec2{a.X + dx, a.Y + dy}
}

// Slope returns the inverse slope dx/dy from a to b.
// Scanline walkers step in y and need x-per-y, not y-per-x.
// The result is infinite or NaN when a.Y == b.Y.
func (a Vec2) Slope(b Vec2) float64 {
	return (b.X - a.X) / (b.Y - a.Y)
}

// SetX sets the X component in place.
func (a *Vec2) SetX(x float64) {
	a.X = x
}

// SetY sets the Y component in place.
func (a *Vec2) SetY(y float64) {
	a.Y = y
}

// IsFinite reports whether both components are finite.
func (a Vec2) IsFinite() bool {
	return !math.IsNaN(a.X) && !math.IsInf(a.X, 0) &&
		!math.IsNaN(a.Y) && !math.IsInf(a.Y, 0)
}
