// Package math3d provides the vector primitives used by the sectorcam
// rasterizer: value-type 2D/3D vectors, the yaw-only camera transform and
// segment/plane intersection.
package math3d

import "math"

// PlaneEpsilon pushes a clipped point strictly past the clip plane so that
// floating-point error cannot put it back on the wrong side.
const PlaneEpsilon = 0.001

// Vec3 represents a 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// V3 creates a new Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Zero3 returns the zero vector.
func Zero3() Vec3 {
	return Vec3{}
}

// NearPlaneNormal returns the normal of the camera near plane (0, 0, -1).
// The visible half-space is z < 0.
func NearPlaneNormal() Vec3 {
	return Vec3{0, 0, -1}
}

// Add returns the vector sum a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns the vector difference a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Negate returns the negated vector.
func (a Vec3) Negate() Vec3 {
	return Vec3{-a.X, -a.Y, -a.Z}
}

// Scale returns the scalar product a * s.
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

// Div returns the scalar division a / s.
func (a Vec3) Div(s float64) Vec3 {
	return Vec3{a.X / s, a.Y / s, a.Z / s}
}

// Dot returns the dot product a · b.
func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the length (magnitude) of the vector.
func (a Vec3) Len() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
}

// Unit returns the unit vector in the same direction.
// ok is false for the zero vector, which has no direction.
func (a Vec3) Unit() (u Vec3, ok bool) {
	l := a.Len()
	if l == 0 {
		return Vec3{}, false
	}
	return Vec3{a.X / l, a.Y / l, a.Z / l}, true
}

// Min returns the component-wise minimum.
func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{
		math.Min(a.X, b.X),
		math.Min(a.Y, b.Y),
		math.Min(a.Z, b.Z),
	}
}

// Max returns the component-wise maximum.
func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{
		math.Max(a.X, b.X),
		math.Max(a.Y, b.Y),
		math.Max(a.Z, b.Z),
	}
}

// XY drops the Z component.
func (a Vec3) XY() Vec2 {
	return Vec2{a.X, a.Y}
}

// ToCameraView maps a world-space point into camera space for a camera at
// camPos turned yawDeg degrees about the Y axis. The point is translated
// first, then rotated by -yaw. Any real-valued yaw is accepted.
func (a Vec3) ToCameraView(camPos Vec3, yawDeg float64) Vec3 {
	x := a.X - camPos.X
	y := a.Y - camPos.Y
	z := a.Z - camPos.Z

	sin, cos := math.Sincos(yawDeg * math.Pi / 180)
	return Vec3{
		X: cos*x - sin*z,
		Y: y,
		Z: cos*z + sin*x,
	}
}

// FromCameraView is the inverse of ToCameraView.
func (a Vec3) FromCameraView(camPos Vec3, yawDeg float64) Vec3 {
	sin, cos := math.Sincos(yawDeg * math.Pi / 180)
	return Vec3{
		X: cos*a.X + sin*a.Z + camPos.X,
		Y: a.Y + camPos.Y,
		Z: cos*a.Z - sin*a.X + camPos.Z,
	}
}

// IntersectPlane returns the point where the segment v1→v2 crosses the plane
// through the origin with the given normal, nudged PlaneEpsilon further along
// the segment toward v1. ok is false when the segment is degenerate
// (v1 == v2) or parallel to the plane.
func IntersectPlane(v1, v2, normal Vec3) (p Vec3, ok bool) {
	if v1 == v2 {
		return Vec3{}, false
	}
	dir, ok := v1.Sub(v2).Unit()
	if !ok {
		return Vec3{}, false
	}
	denom := dir.Dot(normal)
	if denom == 0 {
		return Vec3{}, false
	}
	distance := -(v2.Dot(normal) / denom)
	return v2.Add(dir.Scale(distance + PlaneEpsilon)), true
}
