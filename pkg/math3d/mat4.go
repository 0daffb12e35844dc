package math3d

import "math"

// Mat4 is an affine transform used to place meshes and scenes in world
// space. Elements are column-major: row r, column c lives at index r+4*c, so
// the translation is m[12], m[13], m[14].
type Mat4 [16]float64

// at returns the element in row r, column c.
func (m Mat4) at(r, c int) float64 { return m[r+4*c] }

// Translate moves points by v.
func Translate(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		v.X, v.Y, v.Z, 1,
	}
}

// Scale scales each axis independently. A negative component mirrors that
// axis.
func Scale(v Vec3) Mat4 {
	return Mat4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

func ScaleUniform(s float64) Mat4 {
	return Scale(V3(s, s, s))
}

// RotateY turns points yawDeg degrees about the vertical axis, using the
// same sense as a camera yaw: +90 carries +X onto -Z.
func RotateY(yawDeg float64) Mat4 {
	s, c := math.Sincos(yawDeg * math.Pi / 180)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// Mul returns the transform that applies n first and then m.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for c := range 4 {
		for r := range 4 {
			out[r+4*c] = m.at(r, 0)*n.at(0, c) + m.at(r, 1)*n.at(1, c) +
				m.at(r, 2)*n.at(2, c) + m.at(r, 3)*n.at(3, c)
		}
	}
	return out
}

// MulVec3 transforms the point v. The bottom row is assumed to be 0 0 0 1,
// which holds for every matrix built in this package.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m.at(0, 0)*v.X + m.at(0, 1)*v.Y + m.at(0, 2)*v.Z + m.at(0, 3),
		m.at(1, 0)*v.X + m.at(1, 1)*v.Y + m.at(1, 2)*v.Z + m.at(1, 3),
		m.at(2, 0)*v.X + m.at(2, 1)*v.Y + m.at(2, 2)*v.Z + m.at(2, 3),
	}
}

// Placement returns the transform that scales uniformly, turns yawDeg
// degrees about Y and then moves to pos.
func Placement(pos Vec3, yawDeg, scale float64) Mat4 {
	return Translate(pos).Mul(RotateY(yawDeg)).Mul(ScaleUniform(scale))
}
