package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/sectorcam/pkg/math3d"
)

// ErrInvalidViewport is returned for viewports that cannot be projected to.
var ErrInvalidViewport = errors.New("invalid viewport")

// Viewport holds the fixed projection configuration.
type Viewport struct {
	Width  int     // Width in pixels
	Height int     // Height in pixels
	FOV    float64 // Vertical field of view in radians
}

// DefaultViewport returns the 1920x1080 desktop configuration.
func DefaultViewport() Viewport {
	return Viewport{Width: 1920, Height: 1080, FOV: 0.73}
}

// SquareViewport returns the 1024x1024 configuration.
func SquareViewport() Viewport {
	return Viewport{Width: 1024, Height: 1024, FOV: 0.73}
}

// Validate reports whether the viewport can be projected to.
func (v Viewport) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidViewport, v.Width, v.Height)
	}
	if v.FOV <= 0 || math.IsNaN(v.FOV) || math.IsInf(v.FOV, 0) {
		return fmt.Errorf("%w: field of view %v", ErrInvalidViewport, v.FOV)
	}
	return nil
}

// Projector maps camera-space points to screen space and turns world-space
// triangles into clipped screen-space triangles.
type Projector struct {
	viewport     Viewport
	halfW, halfH float64
	focal        float64
}

// NewProjector creates a projector for the given viewport.
func NewProjector(vp Viewport) (*Projector, error) {
	if err := vp.Validate(); err != nil {
		return nil, err
	}
	halfW := float64(vp.Width) / 2
	halfH := float64(vp.Height) / 2
	return &Projector{
		viewport: vp,
		halfW:    halfW,
		halfH:    halfH,
		focal:    1 / math.Tan(vp.FOV*halfH),
	}, nil
}

// Viewport returns the projector's configuration.
func (p *Projector) Viewport() Viewport {
	return p.viewport
}

// Project maps a camera-space point to screen coordinates. Z is carried
// through unchanged. The point should lie in front of the camera (z < 0);
// z == 0 produces non-finite coordinates.
func (p *Projector) Project(v math3d.Vec3) math3d.Vec3 {
	ex := p.halfW * v.X / v.Z
	ey := p.halfH * v.Y / v.Z
	k := p.focal / v.Z
	return math3d.V3(
		p.halfW+k*v.X-ex,
		p.halfH+k*v.Y-ey,
		v.Z,
	)
}

func (p *Projector) projectXY(v math3d.Vec3) math3d.Vec2 {
	return p.Project(v).XY()
}

// ProjectTriangle transforms a world-space triangle into camera space, clips
// it against the near plane and projects the result. It returns zero, one
// or two screen-space triangles; zero means the triangle is not renderable
// from this pose.
func (p *Projector) ProjectTriangle(tri Triangle3D, pose Pose) []Triangle2D {
	return p.AppendProjected(nil, tri, pose)
}

// AppendProjected is ProjectTriangle appending to dst, so a frame loop can
// reuse one slice.
func (p *Projector) AppendProjected(dst []Triangle2D, tri Triangle3D, pose Pose) []Triangle2D {
	cam := [3]math3d.Vec3{
		pose.ToCameraView(tri.V[0]),
		pose.ToCameraView(tri.V[1]),
		pose.ToCameraView(tri.V[2]),
	}
	clipped, n := clipNear(cam)
	for i := range n {
		c := clipped[i]
		dst = append(dst, NewTriangle2D(p.projectXY(c[0]), p.projectXY(c[1]), p.projectXY(c[2])))
	}
	return dst
}

// sortByZ orders camera-space vertices by ascending z, deepest in front of
// the camera first. Ties keep their original order.
func sortByZ(v [3]math3d.Vec3) [3]math3d.Vec3 {
	if v[1].Z < v[0].Z {
		v[0], v[1] = v[1], v[0]
	}
	if v[2].Z < v[1].Z {
		v[1], v[2] = v[2], v[1]
		if v[1].Z < v[0].Z {
			v[0], v[1] = v[1], v[0]
		}
	}
	return v
}

// clipNear clips a camera-space triangle against the plane z = 0, keeping
// the z <= 0 side. It returns up to two triangles lying entirely in front of
// the camera.
func clipNear(cam [3]math3d.Vec3) (out [2][3]math3d.Vec3, n int) {
	s := sortByZ(cam)
	v0, v1, v2 := s[0], s[1], s[2]

	switch {
	case v2.Z <= 0:
		// Nothing behind the plane; keep the caller's winding.
		out[0] = cam
		return out, 1

	case v0.Z > 0:
		return out, 0

	case v1.Z <= 0:
		// Only v2 is behind: the visible part is the quad v0, v1, b, a.
		if v1.Y < v0.Y {
			v0, v1 = v1, v0
		}
		normal := math3d.NearPlaneNormal()
		a, okA := math3d.IntersectPlane(v0, v2, normal)
		b, okB := math3d.IntersectPlane(v1, v2, normal)
		if !okA || !okB {
			return out, 0
		}
		out[0] = [3]math3d.Vec3{v0, v1, b}
		out[1] = [3]math3d.Vec3{v0, b, a}
		return out, 2

	default:
		// v1 and v2 are behind; only the tip around v0 survives.
		normal := math3d.NearPlaneNormal()
		a, okA := math3d.IntersectPlane(v0, v1, normal)
		b, okB := math3d.IntersectPlane(v0, v2, normal)
		if !okA || !okB {
			return out, 0
		}
		out[0] = [3]math3d.Vec3{v0, a, b}
		return out, 1
	}
}
