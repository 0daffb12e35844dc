// Package scene builds the ordered world-triangle lists the renderer draws:
// sector maps, procedurally generated rooms and glTF props.
package scene

import (
	"github.com/taigrr/sectorcam/pkg/math3d"
	"github.com/taigrr/sectorcam/pkg/render"
)

// Scene is an ordered list of world triangles. Order matters: the renderer
// has no depth test and draws triangles as listed.
type Scene struct {
	Name      string
	Triangles []render.Triangle3D

	// Spawn is a suggested starting pose for the camera.
	Spawn render.Pose

	// Bounding box (see CalculateBounds)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewScene creates an empty scene.
func NewScene(name string) *Scene {
	return &Scene{Name: name}
}

// Add appends one triangle.
func (s *Scene) Add(tri render.Triangle3D) {
	s.Triangles = append(s.Triangles, tri)
}

// Append appends triangles in order.
func (s *Scene) Append(tris ...render.Triangle3D) {
	s.Triangles = append(s.Triangles, tris...)
}

// AddMesh places a mesh with transform and appends its triangles.
func (s *Scene) AddMesh(m *Mesh, transform math3d.Mat4, fallback render.Color) {
	s.Append(m.Triangles(transform, fallback)...)
}

// TriangleCount returns the number of triangles.
func (s *Scene) TriangleCount() int {
	return len(s.Triangles)
}

// CalculateBounds computes the axis-aligned bounding box of all vertices.
func (s *Scene) CalculateBounds() {
	if len(s.Triangles) == 0 {
		s.BoundsMin, s.BoundsMax = math3d.Zero3(), math3d.Zero3()
		return
	}

	s.BoundsMin = s.Triangles[0].V[0]
	s.BoundsMax = s.Triangles[0].V[0]
	for _, tri := range s.Triangles {
		for _, v := range tri.V {
			s.BoundsMin = s.BoundsMin.Min(v)
			s.BoundsMax = s.BoundsMax.Max(v)
		}
	}
}

// Center returns the center of the bounding box.
func (s *Scene) Center() math3d.Vec3 {
	return s.BoundsMin.Add(s.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (s *Scene) Size() math3d.Vec3 {
	return s.BoundsMax.Sub(s.BoundsMin)
}

// Transform applies a transformation matrix to every vertex and the spawn
// position.
func (s *Scene) Transform(mat math3d.Mat4) {
	for i := range s.Triangles {
		for j := range s.Triangles[i].V {
			s.Triangles[i].V[j] = mat.MulVec3(s.Triangles[i].V[j])
		}
	}
	s.Spawn.Position = mat.MulVec3(s.Spawn.Position)
	s.CalculateBounds()
}
