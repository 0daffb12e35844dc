package scene

import (
	"math"

	"github.com/taigrr/sectorcam/pkg/math3d"
	"github.com/taigrr/sectorcam/pkg/render"
)

// Mesh is indexed triangle geometry with per-face materials, as loaded from
// a model file. It is turned into flat-colored world triangles with
// Triangles before rendering.
type Mesh struct {
	Name      string
	Vertices  []math3d.Vec3
	Faces     []Face
	Materials []Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face is a triangle of vertex indices and a material reference.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)
}

// Material is the part of a glTF PBR material a flat-color renderer uses.
type Material struct {
	Name      string
	BaseColor [4]float64 // RGBA in 0-1 range
}

// Color converts the base color to an opaque 8-bit color.
func (m Material) Color() render.Color {
	return render.RGB(unitToByte(m.BaseColor[0]), unitToByte(m.BaseColor[1]), unitToByte(m.BaseColor[2]))
}

func unitToByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(m.Vertices[i])
	}
	m.CalculateBounds()
}

// GetMaterial returns the material at index i.
// Returns nil if index is out of bounds or -1.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// Triangles places the mesh with transform and returns one world triangle
// per face, colored by its material or fallback when it has none. Faces
// with out-of-range indices are skipped.
func (m *Mesh) Triangles(transform math3d.Mat4, fallback render.Color) []render.Triangle3D {
	out := make([]render.Triangle3D, 0, len(m.Faces))
	for _, f := range m.Faces {
		if !m.validFace(f) {
			continue
		}
		tri := render.NewTriangle3D(
			transform.MulVec3(m.Vertices[f.V[0]]),
			transform.MulVec3(m.Vertices[f.V[1]]),
			transform.MulVec3(m.Vertices[f.V[2]]),
		)
		color := fallback
		if mat := m.GetMaterial(f.Material); mat != nil {
			color = mat.Color()
		}
		tri.SetColor(color)
		out = append(out, tri)
	}
	return out
}

func (m *Mesh) validFace(f Face) bool {
	for _, i := range f.V {
		if i < 0 || i >= len(m.Vertices) {
			return false
		}
	}
	return true
}
