package scene

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/sectorcam/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// FlipY negates Y on load. glTF is y-up while the projector draws larger
	// camera-space y further down the screen.
	FlipY bool
	// FitSize, when positive, centers the mesh on the origin and scales it
	// uniformly so its largest dimension equals FitSize.
	FitSize float64
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		FlipY:   true,
		FitSize: 2,
	}
}

// LoadGLB loads a binary GLTF (.glb) file with the default options.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.LoadDocument(doc, filepath.Base(path))
}

// LoadDocument converts an already decoded document.
func (l *GLTFLoader) LoadDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)

	for _, m := range doc.Materials {
		mat := Material{Name: m.Name, BaseColor: [4]float64{1, 1, 1, 1}}
		if pbr := m.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
			mat.BaseColor = *pbr.BaseColorFactor
		}
		mesh.Materials = append(mesh.Materials, mat)
	}

	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if len(mesh.Faces) == 0 {
		return nil, errors.New("no triangles in document")
	}

	if l.FlipY {
		mesh.Transform(math3d.Scale(math3d.V3(1, -1, 1)))
	}
	mesh.CalculateBounds()

	if l.FitSize > 0 {
		size := mesh.Size()
		maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
		if maxDim > 0 {
			scale := l.FitSize / maxDim
			mesh.Transform(math3d.ScaleUniform(scale).Mul(math3d.Translate(mesh.Center().Negate())))
		}
	}

	return mesh, nil
}

// processMesh extracts geometry from a GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Lines and points have no area to fill.
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		material := -1
		if prim.Material != nil && *prim.Material >= 0 && *prim.Material < len(mesh.Materials) {
			material = *prim.Material
		}

		baseVertex := len(mesh.Vertices)
		mesh.Vertices = append(mesh.Vertices, positions...)

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			mesh.Faces = append(mesh.Faces, Face{
				V: [3]int{
					baseVertex + indices[i],
					baseVertex + indices[i+1],
					baseVertex + indices[i+2],
				},
				Material: material,
			})
		}
	}

	return nil
}

// readVec3Accessor reads float VEC3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor, data, stride, err := accessorBytes(doc, accessorIdx, 12)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v of %v", accessor.Type, accessor.ComponentType)
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range result {
		off := i * stride
		result[i] = math3d.V3(
			readFloat32(data[off:]),
			readFloat32(data[off+4:]),
			readFloat32(data[off+8:]),
		)
	}
	return result, nil
}

// readIndices reads index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	if doc.Accessors[accessorIdx] == nil {
		return nil, fmt.Errorf("accessor %d is missing", accessorIdx)
	}
	var size int
	switch ct := doc.Accessors[accessorIdx].ComponentType; ct {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", ct)
	}

	accessor, data, stride, err := accessorBytes(doc, accessorIdx, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range result {
		off := i * stride
		switch size {
		case 1:
			result[i] = int(data[off])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(data[off:]))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(data[off:]))
		}
	}
	return result, nil
}

// accessorBytes returns the accessor's bytes starting at its first element,
// and the element stride. The slice is checked to hold every element.
func accessorBytes(doc *gltf.Document, accessorIdx, elemSize int) (*gltf.Accessor, []byte, int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, nil, 0, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor == nil {
		return nil, nil, 0, fmt.Errorf("accessor %d is missing", accessorIdx)
	}
	if accessor.BufferView == nil {
		return nil, nil, 0, errors.New("accessor has no buffer view")
	}
	if *accessor.BufferView < 0 || *accessor.BufferView >= len(doc.BufferViews) {
		return nil, nil, 0, fmt.Errorf("buffer view %d out of range", *accessor.BufferView)
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	if bufferView == nil {
		return nil, nil, 0, fmt.Errorf("buffer view %d is missing", *accessor.BufferView)
	}
	if bufferView.Buffer < 0 || bufferView.Buffer >= len(doc.Buffers) {
		return nil, nil, 0, fmt.Errorf("buffer %d out of range", bufferView.Buffer)
	}
	buffer := doc.Buffers[bufferView.Buffer]
	if buffer == nil || buffer.Data == nil {
		return nil, nil, 0, errors.New("buffer has no data")
	}

	if bufferView.ByteOffset < 0 || accessor.ByteOffset < 0 || accessor.Count < 0 {
		return nil, nil, 0, fmt.Errorf("accessor %d has a negative offset or count", accessorIdx)
	}
	stride := bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	if stride < elemSize {
		return nil, nil, 0, fmt.Errorf("accessor %d stride %d is smaller than its %d-byte elements", accessorIdx, stride, elemSize)
	}
	start := bufferView.ByteOffset + accessor.ByteOffset
	end := start
	if accessor.Count > 0 {
		end = start + (accessor.Count-1)*stride + elemSize
	}
	if end > len(buffer.Data) {
		return nil, nil, 0, fmt.Errorf("accessor %d reads past the end of its buffer", accessorIdx)
	}
	return accessor, buffer.Data[start:end], stride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}
