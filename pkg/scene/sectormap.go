package scene

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/sectorcam/pkg/math3d"
	"github.com/taigrr/sectorcam/pkg/render"
)

// ErrSyntax is matched by every sector map parse error.
var ErrSyntax = errors.New("sector map syntax error")

// ParseError reports a malformed line in a sector map.
type ParseError struct {
	Line int    // 1-based line number
	Text string // The offending line
	Err  error  // Underlying cause
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrSyntax) true for any ParseError.
func (e *ParseError) Is(target error) bool { return target == ErrSyntax }

const (
	keywordSector = "sector :"
	keywordVertex = "vertex"
)

// Default wall extent before the first sector line.
const (
	DefaultY1 = 1.0
	DefaultY2 = -1.0
)

// DefaultSpawn is where a sector map puts the camera unless told otherwise.
func DefaultSpawn() render.Pose {
	return render.Pose{Position: math3d.V3(20, 2.5, 20), Yaw: 180}
}

type sectorConfig struct {
	name      string
	wallColor render.Color
	spawn     render.Pose
	closed    bool
}

// SectorOption configures ParseSectorMap.
type SectorOption func(*sectorConfig)

// WithWallColor sets the color of every wall triangle.
func WithWallColor(c render.Color) SectorOption {
	return func(cfg *sectorConfig) { cfg.wallColor = c }
}

// WithSpawn sets the scene's spawn pose.
func WithSpawn(p render.Pose) SectorOption {
	return func(cfg *sectorConfig) { cfg.spawn = p }
}

// WithName sets the scene name.
func WithName(name string) SectorOption {
	return func(cfg *sectorConfig) { cfg.name = name }
}

// WithClosedSectors adds a wall from each sector's last vertex back to its
// first.
func WithClosedSectors() SectorOption {
	return func(cfg *sectorConfig) { cfg.closed = true }
}

// sectorBuilder turns a vertex chain into wall quads.
type sectorBuilder struct {
	scene  *Scene
	color  render.Color
	closed bool

	y1, y2 float64
	open   bool // a wall chain has started
	first  math3d.Vec2
	x1, z1 float64
	nVerts int
}

func (b *sectorBuilder) startSector(y1, y2 float64) {
	b.closeSector()
	b.y1, b.y2 = y1, y2
	b.open = false
	b.nVerts = 0
}

func (b *sectorBuilder) vertex(x, z float64) {
	if !b.open {
		b.open = true
		b.first = math3d.V2(x, z)
	} else {
		b.wall(b.x1, b.z1, x, z)
	}
	b.x1, b.z1 = x, z
	b.nVerts++
}

// closeSector emits the closing wall when enabled and the chain has at
// least three vertices.
func (b *sectorBuilder) closeSector() {
	if b.closed && b.open && b.nVerts >= 3 {
		b.wall(b.x1, b.z1, b.first.X, b.first.Y)
	}
}

// wall emits the quad between (x1, z1) and (x2, z2) spanning y1 to y2 as
// two triangles.
func (b *sectorBuilder) wall(x1, z1, x2, z2 float64) {
	t0 := render.NewTriangle3D(
		math3d.V3(x1, b.y2, z1),
		math3d.V3(x1, b.y1, z1),
		math3d.V3(x2, b.y2, z2),
	)
	t0.SetColor(b.color)
	t1 := render.NewTriangle3D(
		math3d.V3(x1, b.y1, z1),
		math3d.V3(x2, b.y2, z2),
		math3d.V3(x2, b.y1, z2),
	)
	t1.SetColor(b.color)
	b.scene.Append(t0, t1)
}

// ParseSectorMap reads a sector map. The format is line oriented:
//
//	sector : <y1>, <y2>   start a new sector whose walls span y1 to y2
//	vertex <x>, <z>       extend the current sector's wall chain
//
// Each vertex after a sector's first adds one wall from the previous
// vertex. Lines without either keyword are ignored, as are lines starting
// with '#'.
func ParseSectorMap(r io.Reader, opts ...SectorOption) (*Scene, error) {
	cfg := sectorConfig{
		name:      "sector map",
		wallColor: render.ColorWall,
		spawn:     DefaultSpawn(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := NewScene(cfg.name)
	s.Spawn = cfg.spawn
	b := &sectorBuilder{
		scene:  s,
		color:  cfg.wallColor,
		closed: cfg.closed,
		y1:     DefaultY1,
		y2:     DefaultY2,
	}

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}

		if i := strings.Index(line, keywordVertex); i >= 0 {
			x, z, err := parsePair(line[i+len(keywordVertex):])
			if err != nil {
				return nil, &ParseError{Line: lineNo, Text: line, Err: err}
			}
			b.vertex(x, z)
		}
		if i := strings.Index(line, keywordSector); i >= 0 {
			y1, y2, err := parsePair(line[i+len(keywordSector):])
			if err != nil {
				return nil, &ParseError{Line: lineNo, Text: line, Err: err}
			}
			b.startSector(y1, y2)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read sector map: %w", err)
	}
	b.closeSector()

	s.CalculateBounds()
	return s, nil
}

// LoadSectorMap reads a sector map file, naming the scene after the file.
func LoadSectorMap(path string, opts ...SectorOption) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sector map: %w", err)
	}
	defer f.Close()

	opts = append([]SectorOption{WithName(filepath.Base(path))}, opts...)
	s, err := ParseSectorMap(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// parsePair parses "<a>, <b>".
func parsePair(s string) (a, b float64, err error) {
	first, second, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, errors.New("want two comma-separated numbers")
	}
	if a, err = strconv.ParseFloat(strings.TrimSpace(first), 64); err != nil {
		return 0, 0, err
	}
	if b, err = strconv.ParseFloat(strings.TrimSpace(second), 64); err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
