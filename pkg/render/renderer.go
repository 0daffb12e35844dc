package render

import (
	"fmt"
	"strings"
)

// Mode selects how triangles are filled.
type Mode int

const (
	ModeSolid     Mode = iota // Direct pixel writes into the locked buffer
	ModeShaded                // One DrawLine per scanline
	ModeWireframe             // Edges and vertex markers only
)

var modeNames = [...]string{"solid", "shaded", "wireframe"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Next returns the mode after m, wrapping around.
func (m Mode) Next() Mode {
	return (m + 1) % Mode(len(modeNames))
}

// ParseMode parses a mode name as printed by String.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown render mode %q (want solid, shaded or wireframe)", s)
}

// FrameStats counts what happened to the triangles of one frame.
type FrameStats struct {
	Triangles int // World triangles submitted
	Culled    int // Triangles that produced nothing
	Clipped   int // Triangles split in two by the near plane
	Emitted   int // Screen triangles filled
}

// Renderer draws ordered triangle lists from a camera pose. Triangles are
// filled in the order given, with no depth test.
type Renderer struct {
	Mode    Mode
	Overlay bool // Outline every triangle on top of Solid and Shaded fills

	proj    *Projector
	surface Surface
	filler  *Filler

	xOff, yOff float64
	scratch    []Triangle2D
}

// NewRenderer creates a renderer that projects with proj and draws into
// surface using the default fill options.
func NewRenderer(proj *Projector, surface Surface) *Renderer {
	return &Renderer{
		proj:    proj,
		surface: surface,
		filler:  defaultFiller,
	}
}

// SetFiller replaces the fill configuration.
func (r *Renderer) SetFiller(f *Filler) {
	r.filler = f
}

// SetSurface switches the draw target, e.g. after a resize.
func (r *Renderer) SetSurface(s Surface) {
	r.surface = s
}

// SetOffset shifts every screen triangle by (x, y) pixels.
func (r *Renderer) SetOffset(x, y float64) {
	r.xOff, r.yOff = x, y
}

// Projector returns the renderer's projector.
func (r *Renderer) Projector() *Projector {
	return r.proj
}

// Render draws tris as seen from pose. Unrenderable triangles are skipped;
// the only error is a pixel buffer that could not be locked, in which case
// the frame stops there.
func (r *Renderer) Render(tris []Triangle3D, pose Pose) (FrameStats, error) {
	var stats FrameStats
	stats.Triangles = len(tris)

	for i, tri := range tris {
		r.scratch = r.proj.AppendProjected(r.scratch[:0], tri, pose)
		switch len(r.scratch) {
		case 0:
			stats.Culled++
			continue
		case 2:
			stats.Clipped++
		}

		for _, st := range r.scratch {
			if err := r.fill(st, tri.Color); err != nil {
				Logger().Warn("render: fill failed", "triangle", i, "error", err)
				return stats, err
			}
			stats.Emitted++
		}
	}

	Logger().Debug("render: frame",
		"mode", r.Mode.String(),
		"triangles", stats.Triangles,
		"culled", stats.Culled,
		"clipped", stats.Clipped,
		"emitted", stats.Emitted,
	)
	return stats, nil
}

func (r *Renderer) fill(t Triangle2D, c Color) error {
	switch r.Mode {
	case ModeWireframe:
		r.filler.Wireframe(t, r.xOff, r.yOff, r.surface)
		return nil
	case ModeShaded:
		r.filler.Shaded(t, r.xOff, r.yOff, c, r.surface)
	default:
		if err := r.filler.Solid(t, r.xOff, r.yOff, c, r.surface); err != nil {
			return err
		}
	}
	if r.Overlay {
		r.filler.Wireframe(t, r.xOff, r.yOff, r.surface)
	}
	return nil
}
