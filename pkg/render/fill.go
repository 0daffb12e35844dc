package render

import (
	"errors"
	"fmt"
	"math"
)

// pixelLimit bounds screen coordinates before they are converted to int.
// Projections of points close to the camera plane can be arbitrarily large.
const pixelLimit = 1 << 24

// FillOptions configures the scanline fillers.
type FillOptions struct {
	// RowStep fills every RowStep-th scanline; 1 fills every row.
	RowStep int
	// EdgeColor is the wireframe edge color.
	EdgeColor Color
	// MarkerColors are the wireframe marker colors for the top, middle and
	// bottom vertex.
	MarkerColors [3]Color
	// MarkerSize is the marker edge length in pixels; 0 disables markers.
	MarkerSize int
}

// DefaultFillOptions returns options that fill every row and draw white
// edges with red, green and blue 8x8 vertex markers.
func DefaultFillOptions() FillOptions {
	return FillOptions{
		RowStep:      1,
		EdgeColor:    ColorWhite,
		MarkerColors: [3]Color{ColorRed, ColorGreen, ColorBlue},
		MarkerSize:   8,
	}
}

// Validate reports whether the options are usable.
func (o FillOptions) Validate() error {
	if o.RowStep < 1 {
		return fmt.Errorf("row step must be at least 1, got %d", o.RowStep)
	}
	if o.MarkerSize < 0 {
		return errors.New("marker size must not be negative")
	}
	return nil
}

// Filler rasterizes screen-space triangles. It holds only configuration,
// so one Filler can be shared by any number of fill calls.
type Filler struct {
	opts FillOptions
}

// NewFiller creates a filler with the given options.
func NewFiller(opts FillOptions) (*Filler, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Filler{opts: opts}, nil
}

// Options returns the filler's configuration.
func (f *Filler) Options() FillOptions {
	return f.opts
}

var defaultFiller = &Filler{opts: DefaultFillOptions()}

// FillWireframe outlines tri with the default options.
func FillWireframe(tri Triangle2D, xOff, yOff float64, surface LineSurface) {
	defaultFiller.Wireframe(tri, xOff, yOff, surface)
}

// FillSolid fills tri into buf with the default options.
func FillSolid(tri Triangle2D, xOff, yOff float64, c Color, buf PixelBuffer) error {
	return defaultFiller.Solid(tri, xOff, yOff, c, buf)
}

// FillShaded fills tri with one line per scanline using the default options.
func FillShaded(tri Triangle2D, xOff, yOff float64, c Color, surface LineSurface) {
	defaultFiller.Shaded(tri, xOff, yOff, c, surface)
}

// Wireframe draws the three edges of tri and a square marker centered on
// each vertex. Markers of vertices outside the surface are skipped.
func (f *Filler) Wireframe(tri Triangle2D, xOff, yOff float64, surface LineSurface) {
	t := tri.Offset(xOff, yOff)
	if !t.IsFinite() {
		return
	}
	s := t.Sort()
	w, h := surface.Size()

	var px, py [3]int
	for i, v := range s.V {
		px[i], py[i] = toPixel(v.X), toPixel(v.Y)
	}

	c := f.opts.EdgeColor
	surface.DrawLine(px[0], py[0], px[1], py[1], c)
	surface.DrawLine(px[1], py[1], px[2], py[2], c)
	surface.DrawLine(px[2], py[2], px[0], py[0], c)

	size := f.opts.MarkerSize
	if size == 0 {
		return
	}
	for i := range 3 {
		if px[i] < 0 || px[i] >= w || py[i] < 0 || py[i] >= h {
			continue
		}
		surface.DrawRectOutline(px[i]-size/2, py[i]-size/2, size, size, f.opts.MarkerColors[i])
	}
}

// Solid fills tri by writing RGB bytes straight into the locked pixel rows.
// The lock is held only for this call. A lock failure is returned as is,
// wrapped with context.
func (f *Filler) Solid(tri Triangle2D, xOff, yOff float64, c Color, buf PixelBuffer) error {
	t := tri.Offset(xOff, yOff)
	if !t.IsFinite() {
		return nil
	}
	w, h := buf.Size()

	pixels, pitch, err := buf.Lock()
	if err != nil {
		return fmt.Errorf("fill solid: %w", err)
	}
	defer buf.Unlock()

	upper, lower := t.Split()
	for _, half := range [2]Triangle2D{upper, lower} {
		f.scan(half, w, h, func(y, x0, x1 int) {
			start := y*pitch + x0*bytesPerPixel
			end := y*pitch + x1*bytesPerPixel
			if end > len(pixels) {
				return
			}
			for o := start; o < end; o += bytesPerPixel {
				pixels[o], pixels[o+1], pixels[o+2] = c.R, c.G, c.B
			}
		})
	}
	return nil
}

// Shaded fills tri using one horizontal DrawLine per scanline. It covers
// the same pixels as Solid.
func (f *Filler) Shaded(tri Triangle2D, xOff, yOff float64, c Color, surface LineSurface) {
	t := tri.Offset(xOff, yOff)
	if !t.IsFinite() {
		return
	}
	w, h := surface.Size()

	upper, lower := t.Split()
	for _, half := range [2]Triangle2D{upper, lower} {
		f.scan(half, w, h, func(y, x0, x1 int) {
			surface.DrawLine(x0, y, x1-1, y, c)
		})
	}
}

// edges is the scan setup of a triangle with one horizontal edge.
type edges struct {
	top, bottom           float64
	topLeft, topRight     float64
	slopeLeft, slopeRight float64
}

// flatEdges computes the left and right edges of a flat-top or flat-bottom
// triangle. It reports false for zero-height or non-flat input.
func flatEdges(t Triangle2D) (edges, bool) {
	s := t.Sort()
	v0, v1, v2 := s.V[0], s.V[1], s.V[2]
	if v2.Y <= v0.Y {
		return edges{}, false
	}

	var e edges
	switch {
	case v0.Y == v1.Y:
		e = edges{
			top: v0.Y, bottom: v2.Y,
			topLeft: v0.X, topRight: v1.X,
			slopeLeft: v0.Slope(v2), slopeRight: v1.Slope(v2),
		}
		if e.topLeft > e.topRight {
			e.topLeft, e.topRight = e.topRight, e.topLeft
			e.slopeLeft, e.slopeRight = e.slopeRight, e.slopeLeft
		}
	case v1.Y == v2.Y:
		e = edges{
			top: v0.Y, bottom: v1.Y,
			topLeft: v0.X, topRight: v0.X,
			slopeLeft: v0.Slope(v1), slopeRight: v0.Slope(v2),
		}
		if v1.X > v2.X {
			e.slopeLeft, e.slopeRight = e.slopeRight, e.slopeLeft
		}
	default:
		return edges{}, false
	}
	return e, true
}

// scan walks the rows [floor(top), floor(bottom)) of a flat triangle that
// lie on a width x height surface and calls span with each non-empty
// clamped span [x0, x1).
func (f *Filler) scan(t Triangle2D, width, height int, span func(y, x0, x1 int)) {
	e, ok := flatEdges(t)
	if !ok {
		return
	}

	yStart := int(clampFloat(math.Floor(e.top), 0, float64(height)))
	yEnd := int(clampFloat(math.Floor(e.bottom), 0, float64(height)))
	step := f.opts.RowStep

	for y := yStart; y < yEnd; y++ {
		if step > 1 && y%step != 0 {
			continue
		}
		// A fractional top puts the first row above the apex; sample it at
		// the apex so the edges are never extrapolated past the vertex.
		dy := math.Max(float64(y)-e.top, 0)
		x0 := toPixel(math.Floor(e.topLeft + e.slopeLeft*dy))
		x1 := toPixel(math.Floor(e.topRight + e.slopeRight*dy))
		if x0 > x1 {
			x0, x1 = x1, x0
		}
		if x1 <= 0 || x0 >= width {
			continue
		}
		x0 = max(x0, 0)
		x1 = min(x1, width)
		if x1 > x0 {
			span(y, x0, x1)
		}
	}
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// toPixel converts a finite screen coordinate to int, saturating far
// off-screen values.
func toPixel(v float64) int {
	return int(clampFloat(v, -pixelLimit, pixelLimit))
}
