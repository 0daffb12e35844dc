// Package render turns world-space triangles into pixels: camera transform,
// perspective projection, near-plane clipping and scanline filling into an
// RGB24 framebuffer that can be shown in the terminal or saved to disk.
package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// bytesPerPixel is the RGB24 pixel size.
const bytesPerPixel = 3

// Framebuffer is an RGB24 pixel buffer with a 4-byte aligned row pitch,
// laid out like a streaming texture. It implements both PixelBuffer and
// LineSurface.
type Framebuffer struct {
	Width  int    // Width in pixels
	Height int    // Height in pixels
	Pitch  int    // Bytes per row, at least Width*3
	Pixels []byte // Row-major RGB24 data

	locked bool
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	width = max(width, 0)
	height = max(height, 0)
	pitch := (width*bytesPerPixel + 3) &^ 3
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pitch:  pitch,
		Pixels: make([]byte, pitch*height),
	}
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (width, height int) {
	return fb.Width, fb.Height
}

// Lock hands out the raw pixel rows for direct writes.
func (fb *Framebuffer) Lock() ([]byte, int, error) {
	if fb.locked {
		return nil, 0, ErrBufferLocked
	}
	fb.locked = true
	return fb.Pixels, fb.Pitch, nil
}

// Unlock releases a lock taken with Lock.
func (fb *Framebuffer) Unlock() {
	fb.locked = false
}

// Locked reports whether the pixel rows are currently handed out.
func (fb *Framebuffer) Locked() bool {
	return fb.locked
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	if fb.Width == 0 || fb.Height == 0 {
		return
	}
	row := fb.Pixels[:fb.Width*bytesPerPixel]
	for x := 0; x < fb.Width; x++ {
		row[x*3], row[x*3+1], row[x*3+2] = c.R, c.G, c.B
	}
	for y := 1; y < fb.Height; y++ {
		copy(fb.Pixels[y*fb.Pitch:], row)
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Out-of-bounds writes are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	o := y*fb.Pitch + x*bytesPerPixel
	fb.Pixels[o], fb.Pixels[o+1], fb.Pixels[o+2] = c.R, c.G, c.B
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return Color{}
	}
	o := y*fb.Pitch + x*bytesPerPixel
	return RGB(fb.Pixels[o], fb.Pixels[o+1], fb.Pixels[o+2])
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
// The segment is clipped to the framebuffer first, so far off-screen
// endpoints cost nothing.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	var ok bool
	x0, y0, x1, y1, ok = clipLine(x0, y0, x1, y1, fb.Width-1, fb.Height-1)
	if !ok {
		return
	}

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clipLine clips a segment to [0,maxX]×[0,maxY] (Liang–Barsky).
func clipLine(x0, y0, x1, y1, maxX, maxY int) (int, int, int, int, bool) {
	if maxX < 0 || maxY < 0 {
		return 0, 0, 0, 0, false
	}
	fx0, fy0 := float64(x0), float64(y0)
	dx, dy := float64(x1-x0), float64(y1-y0)
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, fx0},
		{dx, float64(maxX) - fx0},
		{-dy, fy0},
		{dy, float64(maxY) - fy0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}

	cx0 := int(math.Round(fx0 + t0*dx))
	cy0 := int(math.Round(fy0 + t0*dy))
	cx1 := int(math.Round(fx0 + t1*dx))
	cy1 := int(math.Round(fy0 + t1*dy))
	return cx0, cy0, cx1, cy1, true
}

// DrawRect draws a filled rectangle.
func (fb *Framebuffer) DrawRect(x, y, w, h int, c Color) {
	for py := max(y, 0); py < min(y+h, fb.Height); py++ {
		for px := max(x, 0); px < min(x+w, fb.Width); px++ {
			fb.SetPixel(px, py, c)
		}
	}
}

// DrawRectOutline draws a rectangle outline.
func (fb *Framebuffer) DrawRectOutline(x, y, w, h int, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	// Top and bottom
	for px := x; px < x+w; px++ {
		fb.SetPixel(px, y, c)
		fb.SetPixel(px, y+h-1, c)
	}
	// Left and right
	for py := y; py < y+h; py++ {
		fb.SetPixel(x, py, c)
		fb.SetPixel(x+w-1, py, c)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.GetPixel(x, y))
		}
	}
	return img
}

// Scaled returns the framebuffer enlarged by an integer factor using
// nearest-neighbor sampling, which keeps scanline edges crisp.
func (fb *Framebuffer) Scaled(factor int) *image.RGBA {
	src := fb.ToImage()
	if factor <= 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, fb.Width*factor, fb.Height*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Save writes the framebuffer to path, choosing PNG or BMP by extension.
// A locked framebuffer cannot be saved.
func (fb *Framebuffer) Save(path string, scale int) error {
	if fb.locked {
		return fmt.Errorf("save %s: %w", path, ErrBufferLocked)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var encode func(w io.Writer, img image.Image) error
	switch ext {
	case ".png":
		encode = png.Encode
	case ".bmp":
		encode = bmp.Encode
	default:
		return fmt.Errorf("unsupported snapshot format %q (use .png or .bmp)", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := encode(f, fb.Scaled(scale)); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
