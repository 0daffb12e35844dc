package render

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

// recorder is a LineSurface that remembers every call.
type recorder struct {
	w, h  int
	lines []recordedLine
	rects []recordedRect
}

type recordedLine struct {
	x0, y0, x1, y1 int
	c              Color
}

type recordedRect struct {
	x, y, w, h int
	c          Color
}

func (r *recorder) Size() (int, int) { return r.w, r.h }

func (r *recorder) DrawLine(x0, y0, x1, y1 int, c Color) {
	r.lines = append(r.lines, recordedLine{x0, y0, x1, y1, c})
}

func (r *recorder) DrawRectOutline(x, y, w, h int, c Color) {
	r.rects = append(r.rects, recordedRect{x, y, w, h, c})
}

func countColor(fb *Framebuffer, c Color) int {
	n := 0
	for y := range fb.Height {
		for x := range fb.Width {
			if fb.GetPixel(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestFillSolidCoverage(t *testing.T) {
	fb := NewFramebuffer(16, 16)
	if err := FillSolid(tri2(0, 0, 8, 0, 0, 8), 0, 0, ColorRed, fb); err != nil {
		t.Fatalf("FillSolid: %v", err)
	}

	// Row y spans [0, 8-y).
	if got := countColor(fb, ColorRed); got != 36 {
		t.Errorf("filled %d pixels, want 36", got)
	}
	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{7, 0, true},
		{8, 0, false},
		{0, 7, true},
		{1, 7, false},
		{0, 8, false},
	}
	for _, tc := range tests {
		if got := fb.GetPixel(tc.x, tc.y) == ColorRed; got != tc.want {
			t.Errorf("pixel (%d,%d) filled = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestFillSolidFractionalRows(t *testing.T) {
	tests := []struct {
		name string
		tri  Triangle2D
		// halfWidth is the widest half-extent about x = 50 anywhere in row y.
		halfWidth func(y float64) float64
	}{
		{
			name: "apex below row start",
			tri:  tri2(50, 10.9, 20, 30.9, 80, 30.9),
			halfWidth: func(y float64) float64 {
				return 1.5 * (math.Min(y+1, 30.9) - 10.9)
			},
		},
		{
			name: "flat top below row start",
			tri:  tri2(20, 5.5, 80, 5.5, 50, 25.5),
			halfWidth: func(y float64) float64 {
				return 30 * (1 - (math.Max(y, 5.5)-5.5)/20)
			},
		},
		{
			name: "steep sliver",
			tri:  tri2(50, 10.9, 40, 11.9, 60, 11.9),
			halfWidth: func(y float64) float64 {
				return 10 * (math.Min(y+1, 11.9) - 10.9)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(120, 40)
			if err := FillSolid(tc.tri, 0, 0, ColorRed, fb); err != nil {
				t.Fatal(err)
			}
			for y := range fb.Height {
				ext := tc.halfWidth(float64(y))
				for x := range fb.Width {
					if fb.GetPixel(x, y) != ColorRed {
						continue
					}
					if ext < 0 || float64(x) < math.Floor(50-ext) || float64(x) >= 50+ext {
						t.Errorf("pixel (%d,%d) filled outside the triangle (half width %.2f)", x, y, ext)
					}
				}
			}
		})
	}

	// The apex row of a sliver holds only the apex point.
	fb := NewFramebuffer(120, 20)
	if err := FillSolid(tri2(50, 10.9, 40, 11.9, 60, 11.9), 0, 0, ColorRed, fb); err != nil {
		t.Fatal(err)
	}
	if got := countColor(fb, ColorRed); got != 0 {
		t.Errorf("sliver filled %d pixels, want 0", got)
	}
}

func TestFillSolidOffset(t *testing.T) {
	a := NewFramebuffer(16, 16)
	b := NewFramebuffer(16, 16)
	if err := FillSolid(tri2(0, 0, 8, 0, 0, 8), 4, 3, ColorGreen, a); err != nil {
		t.Fatal(err)
	}
	if err := FillSolid(tri2(4, 3, 12, 3, 4, 11), 0, 0, ColorGreen, b); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Pixels, b.Pixels) {
		t.Error("offset fill differs from pre-translated fill")
	}
}

func TestFillShadedMatchesSolid(t *testing.T) {
	tests := []struct {
		name string
		tri  Triangle2D
	}{
		{"general", tri2(3, 1, 28, 9, 10, 30)},
		{"flat top", tri2(2, 4, 25, 4, 12, 20)},
		{"flat bottom", tri2(16, 2, 3, 27, 29, 27)},
		{"partly off screen", tri2(-20, -5, 50, 10, 5, 45)},
		{"fractional", tri2(1.5, 0.25, 30.75, 12.5, 7.2, 31.9)},
		{"huge", tri2(-1e7, -1e7, 1e7, -1e7, 0, 1e7)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			solid := NewFramebuffer(32, 32)
			shaded := NewFramebuffer(32, 32)
			if err := FillSolid(tc.tri, 0, 0, ColorBlue, solid); err != nil {
				t.Fatal(err)
			}
			FillShaded(tc.tri, 0, 0, ColorBlue, shaded)
			if !bytes.Equal(solid.Pixels, shaded.Pixels) {
				t.Errorf("shaded fill covers %d pixels, solid %d",
					countColor(shaded, ColorBlue), countColor(solid, ColorBlue))
			}
		})
	}
}

func TestFillSolidCoversScreen(t *testing.T) {
	fb := NewFramebuffer(16, 16)
	if err := FillSolid(tri2(-1e6, -1e6, 1e6, -1e6, 0, 1e6), 0, 0, ColorWall, fb); err != nil {
		t.Fatal(err)
	}
	if got := countColor(fb, ColorWall); got != 256 {
		t.Errorf("filled %d pixels, want all 256", got)
	}
}

func TestFillSolidOffscreen(t *testing.T) {
	fb := NewFramebuffer(16, 16)
	for _, tri := range []Triangle2D{
		tri2(-100, -100, -50, -100, -75, -50),
		tri2(100, 0, 200, 0, 150, 10),
		tri2(0, 40, 10, 40, 5, 60),
	} {
		if err := FillSolid(tri, 0, 0, ColorRed, fb); err != nil {
			t.Fatal(err)
		}
	}
	if got := countColor(fb, ColorRed); got != 0 {
		t.Errorf("off-screen triangles filled %d pixels", got)
	}
}

func TestFillDegenerate(t *testing.T) {
	fb := NewFramebuffer(16, 16)
	for _, tri := range []Triangle2D{
		tri2(1, 5, 8, 5, 14, 5), // zero height
		tri2(5, 0, 5, 5, 5, 10), // vertical sliver
		tri2(3, 3, 3, 3, 3, 3),  // a point
	} {
		if err := FillSolid(tri, 0, 0, ColorRed, fb); err != nil {
			t.Fatal(err)
		}
		FillShaded(tri, 0, 0, ColorRed, fb)
	}
	if got := countColor(fb, ColorRed); got != 0 {
		t.Errorf("degenerate triangles filled %d pixels", got)
	}
}

func TestFillNonFinite(t *testing.T) {
	fb := NewFramebuffer(16, 16)
	bad := tri2(math.Inf(1), 0, 5, 5, 0, 10)

	// Non-finite input is dropped before the buffer is touched.
	if _, _, err := fb.Lock(); err != nil {
		t.Fatal(err)
	}
	if err := FillSolid(bad, 0, 0, ColorRed, fb); err != nil {
		t.Errorf("FillSolid(non-finite) = %v, want nil", err)
	}
	fb.Unlock()

	FillShaded(bad, 0, 0, ColorRed, fb)
	rec := &recorder{w: 16, h: 16}
	FillWireframe(tri2(0, 0, math.NaN(), 5, 3, 3), 0, 0, rec)
	if len(rec.lines) != 0 || countColor(fb, ColorRed) != 0 {
		t.Error("non-finite triangle produced output")
	}
}

func TestFillSolidLock(t *testing.T) {
	fb := NewFramebuffer(16, 16)
	tri := tri2(0, 0, 10, 0, 5, 10)

	t.Run("released after fill", func(t *testing.T) {
		if err := FillSolid(tri, 0, 0, ColorRed, fb); err != nil {
			t.Fatal(err)
		}
		if fb.Locked() {
			t.Fatal("buffer still locked after FillSolid")
		}
		if err := FillSolid(tri, 0, 0, ColorRed, fb); err != nil {
			t.Errorf("second fill: %v", err)
		}
	})

	t.Run("lock failure is returned", func(t *testing.T) {
		if _, _, err := fb.Lock(); err != nil {
			t.Fatal(err)
		}
		defer fb.Unlock()

		err := FillSolid(tri, 0, 0, ColorGreen, fb)
		if !errors.Is(err, ErrBufferLocked) {
			t.Fatalf("FillSolid on locked buffer = %v, want ErrBufferLocked", err)
		}
		if countColor(fb, ColorGreen) != 0 {
			t.Error("pixels written without a lock")
		}
	})
}

func TestFillerRowStep(t *testing.T) {
	f, err := NewFiller(FillOptions{RowStep: 2})
	if err != nil {
		t.Fatal(err)
	}
	fb := NewFramebuffer(8, 8)
	if err := f.Solid(tri2(-100, -100, 100, -100, 0, 100), 0, 0, ColorRed, fb); err != nil {
		t.Fatal(err)
	}
	for y := range 8 {
		want := y%2 == 0
		if got := fb.GetPixel(4, y) == ColorRed; got != want {
			t.Errorf("row %d filled = %v, want %v", y, got, want)
		}
	}
}

func TestFillOptionsValidate(t *testing.T) {
	if err := DefaultFillOptions().Validate(); err != nil {
		t.Errorf("default options invalid: %v", err)
	}
	if _, err := NewFiller(FillOptions{RowStep: 0}); err == nil {
		t.Error("RowStep 0 accepted")
	}
	if _, err := NewFiller(FillOptions{RowStep: 1, MarkerSize: -1}); err == nil {
		t.Error("negative MarkerSize accepted")
	}
}

func TestFillWireframe(t *testing.T) {
	t.Run("edges and markers", func(t *testing.T) {
		rec := &recorder{w: 64, h: 64}
		FillWireframe(tri2(20, 30, 10, 10, 30, 15), 0, 0, rec)

		if len(rec.lines) != 3 {
			t.Fatalf("drew %d lines, want 3", len(rec.lines))
		}
		for _, l := range rec.lines {
			if l.c != ColorWhite {
				t.Errorf("edge color %v, want white", l.c)
			}
		}

		// Markers follow y order: top red, middle green, bottom blue.
		want := []recordedRect{
			{6, 6, 8, 8, ColorRed},
			{26, 11, 8, 8, ColorGreen},
			{16, 26, 8, 8, ColorBlue},
		}
		if len(rec.rects) != len(want) {
			t.Fatalf("drew %d markers, want %d", len(rec.rects), len(want))
		}
		for i := range want {
			if rec.rects[i] != want[i] {
				t.Errorf("marker %d = %+v, want %+v", i, rec.rects[i], want[i])
			}
		}
	})

	t.Run("off-surface markers skipped", func(t *testing.T) {
		rec := &recorder{w: 64, h: 64}
		FillWireframe(tri2(-5, 10, 30, 20, 10, 70), 0, 0, rec)
		if len(rec.lines) != 3 {
			t.Errorf("drew %d lines, want 3", len(rec.lines))
		}
		if len(rec.rects) != 1 || rec.rects[0].c != ColorGreen {
			t.Errorf("markers = %+v, want only the on-surface green one", rec.rects)
		}
	})

	t.Run("offset applies", func(t *testing.T) {
		rec := &recorder{w: 64, h: 64}
		FillWireframe(tri2(1, 1, 5, 1, 3, 4), 100, 0, rec)
		if len(rec.rects) != 0 {
			t.Errorf("offset triangle drew %d markers, want 0", len(rec.rects))
		}
		if rec.lines[0].x0 != 101 {
			t.Errorf("first edge starts at x %d, want 101", rec.lines[0].x0)
		}
	})

	t.Run("framebuffer pixels", func(t *testing.T) {
		fb := NewFramebuffer(64, 64)
		FillWireframe(tri2(10, 10, 40, 12, 20, 50), 0, 0, fb)
		if got := fb.GetPixel(10, 10); got != ColorWhite {
			t.Errorf("vertex pixel = %v, want white", got)
		}
		if got := fb.GetPixel(6, 6); got != ColorRed {
			t.Errorf("marker corner = %v, want red", got)
		}
		if got := fb.GetPixel(22, 20); got != ColorBlack {
			t.Errorf("interior pixel = %v, want unfilled", got)
		}
	})
}
