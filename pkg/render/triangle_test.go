package render

import (
	"math"
	"testing"

	"github.com/taigrr/sectorcam/pkg/math3d"
)

func tri2(x0, y0, x1, y1, x2, y2 float64) Triangle2D {
	return NewTriangle2D(math3d.V2(x0, y0), math3d.V2(x1, y1), math3d.V2(x2, y2))
}

func TestTriangle2DSort(t *testing.T) {
	tests := []struct {
		name string
		tri  Triangle2D
	}{
		{"already sorted", tri2(0, 0, 5, 5, 2, 10)},
		{"reversed", tri2(2, 10, 5, 5, 0, 0)},
		{"middle first", tri2(5, 5, 0, 0, 2, 10)},
		{"flat top", tri2(10, 0, 0, 0, 5, 8)},
		{"all equal y", tri2(3, 4, 1, 4, 2, 4)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.tri.Sort()
			if s.V[0].Y > s.V[1].Y || s.V[1].Y > s.V[2].Y {
				t.Errorf("Sort() = %v, not ordered by y", s.V)
			}
			if again := s.Sort(); again != s {
				t.Errorf("Sort() not idempotent: %v then %v", s.V, again.V)
			}
			if math.Abs(s.Area()-tc.tri.Area()) > 1e-12 {
				t.Errorf("Sort() changed area: %v -> %v", tc.tri.Area(), s.Area())
			}
		})
	}

	t.Run("ties keep order", func(t *testing.T) {
		s := tri2(10, 0, 0, 0, 5, 8).Sort()
		if s.V[0].X != 10 || s.V[1].X != 0 {
			t.Errorf("equal-y vertices reordered: %v", s.V)
		}
	})
}

func TestSplitAlreadyFlat(t *testing.T) {
	t.Run("flat top", func(t *testing.T) {
		tri := tri2(0, 0, 10, 0, 5, 10)
		upper, lower := tri.Split()
		if upper.Area() != 0 {
			t.Errorf("upper area = %v, want 0", upper.Area())
		}
		if math.Abs(lower.Area()-tri.Area()) > 1e-9 {
			t.Errorf("lower area = %v, want %v", lower.Area(), tri.Area())
		}
	})

	t.Run("flat bottom", func(t *testing.T) {
		tri := tri2(5, 0, 0, 10, 10, 10)
		upper, lower := tri.Split()
		if math.Abs(upper.Area()-tri.Area()) > 1e-9 {
			t.Errorf("upper area = %v, want %v", upper.Area(), tri.Area())
		}
		if lower.Area() != 0 {
			t.Errorf("lower area = %v, want 0", lower.Area())
		}
	})
}

func TestSplitGeneral(t *testing.T) {
	tri := tri2(0, 0, 10, 5, 2, 10)
	upper, lower := tri.Split()

	// The cut lies on the long edge at the middle vertex's row.
	cut := upper.V[2]
	if cut.X != 1 || cut.Y != 5 {
		t.Errorf("cut = %v, want (1, 5)", cut)
	}
	if upper.V[1].Y != upper.V[2].Y {
		t.Errorf("upper half has no horizontal bottom edge: %v", upper.V)
	}
	if lower.V[0].Y != lower.V[1].Y {
		t.Errorf("lower half has no horizontal top edge: %v", lower.V)
	}

	sum := upper.Area() + lower.Area()
	if math.Abs(sum-tri.Area()) > 1e-9 {
		t.Errorf("halves cover %v, want %v", sum, tri.Area())
	}
}

func TestSplitDegenerate(t *testing.T) {
	upper, lower := tri2(0, 3, 5, 3, 9, 3).Split()
	if upper.Area() != 0 || lower.Area() != 0 {
		t.Errorf("zero-height split produced area %v + %v", upper.Area(), lower.Area())
	}
	if !upper.IsFinite() || !lower.IsFinite() {
		t.Error("zero-height split produced non-finite vertices")
	}
}

func TestTriangle2DOffset(t *testing.T) {
	got := tri2(0, 0, 1, 0, 0, 1).Offset(10, -2)
	want := tri2(10, -2, 11, -2, 10, -1)
	if got != want {
		t.Errorf("Offset = %v, want %v", got.V, want.V)
	}
}

func TestTriangle2DSetVert(t *testing.T) {
	var tri Triangle2D
	tri.SetVert(0, 1, 2)
	tri.SetVert(2, 5, 6)
	if tri.V[0] != math3d.V2(1, 2) || tri.V[1] != math3d.V2(0, 0) || tri.V[2] != math3d.V2(5, 6) {
		t.Errorf("SetVert produced %v", tri.V)
	}
}

func TestTriangle3D(t *testing.T) {
	tri := NewTriangle3D(math3d.V3(0, 0, 0), math3d.V3(2, 0, 0), math3d.V3(0, 2, 0))
	if tri.Color != ColorWhite {
		t.Errorf("default color = %v, want white", tri.Color)
	}
	tri.SetColor(ColorWall)
	if tri.Color != ColorWall {
		t.Errorf("SetColor: got %v", tri.Color)
	}
	if tri.Area() != 2 {
		t.Errorf("Area() = %v, want 2", tri.Area())
	}
}
