package scene

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/taigrr/sectorcam/pkg/math3d"
	"github.com/taigrr/sectorcam/pkg/render"
)

// GenerateConfig describes a procedurally generated room: a checkered floor
// with a ring of square pillars around the origin.
type GenerateConfig struct {
	Seed uint64

	Pillars     int     // Number of pillars in the ring
	Radius      float64 // Mean ring radius
	PillarWidth float64 // Mean pillar edge length
	Y1, Y2      float64 // Vertical extent of the pillars

	FloorTiles int     // Tiles per floor edge; 0 disables the floor
	TileSize   float64 // Tile edge length
}

// DefaultGenerateConfig returns a small room that fits the default camera.
func DefaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		Seed:        1,
		Pillars:     8,
		Radius:      6,
		PillarWidth: 1,
		Y1:          DefaultY1,
		Y2:          DefaultY2,
		FloorTiles:  8,
		TileSize:    2,
	}
}

// Validate reports whether the config can be generated.
func (c GenerateConfig) Validate() error {
	switch {
	case c.Pillars < 0:
		return fmt.Errorf("pillar count must not be negative, got %d", c.Pillars)
	case c.Pillars > 0 && c.Radius <= 0:
		return errors.New("ring radius must be positive")
	case c.Pillars > 0 && c.PillarWidth <= 0:
		return errors.New("pillar width must be positive")
	case c.FloorTiles < 0:
		return fmt.Errorf("floor tile count must not be negative, got %d", c.FloorTiles)
	case c.FloorTiles > 0 && c.TileSize <= 0:
		return errors.New("tile size must be positive")
	}
	return nil
}

var (
	floorLight = render.RGB(90, 90, 100)
	floorDark  = render.RGB(50, 50, 60)
)

// Generate builds a scene from cfg. The same config always yields the same
// triangles in the same order. The floor comes first so pillars are drawn
// over it. Screen y grows with world y, so the floor sits at the larger of
// Y1 and Y2.
func Generate(cfg GenerateConfig) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	s := NewScene(fmt.Sprintf("generated #%d", cfg.Seed))
	s.Spawn = render.Pose{Position: math3d.V3(0, (cfg.Y1+cfg.Y2)/2, 0)}

	addFloor(s, cfg.FloorTiles, cfg.TileSize, math.Max(cfg.Y1, cfg.Y2))

	step := 2 * math.Pi / float64(max(cfg.Pillars, 1))
	for i := range cfg.Pillars {
		angle := float64(i)*step + (rng.Float64()-0.5)*0.4*step
		radius := cfg.Radius * (0.8 + 0.4*rng.Float64())
		half := cfg.PillarWidth * (0.7 + 0.6*rng.Float64()) / 2
		color := render.RGB(
			uint8(40+rng.IntN(80)),
			uint8(90+rng.IntN(80)),
			uint8(50+rng.IntN(80)),
		)

		cx, cz := radius*math.Sin(angle), radius*math.Cos(angle)
		b := &sectorBuilder{scene: s, color: color, closed: true}
		b.startSector(cfg.Y1, cfg.Y2)
		b.vertex(cx-half, cz-half)
		b.vertex(cx+half, cz-half)
		b.vertex(cx+half, cz+half)
		b.vertex(cx-half, cz+half)
		b.closeSector()
	}

	s.CalculateBounds()
	return s, nil
}

// addFloor appends a checkered n x n grid of tiles centered on the origin.
func addFloor(s *Scene, n int, size, y float64) {
	origin := -float64(n) * size / 2
	for row := range n {
		for col := range n {
			x0 := origin + float64(col)*size
			z0 := origin + float64(row)*size
			x1, z1 := x0+size, z0+size

			color := floorLight
			if (row+col)%2 == 1 {
				color = floorDark
			}
			a := render.NewTriangle3D(math3d.V3(x0, y, z0), math3d.V3(x1, y, z0), math3d.V3(x1, y, z1))
			a.SetColor(color)
			b := render.NewTriangle3D(math3d.V3(x0, y, z0), math3d.V3(x1, y, z1), math3d.V3(x0, y, z1))
			b.SetColor(color)
			s.Append(a, b)
		}
	}
}
