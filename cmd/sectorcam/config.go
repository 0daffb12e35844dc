package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/taigrr/sectorcam/pkg/math3d"
	"github.com/taigrr/sectorcam/pkg/render"
	"github.com/taigrr/sectorcam/pkg/scene"
)

// config is the parsed command line.
type config struct {
	mapPath   string
	closed    bool
	seed      uint64
	propPath  string
	propScale float64

	mode    render.Mode
	overlay bool
	fill    render.FillOptions
	fps     int
	fov     float64
	bg      render.Color

	cam    render.Pose
	hasCam bool

	snapshot      string
	width, height int
	scale         int
	logPath       string
}

func configFromFlags() (config, error) {
	cfg := config{
		mapPath:   *mapPath,
		closed:    *closedFlag,
		seed:      *seedFlag,
		propPath:  *propPath,
		propScale: *propScale,
		overlay:   *overlayFlag,
		fps:       max(*targetFPS, 1),
		fov:       *fovFlag,
		snapshot:  *snapshotPath,
		width:     *snapWidth,
		height:    *snapHeight,
		scale:     max(*snapScale, 1),
		logPath:   *logPath,
	}

	var err error
	if cfg.mode, err = render.ParseMode(*modeFlag); err != nil {
		return cfg, err
	}
	if cfg.bg, err = parseRGB(*bgColor); err != nil {
		return cfg, fmt.Errorf("-bg: %w", err)
	}
	if *camFlag != "" {
		if cfg.cam, err = parsePose(*camFlag); err != nil {
			return cfg, fmt.Errorf("-cam: %w", err)
		}
		cfg.hasCam = true
	}

	cfg.fill = render.DefaultFillOptions()
	cfg.fill.RowStep = *rowStepFlag
	if err := cfg.fill.Validate(); err != nil {
		return cfg, fmt.Errorf("-rowstep: %w", err)
	}
	return cfg, nil
}

// parseRGB parses "r,g,b" with 0-255 components.
func parseRGB(s string) (render.Color, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b); err != nil {
		return render.Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return render.RGB(r, g, b), nil
}

// parsePose parses "x,y,z,yaw".
func parsePose(s string) (render.Pose, error) {
	var x, y, z, yaw float64
	if _, err := fmt.Sscanf(strings.ReplaceAll(s, " ", ""), "%g,%g,%g,%g", &x, &y, &z, &yaw); err != nil {
		return render.Pose{}, fmt.Errorf("parse pose %q: %w", s, err)
	}
	return render.Pose{Position: math3d.V3(x, y, z), Yaw: yaw}, nil
}

// setupLogger installs a text slog handler for the render package and the
// viewer. The interactive viewer owns the terminal, so without -log nothing
// is logged; snapshots log to stderr.
func setupLogger(path string, snapshot bool) (func(), error) {
	var w io.Writer
	closeFn := func() {}
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case snapshot:
		w = os.Stderr
	default:
		return closeFn, nil
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
	render.SetLogger(logger)
	return closeFn, nil
}

// loadScene builds the scene the flags ask for: a sector map or a generated
// room, optionally with a prop placed in front of the spawn.
func loadScene(cfg config) (*scene.Scene, error) {
	var (
		s   *scene.Scene
		err error
	)
	if cfg.mapPath != "" {
		var opts []scene.SectorOption
		if cfg.closed {
			opts = append(opts, scene.WithClosedSectors())
		}
		s, err = scene.LoadSectorMap(cfg.mapPath, opts...)
	} else {
		gen := scene.DefaultGenerateConfig()
		gen.Seed = cfg.seed
		s, err = scene.Generate(gen)
	}
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}

	if cfg.hasCam {
		s.Spawn = cfg.cam
	}

	if cfg.propPath != "" {
		mesh, err := scene.LoadGLB(cfg.propPath)
		if err != nil {
			return nil, fmt.Errorf("load prop: %w", err)
		}
		pos := s.Spawn.Position.Add(s.Spawn.Forward().Scale(4))
		s.AddMesh(mesh, math3d.Placement(pos, s.Spawn.Yaw, cfg.propScale), render.ColorWhite)
		s.CalculateBounds()
		slog.Info("loaded prop", "path", cfg.propPath, "triangles", mesh.TriangleCount())
	}

	slog.Info("loaded scene", "name", s.Name, "triangles", s.TriangleCount())
	return s, nil
}

// newFrameRenderer creates a projector and renderer for a width x height
// framebuffer.
func newFrameRenderer(cfg config, fb *render.Framebuffer) (*render.Renderer, error) {
	proj, err := render.NewProjector(render.Viewport{Width: fb.Width, Height: fb.Height, FOV: cfg.fov})
	if err != nil {
		return nil, err
	}
	filler, err := render.NewFiller(cfg.fill)
	if err != nil {
		return nil, err
	}
	r := render.NewRenderer(proj, fb)
	r.SetFiller(filler)
	r.Mode = cfg.mode
	r.Overlay = cfg.overlay
	return r, nil
}

// snapshot renders one frame from the spawn and writes it to disk.
func snapshot(cfg config, s *scene.Scene) error {
	if cfg.width <= 0 || cfg.height <= 0 {
		return fmt.Errorf("snapshot size %dx%d", cfg.width, cfg.height)
	}
	fb := render.NewFramebuffer(cfg.width, cfg.height)
	r, err := newFrameRenderer(cfg, fb)
	if err != nil {
		return err
	}

	fb.Clear(cfg.bg)
	stats, err := r.Render(s.Triangles, s.Spawn)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := fb.Save(cfg.snapshot, cfg.scale); err != nil {
		return err
	}
	slog.Info("wrote snapshot", "path", cfg.snapshot, "emitted", stats.Emitted, "culled", stats.Culled)
	return nil
}
