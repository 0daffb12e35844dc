// sectorcam - Terminal sector map walker
// Walk through sector maps, generated rooms and glTF props with a flat
// shaded, near-plane clipping software renderer.
//
// Controls:
//
//	W/S, Up/Down - Move forward/back
//	A/D          - Strafe left/right
//	Left/Right   - Turn
//	Q/E          - Turn
//	M            - Cycle fill mode (solid, shaded, wireframe)
//	O            - Toggle wireframe overlay
//	G            - Toggle guides (scene bounds and axes)
//	R            - Return to spawn
//	?            - Toggle HUD overlay
//	Esc          - Quit
package main

import (
	"flag"
	"fmt"
	"os"
)

var (
	mapPath      = flag.String("map", "", "Sector map to load (generated room if empty)")
	closedFlag   = flag.Bool("closed", false, "Close every sector's wall chain")
	seedFlag     = flag.Uint64("seed", 1, "Seed for the generated room")
	propPath     = flag.String("glb", "", "glTF/GLB prop placed in front of the spawn")
	propScale    = flag.Float64("prop-scale", 1, "Prop scale")
	modeFlag     = flag.String("mode", "solid", "Fill mode: solid, shaded or wireframe")
	overlayFlag  = flag.Bool("overlay", false, "Outline triangles on top of the fill")
	rowStepFlag  = flag.Int("rowstep", 1, "Fill every n-th scanline")
	targetFPS    = flag.Int("fps", 30, "Target FPS")
	fovFlag      = flag.Float64("fov", 0.73, "Field of view factor")
	camFlag      = flag.String("cam", "", "Camera pose x,y,z,yaw (spawn if empty)")
	bgColor      = flag.String("bg", "20,20,30", "Background color (R,G,B)")
	snapshotPath = flag.String("snapshot", "", "Render one frame to a .png or .bmp file and exit")
	snapWidth    = flag.Int("width", 1920, "Snapshot width")
	snapHeight   = flag.Int("height", 1080, "Snapshot height")
	snapScale    = flag.Int("scale", 1, "Snapshot upscale factor")
	logPath      = flag.String("log", "", "Write debug logs to this file")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "sectorcam - Terminal sector map walker\n\n")
		fmt.Fprintf(os.Stderr, "Usage: sectorcam [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/S         - Move forward/back\n")
		fmt.Fprintf(os.Stderr, "  A/D         - Strafe\n")
		fmt.Fprintf(os.Stderr, "  Arrows, Q/E - Turn\n")
		fmt.Fprintf(os.Stderr, "  M           - Cycle fill mode\n")
		fmt.Fprintf(os.Stderr, "  O           - Toggle wireframe overlay\n")
		fmt.Fprintf(os.Stderr, "  G           - Toggle guides\n")
		fmt.Fprintf(os.Stderr, "  R           - Return to spawn\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := configFromFlags()
	if err != nil {
		return err
	}

	closeLog, err := setupLogger(cfg.logPath, cfg.snapshot != "")
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := loadScene(cfg)
	if err != nil {
		return err
	}

	if cfg.snapshot != "" {
		return snapshot(cfg, s)
	}
	return view(cfg, s)
}
