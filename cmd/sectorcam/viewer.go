package main

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/sectorcam/pkg/math3d"
	"github.com/taigrr/sectorcam/pkg/render"
	"github.com/taigrr/sectorcam/pkg/scene"
)

// Impulses added per key press.
const (
	moveImpulse = 0.12 // world units per frame
	turnImpulse = 1.5  // degrees per frame
)

// viewState is the UI state shared by the event goroutine and the frame
// loop.
type viewState struct {
	mu sync.Mutex

	camera  *render.Camera
	mode    render.Mode
	overlay bool
	guides  bool
	showHUD bool

	width, height int
	resized       bool
}

// handleKey applies a key press. It reports false when the viewer should
// quit.
func (v *viewState) handleKey(ev uv.KeyPressEvent, spawn render.Pose) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch {
	case ev.MatchString("esc", "escape", "ctrl+c"):
		return false
	case ev.MatchString("w", "up"):
		v.camera.Thrust(moveImpulse, 0, 0)
	case ev.MatchString("s", "down"):
		v.camera.Thrust(-moveImpulse, 0, 0)
	case ev.MatchString("a"):
		v.camera.Thrust(0, -moveImpulse, 0)
	case ev.MatchString("d"):
		v.camera.Thrust(0, moveImpulse, 0)
	case ev.MatchString("left", "q"):
		v.camera.Thrust(0, 0, turnImpulse)
	case ev.MatchString("right", "e"):
		v.camera.Thrust(0, 0, -turnImpulse)
	case ev.MatchString("m"):
		v.mode = v.mode.Next()
	case ev.MatchString("o"):
		v.overlay = !v.overlay
	case ev.MatchString("g"):
		v.guides = !v.guides
	case ev.MatchString("r"):
		v.camera.SetPose(spawn)
	case ev.MatchString("?", "shift+/"):
		v.showHUD = !v.showHUD
	}
	return true
}

// frameSettings is a snapshot of viewState taken once per frame.
type frameSettings struct {
	pose    render.Pose
	mode    render.Mode
	overlay bool
	guides  bool
	showHUD bool

	width, height int
	resized       bool
}

func (v *viewState) step() frameSettings {
	v.mu.Lock()
	defer v.mu.Unlock()

	f := frameSettings{
		pose:    v.camera.Update(),
		mode:    v.mode,
		overlay: v.overlay,
		guides:  v.guides,
		showHUD: v.showHUD,
		width:   v.width,
		height:  v.height,
		resized: v.resized,
	}
	v.resized = false
	return f
}

func (v *viewState) resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.width, v.height = width, height
	v.resized = true
}

// view runs the interactive terminal viewer until Esc or a signal.
func view(cfg config, s *scene.Scene) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	// Each terminal cell shows two framebuffer rows.
	fb := render.NewFramebuffer(width, height*2)
	renderer, err := newFrameRenderer(cfg, fb)
	if err != nil {
		cleanup()
		return err
	}
	guides := render.NewGuides(renderer.Projector(), fb)
	hud := NewHUD(s.Name, s.TriangleCount())

	state := &viewState{
		camera:  render.NewCamera(s.Spawn, cfg.fps),
		mode:    cfg.mode,
		overlay: cfg.overlay,
		showHUD: true,
		width:   width,
		height:  height,
	}

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				term.Erase()
				term.Resize(ev.Width, ev.Height)
				state.resize(ev.Width, ev.Height)
			case uv.KeyPressEvent:
				if !state.handleKey(ev, s.Spawn) {
					cancel()
					return
				}
			}
		}
	}()

	targetDuration := time.Second / time.Duration(cfg.fps)

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		frame := state.step()

		if frame.resized && frame.width > 0 && frame.height > 0 {
			fb = render.NewFramebuffer(frame.width, frame.height*2)
			if renderer, err = newFrameRenderer(cfg, fb); err != nil {
				cleanup()
				return err
			}
			guides = render.NewGuides(renderer.Projector(), fb)
			slog.Debug("resized", "width", frame.width, "height", frame.height)
		}
		renderer.Mode = frame.mode
		renderer.Overlay = frame.overlay

		fb.Clear(cfg.bg)
		stats, err := renderer.Render(s.Triangles, frame.pose)
		if err != nil {
			cleanup()
			return fmt.Errorf("render: %w", err)
		}
		if frame.guides {
			drawGuides(guides, s, frame.pose)
		}

		area := image.Rect(0, 0, frame.width, frame.height)
		fb.Draw(term, area)

		hud.UpdateFPS()
		if frame.showHUD {
			hud.Draw(term, area, hudStatus{
				pose:    frame.pose,
				mode:    frame.mode,
				overlay: frame.overlay,
				stats:   stats,
			})
		}

		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// drawGuides outlines the scene bounds and draws the world axes.
func drawGuides(g *render.Guides, s *scene.Scene, pose render.Pose) {
	g.DrawBox(s.BoundsMin, s.BoundsMax, pose, render.RGB(255, 200, 0))
	g.DrawAxes(2, pose)
	g.DrawGrid(math3d.V3(pose.Position.X, 0, pose.Position.Z), 20, 2, s.BoundsMax.Y, pose, render.RGB(60, 60, 90))
}
