package main

import (
	"fmt"
	"image/color"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mattn/go-runewidth"
	"github.com/taigrr/sectorcam/pkg/render"
)

// hudStatus is the per-frame data the HUD shows.
type hudStatus struct {
	pose    render.Pose
	mode    render.Mode
	overlay bool
	stats   render.FrameStats
}

// HUD renders an overlay with scene info, camera pose and frame statistics
type HUD struct {
	title     string
	triCount  int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD
func NewHUD(title string, triCount int) *HUD {
	return &HUD{
		title:    title,
		triCount: triCount,
		fpsTime:  time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

var (
	hudBg    = color.RGBA{0, 0, 0, 255}
	hudTitle = color.RGBA{255, 255, 255, 255}
	hudInfo  = color.RGBA{120, 220, 255, 255}
	hudHint  = color.RGBA{200, 200, 120, 255}
)

// lines returns the top and bottom HUD rows.
func (h *HUD) lines(st hudStatus) (top, bottom string) {
	top = fmt.Sprintf(" %.0f FPS │ %s │ %d tris ", h.fps, h.title, h.triCount)

	overlay := "[ ]"
	if st.overlay {
		overlay = "[✓]"
	}
	p := st.pose.Position
	bottom = fmt.Sprintf(" %s %s overlay │ %.1f, %.1f, %.1f ∠%.0f° │ drawn %d culled %d clipped %d ",
		st.mode, overlay, p.X, p.Y, p.Z, st.pose.Yaw,
		st.stats.Emitted, st.stats.Culled, st.stats.Clipped)
	return top, bottom
}

// Draw writes the HUD rows over the first and last row of area.
func (h *HUD) Draw(scr uv.Screen, area uv.Rectangle, st hudStatus) {
	if area.Dx() <= 0 || area.Dy() <= 0 {
		return
	}
	top, bottom := h.lines(st)
	putText(scr, area.Min.X, area.Min.Y, area.Dx(), top, uv.Style{Fg: hudTitle, Bg: hudBg})
	if area.Dy() > 1 {
		n := putText(scr, area.Min.X, area.Max.Y-1, area.Dx(), bottom, uv.Style{Fg: hudInfo, Bg: hudBg})
		hint := " ? hide  m mode  o overlay "
		if rest := area.Dx() - n; rest > runewidth.StringWidth(hint) {
			putText(scr, area.Max.X-runewidth.StringWidth(hint), area.Max.Y-1, rest, hint, uv.Style{Fg: hudHint, Bg: hudBg})
		}
	}
}

// putText draws s starting at (x, y), truncated to maxWidth columns, and
// returns the number of columns used. Wide runes take two cells.
func putText(scr uv.Screen, x, y, maxWidth int, s string, style uv.Style) int {
	if maxWidth <= 0 {
		return 0
	}
	s = runewidth.Truncate(s, maxWidth, "…")

	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		scr.SetCell(col, y, &uv.Cell{Content: string(r), Width: w, Style: style})
		col += w
	}
	return col - x
}
