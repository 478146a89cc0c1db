package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"showroom/internal/player"
)

const (
	fontSize   = 18
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 15
)

var hudColor = rl.NewColor(120, 230, 140, 255)

// HUD draws runtime state in the top-right corner. Hidden by default.
type HUD struct {
	visible    bool
	ShowMem    bool
	frameCount uint32
	lines      []string
	mem        runtime.MemStats
}

// New returns a hidden HUD.
func New() *HUD {
	return &HUD{}
}

// SetVisible shows or hides the HUD.
func (h *HUD) SetVisible(v bool) {
	h.visible = v
	h.lines = nil
}

// Visible reports whether the HUD is drawn.
func (h *HUD) Visible() bool { return h.visible }

// Lines formats a status snapshot, one line per HUD row.
func Lines(fps int32, st player.Status) []string {
	p, v := st.Position, st.Velocity
	lines := []string{
		fmt.Sprintf("FPS: %d", fps),
		fmt.Sprintf("intro: %s  t=%.1fs", st.Intro, st.Elapsed.Seconds()),
		fmt.Sprintf("pos: %.2f %.2f %.2f", p.X(), p.Y(), p.Z()),
		fmt.Sprintf("vel: %.2f %.2f %.2f", v.X(), v.Y(), v.Z()),
		fmt.Sprintf("yaw: %.2f pitch: %.2f", st.Yaw, st.Pitch),
		fmt.Sprintf("respawns: %d", st.Respawns),
	}
	if st.Device.SupportsTouch {
		lines = append(lines, fmt.Sprintf("touch: tracked=%v portrait=%v", st.Tracker.Active, st.Device.IsPortrait))
	}
	return lines
}

// Draw renders the HUD when visible. Text is recomputed every updateInterval frames.
func (h *HUD) Draw(st player.Status) {
	if !h.visible {
		return
	}
	h.frameCount++
	if h.lines == nil || h.frameCount%updateInterval == 0 {
		h.lines = Lines(rl.GetFPS(), st)
		if h.ShowMem {
			runtime.ReadMemStats(&h.mem)
			h.lines = append(h.lines, fmt.Sprintf("Mem: %.2f MiB", float64(h.mem.Alloc)/(1024*1024)))
		}
	}
	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	for _, text := range h.lines {
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, screenW-w-padding, y, fontSize, hudColor)
		y += lineHeight
	}
}
