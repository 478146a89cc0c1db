package graphics

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Window configures the raylib window.
type Window struct {
	Width, Height int
	Title         string
	Fullscreen    bool
	TargetFPS     int
}

var background = rl.NewColor(18, 18, 22, 255)

// Run opens the window and drives the frame loop. Each frame it calls update with the
// frame time, then clears the screen and calls draw. ESC is left to the console; the
// window closes via its close button.
func Run(w Window, update func(dt time.Duration), draw func()) {
	if w.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode)
	} else {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	width, height := w.Width, w.Height
	rl.InitWindow(int32(width), int32(height), w.Title)
	defer rl.CloseWindow()
	if w.Fullscreen {
		rl.SetWindowSize(rl.GetMonitorWidth(0), rl.GetMonitorHeight(0))
	}

	rl.SetExitKey(rl.KeyNull)
	if w.TargetFPS > 0 {
		rl.SetTargetFPS(int32(w.TargetFPS))
	}

	for !rl.WindowShouldClose() {
		update(time.Duration(float64(rl.GetFrameTime()) * float64(time.Second)))

		rl.BeginDrawing()
		rl.ClearBackground(background)
		draw()
		rl.EndDrawing()
	}
}
