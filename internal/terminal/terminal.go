package terminal

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"showroom/internal/commands"
	"showroom/internal/overlay"
)

const (
	BarHeight = 40
	// When windowed, move bar up by this many pixels so it stays visible.
	WindowedBarOffset = 56
	prompt            = "> "
	fontSize          = 20
	padding           = 8
	maxLinesOnScreen  = 14
	lineHeight        = fontSize + 4
	maxLineLen        = 200
)

var (
	termBarColor    = rl.NewColor(40, 40, 40, 255)
	termLineColor   = rl.NewColor(80, 80, 80, 255)
	termChatBgColor = rl.NewColor(24, 24, 24, 240)
)

// LineSource supplies the recent log lines shown above the input bar.
type LineSource interface {
	Lines() []string
}

// Terminal is the console input bar at the bottom of the screen, toggled with ESC.
// While open the console surface is open, so the world ignores input.
type Terminal struct {
	log         zerolog.Logger
	lines       LineSource
	reg         *commands.Registry
	surfaces    *overlay.Surfaces
	inputBuf    string
	lockOnClose bool
}

// New returns a closed terminal that runs every submitted line through reg.
func New(log zerolog.Logger, lines LineSource, reg *commands.Registry, surfaces *overlay.Surfaces) *Terminal {
	return &Terminal{log: log, lines: lines, reg: reg, surfaces: surfaces}
}

// IsOpen reports whether the terminal is visible and capturing input.
func (t *Terminal) IsOpen() bool {
	return t.surfaces.IsOpen(overlay.Console)
}

// Update handles ESC and, while open, typing, paste, backspace and enter. Call once per frame.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		t.toggle()
	}
	if !t.IsOpen() {
		return
	}
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		t.inputBuf += rl.GetClipboardText()
	} else {
		for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
			t.inputBuf += string(rune(c))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(t.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(t.inputBuf)
		t.inputBuf = t.inputBuf[:len(t.inputBuf)-size]
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && t.inputBuf != "" {
		t.Submit(t.inputBuf)
		t.inputBuf = ""
	}
}

// toggle opens or closes the console surface. Opening frees the mouse; closing
// re-locks it only if it was locked before.
func (t *Terminal) toggle() {
	if t.IsOpen() {
		t.surfaces.Close(overlay.Console)
		if t.lockOnClose {
			rl.DisableCursor()
		}
		return
	}
	t.lockOnClose = rl.IsCursorHidden()
	t.surfaces.Open(overlay.Console)
	rl.EnableCursor()
}

// Submit echoes line and executes it as a command.
func (t *Terminal) Submit(line string) {
	t.log.Info().Msg(prompt + line)
	if err := t.reg.Execute(commands.Parse(line)); err != nil {
		t.log.Warn().Err(err).Msg("command failed")
	}
}

// Draw draws the input bar and recent log lines when open.
func (t *Terminal) Draw() {
	if !t.IsOpen() {
		return
	}
	screenW := int(rl.GetScreenWidth())
	screenH := int(rl.GetScreenHeight())
	barY := screenH - BarHeight
	if !rl.IsWindowFullscreen() {
		barY -= WindowedBarOffset
	}

	chatHeight := maxLinesOnScreen * lineHeight
	chatY := barY - chatHeight
	if chatY < 0 {
		chatHeight = barY
		chatY = 0
	}
	if chatHeight > 0 {
		rl.DrawRectangle(0, int32(chatY), int32(screenW), int32(chatHeight), termChatBgColor)
	}
	lines := t.lines.Lines()
	start := max(0, len(lines)-maxLinesOnScreen)
	for i := start; i < len(lines); i++ {
		y := chatY + (i-start)*lineHeight + padding
		line := lines[i]
		if len(line) > maxLineLen {
			line = line[:maxLineLen-3] + "..."
		}
		rl.DrawText(line, padding, int32(y), fontSize, rl.LightGray)
	}

	rl.DrawRectangle(0, int32(barY), int32(screenW), BarHeight, termBarColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, termLineColor)
	rl.DrawText(prompt+t.inputBuf+"|", padding, int32(barY+padding), fontSize, rl.White)
}
