// Package platform polls raylib for keyboard, mouse and touch input and publishes it
// on the input bus.
package platform

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"showroom/internal/device"
	"showroom/internal/input"
	"showroom/internal/picking"
)

var (
	stickBaseColor = rl.NewColor(0, 0, 0, 60)
	stickKnobColor = rl.NewColor(0, 0, 0, 140)
)

// Frame is what one poll produced for the frame loop.
type Frame struct {
	Keys  input.Keys
	Click *picking.Pointer
}

// Poller owns the raylib side of input. It runs on the frame loop goroutine.
type Poller struct {
	bus    *input.Bus
	router *input.Router
	caps   *device.Capabilities
	gate   input.Gate
	log    zerolog.Logger

	started time.Time
}

// New returns a poller. caps is updated in place on resize so the joystick zone
// follows the window. gate keeps clicks on an open overlay from locking the pointer.
func New(bus *input.Bus, caps *device.Capabilities, gate input.Gate, log zerolog.Logger) *Poller {
	p := &Poller{bus: bus, caps: caps, gate: gate, log: log, started: time.Now()}
	var zone input.StickZone
	if caps.SupportsTouch {
		zone = caps
	}
	p.router = input.NewRouter(bus, zone, device.JoystickRadius)
	return p
}

// Poll reads this frame's input, publishes events and returns keys and any click.
func (p *Poller) Poll() Frame {
	p.pollResize()
	f := Frame{Keys: keys()}
	if p.caps.SupportsTouch {
		f.Click = p.pollTouch()
	} else {
		f.Click = p.pollMouse()
	}
	return f
}

func keys() input.Keys {
	return input.Keys{
		Forward:  rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp),
		Backward: rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown),
		Left:     rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft),
		Right:    rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight),
		Jump:     rl.IsKeyDown(rl.KeySpace),
	}
}

func (p *Poller) pollResize() {
	w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
	if w == p.caps.Width && h == p.caps.Height {
		return
	}
	p.caps.Resize(w, h)
	p.log.Debug().Int("width", w).Int("height", h).Bool("portrait", p.caps.IsPortrait).Msg("resize")
	p.bus.PublishResize(input.ResizeEvent{Width: w, Height: h})
}

func (p *Poller) pollTouch() *picking.Pointer {
	n := int(rl.GetTouchPointCount())
	touches := make([]input.Touch, 0, n)
	for i := 0; i < n; i++ {
		pos := rl.GetTouchPosition(int32(i))
		touches = append(touches, input.Touch{ID: int(rl.GetTouchPointId(int32(i))), X: pos.X, Y: pos.Y})
	}
	tap, ok := p.router.Update(time.Since(p.started), touches)
	if !ok {
		return nil
	}
	ptr, _ := picking.FromTouches([]input.Touch{tap})
	return &ptr
}

// pollMouse forwards look motion while the pointer is locked. A click outside any
// overlay locks the pointer; clicks are always returned for picking.
func (p *Poller) pollMouse() *picking.Pointer {
	locked := rl.IsCursorHidden()
	if locked {
		if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
			p.bus.PublishLook(input.LookEvent{DX: d.X, DY: d.Y})
		}
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return nil
	}
	m := rl.GetMousePosition()
	ptr := &picking.Pointer{X: m.X, Y: m.Y, Locked: locked}
	if !locked && (p.gate == nil || !p.gate.Blocked()) {
		rl.DisableCursor()
	}
	return ptr
}

// DrawJoystick draws the virtual stick on touch devices. Call in 2D after the scene.
func (p *Poller) DrawJoystick() {
	if !p.caps.SupportsTouch {
		return
	}
	cx, cy := p.caps.JoystickCenter()
	rl.DrawCircle(int32(cx), int32(cy), device.JoystickRadius, stickBaseColor)
	kx, ky := cx, cy
	if t, ok := p.router.StickTouch(); ok {
		angle, dist := input.StickVector(cx, cy, t.X, t.Y, device.JoystickRadius)
		dir := rl.NewVector2(1, 0)
		dir = rl.Vector2Rotate(dir, -angle)
		kx, ky = cx+dir.X*dist, cy+dir.Y*dist
	}
	rl.DrawCircle(int32(kx), int32(ky), device.JoystickRadius/2, stickKnobColor)
}
