package device

import "github.com/chewxy/math32"

// JoystickZoneSize is the side of the square joystick hit region, in pixels.
const JoystickZoneSize = 150

// JoystickRadius is the travel radius of the virtual stick knob, in pixels.
const JoystickRadius = 65

// Joystick margins from the bottom-left viewport corner, per orientation.
const (
	portraitMarginBottom  = 70
	portraitMarginLeft    = 80
	landscapeMarginBottom = 80
	landscapeMarginLeft   = 120
)

// Rect is an axis-aligned screen rectangle, origin top-left.
type Rect struct {
	X, Y, Width, Height float32
}

// Contains reports whether (x, y) lies inside r (edges inclusive).
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Center returns the rectangle center.
func (r Rect) Center() (float32, float32) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Capabilities describes the device once at startup; Resize keeps orientation current.
type Capabilities struct {
	SupportsTouch bool
	IsPortrait    bool
	Width         int
	Height        int
}

// New returns capabilities for a viewport of w x h pixels.
func New(supportsTouch bool, w, h int) Capabilities {
	c := Capabilities{SupportsTouch: supportsTouch}
	c.Resize(w, h)
	return c
}

// Resize records the new viewport size and recomputes portrait orientation (taller than wide).
func (c *Capabilities) Resize(w, h int) {
	c.Width, c.Height = w, h
	c.IsPortrait = h > w
}

// MobilePortrait reports a touch device held upright.
func (c Capabilities) MobilePortrait() bool {
	return c.SupportsTouch && c.IsPortrait
}

// JoystickZone returns the joystick hit region. The zone sits near the bottom-left
// corner, with margins that depend on orientation and are capped by viewport size.
func (c Capabilities) JoystickZone() Rect {
	w, h := float32(c.Width), float32(c.Height)
	var left, bottom float32
	if w > h {
		bottom = math32.Min(landscapeMarginBottom, h*0.45)
		left = math32.Min(landscapeMarginLeft, w*0.08)
	} else {
		bottom = math32.Min(portraitMarginBottom, h*0.01)
		left = math32.Min(portraitMarginLeft, w*0.12)
	}
	return Rect{
		X:      left,
		Y:      h - bottom - JoystickZoneSize,
		Width:  JoystickZoneSize,
		Height: JoystickZoneSize,
	}
}

// InJoystickZone reports whether a screen point falls on the joystick. Always false
// on devices without touch, where no joystick is shown.
func (c Capabilities) InJoystickZone(x, y float32) bool {
	if !c.SupportsTouch {
		return false
	}
	return c.JoystickZone().Contains(x, y)
}

// JoystickCenter returns the fixed origin of the virtual stick.
func (c Capabilities) JoystickCenter() (float32, float32) {
	return c.JoystickZone().Center()
}
