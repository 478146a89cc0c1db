package input

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Tap detection thresholds.
const (
	DefaultTapSlop = 10 // pixels
	DefaultTapTime = 300 * time.Millisecond
)

// StickZone locates the on-screen joystick.
type StickZone interface {
	ZoneTester
	JoystickCenter() (x, y float32)
}

// Router turns polled touch snapshots into bus events. A touch that starts on the
// joystick zone drives the virtual stick from the zone's fixed center; every other
// touch is published as a TouchEvent. A short, still touch is reported as a tap.
type Router struct {
	bus    *Bus
	zone   StickZone
	radius float32

	TapSlop float32
	TapTime time.Duration

	prev  []Touch
	stick struct {
		active bool
		id     int
	}
	tap struct {
		active bool
		id     int
		start  mgl32.Vec2
		at     time.Duration
	}
}

// NewRouter returns a router publishing to bus. zone may be nil on devices without
// a joystick. radius caps the reported stick distance.
func NewRouter(bus *Bus, zone StickZone, radius float32) *Router {
	return &Router{bus: bus, zone: zone, radius: radius, TapSlop: DefaultTapSlop, TapTime: DefaultTapTime}
}

// Update compares cur with the previous snapshot and publishes start, move and end
// events. It returns the tap completed in this snapshot, if any.
func (r *Router) Update(now time.Duration, cur []Touch) (tap Touch, tapped bool) {
	var started, ended, moved bool
	for _, t := range cur {
		p, ok := find(r.prev, t.ID)
		switch {
		case !ok:
			started = true
			r.begin(now, t, len(cur))
		case r.stick.active && t.ID == r.stick.id:
		case p.X != t.X || p.Y != t.Y:
			moved = true
		}
	}
	for _, p := range r.prev {
		if _, ok := find(cur, p.ID); ok {
			continue
		}
		ended = true
		if r.stick.active && p.ID == r.stick.id {
			r.stick.active = false
			r.bus.PublishJoystick(JoystickEvent{Phase: JoystickEnd})
		}
		if r.tap.active && p.ID == r.tap.id {
			r.tap.active = false
			if now-r.tap.at <= r.TapTime && (mgl32.Vec2{p.X, p.Y}).Sub(r.tap.start).Len() <= r.TapSlop {
				tap, tapped = p, true
			}
		}
	}

	if r.stick.active {
		if t, ok := find(cur, r.stick.id); ok {
			r.publishStick(t)
		}
	}

	world := r.worldTouches(cur)
	if moved {
		// Touches that began in this snapshot are announced by the start event.
		r.bus.PublishTouch(TouchEvent{Phase: TouchMove, Touches: r.known(world)})
	}
	if started {
		r.bus.PublishTouch(TouchEvent{Phase: TouchStart, Touches: world})
	}
	if ended {
		r.bus.PublishTouch(TouchEvent{Phase: TouchEnd, Touches: world})
	}

	r.prev = append(r.prev[:0], cur...)
	return tap, tapped
}

func (r *Router) known(touches []Touch) []Touch {
	out := make([]Touch, 0, len(touches))
	for _, t := range touches {
		if _, ok := find(r.prev, t.ID); ok {
			out = append(out, t)
		}
	}
	return out
}

func (r *Router) begin(now time.Duration, t Touch, count int) {
	if !r.stick.active && r.zone != nil && r.zone.InJoystickZone(t.X, t.Y) {
		r.stick.active = true
		r.stick.id = t.ID
		return
	}
	if count == 1 {
		r.tap.active = true
		r.tap.id = t.ID
		r.tap.start = mgl32.Vec2{t.X, t.Y}
		r.tap.at = now
		return
	}
	r.tap.active = false
}

// worldTouches drops the stick touch; it never rotates the camera.
func (r *Router) worldTouches(cur []Touch) []Touch {
	out := make([]Touch, 0, len(cur))
	for _, t := range cur {
		if r.stick.active && t.ID == r.stick.id {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (r *Router) publishStick(t Touch) {
	cx, cy := r.zone.JoystickCenter()
	angle, dist := StickVector(cx, cy, t.X, t.Y, r.radius)
	r.bus.PublishJoystick(JoystickEvent{Phase: JoystickMove, Angle: angle, Distance: dist})
}

// StickVector converts a knob position to the stick's angle (radians, counter-clockwise
// from screen right, in [0, 2π)) and distance from center, capped at radius.
func StickVector(cx, cy, x, y, radius float32) (angle, distance float32) {
	dx, dy := x-cx, cy-y
	angle = math32.Atan2(dy, dx)
	if angle < 0 {
		angle += 2 * math32.Pi
	}
	distance = math32.Min(math32.Hypot(dx, dy), radius)
	return angle, distance
}

// Reset forgets all tracked touches without publishing.
func (r *Router) Reset() {
	r.prev = r.prev[:0]
	r.stick.active = false
	r.tap.active = false
}

// StickTouch returns the touch currently driving the stick.
func (r *Router) StickTouch() (Touch, bool) {
	if !r.stick.active {
		return Touch{}, false
	}
	return find(r.prev, r.stick.id)
}
