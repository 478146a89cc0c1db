package input

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// Keys is the polled keyboard state for one frame.
type Keys struct {
	Forward, Backward, Left, Right, Jump bool
}

// MovementIntent is the combined keyboard + joystick direction for one frame.
// Axis.X is lateral (+right), Axis.Y is longitudinal (+backward, so forward is negative).
// Axis is unit length when Active and zero otherwise.
type MovementIntent struct {
	Axis   mgl32.Vec2
	Active bool
}

// CameraDelta is the accumulated look rotation waiting to be applied to the camera, in radians.
type CameraDelta struct {
	Yaw, Pitch float32
}

// TouchTracker follows the single touch that drives the camera.
type TouchTracker struct {
	Active       bool
	ID           int
	LastX, LastY float32
}

// Settings tunes how raw input maps onto intent.
type Settings struct {
	MoveSpeed           float32
	JoystickForwardGain float32
	TouchSensitivity    mgl32.Vec2
	LookSensitivity     mgl32.Vec2
}

// Gate reports whether world input is currently blocked by an overlay.
type Gate interface {
	Blocked() bool
}

// Enabler reports whether touch handling is switched on.
type Enabler interface {
	Enabled() bool
}

// ZoneTester reports whether a screen point falls on the joystick.
type ZoneTester interface {
	InJoystickZone(x, y float32) bool
}

// Unifier folds keyboard, joystick and touch-drag into one MovementIntent and one CameraDelta.
type Unifier struct {
	settings Settings
	gate     Gate
	touch    Enabler
	zone     ZoneTester
	log      zerolog.Logger

	joystick   mgl32.Vec2
	tracker    TouchTracker
	pending    CameraDelta
	hasPending bool
}

// NewUnifier returns a Unifier. zone may be nil when there is no joystick on screen.
func NewUnifier(settings Settings, gate Gate, touch Enabler, zone ZoneTester, log zerolog.Logger) *Unifier {
	return &Unifier{
		settings: settings,
		gate:     gate,
		touch:    touch,
		zone:     zone,
		log:      log,
	}
}

// KeyAxis maps key state to the signed (side, front) pair. Opposing keys cancel.
func KeyAxis(k Keys) mgl32.Vec2 {
	return mgl32.Vec2{b2f(k.Right) - b2f(k.Left), b2f(k.Backward) - b2f(k.Forward)}
}

func b2f(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// Intent sums the keyboard axis with the joystick axis and normalizes the result.
// Summing keeps both devices live at once instead of one overriding the other.
func (u *Unifier) Intent(k Keys) MovementIntent {
	sum := KeyAxis(k).Add(u.joystick)
	l := sum.Len()
	if l == 0 {
		return MovementIntent{}
	}
	return MovementIntent{Axis: sum.Mul(1 / l), Active: true}
}

// Joystick returns the current joystick axis.
func (u *Unifier) Joystick() mgl32.Vec2 {
	return u.joystick
}

// HandleJoystick decomposes a stick event. Travel scales the vector by distance/100 × move speed;
// the forward component gets JoystickForwardGain on top for easier forward walking.
func (u *Unifier) HandleJoystick(ev JoystickEvent) {
	if ev.Phase == JoystickEnd {
		u.joystick = mgl32.Vec2{}
		return
	}
	speed := ev.Distance / 100 * u.settings.MoveSpeed
	u.joystick = mgl32.Vec2{
		math32.Cos(ev.Angle) * speed,
		-math32.Sin(ev.Angle) * speed * u.settings.JoystickForwardGain,
	}
}

// HandleTouch updates camera-touch tracking. Every phase is ignored while touch is disabled
// or the world is blocked.
func (u *Unifier) HandleTouch(ev TouchEvent) {
	if !u.accepting() {
		return
	}
	switch ev.Phase {
	case TouchStart:
		u.touchStart(ev.Touches)
	case TouchMove:
		u.touchMove(ev.Touches)
	case TouchEnd:
		u.touchEnd(ev.Touches)
	}
}

// HandleLook integrates a locked-pointer motion into the pending camera delta.
func (u *Unifier) HandleLook(ev LookEvent) {
	if !u.accepting() {
		return
	}
	u.addDelta(ev.DX, ev.DY, u.settings.LookSensitivity)
}

func (u *Unifier) accepting() bool {
	if u.touch != nil && !u.touch.Enabled() {
		return false
	}
	return u.gate == nil || !u.gate.Blocked()
}

// touchStart picks the rightmost touch that is not on the joystick.
func (u *Unifier) touchStart(touches []Touch) {
	var best *Touch
	for i := range touches {
		t := &touches[i]
		if u.zone != nil && u.zone.InJoystickZone(t.X, t.Y) {
			continue
		}
		if best == nil || t.X > best.X {
			best = t
		}
	}
	if best == nil {
		return
	}
	u.tracker = TouchTracker{Active: true, ID: best.ID, LastX: best.X, LastY: best.Y}
	u.log.Debug().Int("touch", best.ID).Msg("camera touch tracked")
}

func (u *Unifier) touchMove(touches []Touch) {
	if !u.tracker.Active {
		return
	}
	t, ok := find(touches, u.tracker.ID)
	if !ok {
		u.clearTracker("touch vanished")
		return
	}
	u.addDelta(t.X-u.tracker.LastX, t.Y-u.tracker.LastY, u.settings.TouchSensitivity)
	u.tracker.LastX, u.tracker.LastY = t.X, t.Y
}

func (u *Unifier) touchEnd(remaining []Touch) {
	if !u.tracker.Active {
		return
	}
	if _, ok := find(remaining, u.tracker.ID); !ok {
		u.clearTracker("touch lifted")
	}
}

func (u *Unifier) clearTracker(reason string) {
	u.log.Debug().Int("touch", u.tracker.ID).Str("reason", reason).Msg("camera touch released")
	u.tracker = TouchTracker{}
}

func (u *Unifier) addDelta(dx, dy float32, sens mgl32.Vec2) {
	u.pending.Yaw -= dx * sens.X()
	u.pending.Pitch -= dy * sens.Y()
	u.hasPending = true
}

func find(touches []Touch, id int) (Touch, bool) {
	for _, t := range touches {
		if t.ID == id {
			return t, true
		}
	}
	return Touch{}, false
}

// Tracker returns the current camera-touch tracking state.
func (u *Unifier) Tracker() TouchTracker {
	return u.tracker
}

// TakeCameraDelta returns the look rotation accumulated since the last call and resets it.
// ok is false when nothing was accumulated.
func (u *Unifier) TakeCameraDelta() (d CameraDelta, ok bool) {
	if !u.hasPending {
		return CameraDelta{}, false
	}
	d = u.pending
	u.pending = CameraDelta{}
	u.hasPending = false
	return d, true
}

// Reset drops joystick, tracking and pending look state.
func (u *Unifier) Reset() {
	u.joystick = mgl32.Vec2{}
	u.tracker = TouchTracker{}
	u.pending = CameraDelta{}
	u.hasPending = false
}
