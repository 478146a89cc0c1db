// Package motion turns the per-frame movement intent into body velocity.
package motion

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"showroom/internal/input"
)

// Body is the part of the physics body the integrator writes.
type Body interface {
	LinearVelocity() mgl32.Vec3
	SetLinearVelocity(mgl32.Vec3)
	Wake()
}

// Settings are the fixed movement constants.
type Settings struct {
	MoveSpeed    float32
	JumpSpeed    float32
	JumpCooldown time.Duration
}

// Frame is everything the integrator reads for one tick.
type Frame struct {
	Now         time.Duration // monotonic time since the controller started
	Intent      input.MovementIntent
	Jump        bool
	Orientation mgl32.Quat // camera orientation; "forward" is camera-forward
	Animating   bool
}

// Integrator writes camera-relative horizontal velocity to the body every tick while
// leaving vertical velocity to gravity and jumps.
//
// The jump cooldown is a plain timer, not a ground check: once it elapses the player
// may jump again even in mid-air.
type Integrator struct {
	settings    Settings
	gate        input.Gate
	log         zerolog.Logger
	jumpReadyAt time.Duration
}

// New returns an Integrator. gate may be nil when nothing can block movement.
func New(settings Settings, gate input.Gate, log zerolog.Logger) *Integrator {
	return &Integrator{settings: settings, gate: gate, log: log}
}

// Step applies one tick. It does nothing while animating or while an overlay blocks input.
// It reports whether a jump was applied.
func (m *Integrator) Step(f Frame, body Body) (jumped bool) {
	if f.Animating || (m.gate != nil && m.gate.Blocked()) {
		return false
	}

	vy := body.LinearVelocity().Y()
	move := Horizontal(f.Intent, f.Orientation, m.settings.MoveSpeed)

	body.Wake()
	body.SetLinearVelocity(mgl32.Vec3{move.X(), vy, move.Z()})

	if f.Jump && m.CanJump(f.Now) {
		v := body.LinearVelocity()
		body.SetLinearVelocity(mgl32.Vec3{v.X(), m.settings.JumpSpeed, v.Z()})
		m.jumpReadyAt = f.Now + m.settings.JumpCooldown
		m.log.Debug().Dur("at", f.Now).Msg("jump")
		return true
	}
	return false
}

// CanJump reports whether the cooldown from the previous jump has elapsed at now.
func (m *Integrator) CanJump(now time.Duration) bool {
	return now >= m.jumpReadyAt
}

// Horizontal rotates the intent into world space by the camera orientation, normalizes
// it and scales it to speed. The returned vector's Y is meaningless to callers; only X and Z are used.
func Horizontal(intent input.MovementIntent, orientation mgl32.Quat, speed float32) mgl32.Vec3 {
	if !intent.Active {
		return mgl32.Vec3{}
	}
	dir := orientation.Rotate(mgl32.Vec3{intent.Axis.X(), 0, intent.Axis.Y()})
	l := dir.Len()
	if l == 0 {
		return mgl32.Vec3{}
	}
	return dir.Mul(speed / l)
}
