package physics

import "github.com/go-gl/mathgl/mgl32"

// Handle is the narrow view of a rigid body the player controller drives.
type Handle interface {
	Position() mgl32.Vec3
	SetPosition(mgl32.Vec3)
	LinearVelocity() mgl32.Vec3
	SetLinearVelocity(mgl32.Vec3)
	SetAngularVelocity(mgl32.Vec3)
	Wake()
}

// Body is a 3D rigid body with position, velocities, and an AABB sized by Scale.
// Static bodies never move and ignore gravity. Bodies with CanSleep false never sleep.
type Body struct {
	pos    mgl32.Vec3
	vel    mgl32.Vec3
	angVel mgl32.Vec3

	Scale         mgl32.Vec3
	Mass          float32
	Static        bool
	LockRotations bool
	CanSleep      bool

	sleeping bool
	idle     float32 // seconds spent below the sleep velocity threshold
}

// NewBody returns a body with the given position and scale. Velocity is zero.
// mass is used for collision response; use 1 for default.
func NewBody(position, scale mgl32.Vec3, mass float32, static bool) *Body {
	if mass <= 0 {
		mass = 1
	}
	return &Body{
		pos:      position,
		Scale:    scale,
		Mass:     mass,
		Static:   static,
		CanSleep: true,
	}
}

// NewPlayerBody returns the avatar body: dynamic, rotation-locked, never sleeping.
// The controller polls and rewrites it every frame, so a sleeping body would silently freeze.
func NewPlayerBody(position, halfExtents mgl32.Vec3) *Body {
	b := NewBody(position, halfExtents.Mul(2), 1, false)
	b.LockRotations = true
	b.CanSleep = false
	return b
}

func (b *Body) Position() mgl32.Vec3        { return b.pos }
func (b *Body) LinearVelocity() mgl32.Vec3  { return b.vel }
func (b *Body) AngularVelocity() mgl32.Vec3 { return b.angVel }

// SetPosition teleports the body and wakes it.
func (b *Body) SetPosition(p mgl32.Vec3) {
	b.pos = p
	b.Wake()
}

// SetLinearVelocity replaces the linear velocity and wakes the body.
func (b *Body) SetLinearVelocity(v mgl32.Vec3) {
	if b.Static {
		return
	}
	b.vel = v
	b.Wake()
}

// SetAngularVelocity replaces the angular velocity. Rotation-locked bodies keep zero.
func (b *Body) SetAngularVelocity(v mgl32.Vec3) {
	if b.Static || b.LockRotations {
		b.angVel = mgl32.Vec3{}
		return
	}
	b.angVel = v
	b.Wake()
}

// Wake clears the sleep state and idle timer.
func (b *Body) Wake() {
	b.sleeping = false
	b.idle = 0
}

// Sleeping reports whether the world skipped this body on its last step.
func (b *Body) Sleeping() bool {
	return b.sleeping
}

// AABB returns the body's bounding box (center position, half extents from scale).
func (b *Body) AABB() AABB {
	half := mgl32.Vec3{nonZero(b.Scale[0]), nonZero(b.Scale[1]), nonZero(b.Scale[2])}.Mul(0.5)
	return AABB{Min: b.pos.Sub(half), Max: b.pos.Add(half)}
}

func nonZero(v float32) float32 {
	if v == 0 {
		return 1
	}
	return v
}
