package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = float32(1.0 / 60)

func floor() *Body {
	// top face at y = 0
	return NewBody(mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{40, 1, 40}, 1, true)
}

func TestStep_FreeFall(t *testing.T) {
	w := NewWorld()
	b := NewBody(mgl32.Vec3{0, 10, 0}, mgl32.Vec3{1, 1, 1}, 1, false)
	w.AddBody(b)

	w.Step(dt)
	assert.InDelta(t, -9.81*dt, b.LinearVelocity().Y(), 1e-6)
	assert.InDelta(t, 10-9.81*dt*dt, b.Position().Y(), 1e-5)
}

func TestStep_LandsOnStaticFloor(t *testing.T) {
	w := NewWorld()
	ground := floor()
	b := NewBody(mgl32.Vec3{0, 2, 0}, mgl32.Vec3{1, 1, 1}, 1, false)
	w.AddBody(ground)
	w.AddBody(b)

	for i := 0; i < 240; i++ {
		w.Step(dt)
	}
	assert.InDelta(t, 0.5, b.Position().Y(), 1e-3, "resting on the floor")
	assert.Equal(t, mgl32.Vec3{0, -0.5, 0}, ground.Position(), "static body never moves")
}

func TestStep_PlayerBodyNeverSleeps(t *testing.T) {
	w := NewWorld()
	w.AddBody(floor())
	p := NewPlayerBody(mgl32.Vec3{0, 0.2, 0}, mgl32.Vec3{0.2, 0.2, 0.2})
	w.AddBody(p)

	for i := 0; i < 600; i++ {
		w.Step(dt)
	}
	assert.False(t, p.Sleeping())
	assert.False(t, p.CanSleep)
}

func TestStep_IdleBodySleepsAndWakes(t *testing.T) {
	w := NewWorld()
	w.AddBody(floor())
	b := NewBody(mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{1, 1, 1}, 1, false)
	w.AddBody(b)

	for i := 0; i < 120; i++ {
		w.Step(dt)
	}
	require.True(t, b.Sleeping())

	b.SetLinearVelocity(mgl32.Vec3{1, 0, 0})
	assert.False(t, b.Sleeping())
	w.Step(dt)
	assert.Greater(t, b.Position().X(), float32(0))
}

func TestSetAngularVelocity_RotationLocked(t *testing.T) {
	p := NewPlayerBody(mgl32.Vec3{}, mgl32.Vec3{0.2, 0.2, 0.2})
	p.SetAngularVelocity(mgl32.Vec3{1, 2, 3})
	assert.Equal(t, mgl32.Vec3{}, p.AngularVelocity())

	b := NewBody(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, 1, false)
	b.SetAngularVelocity(mgl32.Vec3{1, 2, 3})
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, b.AngularVelocity())
}

func TestResolve_DynamicPairSplitByMass(t *testing.T) {
	w := NewWorld()
	w.Gravity = mgl32.Vec3{}
	a := NewBody(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}, 1, false)
	b := NewBody(mgl32.Vec3{0.5, 0, 0}, mgl32.Vec3{1, 1, 1}, 3, false)
	w.AddBody(a)
	w.AddBody(b)

	w.Step(dt)
	assert.InDelta(t, -0.375, a.Position().X(), 1e-5)
	assert.InDelta(t, 0.625, b.Position().X(), 1e-5)
	assert.False(t, a.AABB().Overlaps(b.AABB()))
}

func TestPenetrationAxis(t *testing.T) {
	a := AABB{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{2, 2, 2}}
	b := AABB{Min: mgl32.Vec3{1.5, 0, 0}, Max: mgl32.Vec3{3, 2, 2}}
	depth, axis := penetrationAxis(a, b)
	assert.Equal(t, 0, axis)
	assert.InDelta(t, 0.5, depth, 1e-6)

	c := AABB{Min: mgl32.Vec3{5, 5, 5}, Max: mgl32.Vec3{6, 6, 6}}
	_, axis = penetrationAxis(a, c)
	assert.Equal(t, -1, axis)
}

func TestRemoveBody(t *testing.T) {
	w := NewWorld()
	a, b := floor(), floor()
	w.AddBody(a)
	w.AddBody(b)
	w.RemoveBody(a)
	w.RemoveBody(a)
	assert.Equal(t, []*Body{b}, w.Bodies)
}
