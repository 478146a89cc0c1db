package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVec(t *testing.T, want, got mgl32.Vec3, tol float32) {
	t.Helper()
	require.True(t, want.ApproxEqualThreshold(got, tol), "want %v, got %v", want, got)
}

func TestForward_YawAndPitch(t *testing.T) {
	c := New(75, 16.0/9, 0.1, 100)
	assertVec(t, mgl32.Vec3{0, 0, -1}, c.Forward(), 1e-5)

	c.SetRotation(math32.Pi/2, 0)
	assertVec(t, mgl32.Vec3{-1, 0, 0}, c.Forward(), 1e-5)

	c.SetRotation(0, math32.Pi/4)
	s := math32.Sqrt(2) / 2
	assertVec(t, mgl32.Vec3{0, s, -s}, c.Forward(), 1e-5)
}

func TestRotate_PitchAlwaysClamped(t *testing.T) {
	c := New(75, 1, 0.1, 100)
	for i := 0; i < 50; i++ {
		c.Rotate(0.3, 10)
		assert.LessOrEqual(t, c.Pitch, MaxPitch)
	}
	assert.Equal(t, MaxPitch, c.Pitch)
	for i := 0; i < 50; i++ {
		c.Rotate(-0.3, -1e6)
		assert.GreaterOrEqual(t, c.Pitch, -MaxPitch)
	}
	assert.Equal(t, -MaxPitch, c.Pitch)
	assert.InDelta(t, 0, c.Yaw, 1e-4, "yaw is not clamped, it accumulates")
}

func TestView_StraightUpIsFinite(t *testing.T) {
	c := New(75, 1, 0.1, 100)
	c.Position = mgl32.Vec3{1, 2, 3}
	c.SetRotation(0.3, MaxPitch)
	v := c.View()
	for _, x := range v {
		require.False(t, math32.IsNaN(x))
	}
	// the camera position maps to the view-space origin
	p := v.Mul4x1(c.Position.Vec4(1)).Vec3()
	assertVec(t, mgl32.Vec3{}, p, 1e-5)
}

func TestFollow_MovesFractionOfDistance(t *testing.T) {
	c := New(75, 1, 0.1, 100)
	c.Position = mgl32.Vec3{0, 0, 0}
	body := mgl32.Vec3{10, 0, -20}

	Follow{Factor: 0.05}.Step(c, body)
	assertVec(t, mgl32.Vec3{0.5, 0, -1}, c.Position, 1e-5)

	remaining := body.Sub(c.Position).Len()
	assert.InDelta(t, body.Len()*0.95, remaining, 1e-4, "non-teleporting follow")
}

func TestFollow_Converges(t *testing.T) {
	c := New(75, 1, 0.1, 100)
	target := mgl32.Vec3{3, 1, 2}
	f := Follow{Factor: 0.05}
	for i := 0; i < 400; i++ {
		f.Step(c, target)
	}
	assertVec(t, target, c.Position, 1e-3)
}

func TestLerpFOV(t *testing.T) {
	c := New(75, 1, 0.1, 100)
	before := c.Projection()
	c.LerpFOV(90, 0.05)
	assert.InDelta(t, 75.75, c.FOV, 1e-4)
	assert.NotEqual(t, before, c.Projection())
}

func TestNDC(t *testing.T) {
	x, y := NDC(400, 300, 800, 600)
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(0), y)

	x, y = NDC(0, 0, 800, 600)
	assert.Equal(t, float32(-1), x)
	assert.Equal(t, float32(1), y)

	x, y = NDC(10, 10, 0, 0)
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(0), y)
}

func TestRayFromNDC(t *testing.T) {
	c := New(90, 1, 0.1, 100)
	c.Position = mgl32.Vec3{1, 2, 3}
	c.SetRotation(math32.Pi/2, 0)

	center := c.RayFromNDC(0, 0)
	assertVec(t, c.Position, center.Origin, 1e-6)
	assertVec(t, c.Forward(), center.Direction, 1e-4)

	// fov 90, aspect 1: the right edge of the screen is 45 degrees off-axis
	edge := c.RayFromNDC(1, 0)
	cos := edge.Direction.Dot(c.Forward())
	assert.InDelta(t, math32.Cos(math32.Pi/4), cos, 1e-4)
	assert.InDelta(t, 1, edge.Direction.Len(), 1e-5)

	top := c.RayFromNDC(0, 1)
	assert.Greater(t, top.Direction.Y(), float32(0))
}

func TestRayAt(t *testing.T) {
	r := Ray{Origin: mgl32.Vec3{1, 0, 0}, Direction: mgl32.Vec3{0, 0, -1}}
	assertVec(t, mgl32.Vec3{1, 0, -5}, r.At(5), 1e-6)
}
