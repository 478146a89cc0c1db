package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxPitch bounds look up/down so the camera never flips over the vertical.
const MaxPitch float32 = math32.Pi / 2

var (
	worldUp      = mgl32.Vec3{0, 1, 0}
	localForward = mgl32.Vec3{0, 0, -1}
)

// Camera is the render camera handle: a position, yaw/pitch applied in YXZ order
// (yaw about world Y first, then pitch about the local X axis), and a perspective lens.
// Yaw 0 looks down -Z.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32 // radians
	Pitch    float32 // radians, within [-MaxPitch, MaxPitch]
	FOV      float32 // vertical field of view, degrees
	Aspect   float32
	Near     float32
	Far      float32

	projection mgl32.Mat4
}

// New returns a camera at the origin looking down -Z with an up-to-date projection.
func New(fov, aspect, near, far float32) *Camera {
	if aspect <= 0 {
		aspect = 1
	}
	c := &Camera{FOV: fov, Aspect: aspect, Near: near, Far: far}
	c.UpdateProjection()
	return c
}

// UpdateProjection recomputes the projection matrix. Call after changing FOV, Aspect, Near or Far.
func (c *Camera) UpdateProjection() {
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// Projection returns the cached projection matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return c.projection
}

// SetViewport updates the aspect ratio for a w x h viewport.
func (c *Camera) SetViewport(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.Aspect = float32(w) / float32(h)
	c.UpdateProjection()
}

// LerpFOV moves the field of view a fraction f toward target and refreshes the projection.
func (c *Camera) LerpFOV(target, f float32) {
	c.FOV += (target - c.FOV) * f
	c.UpdateProjection()
}

// SetRotation sets yaw and pitch, clamping pitch.
func (c *Camera) SetRotation(yaw, pitch float32) {
	c.Yaw = yaw
	c.Pitch = clampPitch(pitch)
}

// Rotate adds a look delta. Pitch is clamped after every call, however large the delta.
func (c *Camera) Rotate(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch = clampPitch(c.Pitch + dPitch)
}

func clampPitch(p float32) float32 {
	return mgl32.Clamp(p, -MaxPitch, MaxPitch)
}

// Orientation returns the camera rotation as a quaternion (yaw then pitch).
func (c *Camera) Orientation() mgl32.Quat {
	yaw := mgl32.QuatRotate(c.Yaw, worldUp)
	pitch := mgl32.QuatRotate(c.Pitch, mgl32.Vec3{1, 0, 0})
	return yaw.Mul(pitch)
}

// Forward is the unit view direction.
func (c *Camera) Forward() mgl32.Vec3 {
	return c.Orientation().Rotate(localForward)
}

// Up is the camera's local up vector in world space.
func (c *Camera) Up() mgl32.Vec3 {
	return c.Orientation().Rotate(worldUp)
}

// Target is a point one unit ahead of the camera.
func (c *Camera) Target() mgl32.Vec3 {
	return c.Position.Add(c.Forward())
}

// View returns the world-to-camera matrix. Built from the inverse orientation so it
// stays well defined when looking straight up or down.
func (c *Camera) View() mgl32.Mat4 {
	inv := c.Orientation().Inverse().Mat4()
	return inv.Mul4(mgl32.Translate3D(-c.Position.X(), -c.Position.Y(), -c.Position.Z()))
}
