package camera

import "github.com/go-gl/mathgl/mgl32"

// Ray is a half-line with unit direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// NDC converts a viewport pixel to normalized device coordinates (x right, y up, both in [-1,1]).
func NDC(x, y float32, width, height int) (float32, float32) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	return x/float32(width)*2 - 1, -(y/float32(height)*2 - 1)
}

// RayFromNDC casts a ray from the camera position through the given NDC point.
func (c *Camera) RayFromNDC(nx, ny float32) Ray {
	inv := c.projection.Mul4(c.View()).Inv()
	p := inv.Mul4x1(mgl32.Vec4{nx, ny, 0.5, 1})
	if p.W() != 0 {
		p = p.Mul(1 / p.W())
	}
	dir := p.Vec3().Sub(c.Position)
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	} else {
		dir = c.Forward()
	}
	return Ray{Origin: c.Position, Direction: dir}
}
