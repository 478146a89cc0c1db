package camera

import "github.com/go-gl/mathgl/mgl32"

// Follow eases the camera toward a target each tick. Factor is the fraction of the
// remaining distance covered per tick: smaller is smoother and slower to converge.
type Follow struct {
	Factor float32
}

// Step moves c a Factor of the way toward target.
func (f Follow) Step(c *Camera, target mgl32.Vec3) {
	c.Position = c.Position.Add(target.Sub(c.Position).Mul(f.Factor))
}
