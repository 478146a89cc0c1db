// Package respawn puts the player back on the floor after a fall.
package respawn

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// Body is the part of the physics body the monitor reads and resets.
type Body interface {
	Position() mgl32.Vec3
	SetPosition(mgl32.Vec3)
	SetLinearVelocity(mgl32.Vec3)
	SetAngularVelocity(mgl32.Vec3)
}

// Monitor resets the body to Point whenever it drops below Height.
type Monitor struct {
	Height float32
	Point  mgl32.Vec3

	log   zerolog.Logger
	count int
}

// New returns a monitor with the given floor threshold and respawn point.
func New(height float32, point mgl32.Vec3, log zerolog.Logger) *Monitor {
	return &Monitor{Height: height, Point: point, log: log}
}

// Check runs once per tick. It never fires before the intro completes, because the
// intro parks the body off-world on purpose. It reports whether the body was reset.
func (m *Monitor) Check(body Body, introComplete bool) bool {
	if !introComplete {
		return false
	}
	pos := body.Position()
	if pos.Y() >= m.Height {
		return false
	}
	m.Reset(body)
	m.log.Info().
		Float32("y", pos.Y()).
		Int("count", m.count).
		Msg("respawned")
	return true
}

// Reset moves the body to the respawn point at rest, regardless of altitude.
func (m *Monitor) Reset(body Body) {
	body.SetPosition(m.Point)
	body.SetLinearVelocity(mgl32.Vec3{})
	body.SetAngularVelocity(mgl32.Vec3{})
	m.count++
}

// Count returns how many times the body was reset.
func (m *Monitor) Count() int { return m.count }
