package physics

import "github.com/go-gl/mathgl/mgl32"

// Defaults for World sleep handling.
const (
	DefaultSleepSpeed = 0.05 // m/s below which a body counts as idle
	DefaultSleepDelay = 1.0  // seconds of idleness before sleeping
)

// AABB is an axis-aligned box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// Overlaps reports whether two boxes intersect with positive volume.
func (a AABB) Overlaps(b AABB) bool {
	for i := 0; i < 3; i++ {
		if a.Max[i] <= b.Min[i] || b.Max[i] <= a.Min[i] {
			return false
		}
	}
	return true
}

// World holds a set of bodies and runs a simple 3D physics step: gravity, integration, AABB collision.
type World struct {
	Gravity    mgl32.Vec3
	Bodies     []*Body
	SleepSpeed float32
	SleepDelay float32
}

// NewWorld returns a world with Y-up gravity (0, -9.81, 0).
func NewWorld() *World {
	return &World{
		Gravity:    mgl32.Vec3{0, -9.81, 0},
		SleepSpeed: DefaultSleepSpeed,
		SleepDelay: DefaultSleepDelay,
	}
}

// AddBody appends a body to the world. Order is preserved.
func (w *World) AddBody(b *Body) {
	w.Bodies = append(w.Bodies, b)
}

// RemoveBody drops b from the world. Unknown bodies are ignored.
func (w *World) RemoveBody(b *Body) {
	for i, x := range w.Bodies {
		if x == b {
			w.Bodies = append(w.Bodies[:i], w.Bodies[i+1:]...)
			return
		}
	}
}

// penetrationAxis returns the overlap depth and axis index (0=X, 1=Y, 2=Z) of minimum penetration.
// If no overlap, returns (0, -1).
func penetrationAxis(a, b AABB) (depth float32, axis int) {
	axis = -1
	for i := 0; i < 3; i++ {
		overlap := min(a.Max[i], b.Max[i]) - max(a.Min[i], b.Min[i])
		if overlap <= 0 {
			return 0, -1
		}
		if axis < 0 || overlap < depth {
			depth, axis = overlap, i
		}
	}
	return depth, axis
}

// Step advances the simulation by dt seconds: sleep bookkeeping, gravity, integration, then AABB contacts.
// No global floor: dynamic bodies fall until they hit another body (e.g. a static slab).
func (w *World) Step(dt float32) {
	for _, b := range w.Bodies {
		if b.Static || b.sleeping {
			continue
		}
		b.vel = b.vel.Add(w.Gravity.Mul(dt))
		b.pos = b.pos.Add(b.vel.Mul(dt))
		if b.LockRotations {
			b.angVel = mgl32.Vec3{}
		}
	}

	for i := 0; i < len(w.Bodies); i++ {
		bi := w.Bodies[i]
		for j := i + 1; j < len(w.Bodies); j++ {
			w.resolve(bi, w.Bodies[j])
		}
	}

	for _, b := range w.Bodies {
		w.updateSleep(b, dt)
	}
}

// resolve pushes an overlapping pair apart along the minimum penetration axis and
// kills the moving bodies' velocity on that axis. Static bodies don't move.
func (w *World) resolve(bi, bj *Body) {
	if bi.Static && bj.Static {
		return
	}
	boxI, boxJ := bi.AABB(), bj.AABB()
	if !boxI.Overlaps(boxJ) {
		return
	}
	depth, axis := penetrationAxis(boxI, boxJ)
	if axis < 0 {
		return
	}
	// push i toward the side it is already on
	sign := float32(1)
	if bi.pos[axis] < bj.pos[axis] {
		sign = -1
	}
	var moveI, moveJ float32
	switch {
	case bi.Static:
		moveJ = -sign * depth
	case bj.Static:
		moveI = sign * depth
	default:
		total := bi.Mass + bj.Mass
		moveI = sign * depth * (bj.Mass / total)
		moveJ = -sign * depth * (bi.Mass / total)
	}
	if !bi.Static {
		bi.pos[axis] += moveI
		bi.vel[axis] = 0
	}
	if !bj.Static {
		bj.pos[axis] += moveJ
		bj.vel[axis] = 0
	}
}

func (w *World) updateSleep(b *Body, dt float32) {
	if b.Static || !b.CanSleep || b.sleeping {
		return
	}
	if b.vel.Len() >= w.SleepSpeed || b.angVel.Len() >= w.SleepSpeed {
		b.idle = 0
		return
	}
	b.idle += dt
	if b.idle >= w.SleepDelay {
		b.sleeping = true
		b.vel = mgl32.Vec3{}
		b.angVel = mgl32.Vec3{}
	}
}
