package respawn

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakeBody struct {
	pos, vel, ang mgl32.Vec3
}

func (b *fakeBody) Position() mgl32.Vec3            { return b.pos }
func (b *fakeBody) SetPosition(p mgl32.Vec3)        { b.pos = p }
func (b *fakeBody) SetLinearVelocity(v mgl32.Vec3)  { b.vel = v }
func (b *fakeBody) SetAngularVelocity(v mgl32.Vec3) { b.ang = v }

func TestCheck(t *testing.T) {
	point := mgl32.Vec3{0, 0.3, 0}
	tests := []struct {
		name     string
		y        float32
		complete bool
		want     bool
	}{
		{"below threshold after intro", -2.5, true, true},
		{"far below during intro", -500, false, false},
		{"above threshold", 0.1, true, false},
		{"exactly at threshold", -2, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(-2, point, zerolog.Nop())
			b := &fakeBody{pos: mgl32.Vec3{1, tt.y, 1}, vel: mgl32.Vec3{0, -9, 2}, ang: mgl32.Vec3{1, 1, 1}}

			got := m.Check(b, tt.complete)
			assert.Equal(t, tt.want, got)
			if tt.want {
				assert.Equal(t, point, b.pos)
				assert.Equal(t, mgl32.Vec3{}, b.vel)
				assert.Equal(t, mgl32.Vec3{}, b.ang)
				assert.Equal(t, 1, m.Count())
			} else {
				assert.Equal(t, float32(tt.y), b.pos.Y())
				assert.Zero(t, m.Count())
			}
		})
	}
}

func TestReset(t *testing.T) {
	m := New(-2, mgl32.Vec3{0, 0.3, 0}, zerolog.Nop())
	b := &fakeBody{pos: mgl32.Vec3{5, 5, 5}, vel: mgl32.Vec3{1, 0, 0}}
	m.Reset(b)
	assert.Equal(t, mgl32.Vec3{0, 0.3, 0}, b.pos)
	assert.Equal(t, mgl32.Vec3{}, b.vel)
	assert.Equal(t, 1, m.Count())
}
