package player

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showroom/internal/camera"
	"showroom/internal/device"
	"showroom/internal/input"
	"showroom/internal/intro"
	"showroom/internal/motion"
	"showroom/internal/overlay"
	"showroom/internal/physics"
	"showroom/internal/picking"
	"showroom/internal/scene"
)

const frame = time.Second / 60

func testOptions() Options {
	return Options{
		Input: input.Settings{
			MoveSpeed:           1,
			JoystickForwardGain: 2,
			TouchSensitivity:    mgl32.Vec2{0.004, 0.004},
			LookSensitivity:     mgl32.Vec2{0.002, 0.002},
		},
		Motion: motion.Settings{MoveSpeed: 1, JumpSpeed: 5, JumpCooldown: 500 * time.Millisecond},
		Intro: intro.Settings{
			StartPosition:   mgl32.Vec3{4, 0.5, 0},
			StartYaw:        -math32.Pi / 2,
			SpinDuration:    5 * time.Second,
			DescendDuration: time.Second,
			SpawnPoint:      mgl32.Vec3{},
			SafetyPeriod:    frame,
			PortraitFOV:     90,
			FOVLerp:         0.05,
		},
		FollowFactor:  0.05,
		RespawnHeight: -2,
		RespawnPoint:  mgl32.Vec3{0, 0.3, 0},
	}
}

type rig struct {
	ctrl     *Controller
	bus      *input.Bus
	cam      *camera.Camera
	body     *physics.Body
	surfaces *overlay.Surfaces
	touch    *overlay.TouchGate
	opened   []scene.ProductID
}

func newRig(t *testing.T, opts Options, touch bool) *rig {
	t.Helper()
	r := &rig{
		bus:      input.NewBus(),
		cam:      camera.New(75, 1, 0.1, 100),
		body:     physics.NewPlayerBody(mgl32.Vec3{}, mgl32.Vec3{0.2, 0.2, 0.2}),
		surfaces: overlay.NewSurfaces(),
		touch:    &overlay.TouchGate{},
	}

	g := scene.NewGraph()
	group, err := g.Add(g.Root(), scene.Node{Name: "hanger", Local: scene.Transform{Position: mgl32.Vec3{0, 0, -5}, Scale: mgl32.Vec3{1, 1, 1}}, Tagged: true, Product: 9729009615141})
	require.NoError(t, err)
	_, err = g.Add(group, scene.Node{Local: scene.Identity(), Mesh: scene.BoxMesh(mgl32.Vec3{0.5, 0.5, 0.5})})
	require.NoError(t, err)

	r.ctrl = New(opts, Deps{
		Camera:   r.cam,
		Body:     r.body,
		Surfaces: r.surfaces,
		Touch:    r.touch,
		Device:   device.New(touch, 200, 200),
		Picker:   picking.New(g, g.Root(), zerolog.Nop()),
		Products: ProductHandlerFunc(func(id scene.ProductID) { r.opened = append(r.opened, id) }),
		Log:      zerolog.Nop(),
	})
	return r
}

func skipped() Options {
	o := testOptions()
	o.SkipIntro = true
	return o
}

func TestStartStop_Subscriptions(t *testing.T) {
	tests := []struct {
		name  string
		touch bool
		want  int
	}{
		{"desktop has no joystick", false, 3},
		{"touch device", true, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, testOptions(), tt.touch)
			r.ctrl.Stop() // before Start is harmless

			r.ctrl.Start(r.bus)
			r.ctrl.Start(r.bus)
			assert.Equal(t, tt.want, r.bus.Subscribers())
			assert.True(t, r.ctrl.Running())

			r.ctrl.Stop()
			r.ctrl.Stop()
			assert.Zero(t, r.bus.Subscribers())
			assert.False(t, r.ctrl.Running())
		})
	}
}

func TestIntro_HandsOverOnce(t *testing.T) {
	r := newRig(t, testOptions(), true)
	r.ctrl.Start(r.bus)
	require.Equal(t, intro.Rotating, r.ctrl.Status().Intro)

	transitions := 0
	for i := 0; i < 60*7; i++ {
		before := r.ctrl.Status().Intro
		r.ctrl.Tick(frame, input.Keys{Forward: true})
		after := r.ctrl.Status().Intro
		if after == intro.Complete && before != intro.Complete {
			transitions++
			assert.Equal(t, mgl32.Vec3{}, r.body.LinearVelocity(), "at rest on handover")
			assert.Equal(t, mgl32.Vec3{}, r.body.AngularVelocity())
		}
		assert.Equal(t, after == intro.Complete, r.touch.Enabled(), "touch enabled only once complete")
	}
	assert.Equal(t, 1, transitions)
}

func TestIntro_KeysIgnoredWhileAnimating(t *testing.T) {
	r := newRig(t, testOptions(), false)
	r.ctrl.Start(r.bus)
	r.ctrl.Tick(frame, input.Keys{Forward: true, Jump: true})
	assert.Equal(t, mgl32.Vec3{}, r.body.LinearVelocity())
}

func TestRespawn_NeverDuringIntro(t *testing.T) {
	r := newRig(t, testOptions(), false)
	r.ctrl.Start(r.bus)
	r.body.SetPosition(mgl32.Vec3{0, -100, 0})
	r.ctrl.Tick(frame, input.Keys{})
	assert.Zero(t, r.ctrl.Status().Respawns)
}

func TestRespawn_AfterIntro(t *testing.T) {
	r := newRig(t, skipped(), false)
	r.ctrl.Start(r.bus)
	require.Equal(t, intro.Complete, r.ctrl.Status().Intro)

	r.body.SetPosition(mgl32.Vec3{3, -5, 3})
	r.body.SetLinearVelocity(mgl32.Vec3{0, -10, 0})
	r.ctrl.Tick(frame, input.Keys{})

	st := r.ctrl.Status()
	assert.Equal(t, 1, st.Respawns)
	assert.Equal(t, mgl32.Vec3{0, 0.3, 0}, st.Position)
	assert.Equal(t, mgl32.Vec3{}, st.Velocity)
}

func TestTick_MovesCameraForward(t *testing.T) {
	r := newRig(t, skipped(), false)
	r.ctrl.Start(r.bus)

	r.ctrl.Tick(frame, input.Keys{Forward: true})
	v := r.body.LinearVelocity()
	assert.InDelta(t, 0, v.X(), 1e-5)
	assert.InDelta(t, -1, v.Z(), 1e-5)

	r.surfaces.Open(overlay.Cart)
	r.body.SetLinearVelocity(mgl32.Vec3{})
	r.ctrl.Tick(frame, input.Keys{Forward: true})
	assert.Equal(t, mgl32.Vec3{}, r.body.LinearVelocity(), "blocked by the cart")
}

func TestTick_FollowsBody(t *testing.T) {
	r := newRig(t, skipped(), false)
	r.ctrl.Start(r.bus)
	r.body.SetPosition(mgl32.Vec3{2, 0, 0})
	r.cam.Position = mgl32.Vec3{}

	r.ctrl.Tick(frame, input.Keys{})
	assert.InDelta(t, 0.1, r.cam.Position.X(), 1e-6, "5% of the way, not a teleport")
}

func TestTick_StepsWorld(t *testing.T) {
	r := newRig(t, skipped(), false)
	w := physics.NewWorld()
	w.AddBody(r.body)
	r.ctrl.world = w
	r.ctrl.Start(r.bus)

	r.ctrl.Tick(frame, input.Keys{})
	assert.Less(t, r.body.LinearVelocity().Y(), float32(0), "gravity applied after motion")
}

func TestTouchDrag_RotatesCamera(t *testing.T) {
	r := newRig(t, testOptions(), true)
	r.ctrl.Start(r.bus)

	// ignored until the intro hands over
	r.bus.PublishTouch(input.TouchEvent{Phase: input.TouchStart, Touches: []input.Touch{{ID: 1, X: 180, Y: 20}}})
	assert.False(t, r.ctrl.Status().Tracker.Active)

	r.ctrl.SkipIntro()
	yaw := r.cam.Yaw
	r.bus.PublishTouch(input.TouchEvent{Phase: input.TouchStart, Touches: []input.Touch{{ID: 1, X: 180, Y: 20}}})
	r.bus.PublishTouch(input.TouchEvent{Phase: input.TouchMove, Touches: []input.Touch{{ID: 1, X: 80, Y: 20}}})
	r.ctrl.Tick(frame, input.Keys{})
	assert.InDelta(t, yaw+0.4, r.cam.Yaw, 1e-5)

	r.bus.PublishTouch(input.TouchEvent{Phase: input.TouchMove, Touches: []input.Touch{{ID: 1, X: 80, Y: -100000}}})
	r.ctrl.Tick(frame, input.Keys{})
	assert.LessOrEqual(t, r.cam.Pitch, camera.MaxPitch)
	assert.InDelta(t, camera.MaxPitch, r.cam.Pitch, 1e-6)
}

func TestJoystick_OnlyOnTouchDevices(t *testing.T) {
	move := input.JoystickEvent{Phase: input.JoystickMove, Angle: math32.Pi / 2, Distance: 65}

	desktop := newRig(t, skipped(), false)
	desktop.ctrl.Start(desktop.bus)
	desktop.bus.PublishJoystick(move)
	desktop.ctrl.Tick(frame, input.Keys{})
	assert.Equal(t, mgl32.Vec3{}, desktop.body.LinearVelocity())

	phone := newRig(t, skipped(), true)
	phone.ctrl.Start(phone.bus)
	phone.bus.PublishJoystick(move)
	phone.ctrl.Tick(frame, input.Keys{})
	assert.InDelta(t, -1, phone.body.LinearVelocity().Z(), 1e-5, "stick up walks forward")
}

func TestClick(t *testing.T) {
	r := newRig(t, skipped(), false)
	r.ctrl.Start(r.bus)

	id, ok := r.ctrl.Click(picking.Pointer{Locked: true})
	require.True(t, ok)
	assert.Equal(t, scene.ProductID(9729009615141), id)
	assert.Equal(t, []scene.ProductID{9729009615141}, r.opened)

	_, ok = r.ctrl.Click(picking.Pointer{X: 0, Y: 0})
	assert.False(t, ok, "corner ray misses")

	r.surfaces.Open(overlay.Modal)
	_, ok = r.ctrl.Click(picking.Pointer{Locked: true})
	assert.False(t, ok, "blocked while the modal is open")
	assert.Len(t, r.opened, 1)
}

func TestResize_UpdatesDevice(t *testing.T) {
	r := newRig(t, testOptions(), true)
	r.ctrl.Start(r.bus)

	r.bus.PublishResize(input.ResizeEvent{Width: 390, Height: 844})
	st := r.ctrl.Status()
	assert.True(t, st.Device.IsPortrait)
	assert.Equal(t, picking.Viewport{Width: 390, Height: 844}, r.ctrl.Viewport())
	assert.InDelta(t, 390.0/844.0, r.cam.Aspect, 1e-6)

	// portrait phones widen the FOV during the spin
	fov := r.cam.FOV
	r.ctrl.Tick(frame, input.Keys{})
	assert.Greater(t, r.cam.FOV, fov)
}

func TestTick_NoopWhenStopped(t *testing.T) {
	r := newRig(t, skipped(), false)
	r.ctrl.Tick(frame, input.Keys{Forward: true})
	assert.Equal(t, mgl32.Vec3{}, r.body.LinearVelocity())
	assert.Zero(t, r.ctrl.Status().Elapsed)
}

func TestHover_DoesNotOpen(t *testing.T) {
	r := newRig(t, skipped(), false)
	r.ctrl.Start(r.bus)

	id, ok := r.ctrl.Hover(picking.Pointer{Locked: true})
	require.True(t, ok)
	assert.Equal(t, scene.ProductID(9729009615141), id)
	assert.Empty(t, r.opened)
}

func TestRestart_ReplaysCancelledIntro(t *testing.T) {
	r := newRig(t, testOptions(), true)
	r.ctrl.Start(r.bus)
	r.ctrl.Tick(frame, input.Keys{})
	r.ctrl.Stop()

	r.ctrl.Start(r.bus)
	require.True(t, r.ctrl.Running())
	assert.Equal(t, 4, r.bus.Subscribers())
	assert.Equal(t, intro.Rotating, r.ctrl.Status().Intro)

	for i := 0; i < 60*20; i++ {
		r.ctrl.Tick(frame, input.Keys{Forward: true})
	}
	require.Equal(t, intro.Complete, r.ctrl.Status().Intro)
	assert.True(t, r.touch.Enabled())
	assert.InDelta(t, 1, r.body.LinearVelocity().Len(), 1e-4, "walking after the replayed intro")
}
