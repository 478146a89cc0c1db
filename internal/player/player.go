// Package player hosts the per-frame navigation controller: it owns the input
// subscriptions and runs the unifier, intro, respawn, motion and camera follow in a
// fixed order on every tick.
package player

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"showroom/internal/camera"
	"showroom/internal/device"
	"showroom/internal/input"
	"showroom/internal/intro"
	"showroom/internal/motion"
	"showroom/internal/overlay"
	"showroom/internal/physics"
	"showroom/internal/picking"
	"showroom/internal/respawn"
	"showroom/internal/scene"
)

// ProductHandler receives products resolved by a click or tap. What it shows, or
// fetches when the catalog is not loaded yet, is up to the handler.
type ProductHandler interface {
	OpenProduct(id scene.ProductID)
}

// ProductHandlerFunc adapts a function to ProductHandler.
type ProductHandlerFunc func(id scene.ProductID)

func (f ProductHandlerFunc) OpenProduct(id scene.ProductID) { f(id) }

// Stepper advances the physics simulation.
type Stepper interface {
	Step(dt float32)
}

// Options are the controller's fixed tunables.
type Options struct {
	Input         input.Settings
	Motion        motion.Settings
	Intro         intro.Settings
	FollowFactor  float32
	RespawnHeight float32
	RespawnPoint  mgl32.Vec3
	SkipIntro     bool
}

// Deps are the collaborators the controller drives or reads. World, Picker and
// Products may be nil.
type Deps struct {
	Camera   *camera.Camera
	Body     physics.Handle
	World    Stepper
	Surfaces *overlay.Surfaces
	Touch    *overlay.TouchGate
	Device   device.Capabilities
	Picker   *picking.Picker
	Products ProductHandler
	Log      zerolog.Logger
}

// Controller is the player navigation and interaction controller. All methods run
// on the frame loop's goroutine.
type Controller struct {
	opts     Options
	cam      *camera.Camera
	body     physics.Handle
	world    Stepper
	surfaces *overlay.Surfaces
	device   device.Capabilities
	picker   *picking.Picker
	products ProductHandler
	log      zerolog.Logger

	unifier *input.Unifier
	motion  *motion.Integrator
	intro   *intro.Sequencer
	respawn *respawn.Monitor
	follow  camera.Follow

	elapsed time.Duration
	running bool
	unsubs  []func()
}

// New wires the controller. Nothing is subscribed or animated until Start.
func New(opts Options, deps Deps) *Controller {
	c := &Controller{
		opts:     opts,
		cam:      deps.Camera,
		body:     deps.Body,
		world:    deps.World,
		surfaces: deps.Surfaces,
		device:   deps.Device,
		picker:   deps.Picker,
		products: deps.Products,
		log:      deps.Log,
		follow:   camera.Follow{Factor: opts.FollowFactor},
	}
	var gate input.Gate
	if deps.Surfaces != nil {
		gate = deps.Surfaces
	}
	var touch input.Enabler
	var enabler intro.TouchEnabler
	if deps.Touch != nil {
		touch, enabler = deps.Touch, deps.Touch
	}
	c.unifier = input.NewUnifier(opts.Input, gate, touch, &c.device, deps.Log.With().Str("part", "input").Logger())
	c.motion = motion.New(opts.Motion, gate, deps.Log.With().Str("part", "motion").Logger())
	c.intro = intro.New(opts.Intro, deps.Camera, deps.Body, enabler, c.mobilePortrait, deps.Log.With().Str("part", "intro").Logger())
	c.respawn = respawn.New(opts.RespawnHeight, opts.RespawnPoint, deps.Log.With().Str("part", "respawn").Logger())
	c.cam.SetViewport(c.device.Width, c.device.Height)
	return c
}

// Start subscribes to src and begins the intro, or skips it when configured to.
// The joystick is only listened to on touch devices. Calling Start twice does nothing.
func (c *Controller) Start(src input.Source) {
	if c.running {
		return
	}
	c.running = true
	c.unsubs = append(c.unsubs,
		src.SubscribeTouch(c.unifier.HandleTouch),
		src.SubscribeLook(c.unifier.HandleLook),
		src.SubscribeResize(c.handleResize),
	)
	if c.device.SupportsTouch {
		c.unsubs = append(c.unsubs, src.SubscribeJoystick(c.unifier.HandleJoystick))
	}
	c.log.Info().
		Bool("touch", c.device.SupportsTouch).
		Bool("portrait", c.device.IsPortrait).
		Int("subscriptions", len(c.unsubs)).
		Msg("controller started")

	if c.opts.SkipIntro {
		c.intro.Skip()
		return
	}
	c.intro.Start()
}

// Stop releases every subscription and cancels the intro. It is safe to call more
// than once and before Start.
func (c *Controller) Stop() {
	if !c.running {
		return
	}
	c.running = false
	for _, unsub := range c.unsubs {
		unsub()
	}
	c.unsubs = nil
	c.intro.Stop()
	c.unifier.Reset()
	c.log.Info().Dur("elapsed", c.elapsed).Msg("controller stopped")
}

// Tick runs one frame: pending look rotation, respawn check, then either the intro
// or player motion, the physics step and finally the camera follow. The follow is
// skipped while the intro drives the camera.
func (c *Controller) Tick(dt time.Duration, keys input.Keys) {
	if !c.running {
		return
	}
	c.elapsed += dt

	if d, ok := c.unifier.TakeCameraDelta(); ok {
		c.cam.Rotate(d.Yaw, d.Pitch)
	}

	c.respawn.Check(c.body, c.intro.State() == intro.Complete)

	if c.intro.Animating() {
		c.intro.Update(dt)
	} else {
		c.motion.Step(motion.Frame{
			Now:         c.elapsed,
			Intent:      c.unifier.Intent(keys),
			Jump:        keys.Jump,
			Orientation: c.cam.Orientation(),
		}, c.body)
	}

	if c.world != nil {
		c.world.Step(float32(dt.Seconds()))
	}

	if !c.intro.Animating() {
		c.follow.Step(c.cam, c.body.Position())
	}
}

// Click resolves the product under a click or tap and hands it to the product
// handler. Clicks are ignored while an overlay blocks the world.
func (c *Controller) Click(ptr picking.Pointer) (scene.ProductID, bool) {
	if c.picker == nil || (c.surfaces != nil && c.surfaces.Blocked()) {
		return 0, false
	}
	id, ok := c.picker.Pick(ptr, c.cam, c.Viewport())
	if !ok {
		return 0, false
	}
	c.log.Info().Uint64("product", uint64(id)).Msg("product picked")
	if c.products != nil {
		c.products.OpenProduct(id)
	}
	return id, true
}

func (c *Controller) mobilePortrait() bool {
	return c.device.MobilePortrait()
}

func (c *Controller) handleResize(ev input.ResizeEvent) {
	c.device.Resize(ev.Width, ev.Height)
	c.cam.SetViewport(ev.Width, ev.Height)
}

// Respawn puts the body back at the respawn point immediately.
func (c *Controller) Respawn() {
	c.respawn.Reset(c.body)
}

// SkipIntro completes the intro at the spawn point.
func (c *Controller) SkipIntro() {
	c.intro.Skip()
}

// Viewport returns the current drawable size.
func (c *Controller) Viewport() picking.Viewport {
	return picking.Viewport{Width: c.device.Width, Height: c.device.Height}
}

// Status is a snapshot for the HUD.
type Status struct {
	Intro    intro.State
	Elapsed  time.Duration
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Yaw      float32
	Pitch    float32
	Respawns int
	Tracker  input.TouchTracker
	Device   device.Capabilities
}

// Status returns the controller's current state.
func (c *Controller) Status() Status {
	return Status{
		Intro:    c.intro.State(),
		Elapsed:  c.elapsed,
		Position: c.body.Position(),
		Velocity: c.body.LinearVelocity(),
		Yaw:      c.cam.Yaw,
		Pitch:    c.cam.Pitch,
		Respawns: c.respawn.Count(),
		Tracker:  c.unifier.Tracker(),
		Device:   c.device,
	}
}

// Running reports whether Start has been called without a matching Stop.
func (c *Controller) Running() bool { return c.running }

// SetFOV sets the camera's vertical field of view in degrees.
func (c *Controller) SetFOV(deg float32) {
	c.cam.FOV = deg
	c.cam.UpdateProjection()
}

// Hover resolves the product under the pointer without opening it.
func (c *Controller) Hover(ptr picking.Pointer) (scene.ProductID, bool) {
	if c.picker == nil {
		return 0, false
	}
	return c.picker.Pick(ptr, c.cam, c.Viewport())
}
