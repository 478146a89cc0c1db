// Package intro scripts the one-shot camera sequence that runs before the player
// gets control.
package intro

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"showroom/internal/camera"
	"showroom/internal/tween"
)

// State is the sequencer's position in the intro. It only moves forward.
type State int

const (
	Pending State = iota
	Rotating
	Descending
	Complete
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Rotating:
		return "rotating"
	case Descending:
		return "descending"
	case Complete:
		return "complete"
	}
	return "unknown"
}

// Body is the part of the physics body the intro drives.
type Body interface {
	SetPosition(mgl32.Vec3)
	SetLinearVelocity(mgl32.Vec3)
	SetAngularVelocity(mgl32.Vec3)
	Wake()
}

// TouchEnabler is switched on once, when the intro completes.
type TouchEnabler interface {
	Enable()
}

// Settings fixes the choreography.
type Settings struct {
	StartPosition   mgl32.Vec3
	StartYaw        float32
	SpinDuration    time.Duration
	DescendDuration time.Duration
	SpawnPoint      mgl32.Vec3
	SafetyPeriod    time.Duration
	PortraitFOV     float32
	FOVLerp         float32
}

var ease = tween.PowerInOut(2)

// Sequencer owns the camera and the body from Start until Complete. While it runs the
// body is slaved to the camera, the reverse of normal play.
type Sequencer struct {
	settings Settings
	cam      *camera.Camera
	body     Body
	touch    TouchEnabler
	portrait func() bool
	log      zerolog.Logger

	state      State
	timeline   *tween.Timeline
	safety     *tween.Ticker
	stopped    bool
	onComplete []func()
}

// New returns a Pending sequencer. portrait reports whether the device is a phone held
// upright; it is polled on every update and may be nil.
func New(settings Settings, cam *camera.Camera, body Body, touch TouchEnabler, portrait func() bool, log zerolog.Logger) *Sequencer {
	if portrait == nil {
		portrait = func() bool { return false }
	}
	return &Sequencer{
		settings: settings,
		cam:      cam,
		body:     body,
		touch:    touch,
		portrait: portrait,
		log:      log,
	}
}

// OnComplete registers fn to run once the intro completes.
func (s *Sequencer) OnComplete(fn func()) {
	s.onComplete = append(s.onComplete, fn)
}

// State returns the current state.
func (s *Sequencer) State() State { return s.state }

// Animating reports whether player movement must stay disabled.
func (s *Sequencer) Animating() bool { return s.state != Complete }

// Start places camera and body at the start pose and schedules the spin, the descent
// and the safety sync. Calling Start while running or after Complete does nothing.
// After a Stop that cancelled the intro, Start replays it from the beginning.
func (s *Sequencer) Start() {
	if s.state == Complete {
		return
	}
	if s.stopped {
		s.stopped = false
		s.state = Pending
	}
	if s.state != Pending {
		return
	}
	st := s.settings
	s.cam.Position = st.StartPosition
	s.cam.SetRotation(st.StartYaw, 0)
	s.body.SetPosition(st.StartPosition)

	var fromYaw float32
	var fromPos mgl32.Vec3
	s.timeline = tween.NewTimeline(s.complete).
		Add(tween.Step{
			Duration: st.SpinDuration,
			Ease:     ease,
			OnStart:  func() { fromYaw = s.cam.Yaw },
			OnUpdate: func(p float32) {
				s.cam.Yaw = tween.Lerp(fromYaw, fromYaw+2*math32.Pi, p)
				s.body.SetPosition(s.cam.Position)
				if s.portrait() {
					s.cam.LerpFOV(st.PortraitFOV, st.FOVLerp)
				}
			},
		}).
		Add(tween.Step{
			Duration: st.DescendDuration,
			Ease:     ease,
			OnStart: func() {
				fromPos = s.cam.Position
				s.enter(Descending)
			},
			OnUpdate: func(p float32) {
				s.cam.Position = lerpVec(fromPos, st.SpawnPoint, p)
				s.body.SetPosition(s.cam.Position)
				s.body.SetLinearVelocity(mgl32.Vec3{})
			},
		})
	s.safety = tween.NewTicker(st.SafetyPeriod, s.sync)
	s.enter(Rotating)
}

// Update advances the intro by dt. The safety sync runs before the timeline so the
// timeline's pose is the last one written in a frame.
func (s *Sequencer) Update(dt time.Duration) {
	if s.stopped || s.state == Pending || s.state == Complete {
		return
	}
	s.safety.Advance(dt)
	s.timeline.Advance(dt)
}

// Skip jumps straight to Complete with camera and body at the spawn point.
func (s *Sequencer) Skip() {
	if s.state == Complete {
		return
	}
	s.stopped = false
	s.cancel()
	s.cam.Position = s.settings.SpawnPoint
	s.body.SetPosition(s.settings.SpawnPoint)
	s.complete()
}

// Stop cancels any scheduled animation and safety work. No callback touches the body
// after Stop returns. It is safe to call more than once.
func (s *Sequencer) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	s.cancel()
	if s.state != Complete {
		s.log.Info().Str("state", s.state.String()).Msg("intro cancelled")
	}
}

func (s *Sequencer) cancel() {
	if s.timeline != nil {
		s.timeline.Kill()
	}
	if s.safety != nil {
		s.safety.Stop()
	}
}

// sync keeps the physics engine from reasserting control between scripted updates.
func (s *Sequencer) sync() {
	s.body.Wake()
	s.body.SetPosition(s.cam.Position)
	s.body.SetLinearVelocity(mgl32.Vec3{})
}

func (s *Sequencer) complete() {
	if s.state == Complete {
		return
	}
	if s.safety != nil {
		s.safety.Stop()
	}
	s.enter(Complete)
	if s.touch != nil {
		s.touch.Enable()
	}
	s.body.SetLinearVelocity(mgl32.Vec3{})
	s.body.SetAngularVelocity(mgl32.Vec3{})
	for _, fn := range s.onComplete {
		fn()
	}
}

func (s *Sequencer) enter(next State) {
	s.log.Info().Str("from", s.state.String()).Str("to", next.String()).Msg("intro")
	s.state = next
}

func lerpVec(a, b mgl32.Vec3, f float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(f))
}
