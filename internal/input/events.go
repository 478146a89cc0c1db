package input

import "sync"

// TouchPhase is the lifecycle stage reported by a touch event.
type TouchPhase int

const (
	TouchStart TouchPhase = iota
	TouchMove
	TouchEnd
)

// Touch is one finger on the screen, in viewport pixels.
type Touch struct {
	ID   int
	X, Y float32
}

// TouchEvent carries every touch still on the screen after the change, like a browser TouchEvent.touches.
type TouchEvent struct {
	Phase   TouchPhase
	Touches []Touch
}

type JoystickPhase int

const (
	JoystickMove JoystickPhase = iota
	JoystickEnd
)

// JoystickEvent reports the virtual stick. Angle is in radians, 0 pointing right and
// increasing counter-clockwise (screen up is +π/2). Distance is knob travel in pixels.
type JoystickEvent struct {
	Phase    JoystickPhase
	Angle    float32
	Distance float32
}

type ResizeEvent struct {
	Width, Height int
}

// LookEvent is a relative pointer motion while the pointer is locked.
type LookEvent struct {
	DX, DY float32
}

// Source delivers input events to subscribers. Each Subscribe call returns the func that removes it.
type Source interface {
	SubscribeTouch(func(TouchEvent)) (unsubscribe func())
	SubscribeJoystick(func(JoystickEvent)) (unsubscribe func())
	SubscribeResize(func(ResizeEvent)) (unsubscribe func())
	SubscribeLook(func(LookEvent)) (unsubscribe func())
}

// Bus is the in-process Source. The platform layer publishes into it; the controller subscribes.
type Bus struct {
	touch    topic[TouchEvent]
	joystick topic[JoystickEvent]
	resize   topic[ResizeEvent]
	look     topic[LookEvent]
}

// NewBus returns a Bus with no subscribers.
func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) SubscribeTouch(fn func(TouchEvent)) func()       { return b.touch.subscribe(fn) }
func (b *Bus) SubscribeJoystick(fn func(JoystickEvent)) func() { return b.joystick.subscribe(fn) }
func (b *Bus) SubscribeResize(fn func(ResizeEvent)) func()     { return b.resize.subscribe(fn) }
func (b *Bus) SubscribeLook(fn func(LookEvent)) func()         { return b.look.subscribe(fn) }

func (b *Bus) PublishTouch(ev TouchEvent)       { b.touch.publish(ev) }
func (b *Bus) PublishJoystick(ev JoystickEvent) { b.joystick.publish(ev) }
func (b *Bus) PublishResize(ev ResizeEvent)     { b.resize.publish(ev) }
func (b *Bus) PublishLook(ev LookEvent)         { b.look.publish(ev) }

// Subscribers returns the total number of live subscriptions across all event kinds.
func (b *Bus) Subscribers() int {
	return b.touch.len() + b.joystick.len() + b.resize.len() + b.look.len()
}

// topic fans one event type out to handlers in subscription order.
type topic[E any] struct {
	mu   sync.Mutex
	next int
	subs []subscription[E]
}

type subscription[E any] struct {
	id int
	fn func(E)
}

func (t *topic[E]) subscribe(fn func(E)) func() {
	t.mu.Lock()
	id := t.next
	t.next++
	t.subs = append(t.subs, subscription[E]{id: id, fn: fn})
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			for i, s := range t.subs {
				if s.id == id {
					t.subs = append(t.subs[:i:i], t.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// publish snapshots the handler list so handlers may unsubscribe while being called.
func (t *topic[E]) publish(ev E) {
	t.mu.Lock()
	subs := make([]subscription[E], len(t.subs))
	copy(subs, t.subs)
	t.mu.Unlock()
	for _, s := range subs {
		s.fn(ev)
	}
}

func (t *topic[E]) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs)
}
