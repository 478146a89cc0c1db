package tween

import "time"

// Step is one segment of a Timeline. OnStart runs once when the step begins (capture
// start values there); OnUpdate runs on every Advance with eased progress.
type Step struct {
	Duration time.Duration
	Ease     Ease
	OnStart  func()
	OnUpdate func(progress float32)
}

// Timeline plays Steps back to back. Leftover time from a finished step carries into the next.
type Timeline struct {
	steps      []Step
	index      int
	elapsed    time.Duration
	started    bool
	done       bool
	killed     bool
	onComplete func()
}

// NewTimeline returns an empty timeline; onComplete runs once after the last step finishes.
func NewTimeline(onComplete func()) *Timeline {
	return &Timeline{onComplete: onComplete}
}

// Add appends a step and returns the timeline for chaining.
func (tl *Timeline) Add(s Step) *Timeline {
	if s.Ease == nil {
		s.Ease = Linear
	}
	tl.steps = append(tl.steps, s)
	return tl
}

// Advance moves the timeline forward by dt, firing OnStart/OnUpdate/onComplete as steps
// begin, progress and finish. It does nothing once done or killed.
func (tl *Timeline) Advance(dt time.Duration) {
	for !tl.done && !tl.killed {
		if tl.index >= len(tl.steps) {
			tl.finish()
			return
		}
		s := tl.steps[tl.index]
		if !tl.started {
			tl.started = true
			tl.elapsed = 0
			if s.OnStart != nil {
				s.OnStart()
				if tl.killed {
					return
				}
			}
		}
		tl.elapsed += dt
		if tl.elapsed < s.Duration {
			tl.update(s, float32(tl.elapsed)/float32(s.Duration))
			return
		}
		dt = tl.elapsed - s.Duration
		tl.update(s, 1)
		if tl.killed {
			return
		}
		tl.index++
		tl.started = false
		if dt == 0 && tl.index < len(tl.steps) {
			return
		}
	}
}

func (tl *Timeline) update(s Step, linear float32) {
	if s.OnUpdate != nil {
		s.OnUpdate(s.Ease(linear))
	}
}

func (tl *Timeline) finish() {
	tl.done = true
	if tl.onComplete != nil {
		tl.onComplete()
	}
}

// Kill stops the timeline for good. No callback fires after Kill returns.
func (tl *Timeline) Kill() {
	tl.killed = true
}

// Done reports whether every step finished and onComplete ran.
func (tl *Timeline) Done() bool { return tl.done }

// Killed reports whether Kill was called.
func (tl *Timeline) Killed() bool { return tl.killed }

// StepIndex returns the index of the running step (len(steps) once finished).
func (tl *Timeline) StepIndex() int { return tl.index }
