package tween

import "time"

// maxCatchUp bounds how many periods one Advance may fire after a long frame.
const maxCatchUp = 8

// Ticker fires fn once per elapsed period, independent of any Timeline.
type Ticker struct {
	period  time.Duration
	acc     time.Duration
	fn      func()
	stopped bool
}

// NewTicker returns a Ticker firing every period. A non-positive period never fires.
func NewTicker(period time.Duration, fn func()) *Ticker {
	return &Ticker{period: period, fn: fn}
}

// PeriodForRate converts a frequency in Hz to a tick period.
func PeriodForRate(hz float32) time.Duration {
	if hz <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / float64(hz))
}

// Advance accumulates dt and fires fn for each whole period, at most maxCatchUp times.
func (t *Ticker) Advance(dt time.Duration) {
	if t.stopped || t.period <= 0 {
		return
	}
	t.acc += dt
	for n := 0; t.acc >= t.period && !t.stopped; n++ {
		if n == maxCatchUp {
			t.acc = 0
			return
		}
		t.acc -= t.period
		t.fn()
	}
}

// Stop prevents any further firing.
func (t *Ticker) Stop() {
	t.stopped = true
}

// Stopped reports whether Stop was called.
func (t *Ticker) Stopped() bool { return t.stopped }
