package tween

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPowerInOut_Shape(t *testing.T) {
	ease := PowerInOut(2)
	assert.Equal(t, float32(0), ease(0))
	assert.InDelta(t, 1, ease(1), 1e-6)
	assert.InDelta(t, 0.5, ease(0.5), 1e-6)
	assert.InDelta(t, 4*0.25*0.25*0.25, ease(0.25), 1e-6, "cubic ease-in half")
	assert.InDelta(t, 1-ease(0.25), ease(0.75), 1e-6, "symmetric")
	assert.Equal(t, float32(0), ease(-1))
	assert.InDelta(t, 1, ease(2), 1e-6)

	prev := float32(0)
	for i := 1; i <= 100; i++ {
		v := ease(float32(i) / 100)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestTimeline_RunsStepsInOrder(t *testing.T) {
	var log []string
	var last float32
	tl := NewTimeline(func() { log = append(log, "complete") }).
		Add(Step{
			Duration: time.Second,
			OnStart:  func() { log = append(log, "start a") },
			OnUpdate: func(p float32) { last = p },
		}).
		Add(Step{
			Duration: 500 * time.Millisecond,
			OnStart:  func() { log = append(log, "start b") },
			OnUpdate: func(p float32) { last = p },
		})

	tl.Advance(500 * time.Millisecond)
	assert.Equal(t, []string{"start a"}, log)
	assert.InDelta(t, 0.5, last, 1e-6)

	// crosses into step b with 250ms left over
	tl.Advance(750 * time.Millisecond)
	assert.Equal(t, []string{"start a", "start b"}, log)
	assert.InDelta(t, 0.5, last, 1e-6)
	assert.Equal(t, 1, tl.StepIndex())
	assert.False(t, tl.Done())

	tl.Advance(250 * time.Millisecond)
	assert.Equal(t, []string{"start a", "start b", "complete"}, log)
	assert.InDelta(t, 1, last, 1e-6)
	assert.True(t, tl.Done())

	tl.Advance(time.Second)
	assert.Len(t, log, 3, "complete fires once")
}

func TestTimeline_LongFrameFinishesEverything(t *testing.T) {
	completed := 0
	updates := 0
	tl := NewTimeline(func() { completed++ }).
		Add(Step{Duration: time.Second, OnUpdate: func(float32) { updates++ }}).
		Add(Step{Duration: time.Second, OnUpdate: func(float32) { updates++ }})

	tl.Advance(10 * time.Second)
	assert.Equal(t, 1, completed)
	assert.Equal(t, 2, updates, "each step reaches progress 1 once")
}

func TestTimeline_KillStopsCallbacks(t *testing.T) {
	completed := false
	updates := 0
	tl := NewTimeline(func() { completed = true }).
		Add(Step{Duration: time.Second, OnUpdate: func(float32) { updates++ }})

	tl.Advance(100 * time.Millisecond)
	tl.Kill()
	tl.Advance(5 * time.Second)

	assert.Equal(t, 1, updates)
	assert.False(t, completed)
	assert.True(t, tl.Killed())
	assert.False(t, tl.Done())
}

func TestTimeline_KillFromCallback(t *testing.T) {
	var tl *Timeline
	second := false
	tl = NewTimeline(nil).
		Add(Step{Duration: time.Second, OnUpdate: func(p float32) {
			if p >= 1 {
				tl.Kill()
			}
		}}).
		Add(Step{Duration: time.Second, OnStart: func() { second = true }})

	tl.Advance(3 * time.Second)
	assert.False(t, second)
}

func TestTicker_FiresPerPeriod(t *testing.T) {
	n := 0
	tk := NewTicker(10*time.Millisecond, func() { n++ })
	tk.Advance(5 * time.Millisecond)
	assert.Equal(t, 0, n)
	tk.Advance(5 * time.Millisecond)
	assert.Equal(t, 1, n)
	tk.Advance(25 * time.Millisecond)
	assert.Equal(t, 3, n)

	tk.Stop()
	tk.Advance(time.Second)
	assert.Equal(t, 3, n)
	assert.True(t, tk.Stopped())
}

func TestTicker_CatchUpIsBounded(t *testing.T) {
	n := 0
	tk := NewTicker(time.Millisecond, func() { n++ })
	tk.Advance(time.Second)
	assert.Equal(t, maxCatchUp, n)
}

func TestPeriodForRate(t *testing.T) {
	require.Equal(t, time.Duration(0), PeriodForRate(0))
	assert.InDelta(t, float64(time.Second)/60, float64(PeriodForRate(60)), 1)
}
