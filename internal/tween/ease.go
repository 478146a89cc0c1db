// Package tween drives scripted animation from the frame loop: easing curves,
// a sequenced Timeline, and a fixed-rate Ticker. Nothing here spawns goroutines;
// callbacks run synchronously inside Advance.
package tween

import "github.com/chewxy/math32"

// Ease maps linear progress in [0,1] to eased progress in [0,1].
type Ease func(t float32) float32

// Linear is the identity curve.
func Linear(t float32) float32 { return clamp01(t) }

// PowerInOut returns the symmetric ease-in-out curve of the given power, matching the
// usual "powerN.inOut" family: power 1 is quadratic, power 2 cubic, and so on.
func PowerInOut(power int) Ease {
	exp := float32(power + 1)
	return func(t float32) float32 {
		t = clamp01(t)
		if t < 0.5 {
			return math32.Pow(2*t, exp) / 2
		}
		return 1 - math32.Pow(2-2*t, exp)/2
	}
}

// Lerp interpolates a toward b by f.
func Lerp(a, b, f float32) float32 {
	return a + (b-a)*f
}

func clamp01(t float32) float32 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}
