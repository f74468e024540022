package effect

import (
	"time"

	"github.com/fogleman/ease"
	"github.com/robmorgan/blink/engine/scale"
)

// FPS returns the frame time for a given number of frames per second.
func FPS(n int) time.Duration {
	return time.Second / time.Duration(n)
}

// Effect stretches an easing function over a duration. A zero duration is an instant
// effect that is complete as soon as it starts.
type Effect struct {
	// The easing function to use
	EasingFunc ease.Function

	Duration time.Duration
}

// NewEffect creates an Effect using easingFunc over duration.
func NewEffect(easingFunc ease.Function, duration time.Duration) Effect {
	if easingFunc == nil {
		easingFunc = ease.Linear
	}
	return Effect{
		EasingFunc: easingFunc,
		Duration:   duration,
	}
}

// Linear is the effect used by every blink transition.
func Linear(duration time.Duration) Effect {
	return NewEffect(ease.Linear, duration)
}

// Instant reports whether the effect completes immediately.
func (e Effect) Instant() bool {
	return e.Duration <= 0
}

// Done reports whether elapsed has reached the end of the effect.
func (e Effect) Done(elapsed time.Duration) bool {
	return elapsed >= e.Duration
}

// Progress returns the eased progress in [0,1] after elapsed.
func (e Effect) Progress(elapsed time.Duration) float64 {
	if e.Instant() || e.Done(elapsed) {
		return 1
	}
	fn := e.EasingFunc
	if fn == nil {
		fn = ease.Linear
	}
	t := scale.ToUnitClamp(0, float64(e.Duration))(float64(elapsed))
	return scale.Unit(fn(t))
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
