// Package visual holds the render-side state of the blinking engine: brushes that run
// color transitions and the per-context pool that shares them.
package visual

import (
	"sync"
	"time"

	"github.com/robmorgan/blink/effect"
	"github.com/robmorgan/blink/utils"
	"k8s.io/utils/clock"
)

// Brush is an animatable solid color. Starting a transition hands off from whatever
// color the brush shows at that moment.
type Brush struct {
	clock clock.PassiveClock

	mu         sync.Mutex
	from       utils.Color
	transition effect.ColorTransition
	start      time.Time
	animating  bool
}

// NewBrush creates a brush showing initial.
func NewBrush(clk clock.PassiveClock, initial utils.Color) *Brush {
	return &Brush{
		clock: clk,
		from:  initial,
	}
}

// BeginAnimation starts t from the brush's current color, replacing any transition in
// flight.
func (b *Brush) BeginAnimation(t effect.ColorTransition) {
	now := b.clock.Now()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.from = b.colorAtLocked(now)
	b.transition = t
	b.start = now
	b.animating = !t.Instant()
	if !b.animating {
		b.from = t.To
	}
}

// Snap sets the color immediately and cancels any transition.
func (b *Brush) Snap(c utils.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.from = c
	b.animating = false
}

// Color returns the color at the clock's current time.
func (b *Brush) Color() utils.Color {
	return b.ColorAt(b.clock.Now())
}

// ColorAt returns the color shown at now.
func (b *Brush) ColorAt(now time.Time) utils.Color {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.colorAtLocked(now)
}

// Animating reports whether a transition is still running.
func (b *Brush) Animating() bool {
	now := b.clock.Now()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.colorAtLocked(now)
	return b.animating
}

func (b *Brush) colorAtLocked(now time.Time) utils.Color {
	if !b.animating {
		return b.from
	}

	elapsed := now.Sub(b.start)
	if b.transition.Effect.Done(elapsed) {
		b.from = b.transition.To
		b.animating = false
		return b.from
	}
	return b.transition.Apply(b.from, elapsed)
}
