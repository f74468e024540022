package effect

import (
	"time"

	"github.com/robmorgan/blink/blinkerr"
	"github.com/robmorgan/blink/utils"
)

// ColorTransition tells a brush to move its color to To. It never auto-reverses.
type ColorTransition struct {
	To     utils.Color
	Effect Effect
}

// NewColorTransitions precomputes the pair of transitions for color: on animates to
// color, off animates to the same color with zero alpha, so "off" is transparent
// regardless of the alpha stored in color.
func NewColorTransitions(color utils.Color, rampTime int) (on, off ColorTransition, err error) {
	if err := blinkerr.RequirePositive("RampTime", rampTime); err != nil {
		return ColorTransition{}, ColorTransition{}, err
	}

	fx := Linear(ms(rampTime))
	on = ColorTransition{To: color, Effect: fx}
	off = ColorTransition{To: color.WithAlpha(0), Effect: fx}
	return on, off, nil
}

// InstantTransitions is the discrete variant of NewColorTransitions: the brush swaps
// color without animating.
func InstantTransitions(color utils.Color) (on, off ColorTransition) {
	fx := Linear(0)
	return ColorTransition{To: color, Effect: fx}, ColorTransition{To: color.WithAlpha(0), Effect: fx}
}

// Instant reports whether the transition is a discrete swap.
func (t ColorTransition) Instant() bool {
	return t.Effect.Instant()
}

// Apply returns the color reached elapsed after starting from from.
func (t ColorTransition) Apply(from utils.Color, elapsed time.Duration) utils.Color {
	if t.Instant() || t.Effect.Done(elapsed) {
		return t.To
	}
	return from.Blend(t.To, t.Effect.Progress(elapsed))
}
