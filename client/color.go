package client

import (
	"sync"

	"github.com/robmorgan/blink/blinkerr"
	"github.com/robmorgan/blink/effect"
	"github.com/robmorgan/blink/logger"
	"github.com/robmorgan/blink/notify"
	"github.com/robmorgan/blink/utils"
	"github.com/robmorgan/blink/visual"
	"k8s.io/utils/clock"
)

// DefaultRampTime is the default color transition time in milliseconds.
const DefaultRampTime = 700

// Property names published by Color.
const (
	PropertyBlinkingBrush = "BlinkingBrush"
	PropertyColor         = "Color"
	PropertyRampTime      = "RampTime"
)

// Color blinks by animating a brush between the configured color and its transparent
// variant. A discrete Color swaps without animating.
type Color struct {
	clock    clock.PassiveClock
	discrete bool
	brush    *visual.Brush

	mu          sync.Mutex
	color       utils.Color
	rampTime    int
	on          effect.ColorTransition
	off         effect.ColorTransition
	disposed    bool

	props       notify.PropertyNotifier
	transitions notify.Topic[effect.ColorTransition]
}

// NewColor creates a color client. rampTime must be positive even when discrete is set,
// so switching the client to animated later has a valid duration.
func NewColor(clk clock.PassiveClock, color utils.Color, rampTime int, discrete bool) (*Color, error) {
	on, off, err := transitionsFor(color, rampTime, discrete)
	if err != nil {
		return nil, err
	}

	return &Color{
		clock:    clk,
		discrete: discrete,
		brush:    visual.NewBrush(clk, off.To),
		color:    color,
		rampTime: rampTime,
		on:       on,
		off:      off,
	}, nil
}

func transitionsFor(color utils.Color, rampTime int, discrete bool) (on, off effect.ColorTransition, err error) {
	on, off, err = effect.NewColorTransitions(color, rampTime)
	if err != nil {
		return on, off, err
	}
	if discrete {
		on, off = effect.InstantTransitions(color)
	}
	return on, off, nil
}

func (c *Color) Kind() Kind { return KindColor }

func (c *Color) blinkingClient() {}

// Initialize snaps the brush to the off color.
func (c *Color) Initialize() error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		logger.GetProjectLogger().Debug("color client disposed, ignoring Initialize")
		return nil
	}
	off := c.off
	c.mu.Unlock()

	c.brush.Snap(off.To)
	return nil
}

func (c *Color) BlinkOn() {
	c.begin(true)
}

func (c *Color) BlinkOff() {
	c.begin(false)
}

func (c *Color) begin(on bool) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		logger.GetProjectLogger().Debug("color client disposed, ignoring blink")
		return
	}
	t := c.off
	if on {
		t = c.on
	}
	c.mu.Unlock()

	c.brush.BeginAnimation(t)
	c.transitions.Publish(t)
	c.props.NotifyPropertyChanged(PropertyBlinkingBrush)
}

// Brush returns the brush this client animates.
func (c *Color) Brush() *visual.Brush {
	return c.brush
}

// Current returns the brush color at the clock's current time.
func (c *Color) Current() utils.Color {
	return c.brush.Color()
}

func (c *Color) Discrete() bool {
	return c.discrete
}

func (c *Color) Color() utils.Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.color
}

// SetColor replaces the on and off transitions. A transition already running on the
// brush finishes towards its old target.
func (c *Color) SetColor(color utils.Color) error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		logger.GetProjectLogger().Debug("color client disposed, ignoring SetColor")
		return nil
	}
	if c.color.Equal(color) {
		c.mu.Unlock()
		return nil
	}
	on, off, err := transitionsFor(color, c.rampTime, c.discrete)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.color, c.on, c.off = color, on, off
	c.mu.Unlock()

	c.props.NotifyPropertyChanged(PropertyColor)
	return nil
}

func (c *Color) RampTime() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rampTime
}

// SetRampTime replaces the on and off transitions with ones of the new duration.
func (c *Color) SetRampTime(rampTime int) error {
	if err := blinkerr.RequirePositive(PropertyRampTime, rampTime); err != nil {
		return err
	}

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		logger.GetProjectLogger().Debug("color client disposed, ignoring SetRampTime")
		return nil
	}
	if c.rampTime == rampTime {
		c.mu.Unlock()
		return nil
	}
	on, off, err := transitionsFor(c.color, rampTime, c.discrete)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.rampTime, c.on, c.off = rampTime, on, off
	c.mu.Unlock()

	c.props.NotifyPropertyChanged(PropertyRampTime)
	return nil
}

// Transitions returns the current on and off transitions.
func (c *Color) Transitions() (on, off effect.ColorTransition) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.on, c.off
}

func (c *Color) Subscribe(fn func(property string)) *notify.Subscription {
	return c.props.Subscribe(fn)
}

// SubscribeTransitions registers fn for every transition the client starts.
func (c *Color) SubscribeTransitions(fn func(effect.ColorTransition)) *notify.Subscription {
	return c.transitions.Subscribe(fn)
}

func (c *Color) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	c.mu.Unlock()

	c.transitions.Clear()
	c.props.Clear()
}

func (c *Color) Disposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}
