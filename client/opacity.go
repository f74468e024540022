package client

import (
	"sync"

	"github.com/robmorgan/blink/effect"
	"github.com/robmorgan/blink/engine"
	"github.com/robmorgan/blink/logger"
	"github.com/robmorgan/blink/notify"
	"k8s.io/utils/clock"
)

// Opacity blinks by ramping an opacity value. Ramp notifications are republished on
// the client once it is initialized.
type Opacity struct {
	ramp *effect.OpacityRamp

	mu       sync.Mutex
	forward  *notify.Subscription
	disposed bool

	props notify.PropertyNotifier
}

// NewOpacity creates an opacity client whose ramp samples are posted to poster.
func NewOpacity(clk clock.WithTicker, poster engine.Poster) *Opacity {
	return &Opacity{
		ramp: effect.NewOpacityRamp(clk, poster),
	}
}

func (o *Opacity) Kind() Kind { return KindOpacity }

func (o *Opacity) blinkingClient() {}

// Initialize starts forwarding ramp notifications. Calling it again does nothing.
func (o *Opacity) Initialize() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.disposed {
		logger.GetProjectLogger().Debug("opacity client disposed, ignoring Initialize")
		return nil
	}
	if o.forward == nil {
		o.forward = o.props.Forward(o.ramp)
	}
	return nil
}

func (o *Opacity) BlinkOn() {
	if o.Disposed() {
		logger.GetProjectLogger().Debug("opacity client disposed, ignoring blink")
		return
	}
	o.ramp.BlinkOn()
}

func (o *Opacity) BlinkOff() {
	if o.Disposed() {
		logger.GetProjectLogger().Debug("opacity client disposed, ignoring blink")
		return
	}
	o.ramp.BlinkOff()
}

// Ramp exposes the underlying ramp for timing changes and observers.
func (o *Opacity) Ramp() *effect.OpacityRamp {
	return o.ramp
}

func (o *Opacity) Opacity() float64 {
	return o.ramp.Opacity()
}

func (o *Opacity) Subscribe(fn func(property string)) *notify.Subscription {
	return o.props.Subscribe(fn)
}

func (o *Opacity) Dispose() {
	o.mu.Lock()
	if o.disposed {
		o.mu.Unlock()
		return
	}
	o.disposed = true
	forward := o.forward
	o.forward = nil
	o.mu.Unlock()

	forward.Cancel()
	o.ramp.Dispose()
	o.props.Clear()
}

func (o *Opacity) Disposed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.disposed
}
