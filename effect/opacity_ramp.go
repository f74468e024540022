package effect

import (
	"sync"
	"time"

	"github.com/robmorgan/blink/blinkerr"
	"github.com/robmorgan/blink/engine"
	"github.com/robmorgan/blink/logger"
	"github.com/robmorgan/blink/notify"
	"k8s.io/utils/clock"
)

const (
	DefaultOpacityFrameTime = 40
	DefaultOpacityRampTime  = 700
)

// Property names published by OpacityRamp.
const (
	PropertyOpacityBeat      = "OpacityBeat"
	PropertyOpacityFrameTime = "OpacityFrameTime"
	PropertyOpacityRampTime  = "OpacityRampTime"
)

// RampState is the direction an OpacityRamp is moving in.
type RampState int

const (
	RampIdle RampState = iota
	RampingUp
	RampingDown
)

func (s RampState) String() string {
	switch s {
	case RampIdle:
		return "idle"
	case RampingUp:
		return "ramping-up"
	case RampingDown:
		return "ramping-down"
	default:
		return "unknown"
	}
}

// OpacityRamp interpolates an opacity between 0 and 1 by sampling elapsed time on a frame
// ticker. Only one ramp is active at a time: BlinkOn and BlinkOff preempt whatever ramp
// is in flight.
type OpacityRamp struct {
	clock  clock.WithTicker
	poster engine.Poster

	mu        sync.Mutex
	frameTime int
	rampTime  int
	state     RampState
	effect    Effect
	start     time.Time
	ticker    clock.Ticker
	stop      chan struct{}
	opacity   float64
	disposed  bool

	props  notify.PropertyNotifier
	values notify.Topic[float64]
}

// NewOpacityRamp creates an idle ramp at opacity 0. Samples are posted to poster, or run
// on the ticker goroutine when poster is nil.
func NewOpacityRamp(clk clock.WithTicker, poster engine.Poster) *OpacityRamp {
	return &OpacityRamp{
		clock:     clk,
		poster:    poster,
		frameTime: DefaultOpacityFrameTime,
		rampTime:  DefaultOpacityRampTime,
	}
}

// Opacity returns the last sampled opacity.
func (r *OpacityRamp) Opacity() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opacity
}

func (r *OpacityRamp) State() RampState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *OpacityRamp) FrameTime() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameTime
}

// SetFrameTime changes the sampling period. It applies from the next BlinkOn or BlinkOff.
func (r *OpacityRamp) SetFrameTime(frameTime int) error {
	if err := blinkerr.RequirePositive(PropertyOpacityFrameTime, frameTime); err != nil {
		return err
	}

	r.mu.Lock()
	if r.frameTime == frameTime {
		r.mu.Unlock()
		return nil
	}
	r.frameTime = frameTime
	r.mu.Unlock()

	r.props.NotifyPropertyChanged(PropertyOpacityFrameTime)
	return nil
}

func (r *OpacityRamp) RampTime() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rampTime
}

// SetRampTime changes the ramp duration. It applies from the next BlinkOn or BlinkOff.
func (r *OpacityRamp) SetRampTime(rampTime int) error {
	if err := blinkerr.RequirePositive(PropertyOpacityRampTime, rampTime); err != nil {
		return err
	}

	r.mu.Lock()
	if r.rampTime == rampTime {
		r.mu.Unlock()
		return nil
	}
	r.rampTime = rampTime
	r.mu.Unlock()

	r.props.NotifyPropertyChanged(PropertyOpacityRampTime)
	return nil
}

// BlinkOn starts ramping towards 1.
func (r *OpacityRamp) BlinkOn() {
	r.startRamp(RampingUp)
}

// BlinkOff starts ramping towards 0.
func (r *OpacityRamp) BlinkOff() {
	r.startRamp(RampingDown)
}

func (r *OpacityRamp) startRamp(state RampState) {
	r.mu.Lock()
	if r.disposed {
		r.mu.Unlock()
		logger.GetProjectLogger().Debugf("opacity ramp disposed, ignoring %s", state)
		return
	}

	r.stopLocked()
	r.state = state
	r.effect = Linear(ms(r.rampTime))
	r.start = r.clock.Now()

	ticker := r.clock.NewTicker(ms(r.frameTime))
	stop := make(chan struct{})
	r.ticker = ticker
	r.stop = stop
	r.mu.Unlock()

	go r.run(ticker, stop)
}

func (r *OpacityRamp) run(ticker clock.Ticker, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			engine.PostOrRun(r.poster, func() {
				engine.Guard("opacity-ramp", r.Sample)
			})
		}
	}
}

// Sample computes the opacity for the current elapsed time and publishes it. Once the
// ramp duration has passed the opacity snaps to its end value and sampling stops.
func (r *OpacityRamp) Sample() {
	r.mu.Lock()
	if r.disposed || r.state == RampIdle {
		r.mu.Unlock()
		return
	}

	// whole milliseconds, like a stopwatch
	elapsed := time.Duration(r.clock.Since(r.start).Milliseconds()) * time.Millisecond

	var value float64
	if r.effect.Done(elapsed) {
		r.stopLocked()
		if r.state == RampingUp {
			value = 1
		}
		r.state = RampIdle
	} else {
		progress := r.effect.Progress(elapsed)
		if r.state == RampingUp {
			value = progress
		} else {
			value = 1 - progress
		}
	}

	changed := value != r.opacity
	r.opacity = value
	r.mu.Unlock()

	r.values.Publish(value)
	if changed {
		r.props.NotifyPropertyChanged(PropertyOpacityBeat)
	}
}

// Subscribe registers fn for property change notifications.
func (r *OpacityRamp) Subscribe(fn func(property string)) *notify.Subscription {
	return r.props.Subscribe(fn)
}

// Observe subscribes to every sampled opacity. Cancelling the subscription calls
// onCompleted; other observers are unaffected.
func (r *OpacityRamp) Observe(onNext func(float64), onCompleted func()) *notify.Subscription {
	return r.values.SubscribeWithDone(onNext, onCompleted)
}

// Dispose stops sampling and drops all observers. Later calls are no-ops.
func (r *OpacityRamp) Dispose() {
	r.mu.Lock()
	if r.disposed {
		r.mu.Unlock()
		return
	}
	r.disposed = true
	r.stopLocked()
	r.state = RampIdle
	r.mu.Unlock()

	r.values.Clear()
	r.props.Clear()
}

func (r *OpacityRamp) stopLocked() {
	if r.stop != nil {
		close(r.stop)
		r.stop = nil
	}
	if r.ticker != nil {
		r.ticker.Stop()
		r.ticker = nil
	}
}
