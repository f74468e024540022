package rhythm

import (
	"sync"
	"time"

	"github.com/robmorgan/blink/blinkerr"
	"github.com/robmorgan/blink/engine"
	"github.com/robmorgan/blink/logger"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// DefaultBlinkingIntervalTime is one full on+off cycle in milliseconds.
const DefaultBlinkingIntervalTime = 2500

// BeatTimer fires a tick every half interval, so one configured interval spans one on
// phase and one off phase.
type BeatTimer struct {
	clock  clock.WithTicker
	poster engine.Poster

	mu       sync.Mutex
	interval int
	onTick   func()
	ticker   clock.Ticker
	stop     chan struct{}
}

// NewBeatTimer creates a stopped timer. Ticks are posted to poster when it is non-nil.
func NewBeatTimer(clk clock.WithTicker, poster engine.Poster, interval int) (*BeatTimer, error) {
	if err := ValidateInterval(interval); err != nil {
		return nil, err
	}

	return &BeatTimer{
		clock:    clk,
		poster:   poster,
		interval: interval,
	}, nil
}

// ValidateInterval rejects intervals whose half period would not be a positive number
// of milliseconds.
func ValidateInterval(interval int) error {
	if interval/2 <= 0 {
		return blinkerr.NewInvalidConfiguration("BlinkingIntervalTime", interval)
	}
	return nil
}

// Period returns the tick period for interval.
func Period(interval int) time.Duration {
	return time.Duration(interval/2) * time.Millisecond
}

// OnTick sets the tick handler.
func (b *BeatTimer) OnTick(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onTick = fn
}

func (b *BeatTimer) Interval() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.interval
}

func (b *BeatTimer) Period() time.Duration {
	return Period(b.Interval())
}

func (b *BeatTimer) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stop != nil
}

// Start begins ticking. Starting a running timer does nothing.
func (b *BeatTimer) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stop != nil {
		return
	}
	b.startLocked()
}

// Stop halts the timer. Ticks already posted but not yet run are dropped.
func (b *BeatTimer) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
}

// SetInterval rebinds the timer to a new interval, restarting it if it was running. On a
// stopped timer the new interval is used by the next Start.
func (b *BeatTimer) SetInterval(interval int) error {
	if err := ValidateInterval(interval); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if interval == b.interval {
		return nil
	}

	wasRunning := b.stop != nil
	b.stopLocked()
	b.interval = interval
	if wasRunning {
		b.startLocked()
	}

	logger.GetProjectLogger().WithFields(logrus.Fields{
		"interval_ms": interval,
		"period":      Period(interval),
		"running":     wasRunning,
	}).Debug("Beat timer interval changed")
	return nil
}

func (b *BeatTimer) startLocked() {
	ticker := b.clock.NewTicker(Period(b.interval))
	stop := make(chan struct{})
	b.ticker = ticker
	b.stop = stop

	go b.run(ticker, stop)
}

func (b *BeatTimer) stopLocked() {
	if b.stop == nil {
		return
	}
	close(b.stop)
	b.ticker.Stop()
	b.stop = nil
	b.ticker = nil
}

func (b *BeatTimer) run(ticker clock.Ticker, stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			engine.PostOrRun(b.poster, func() {
				b.fire(stop)
			})
		}
	}
}

func (b *BeatTimer) fire(stop chan struct{}) {
	b.mu.Lock()
	current := b.stop == stop
	handler := b.onTick
	b.mu.Unlock()

	if !current || handler == nil {
		return
	}
	engine.Guard("beat-timer", handler)
}
