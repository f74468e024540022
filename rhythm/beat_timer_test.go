package rhythm

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/robmorgan/blink/blinkerr"
	"github.com/robmorgan/blink/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

func newFakeClock() *testingclock.FakeClock {
	return testingclock.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestBeatTimerFiresEveryHalfInterval(t *testing.T) {
	t.Parallel()

	fc := newFakeClock()
	bt, err := NewBeatTimer(fc, nil, DefaultBlinkingIntervalTime)
	require.NoError(t, err)

	var ticks atomic.Int32
	bt.OnTick(func() { ticks.Add(1) })
	bt.Start()
	defer bt.Stop()

	assert.Equal(t, 1250*time.Millisecond, bt.Period())
	require.True(t, fc.HasWaiters())

	fc.Step(1249 * time.Millisecond)
	assert.Equal(t, int32(0), ticks.Load())

	fc.Step(time.Millisecond)
	require.Eventually(t, func() bool { return ticks.Load() == 1 }, time.Second, time.Millisecond)

	fc.Step(1250 * time.Millisecond)
	require.Eventually(t, func() bool { return ticks.Load() == 2 }, time.Second, time.Millisecond)
}

func TestBeatTimerPeriod(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		interval int
		expected time.Duration
	}{
		{2500, 1250 * time.Millisecond},
		{1000, 500 * time.Millisecond},
		{3, time.Millisecond},
		{2, time.Millisecond},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expected, Period(testCase.interval))
	}
}

func TestBeatTimerRejectsInvalidIntervals(t *testing.T) {
	t.Parallel()

	for _, interval := range []int{-100, 0, 1} {
		_, err := NewBeatTimer(newFakeClock(), nil, interval)
		require.Error(t, err)
		assert.True(t, blinkerr.IsInvalidConfiguration(err))
	}

	bt, err := NewBeatTimer(newFakeClock(), nil, 1000)
	require.NoError(t, err)
	require.Error(t, bt.SetInterval(0))
	assert.Equal(t, 1000, bt.Interval())
}

func TestBeatTimerSetIntervalRestarts(t *testing.T) {
	t.Parallel()

	fc := newFakeClock()
	bt, err := NewBeatTimer(fc, nil, 2500)
	require.NoError(t, err)

	var ticks atomic.Int32
	bt.OnTick(func() { ticks.Add(1) })
	bt.Start()
	defer bt.Stop()

	fc.Step(time.Second)
	require.NoError(t, bt.SetInterval(1000))
	assert.True(t, bt.Running())
	assert.Equal(t, 500*time.Millisecond, bt.Period())

	// the new ticker counts from the moment of the change
	fc.Step(500 * time.Millisecond)
	require.Eventually(t, func() bool { return ticks.Load() == 1 }, time.Second, time.Millisecond)
}

func TestBeatTimerSetIntervalWhileStopped(t *testing.T) {
	t.Parallel()

	fc := newFakeClock()
	bt, err := NewBeatTimer(fc, nil, 2500)
	require.NoError(t, err)

	require.NoError(t, bt.SetInterval(400))
	assert.False(t, bt.Running())
	assert.False(t, fc.HasWaiters())

	bt.Start()
	assert.True(t, bt.Running())
	assert.Equal(t, 200*time.Millisecond, bt.Period())
	bt.Stop()
}

func TestBeatTimerStopIsIdempotent(t *testing.T) {
	t.Parallel()

	fc := newFakeClock()
	bt, err := NewBeatTimer(fc, nil, 2500)
	require.NoError(t, err)

	bt.Start()
	bt.Start()
	bt.Stop()
	bt.Stop()

	assert.False(t, bt.Running())
}

func TestBeatTimerPostsToDispatcher(t *testing.T) {
	t.Parallel()

	d := engine.NewDispatcher("beat")
	d.Start()
	defer d.Close()

	fc := newFakeClock()
	bt, err := NewBeatTimer(fc, d, 100)
	require.NoError(t, err)

	var ticks atomic.Int32
	bt.OnTick(func() { ticks.Add(1) })
	bt.Start()
	defer bt.Stop()

	fc.Step(50 * time.Millisecond)
	require.Eventually(t, func() bool { return ticks.Load() == 1 }, time.Second, time.Millisecond)
}
