package client

import (
	"testing"
	"time"

	"github.com/robmorgan/blink/effect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpacityForwardsRampNotifications(t *testing.T) {
	t.Parallel()

	fc := newFakeClock()
	o := NewOpacity(fc, nil)
	require.NoError(t, o.Ramp().SetFrameTime(int(time.Hour/time.Millisecond)))

	var props []string
	o.Subscribe(func(p string) { props = append(props, p) })

	// nothing is forwarded before Initialize
	require.NoError(t, o.Ramp().SetRampTime(100))
	assert.Empty(t, props)

	require.NoError(t, o.Initialize())
	require.NoError(t, o.Initialize())

	o.BlinkOn()
	fc.Step(50 * time.Millisecond)
	o.Ramp().Sample()
	assert.InDelta(t, 0.5, o.Opacity(), 1e-9)
	assert.Equal(t, []string{effect.PropertyOpacityBeat}, props)
}

func TestOpacityDisposeStopsRamp(t *testing.T) {
	t.Parallel()

	fc := newFakeClock()
	o := NewOpacity(fc, nil)
	require.NoError(t, o.Initialize())

	completed := 0
	o.Ramp().Observe(func(float64) {}, func() { completed++ })

	o.Dispose()
	o.Dispose()
	assert.True(t, o.Disposed())

	o.BlinkOn()
	assert.Equal(t, effect.RampIdle, o.Ramp().State())
	assert.Equal(t, 0.0, o.Opacity())
	assert.Equal(t, KindOpacity, o.Kind())

	// Clear drops observers without completing them
	assert.Equal(t, 0, completed)
}
