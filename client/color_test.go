package client

import (
	"testing"
	"time"

	"github.com/robmorgan/blink/blinkerr"
	"github.com/robmorgan/blink/effect"
	"github.com/robmorgan/blink/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorBlinksBetweenColorAndTransparent(t *testing.T) {
	t.Parallel()

	fc := newFakeClock()
	c, err := NewColor(fc, utils.Yellow, 700, false)
	require.NoError(t, err)
	require.NoError(t, c.Initialize())
	assert.Equal(t, "#00FFFF00", c.Current().String())

	var props []string
	var started []effect.ColorTransition
	c.Subscribe(func(p string) { props = append(props, p) })
	c.SubscribeTransitions(func(t effect.ColorTransition) { started = append(started, t) })

	c.BlinkOn()
	fc.Step(700 * time.Millisecond)
	assert.Equal(t, "#FFFFFF00", c.Current().String())

	c.BlinkOff()
	fc.Step(350 * time.Millisecond)
	assert.InDelta(t, 0.5, c.Current().Alpha, 1e-9)
	fc.Step(350 * time.Millisecond)
	assert.Equal(t, "#00FFFF00", c.Current().String())

	assert.Equal(t, []string{PropertyBlinkingBrush, PropertyBlinkingBrush}, props)
	require.Len(t, started, 2)
	assert.True(t, started[0].To.Equal(utils.Yellow))
	assert.Equal(t, 0.0, started[1].To.Alpha)
}

func TestColorDiscreteSwapsImmediately(t *testing.T) {
	t.Parallel()

	fc := newFakeClock()
	c, err := NewColor(fc, utils.Red, 700, true)
	require.NoError(t, err)
	require.NoError(t, c.Initialize())

	c.BlinkOn()
	assert.Equal(t, "#FFFF0000", c.Current().String())
	c.BlinkOff()
	assert.Equal(t, "#00FF0000", c.Current().String())
}

func TestColorSettersReplaceTransitions(t *testing.T) {
	t.Parallel()

	c, err := NewColor(newFakeClock(), utils.Yellow, 700, false)
	require.NoError(t, err)

	var props []string
	c.Subscribe(func(p string) { props = append(props, p) })

	require.NoError(t, c.SetColor(utils.Blue))
	require.NoError(t, c.SetColor(utils.Blue))
	require.NoError(t, c.SetRampTime(300))
	require.NoError(t, c.SetRampTime(300))

	on, off := c.Transitions()
	assert.True(t, on.To.Equal(utils.Blue))
	assert.Equal(t, "#000000FF", off.To.String())
	assert.Equal(t, 300*time.Millisecond, on.Effect.Duration)
	assert.Equal(t, []string{PropertyColor, PropertyRampTime}, props)

	err = c.SetRampTime(0)
	assert.True(t, blinkerr.IsInvalidConfiguration(err))
	assert.Equal(t, 300, c.RampTime())
}

func TestNewColorRejectsInvalidRampTime(t *testing.T) {
	t.Parallel()

	_, err := NewColor(newFakeClock(), utils.Yellow, 0, true)
	assert.True(t, blinkerr.IsInvalidConfiguration(err))
}

func TestColorIgnoresCallsAfterDispose(t *testing.T) {
	t.Parallel()

	fc := newFakeClock()
	c, err := NewColor(fc, utils.Yellow, 700, true)
	require.NoError(t, err)
	require.NoError(t, c.Initialize())

	called := false
	c.Subscribe(func(string) { called = true })

	c.Dispose()
	c.Dispose()
	assert.True(t, c.Disposed())

	c.BlinkOn()
	assert.NoError(t, c.SetColor(utils.Red))
	assert.False(t, called)
	assert.Equal(t, "#00FFFF00", c.Current().String())
	assert.True(t, c.Color().Equal(utils.Yellow))
}
