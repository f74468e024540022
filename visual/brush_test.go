package visual

import (
	"testing"
	"time"

	"github.com/robmorgan/blink/effect"
	"github.com/robmorgan/blink/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

func newFakeClock() *testingclock.FakeClock {
	return testingclock.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestBrushAnimatesTowardsTarget(t *testing.T) {
	t.Parallel()

	fc := newFakeClock()
	on, off, err := effect.NewColorTransitions(utils.Yellow, 700)
	require.NoError(t, err)

	b := NewBrush(fc, utils.Transparent)
	b.Snap(off.To)
	b.BeginAnimation(on)
	assert.True(t, b.Animating())

	fc.Step(350 * time.Millisecond)
	assert.InDelta(t, 0.5, b.Color().Alpha, 1e-9)

	fc.Step(350 * time.Millisecond)
	assert.True(t, b.Color().Equal(utils.Yellow))
	assert.False(t, b.Animating())
}

func TestBrushHandsOffMidTransition(t *testing.T) {
	t.Parallel()

	fc := newFakeClock()
	on, off, err := effect.NewColorTransitions(utils.Red, 1000)
	require.NoError(t, err)

	b := NewBrush(fc, off.To)
	b.BeginAnimation(on)
	fc.Step(500 * time.Millisecond)

	// reversing halfway starts from the half-faded color, not from the target
	b.BeginAnimation(off)
	assert.InDelta(t, 0.5, b.Color().Alpha, 1e-9)

	fc.Step(500 * time.Millisecond)
	assert.InDelta(t, 0.25, b.Color().Alpha, 1e-9)
}

func TestBrushInstantTransition(t *testing.T) {
	t.Parallel()

	fc := newFakeClock()
	on, _ := effect.InstantTransitions(utils.Green)

	b := NewBrush(fc, utils.Transparent)
	b.BeginAnimation(on)

	assert.False(t, b.Animating())
	assert.True(t, b.Color().Equal(utils.Green))
}
