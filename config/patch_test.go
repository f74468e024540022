package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchIndicatorsFillsTheWall(t *testing.T) {
	t.Parallel()

	indicators := PatchIndicators(4, 5)
	require.Len(t, indicators, 20)

	assert.Equal(t, "alarm", indicators[0].Profile)
	assert.Equal(t, "warning", indicators[5].Profile)
	assert.Equal(t, "yellow", indicators[10].Color)
	assert.True(t, indicators[13].Steady)
	assert.True(t, indicators[13].On)
	assert.True(t, indicators[14].Steady)
	assert.False(t, indicators[14].On)
	assert.Equal(t, "led_3_4", indicators[19].Name)

	w := WallConfig{Rows: 4, Cols: 5, Indicators: indicators}
	assert.NoError(t, w.Validate(initializeProviderProfiles()))
}

func TestWallValidateRejectsSharedCells(t *testing.T) {
	t.Parallel()

	w := WallConfig{
		Rows: 1,
		Cols: 1,
		Indicators: []PatchedIndicator{
			{Name: "a"},
			{Name: "b"},
		},
	}
	assert.Error(t, w.Validate(nil))
}
