package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlphaByte(t *testing.T) {
	t.Parallel()

	require.Equal(t, uint8(0), AlphaByte(-1))
	require.Equal(t, uint8(128), AlphaByte(0.5))
	require.Equal(t, uint8(255), AlphaByte(1.5))
}
