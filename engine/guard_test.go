package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardRepanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		Guard("test", func() { panic("boom") })
	})
	assert.NotPanics(t, func() {
		Guard("test", func() {})
	})
}

func TestPostOrRunInline(t *testing.T) {
	t.Parallel()

	ran := false
	PostOrRun(nil, func() { ran = true })
	assert.True(t, ran)
}
