package client

import (
	"testing"

	"github.com/robmorgan/blink/blinkerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAdd(t *testing.T, g *Group, c Interface) bool {
	t.Helper()

	added, err := g.Add(c)
	require.NoError(t, err)
	return added
}

func TestGroupBroadcastsInInsertionOrder(t *testing.T) {
	t.Parallel()

	var log []string
	g := NewGroup()
	a := newFakeClient("a", &log)
	b := newFakeClient("b", &log)
	assert.True(t, mustAdd(t, g, a))
	assert.True(t, mustAdd(t, g, b))

	// duplicates are ignored
	assert.False(t, mustAdd(t, g, a))
	assert.Equal(t, 2, g.Len())

	g.BlinkOn()
	g.BlinkOff()
	assert.Equal(t, []string{"a:on", "b:on", "a:off", "b:off"}, log)
}

func TestGroupDisposesEachClientOnce(t *testing.T) {
	t.Parallel()

	var log []string
	g := NewGroup()
	a := newFakeClient("a", &log)
	b := newFakeClient("b", &log)
	mustAdd(t, g, a)
	mustAdd(t, g, b)

	g.Dispose()
	g.Dispose()

	assert.Equal(t, 1, a.disposed)
	assert.Equal(t, 1, b.disposed)
	assert.Equal(t, 0, g.Len())

	// a disposed group ignores blinks and refuses new members
	g.BlinkOn()
	assert.Empty(t, log)
	added, err := g.Add(newFakeClient("c", &log))
	assert.False(t, added)
	assert.True(t, blinkerr.IsAlreadyDisposed(err))
}

func TestGroupRejectsNilClient(t *testing.T) {
	t.Parallel()

	added, err := NewGroup().Add(nil)
	assert.False(t, added)
	assert.True(t, blinkerr.IsInvalidArgument(err))
}

func TestGroupClientsIsACopy(t *testing.T) {
	t.Parallel()

	var log []string
	g := NewGroup()
	mustAdd(t, g, newFakeClient("a", &log))

	clients := g.Clients()
	clients[0] = nil
	assert.NotNil(t, g.Clients()[0])
}
