package client

import (
	"sync"

	"github.com/robmorgan/blink/blinkerr"
)

// Group broadcasts blink commands to its clients in insertion order.
type Group struct {
	mu       sync.Mutex
	clients  []Interface
	disposed bool
}

// Create a new Group with no clients.
func NewGroup() *Group {
	return &Group{}
}

// Add appends c and reports whether it was added. Adding a client that is already a
// member does nothing.
func (g *Group) Add(c Interface) (bool, error) {
	if c == nil {
		return false, blinkerr.NewInvalidArgument("client")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.disposed {
		return false, blinkerr.NewAlreadyDisposed("client group")
	}
	for _, existing := range g.clients {
		if existing == c {
			return false, nil
		}
	}
	g.clients = append(g.clients, c)
	return true, nil
}

// Len returns the number of clients in the group
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.clients)
}

// Clients returns a copy of the members.
func (g *Group) Clients() []Interface {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Interface(nil), g.clients...)
}

func (g *Group) BlinkOn() {
	for _, c := range g.Clients() {
		c.BlinkOn()
	}
}

func (g *Group) BlinkOff() {
	for _, c := range g.Clients() {
		c.BlinkOff()
	}
}

// Dispose disposes every member once. Later calls are no-ops.
func (g *Group) Dispose() {
	g.mu.Lock()
	if g.disposed {
		g.mu.Unlock()
		return
	}
	g.disposed = true
	clients := g.clients
	g.clients = nil
	g.mu.Unlock()

	for _, c := range clients {
		c.Dispose()
	}
}
