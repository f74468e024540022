package engine

import (
	"context"
	"runtime"
	"sync"

	"github.com/robmorgan/blink/logger"
	"github.com/sirupsen/logrus"
)

// Poster schedules fn on an execution context. Implementations must not block.
type Poster interface {
	Post(fn func())
}

// Dispatcher is a UI-affine execution context: a single goroutine, locked to its OS
// thread, running posted callbacks one at a time in posting order.
type Dispatcher struct {
	name string

	mu      sync.Mutex
	pending []func()
	hooks   []func()
	closed  bool

	wake      chan struct{}
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	runOnce   sync.Once
}

// NewDispatcher creates a dispatcher. Nothing runs until Start or Run is called.
func NewDispatcher(name string) *Dispatcher {
	return &Dispatcher{
		name: name,
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
}

func (d *Dispatcher) Name() string {
	return d.name
}

// Start runs the dispatch loop on a new goroutine.
func (d *Dispatcher) Start() {
	go d.Run(context.Background()) //nolint:errcheck
}

// Run executes posted callbacks until ctx is cancelled or Close is called. Only the first
// call runs the loop; later calls return immediately.
func (d *Dispatcher) Run(ctx context.Context) error {
	started := false
	d.runOnce.Do(func() { started = true })
	if !started {
		return nil
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(d.done)

	log := logger.GetProjectLogger()
	log.WithFields(logrus.Fields{"dispatcher": d.name}).Debug("Dispatcher started")

	for {
		select {
		case <-ctx.Done():
			d.Close()
			return ctx.Err()
		case <-d.quit:
			log.WithFields(logrus.Fields{"dispatcher": d.name}).Debug("Dispatcher stopped")
			return nil
		case <-d.wake:
			d.drain()
		}
	}
}

func (d *Dispatcher) drain() {
	d.mu.Lock()
	batch := d.pending
	d.pending = nil
	d.mu.Unlock()

	for _, fn := range batch {
		select {
		case <-d.quit:
			return
		default:
		}
		fn()
	}
}

// Post queues fn without blocking. Posts after Close are dropped.
func (d *Dispatcher) Post(fn func()) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.pending = append(d.pending, fn)
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// OnClose registers a teardown hook. Hooks run once, in registration order, when the
// dispatcher closes. Registering on a closed dispatcher runs the hook immediately.
func (d *Dispatcher) OnClose(hook func()) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		hook()
		return
	}
	d.hooks = append(d.hooks, hook)
	d.mu.Unlock()
}

// Close stops the loop, drops pending callbacks and runs the teardown hooks. It is safe
// to call more than once and from inside a posted callback.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		d.pending = nil
		hooks := d.hooks
		d.hooks = nil
		d.mu.Unlock()

		close(d.quit)
		for _, hook := range hooks {
			hook()
		}
	})
}

// Done is closed when the dispatch loop has exited.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}

// Closed reports whether Close has been called.
func (d *Dispatcher) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}
