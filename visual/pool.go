package visual

import (
	"sync"

	"github.com/robmorgan/blink/effect"
	"github.com/robmorgan/blink/engine"
	"github.com/robmorgan/blink/logger"
	"github.com/robmorgan/blink/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"k8s.io/utils/clock"
)

type poolEntry struct {
	brush *Brush
	refs  int
}

// Pool shares one Brush per dispatcher, so thousands of indicators on one UI context
// cost a single brush. An entry lives while at least one indicator holds it and is
// removed when the last one releases it or when its dispatcher closes.
type Pool struct {
	clock   clock.PassiveClock
	initial utils.Color

	mu      sync.Mutex
	entries map[*engine.Dispatcher]*poolEntry
	last    *effect.ColorTransition
	closed  bool
}

// NewPool creates an empty pool whose new brushes start at initial.
func NewPool(clk clock.PassiveClock, initial utils.Color) *Pool {
	return &Pool{
		clock:   clk,
		initial: initial,
		entries: make(map[*engine.Dispatcher]*poolEntry),
	}
}

// Acquire returns the shared brush for d and a release function. The release function
// may be called more than once; only the first call counts.
func (p *Pool) Acquire(d *engine.Dispatcher) (*Brush, func()) {
	p.mu.Lock()
	if p.closed || d.Closed() {
		p.mu.Unlock()
		return NewBrush(p.clock, p.initial), func() {}
	}

	entry, ok := p.entries[d]
	if !ok {
		entry = &poolEntry{brush: NewBrush(p.clock, p.initial)}
		if p.last != nil {
			entry.brush.BeginAnimation(*p.last)
		}
		p.entries[d] = entry
	}
	entry.refs++
	p.mu.Unlock()

	if !ok {
		d.OnClose(func() { p.drop(d) })
		logger.GetProjectLogger().WithFields(logrus.Fields{"dispatcher": d.Name()}).Debug("Pooled brush created")
	}

	var once sync.Once
	return entry.brush, func() {
		once.Do(func() { p.release(d, entry) })
	}
}

func (p *Pool) release(d *engine.Dispatcher, entry *poolEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry.refs--
	if entry.refs <= 0 && p.entries[d] == entry {
		delete(p.entries, d)
	}
}

func (p *Pool) drop(d *engine.Dispatcher) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.entries[d]; ok {
		delete(p.entries, d)
		logger.GetProjectLogger().WithFields(logrus.Fields{"dispatcher": d.Name()}).Debug("Pooled brush dropped with its dispatcher")
	}
}

// Apply starts t on every pooled brush, each on its own dispatcher.
func (p *Pool) Apply(t effect.ColorTransition) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.last = &t
	targets := make(map[*engine.Dispatcher]*Brush, len(p.entries))
	for d, entry := range p.entries {
		targets[d] = entry.brush
	}
	p.mu.Unlock()

	for d, brush := range targets {
		brush := brush
		d.Post(func() { brush.BeginAnimation(t) })
	}
}

// Len returns the number of live entries.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// Contexts returns the names of the dispatchers holding a brush, sorted.
func (p *Pool) Contexts() []string {
	p.mu.Lock()
	dispatchers := maps.Keys(p.entries)
	p.mu.Unlock()

	names := make([]string, 0, len(dispatchers))
	for _, d := range dispatchers {
		names = append(names, d.Name())
	}
	slices.Sort(names)
	return names
}

// Close empties the pool. Later acquisitions get unshared brushes.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	p.entries = make(map[*engine.Dispatcher]*poolEntry)
}
