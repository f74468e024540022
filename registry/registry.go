// Package registry maps names to shared blinking providers. A registry is constructed
// explicitly and passed to whoever needs it; there is no process-wide instance.
package registry

import (
	"strings"
	"sync"

	"github.com/robmorgan/blink/blinkerr"
	"github.com/robmorgan/blink/logger"
	"github.com/robmorgan/blink/provider"
	"github.com/robmorgan/blink/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DefaultName is the reserved key of the default provider.
const DefaultName = "default"

// Registry holds one reference on every provider it stores, and one more on the default
// provider.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]*provider.Provider
	def       *provider.Provider
	debug     bool
	closed    bool
}

// New creates a registry with def registered as the default provider.
func New(def *provider.Provider) (*Registry, error) {
	if def == nil {
		return nil, blinkerr.NewInvalidArgument("default provider")
	}

	// one reference for the default slot, one for the "default" entry
	def.Retain()
	def.Retain()
	return &Registry{
		providers: map[string]*provider.Provider{DefaultName: def},
		def:       def,
	}, nil
}

// SetDebug enables the diagnostic Close logs for providers that outlive the registry.
func (r *Registry) SetDebug(debug bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debug = debug
}

func key(name string) string {
	return strings.ToLower(name)
}

// AddProvider registers p under name. Names are case-insensitive and the first
// registration wins: adding under a taken name leaves the registry unchanged.
func (r *Registry) AddProvider(name string, p *provider.Provider) error {
	if name == "" {
		return blinkerr.NewInvalidArgument("name")
	}
	if p == nil {
		return blinkerr.NewInvalidArgument("provider")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.addLocked(key(name), p)
	return err
}

// addLocked stores p under k unless k is taken, and returns whichever provider is
// registered under k afterwards.
func (r *Registry) addLocked(k string, p *provider.Provider) (*provider.Provider, error) {
	if r.closed {
		return nil, blinkerr.NewAlreadyDisposed("registry")
	}
	if existing, ok := r.providers[k]; ok {
		return existing, nil
	}
	p.Retain()
	r.providers[k] = p
	return p, nil
}

// RemoveProvider drops the provider registered under name and reports whether there was
// one. Removing the "default" entry leaves DefaultProvider unchanged.
func (r *Registry) RemoveProvider(name string) (bool, error) {
	if name == "" {
		return false, blinkerr.NewInvalidArgument("name")
	}

	k := key(name)
	r.mu.Lock()
	p, ok := r.providers[k]
	if ok {
		delete(r.providers, k)
	}
	r.mu.Unlock()

	if ok {
		p.Release()
	}
	return ok, nil
}

// Provider looks up name.
func (r *Registry) Provider(name string) (*provider.Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[key(name)]
	return p, ok
}

// DefaultProvider returns the default provider, also after its entry was removed.
func (r *Registry) DefaultProvider() *provider.Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.def
}

// SetDefaultProvider makes p the default provider and registers it under "default",
// releasing the previous default and entry.
func (r *Registry) SetDefaultProvider(p *provider.Provider) error {
	if p == nil {
		return blinkerr.NewInvalidArgument("provider")
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return blinkerr.NewAlreadyDisposed("registry")
	}
	oldDef := r.def
	oldEntry, hadEntry := r.providers[DefaultName]
	if oldDef == p && oldEntry == p {
		r.mu.Unlock()
		return nil
	}
	p.Retain()
	p.Retain()
	r.def = p
	r.providers[DefaultName] = p
	r.mu.Unlock()

	oldDef.Release()
	if hadEntry {
		oldEntry.Release()
	}
	return nil
}

// ProviderForColor returns the provider registered under the canonical string of c,
// creating it with factory when there is none yet.
func (r *Registry) ProviderForColor(c utils.Color, factory func(utils.Color) (*provider.Provider, error)) (*provider.Provider, error) {
	if factory == nil {
		return nil, blinkerr.NewInvalidArgument("factory")
	}

	k := key(c.String())
	if p, ok := r.Provider(k); ok {
		return p, nil
	}

	p, err := factory(c)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	registered, err := r.addLocked(k, p)
	r.mu.Unlock()

	if err != nil {
		p.Dispose()
		return nil, err
	}
	// another caller registered the color while the factory ran
	if registered != p {
		p.Dispose()
	}
	return registered, nil
}

// Names returns the registered keys, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := maps.Keys(r.providers)
	r.mu.RUnlock()

	slices.Sort(names)
	return names
}

// Len returns the number of registered providers
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers)
}

// Close releases every provider. Providers still referenced elsewhere keep running; in
// debug mode they are logged so leaked references show up.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	providers := r.providers
	def := r.def
	r.providers = make(map[string]*provider.Provider)
	debug := r.debug
	r.mu.Unlock()

	names := maps.Keys(providers)
	slices.Sort(names)
	for _, name := range names {
		providers[name].Release()
	}
	def.Release()

	if !debug {
		return
	}
	seen := make(map[*provider.Provider]bool, len(names)+1)
	report := func(name string, p *provider.Provider) {
		if seen[p] || p.Disposed() {
			return
		}
		seen[p] = true
		logger.GetProjectLogger().WithFields(logrus.Fields{
			"provider": name,
			"refs":     p.Refs(),
		}).Warn("Blinking provider still referenced after registry close")
	}
	for _, name := range names {
		report(name, providers[name])
	}
	report(DefaultName, def)
}
