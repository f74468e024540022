// Package notify carries change notifications from the blinking engine to its observers.
// Every subscription is an explicit handle; cancelling it removes exactly that callback.
package notify

import (
	"sync"
)

// Subscription is returned by Subscribe. Cancel is safe to call more than once.
type Subscription struct {
	once   sync.Once
	cancel func()
}

func newSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

// Cancel removes the callback behind this subscription.
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}

// Topic fans a value out to any number of independent subscribers.
type Topic[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]func(T)
	order  []uint64
}

// Subscribe registers fn and returns its handle.
func (t *Topic[T]) Subscribe(fn func(T)) *Subscription {
	return t.SubscribeWithDone(fn, nil)
}

// SubscribeWithDone is Subscribe with a completion callback that runs when the
// subscription is cancelled.
func (t *Topic[T]) SubscribeWithDone(fn func(T), done func()) *Subscription {
	t.mu.Lock()
	if t.subs == nil {
		t.subs = make(map[uint64]func(T))
	}
	id := t.nextID
	t.nextID++
	t.subs[id] = fn
	t.order = append(t.order, id)
	t.mu.Unlock()

	return newSubscription(func() {
		t.remove(id)
		if done != nil {
			done()
		}
	})
}

func (t *Topic[T]) remove(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.subs, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Publish delivers v to every subscriber in subscription order. The subscriber list is
// copied first, so callbacks may subscribe or cancel without deadlocking.
func (t *Topic[T]) Publish(v T) {
	t.mu.Lock()
	fns := make([]func(T), 0, len(t.order))
	for _, id := range t.order {
		fns = append(fns, t.subs[id])
	}
	t.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Len returns the number of live subscriptions.
func (t *Topic[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.order)
}

// Clear drops every subscriber without running completion callbacks.
func (t *Topic[T]) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subs = nil
	t.order = nil
}

// PropertyNotifier publishes the name of a changed property. Consumers re-read the
// property; the notification carries no value.
type PropertyNotifier struct {
	Topic[string]
}

// NotifyPropertyChanged publishes name.
func (n *PropertyNotifier) NotifyPropertyChanged(name string) {
	n.Publish(name)
}

// Forward republishes everything from src on n and returns the bridging subscription.
func (n *PropertyNotifier) Forward(src interface {
	Subscribe(func(string)) *Subscription
}) *Subscription {
	return src.Subscribe(n.NotifyPropertyChanged)
}
