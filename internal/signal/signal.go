// Package signal implements a small observable value.
//
// A Signal holds the latest value and an ordered list of subscribers.
// Set stores the value and then calls every subscriber synchronously, in
// subscription order, before returning. New subscribers immediately
// receive the current value.
package signal

import (
	"sync"
)

// Signal is an observable value of type T. The zero value is not usable;
// call New.
type Signal[T any] struct {
	mu     sync.Mutex
	value  T
	nextID uint64
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// New returns a Signal holding initial.
func New[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set stores v and notifies subscribers. Callbacks run on the caller's
// goroutine after the lock is released, so a callback may call Get.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	subs := make([]subscriber[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(v)
	}
}

// Subscribe registers fn and calls it once with the current value.
func (s *Signal[T]) Subscribe(fn func(T)) *Subscription {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	current := s.value
	s.mu.Unlock()

	fn(current)

	return &Subscription{cancel: func() { s.remove(id) }}
}

// Len reports the number of live subscribers.
func (s *Signal[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *Signal[T]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

// Subscription is a handle returned by Subscribe.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Unsubscribe stops delivery. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}

// Subscriptions collects handles so a view can drop all of them at once
// when it is torn down.
type Subscriptions struct {
	mu     sync.Mutex
	closed bool
	subs   []*Subscription
}

// Add keeps sub until Close. After Close, sub is cancelled right away.
func (b *Subscriptions) Add(sub *Subscription) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		sub.Unsubscribe()
		return
	}
	b.subs = append(b.subs, sub)
	b.mu.Unlock()
}

// Close unsubscribes everything added so far.
func (b *Subscriptions) Close() {
	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.closed = true
	b.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
}
