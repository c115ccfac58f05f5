package session

import (
	"sync"
	"sync/atomic"
)

// Broadcast holds a current value and pushes every change to its
// subscribers.
//
// New subscribers first receive the current value. Deliveries are
// serialized: each value reaches subscribers in subscription order, and a
// subscriber never sees an older value after a newer one. Callbacks run on
// the publishing goroutine and may themselves publish or subscribe; such
// nested calls are queued behind the delivery in progress.
type Broadcast[T any] struct {
	mu         sync.Mutex
	value      T
	subs       []*subscriber[T]
	queue      []delivery[T]
	delivering bool
}

type subscriber[T any] struct {
	fn     func(T)
	active atomic.Bool
}

type delivery[T any] struct {
	value  T
	target *subscriber[T]
}

// NewBroadcast creates a broadcast holding initial
func NewBroadcast[T any](initial T) *Broadcast[T] {
	return &Broadcast[T]{value: initial}
}

// Value returns the current value
func (b *Broadcast[T]) Value() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// Publish replaces the current value and delivers it to all subscribers
func (b *Broadcast[T]) Publish(v T) {
	b.mu.Lock()
	b.value = v
	b.queue = append(b.queue, delivery[T]{value: v})
	b.drainLocked()
}

// Subscribe registers fn and immediately delivers the current value to it.
// The returned function removes the subscription; calling it more than once
// is harmless.
func (b *Broadcast[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	sub := &subscriber[T]{fn: fn}
	sub.active.Store(true)

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.queue = append(b.queue, delivery[T]{value: b.value, target: sub})
	b.drainLocked()

	var once sync.Once
	return func() {
		once.Do(func() {
			sub.active.Store(false)
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.subs {
				if s == sub {
					b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
					break
				}
			}
		})
	}
}

// Len returns the number of live subscriptions
func (b *Broadcast[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// drainLocked must be called with b.mu held; it returns with b.mu released.
// A panicking callback propagates to the caller, and later calls keep
// delivering.
func (b *Broadcast[T]) drainLocked() {
	if b.delivering {
		b.mu.Unlock()
		return
	}
	b.delivering = true

	locked := true
	defer func() {
		if !locked {
			b.mu.Lock()
		}
		b.delivering = false
		b.mu.Unlock()
	}()

	for len(b.queue) > 0 {
		next := b.queue[0]
		b.queue = b.queue[1:]

		var targets []*subscriber[T]
		if next.target != nil {
			targets = []*subscriber[T]{next.target}
		} else {
			targets = append(targets, b.subs...)
		}
		b.mu.Unlock()
		locked = false

		for _, sub := range targets {
			if sub.active.Load() {
				sub.fn(next.value)
			}
		}

		b.mu.Lock()
		locked = true
	}
}
