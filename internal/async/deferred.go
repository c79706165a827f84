// Package async provides a small write-once deferred value used to combine
// inputs that may not be known yet at construction time.
package async

import (
	"context"
	"sync"
)

// Deferred is a value that is resolved exactly once. Construction never
// blocks; readers wait in Value until the value arrives.
type Deferred[T any] struct {
	once sync.Once
	done chan struct{}
	val  T
}

// NewDeferred returns an unresolved deferred value.
func NewDeferred[T any]() *Deferred[T] {
	return &Deferred[T]{done: make(chan struct{})}
}

// Resolved returns a deferred value that already holds v.
func Resolved[T any](v T) *Deferred[T] {
	d := NewDeferred[T]()
	d.Resolve(v)
	return d
}

// Resolve sets the value. Calls after the first are ignored.
func (d *Deferred[T]) Resolve(v T) {
	d.once.Do(func() {
		d.val = v
		close(d.done)
	})
}

// Value blocks until the value is resolved or the context is done.
func (d *Deferred[T]) Value(ctx context.Context) (T, error) {
	select {
	case <-d.done:
		return d.val, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Combine derives a new deferred value from two inputs. The combiner runs in
// the background once both inputs are resolved; Combine itself returns
// immediately.
func Combine[A, B, C any](a *Deferred[A], b *Deferred[B], fn func(A, B) C) *Deferred[C] {
	out := NewDeferred[C]()
	go func() {
		<-a.done
		<-b.done
		out.Resolve(fn(a.val, b.val))
	}()
	return out
}
