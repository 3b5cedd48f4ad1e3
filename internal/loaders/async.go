package loaders

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// State is the lifecycle of an asynchronous load.
type State int

const (
	Pending State = iota
	Loaded
	Errored
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Loaded:
		return "loaded"
	case Errored:
		return "errored"
	}
	return "unknown"
}

// Async is the result of one load started with Go. It is pending until the
// load completes, then holds either the value or the error. It moves out of
// Pending exactly once.
type Async[T any] struct {
	mu    sync.Mutex
	state State
	value T
	err   error
}

// Go starts fn on the group and returns its pending result. Loads started on
// the same group run concurrently; call g.Wait before reading the results.
func Go[T any](ctx context.Context, g *errgroup.Group, fn func(context.Context) (T, error)) *Async[T] {
	a := &Async[T]{}
	g.Go(func() error {
		v, err := fn(ctx)
		a.complete(v, err)
		return err
	})
	return a
}

// GoOptional is Go for a load the page can do without: its failure is kept
// on the result and does not fail the group.
func GoOptional[T any](ctx context.Context, g *errgroup.Group, fn func(context.Context) (T, error)) *Async[T] {
	a := &Async[T]{}
	g.Go(func() error {
		v, err := fn(ctx)
		a.complete(v, err)
		return nil
	})
	return a
}

func (a *Async[T]) complete(v T, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != Pending {
		return
	}
	if err != nil {
		a.state, a.err = Errored, err
		return
	}
	a.state, a.value = Loaded, v
}

// State reports where the load is.
func (a *Async[T]) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Value returns the loaded value, or the zero T while pending or on error.
func (a *Async[T]) Value() T {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != Loaded {
		var zero T
		return zero
	}
	return a.value
}

// Err returns the load error once the load has failed.
func (a *Async[T]) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}
