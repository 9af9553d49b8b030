// Package workerpool bridges blocking calls onto a bounded set of workers.
package workerpool

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// DefaultSize is used when a non-positive size is requested.
const DefaultSize = 4

// Pool limits how many blocking calls run at once.
type Pool struct {
	sem  *semaphore.Weighted
	size int
}

// New creates a pool that runs at most size calls concurrently.
func New(size int) *Pool {
	if size <= 0 {
		size = DefaultSize
	}
	return &Pool{
		sem:  semaphore.NewWeighted(int64(size)),
		size: size,
	}
}

// Size returns the maximum number of concurrent calls.
func (p *Pool) Size() int {
	return p.size
}

type result[T any] struct {
	value T
	err   error
}

// Do runs fn on a pool worker and waits for it. If ctx ends first, Do returns
// ctx.Err() and the worker slot is released once fn returns.
func Do[T any](ctx context.Context, p *Pool, fn func() (T, error)) (T, error) {
	var zero T
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return zero, err
	}

	done := make(chan result[T], 1)
	go func() {
		defer p.sem.Release(1)
		v, err := fn()
		done <- result[T]{value: v, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
