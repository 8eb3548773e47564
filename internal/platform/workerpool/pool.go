// Package workerpool bounds concurrent blocking work and applies a per-call
// timeout.
package workerpool

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/semaphore"
)

// DefaultSize is the number of slots used by the advisor.
const DefaultSize = 4

// ErrTimeout is returned when a call does not finish within its timeout.
var ErrTimeout = errors.New("workerpool: timed out")

// Pool is a fixed-size set of execution slots.
type Pool struct {
	sem  *semaphore.Weighted
	size int
}

// New creates a pool with size slots. Sizes below one are raised to one.
func New(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size)), size: size}
}

func (p *Pool) Size() int { return p.size }

type result[T any] struct {
	val T
	err error
}

// Run executes fn on a pool slot and waits at most timeout for it, including
// time spent waiting for a free slot. When the timeout fires Run returns
// ErrTimeout at once. The abandoned call keeps its slot until fn returns; fn
// receives a context that is cancelled at that point.
func Run[T any](ctx context.Context, p *Pool, timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	ctx, cancel := context.WithTimeout(ctx, timeout)
	if err := p.sem.Acquire(ctx, 1); err != nil {
		cancel()
		return zero, timeoutErr(ctx)
	}

	done := make(chan result[T], 1)
	go func() {
		defer p.sem.Release(1)
		v, err := fn(ctx)
		done <- result[T]{val: v, err: err}
	}()

	defer cancel()
	select {
	case r := <-done:
		return r.val, r.err
	case <-ctx.Done():
		return zero, timeoutErr(ctx)
	}
}

func timeoutErr(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	return ctx.Err()
}
