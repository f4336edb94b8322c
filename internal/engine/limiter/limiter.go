// Package limiter bounds how many external commands may run concurrently.
//
// It is grounded on the teacher's scheduler, which tracked an "active"
// counter against a "parallelism" cap inline inside schedulerRunState
// (internal/engine/scheduler/scheduler.go). maek's resolver dispatches
// demand-driven rather than from one upfront topological sort, so the
// counter is pulled out into its own package and given an explicit FIFO
// waiter queue: spec.md §4.3 requires that jobs are granted a slot in the
// order they were submitted, which a bare golang.org/x/sync/semaphore.Weighted
// does not guarantee across goroutines.
package limiter

import (
	"context"
	"sync"
)

// Limiter grants at most capacity concurrent slots, FIFO among waiters.
type Limiter struct {
	capacity int

	mu      sync.Mutex
	active  int
	waiters []chan struct{}
}

// New creates a Limiter that admits at most capacity concurrent callers.
// A non-positive capacity is treated as 1.
func New(capacity int) *Limiter {
	if capacity < 1 {
		capacity = 1
	}
	return &Limiter{capacity: capacity}
}

// Run blocks until a slot is free (FIFO among other blocked callers), then
// invokes fn and releases the slot when fn returns. If ctx is cancelled
// before a slot is granted, Run returns ctx.Err() without calling fn.
//
// The caller is expected to invoke Run from its own goroutine (the shell
// runner does, once per command, on the goroutine the resolver runs that
// task's update on); Run itself does not spawn one, so that
// submission's deferral to the next scheduler turn comes from the caller's
// own goroutine dispatch, not from hidden concurrency here.
func (l *Limiter) Run(ctx context.Context, fn func(context.Context) error) error {
	if err := l.acquire(ctx); err != nil {
		return err
	}
	defer l.release()
	return fn(ctx)
}

func (l *Limiter) acquire(ctx context.Context) error {
	l.mu.Lock()
	if l.active < l.capacity && len(l.waiters) == 0 {
		l.active++
		l.mu.Unlock()
		return nil
	}
	ch := make(chan struct{})
	l.waiters = append(l.waiters, ch)
	l.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return l.abandon(ch, ctx.Err())
	}
}

// abandon handles cancellation racing with a grant. If ch is still queued,
// it is removed and no slot was ever spent. If it already lost the race and
// was granted (closed) concurrently, the slot it received is immediately
// handed to the next waiter instead of leaking.
func (l *Limiter) abandon(ch chan struct{}, cancelErr error) error {
	l.mu.Lock()
	for i, w := range l.waiters {
		if w == ch {
			l.waiters = append(l.waiters[:i], l.waiters[i+1:]...)
			l.mu.Unlock()
			return cancelErr
		}
	}
	l.mu.Unlock()

	<-ch // already closed; drain without blocking
	l.release()
	return cancelErr
}

func (l *Limiter) release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.waiters) > 0 {
		next := l.waiters[0]
		l.waiters = l.waiters[1:]
		close(next)
		return
	}
	l.active--
}
