// Package concurrency bounds the number of concurrent operations sharing a
// resource, such as endpoint probes sharing the host's sockets.
package concurrency

import (
	"context"
	"sync/atomic"
)

// DefaultMaxConcurrent is used when a limiter is built with a non-positive
// limit.
const DefaultMaxConcurrent = 64

// Limiter is a semaphore whose Acquire honors context cancellation.
type Limiter struct {
	semaphore chan struct{}
	active    atomic.Int64
}

// NewLimiter returns a limiter admitting at most maxConcurrent holders.
func NewLimiter(maxConcurrent int) *Limiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	return &Limiter{semaphore: make(chan struct{}, maxConcurrent)}
}

// Acquire blocks until a slot is free or ctx is done. It reports whether a
// slot was acquired; every successful Acquire must be paired with Release.
func (l *Limiter) Acquire(ctx context.Context) bool {
	// A done ctx wins over a free slot.
	if ctx.Err() != nil {
		return false
	}

	select {
	case l.semaphore <- struct{}{}:
		l.active.Add(1)
		return true
	case <-ctx.Done():
		return false
	}
}

// Release frees a slot. Releasing without holding one is a no-op.
func (l *Limiter) Release() {
	select {
	case <-l.semaphore:
		l.active.Add(-1)
	default:
	}
}

// Active returns the number of slots currently held.
func (l *Limiter) Active() int64 {
	return l.active.Load()
}

// Cap returns the maximum number of holders.
func (l *Limiter) Cap() int {
	return cap(l.semaphore)
}
