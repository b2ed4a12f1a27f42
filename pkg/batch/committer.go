package batch

import (
	"sync"
	"time"
)

// Committer collects values for a fixed window and applies them in one
// atomic batch. It replaces ad-hoc debouncing: rapid successive additions
// within the window produce a single apply call with every value in arrival
// order, instead of one call per value.
//
// All methods are safe for concurrent use. The apply function runs on the
// window timer's goroutine (or on the caller's goroutine for Flush) and is
// never invoked concurrently with itself.
type Committer[T any] struct {
	window time.Duration
	apply  func([]T)

	pending []T
	timer   *time.Timer
	closed  bool
	mu      sync.Mutex

	// applyMu serializes commits end to end so batches are applied one at
	// a time in the order they were taken.
	applyMu sync.Mutex
}

// New creates a committer that applies collected values at most once per
// window. Panics on a non-positive window or nil apply function to fail
// fast on misconfiguration.
func New[T any](window time.Duration, apply func([]T)) *Committer[T] {
	if window <= 0 {
		panic("batch: commit window must be positive")
	}
	if apply == nil {
		panic("batch: apply function is required")
	}
	return &Committer[T]{window: window, apply: apply}
}

// Add appends a value to the pending batch, starting the window timer if
// this is the first value since the last commit. Values added after Close
// are silently discarded.
func (c *Committer[T]) Add(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.pending = append(c.pending, v)
	if c.timer == nil {
		c.timer = time.AfterFunc(c.window, c.commit)
	}
}

// Flush commits any pending values synchronously, cancelling the window
// timer. Safe to call when nothing is pending.
func (c *Committer[T]) Flush() {
	c.commit()
}

// Close flushes pending values and discards anything added afterwards.
// Idempotent.
func (c *Committer[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.commit()
}

// Len returns the number of values waiting for the next commit.
func (c *Committer[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

func (c *Committer[T]) commit() {
	// Take applyMu before draining pending: a window-timer commit racing a
	// Flush must apply its batch before the next one is taken, or a stale
	// batch could land after a newer one.
	c.applyMu.Lock()
	defer c.applyMu.Unlock()

	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	batch := c.pending
	c.pending = nil
	c.mu.Unlock()

	// Apply outside c.mu so the batch callback may call Add again
	// (e.g. a commit that triggers a follow-up mutation).
	if len(batch) > 0 {
		c.apply(batch)
	}
}
