package timer

import (
	"sync"
	"time"
)

// handle wraps a timer so a fired callback can identify itself by pointer
// without reading the timer field, which is only assigned under the
// table's lock.
type handle struct {
	timer *time.Timer
}

// Table owns a set of named one-shot timers. Every armed timer has exactly
// one release path: it either fires (removing its own entry before running
// the callback) or is cancelled through the table. Re-arming a key cancels
// the previous handle first, so a key never has two live timers.
//
// All methods are safe for concurrent use.
type Table struct {
	timers map[string]*handle
	mu     sync.Mutex
}

// NewTable creates an empty timer table.
func NewTable() *Table {
	return &Table{timers: make(map[string]*handle)}
}

// Arm schedules fn to run after d, replacing any timer already armed for
// the key. The callback runs on the timer's goroutine.
func (t *Table) Arm(key string, d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.timers[key]; ok {
		prev.timer.Stop()
	}

	h := &handle{}
	h.timer = time.AfterFunc(d, func() {
		t.release(key, h)
		fn()
	})
	t.timers[key] = h
}

// Cancel stops the timer for the key. Returns false if no timer was armed.
func (t *Table) Cancel(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	h, ok := t.timers[key]
	if !ok {
		return false
	}
	h.timer.Stop()
	delete(t.timers, key)
	return true
}

// CancelAll stops every armed timer and returns how many were cancelled.
func (t *Table) CancelAll() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(t.timers)
	for key, h := range t.timers {
		h.timer.Stop()
		delete(t.timers, key)
	}
	return n
}

// Len returns the number of armed timers.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.timers)
}

// release removes the entry for a fired timer, but only if the stored
// handle is still the one that fired; a concurrent re-arm must not lose its
// fresh timer.
func (t *Table) release(key string, h *handle) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if current, ok := t.timers[key]; ok && current == h {
		delete(t.timers, key)
	}
}
