package overflow

import (
	"fmt"
	"sync"
)

// Policy determines what happens when an item is pushed to a full queue.
type Policy string

const (
	// DropOldest evicts the oldest queued item to admit the newcomer.
	DropOldest Policy = "drop-oldest"
	// DropNewest discards the incoming item, keeping the queue unchanged.
	DropNewest Policy = "drop-newest"
	// DropLowest evicts the lowest-priority (oldest among ties) queued item
	// if the newcomer outranks it, otherwise discards the newcomer.
	DropLowest Policy = "drop-lowest"
	// Reject refuses the incoming item with ErrQueueFull.
	Reject Policy = "reject"
)

// Valid reports whether the policy is one of the defined constants.
func (p Policy) Valid() bool {
	switch p {
	case DropOldest, DropNewest, DropLowest, Reject:
		return true
	}
	return false
}

type item[T any] struct {
	value    T
	priority int
}

// Option configures a Queue.
type Option[T any] func(*Queue[T])

// WithOnDrop sets a callback invoked for every item the queue discards to
// satisfy its capacity policy. Items removed by Pop, Remove, or Drain are
// not reported.
func WithOnDrop[T any](fn func(T)) Option[T] {
	return func(q *Queue[T]) {
		q.onDrop = fn
	}
}

// Queue is a thread-safe bounded queue ordered by priority, FIFO within a
// priority tier. Items are held in insertion order; Pop selects the highest
// priority, earliest inserted item.
type Queue[T any] struct {
	capacity int
	policy   Policy
	onDrop   func(T)
	items    []item[T]
	mu       sync.Mutex
}

// New creates a queue with the given capacity and full-queue policy.
// Panics on non-positive capacity or unknown policy to fail fast on
// misconfiguration.
func New[T any](capacity int, policy Policy, opts ...Option[T]) *Queue[T] {
	if capacity <= 0 {
		panic("overflow: queue capacity must be positive")
	}
	if !policy.Valid() {
		panic(fmt.Sprintf("overflow: unknown policy %q", policy))
	}
	q := &Queue[T]{
		capacity: capacity,
		policy:   policy,
		items:    make([]item[T], 0, capacity),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Push enqueues a value with the given priority. When the queue is full the
// configured policy decides which item gives way; only Reject surfaces an
// error to the caller.
func (q *Queue[T]) Push(value T, priority int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) < q.capacity {
		q.items = append(q.items, item[T]{value: value, priority: priority})
		return nil
	}

	switch q.policy {
	case Reject:
		return ErrQueueFull

	case DropNewest:
		q.drop(value)
		return nil

	case DropOldest:
		q.drop(q.items[0].value)
		q.items = append(q.items[1:], item[T]{value: value, priority: priority})
		return nil

	default: // DropLowest
		idx := q.lowestIndex()
		if q.items[idx].priority >= priority {
			// The newcomer does not outrank anything queued.
			q.drop(value)
			return nil
		}
		q.drop(q.items[idx].value)
		q.items = append(q.items[:idx], q.items[idx+1:]...)
		q.items = append(q.items, item[T]{value: value, priority: priority})
		return nil
	}
}

// Pop removes and returns the highest-priority item, FIFO within a tier.
func (q *Queue[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		var zero T
		return zero, false
	}

	best := 0
	for i := 1; i < len(q.items); i++ {
		if q.items[i].priority > q.items[best].priority {
			best = i
		}
	}

	value := q.items[best].value
	q.items = append(q.items[:best], q.items[best+1:]...)
	return value, true
}

// Remove deletes all items matching the predicate and returns how many were
// removed. The drop callback is not invoked for caller-initiated removal.
func (q *Queue[T]) Remove(match func(T) bool) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.items[:0]
	removed := 0
	for _, it := range q.items {
		if match(it.value) {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	q.items = kept
	return removed
}

// Find returns the first queued item matching the predicate, in insertion
// order, without removing it.
func (q *Queue[T]) Find(match func(T) bool) (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, it := range q.items {
		if match(it.value) {
			return it.value, true
		}
	}

	var zero T
	return zero, false
}

// Drain empties the queue and returns the items in pop order.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	items := q.items
	q.items = make([]item[T], 0, q.capacity)
	q.mu.Unlock()

	// Sort by priority descending, stable so FIFO order survives within a tier.
	out := make([]T, 0, len(items))
	for len(items) > 0 {
		best := 0
		for i := 1; i < len(items); i++ {
			if items[i].priority > items[best].priority {
				best = i
			}
		}
		out = append(out, items[best].value)
		items = append(items[:best], items[best+1:]...)
	}
	return out
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// lowestIndex returns the index of the lowest-priority item, oldest among
// ties. Must be called with the lock held and a non-empty queue.
func (q *Queue[T]) lowestIndex() int {
	idx := 0
	for i := 1; i < len(q.items); i++ {
		if q.items[i].priority < q.items[idx].priority {
			idx = i
		}
	}
	return idx
}

// drop reports a discarded item. Must be called with the lock held.
func (q *Queue[T]) drop(value T) {
	if q.onDrop != nil {
		q.onDrop(value)
	}
}
