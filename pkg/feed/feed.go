package feed

import (
	"context"
	"sync"
)

// Subscriber receives values published on a Feed.
// Implementations are safe for concurrent use.
type Subscriber[T any] interface {
	// Receive returns the channel values are delivered on. The channel is
	// closed when the subscriber or the feed shuts down.
	Receive() <-chan T

	// Close detaches the subscriber and closes its channel.
	// Close is idempotent.
	Close() error
}

type subscriber[T any] struct {
	ch     chan T
	closed bool
	mu     sync.Mutex
}

func newSubscriber[T any](bufferSize int) *subscriber[T] {
	return &subscriber[T]{ch: make(chan T, bufferSize)}
}

func (s *subscriber[T]) Receive() <-chan T {
	return s.ch
}

func (s *subscriber[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
	return nil
}

// send delivers a value with latest-wins semantics: when the buffer is full
// the oldest pending value is discarded so subscribers always converge on
// the most recent snapshot. Returns false if the subscriber is closed.
func (s *subscriber[T]) send(v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	for {
		select {
		case s.ch <- v:
			return true
		default:
			select {
			case <-s.ch:
			default:
			}
		}
	}
}

// Feed fans values out to subscribers without ever blocking the publisher.
// It is intended for state snapshots where only the latest value matters;
// slow consumers lose intermediate snapshots, not the final state.
// All methods are safe for concurrent use.
type Feed[T any] struct {
	subscribers map[*subscriber[T]]struct{}
	bufferSize  int
	closed      bool
	done        chan struct{}
	mu          sync.RWMutex
	cleanupWg   sync.WaitGroup
}

// New creates a feed. Each subscriber gets a buffered channel of the given
// size; a minimum of 1 is enforced so sends stay non-blocking.
func New[T any](bufferSize int) *Feed[T] {
	return &Feed[T]{
		subscribers: make(map[*subscriber[T]]struct{}),
		bufferSize:  max(bufferSize, 1),
		done:        make(chan struct{}),
	}
}

// Subscribe attaches a new subscriber. Cancelling the context detaches it
// automatically. Subscribing to a closed feed returns an already-closed
// subscriber.
func (f *Feed[T]) Subscribe(ctx context.Context) Subscriber[T] {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		sub := newSubscriber[T](f.bufferSize)
		_ = sub.Close()
		return sub
	}

	sub := newSubscriber[T](f.bufferSize)
	f.subscribers[sub] = struct{}{}

	if ctx.Done() != nil {
		f.cleanupWg.Add(1)
		go func() {
			defer f.cleanupWg.Done()
			select {
			case <-ctx.Done():
				f.unsubscribe(sub)
			case <-f.done:
				// The feed closed first; Close already detached everyone.
			}
		}()
	}

	return sub
}

// Publish delivers a value to every active subscriber. Never blocks.
func (f *Feed[T]) Publish(v T) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return
	}

	for sub := range f.subscribers {
		if !sub.send(v) {
			// Detach closed subscribers asynchronously so the publish path
			// never contends for the write lock.
			go f.unsubscribe(sub)
		}
	}
}

// SubscriberCount returns the number of attached subscribers.
func (f *Feed[T]) SubscriberCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subscribers)
}

// Close shuts down the feed and every subscriber. Idempotent.
func (f *Feed[T]) Close() error {
	f.mu.Lock()

	if f.closed {
		f.mu.Unlock()
		return nil
	}

	f.closed = true
	close(f.done)
	for sub := range f.subscribers {
		_ = sub.Close()
	}
	clear(f.subscribers)
	f.mu.Unlock()

	// Wait for context-cleanup goroutines so Close never races unsubscribe.
	// The done channel releases goroutines whose contexts are still live.
	f.cleanupWg.Wait()
	return nil
}

func (f *Feed[T]) unsubscribe(sub *subscriber[T]) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.subscribers, sub)
	_ = sub.Close()
}
