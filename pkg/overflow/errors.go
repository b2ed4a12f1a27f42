package overflow

import "errors"

// ErrQueueFull is returned by Push under the Reject policy when the queue is
// at capacity.
var ErrQueueFull = errors.New("overflow: queue is full")
