package async

import "errors"

// ErrTimeout is returned by AwaitWithTimeout when the computation does not
// complete before the deadline.
var ErrTimeout = errors.New("async: await timed out")
