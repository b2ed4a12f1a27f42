// Package async provides a minimal Future abstraction over goroutines.
//
// Run starts a computation and returns a Future that can be awaited with or
// without a timeout. WaitAll collects several futures, preserving order.
//
// The hub package uses futures to close all per-scope centers concurrently
// during shutdown, and the toast package uses them for awaitable dismissal.
package async
