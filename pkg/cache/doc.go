// Package cache provides a generic thread-safe LRU cache with an optional
// eviction callback for resource cleanup.
//
// The hub package uses it to keep one notification center per scope alive,
// closing centers for scopes that fall out of the working set.
package cache
