// Package overflow provides a bounded priority queue for items that could
// not be admitted immediately, such as notifications waiting for a visible
// slot.
//
// Ordering is by priority, strictly FIFO within a priority tier. The queue
// is always bounded; the Policy chosen at construction decides what gives
// way when it fills up: the oldest entry, the newest, the lowest-priority
// entry, or the incoming item itself (Reject). Discarded items are reported
// through an optional drop callback so callers can log or account for them.
//
// Linear scans keep the implementation simple; queue depths here are tiny
// (tens of entries) so asymptotics do not matter.
package overflow
