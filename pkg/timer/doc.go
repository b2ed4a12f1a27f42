// Package timer provides a keyed table of one-shot timers with a single
// cancellation path per handle.
//
// The toast center keeps its auto-dismiss, entrance-settle, and exit timers
// here, keyed by notification id, so teardown can cancel everything in one
// call and no timer ever leaks past its notification.
package timer
