// Package toast implements an in-process delivery center for ephemeral
// user-facing notifications: capacity-bounded admission, a priority
// overflow queue, dedup-by-replacement for grouped messages, auto-dismiss
// timers, and an animation lifecycle driving entrance and exit transitions.
//
// # Architecture
//
// The Center is both controller and store. Show resolves priority and
// announcement mode from the notification type, applies group dedup, and
// either admits the notification into one of MaxVisible slots or parks it
// on the overflow queue. Dismissal (manual, timer, or DismissAll) walks the
// lifecycle: the entry transitions to exiting, and only after the fixed
// exit duration does it leave the store, promoting the next queued
// notification into the freed slot.
//
// State reads are immediate and consistent (Visible returns copies), while
// the subscription feed is micro-batched: rapid bursts of mutations within
// a commit window produce a single snapshot publication.
//
// # Basic usage
//
//	center, err := toast.New(toast.DefaultConfig())
//	if err != nil {
//	    // invalid configuration
//	}
//	defer center.Close()
//
//	id, err := center.Show(toast.Options{
//	    Message:  "Agent deployed",
//	    Type:     toast.TypeSuccess,
//	    Duration: 5 * time.Second,
//	})
//
//	// A grouped notification replaces the visible holder of its group:
//	_, _ = center.Show(toast.Options{
//	    Message: "Deploying agent... 40%",
//	    Type:    toast.TypeInfo,
//	    GroupID: "deploy-progress",
//	})
//
//	center.Dismiss(id)
//
// # Subscriptions
//
// Transports subscribe for snapshots of the visible list:
//
//	sub := center.Subscribe(ctx)
//	for snapshot := range sub.Receive() {
//	    render(snapshot)
//	}
//
// # Failure semantics
//
// Every operation is a local, synchronous state mutation. Show validates
// its input (ErrEmptyMessage, ErrInvalidType) and surfaces ErrQueueFull
// only under the Reject overflow policy; Dismiss and DismissAll never fail
// and ignore unknown ids.
package toast
