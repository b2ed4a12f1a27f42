package history

import (
	"context"
	"time"

	"github.com/agenthub/notifykit/pkg/toast"
)

// Recorder persists every notification a center shows into a Storage,
// under a fixed scope. It satisfies the toast.Recorder contract, so it can
// be attached with toast.WithRecorder.
type Recorder struct {
	storage Storage
	scope   string
	ttl     time.Duration
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithTTL sets an expiry on recorded entries. Zero (the default) keeps
// records until explicitly deleted.
func WithTTL(ttl time.Duration) RecorderOption {
	return func(r *Recorder) {
		r.ttl = ttl
	}
}

// NewRecorder creates a Recorder writing to storage under the given scope.
// Panics if storage is nil or scope is empty, both are programming errors.
func NewRecorder(storage Storage, scope string, opts ...RecorderOption) *Recorder {
	if storage == nil {
		panic("history: storage is required")
	}
	if scope == "" {
		panic("history: scope is required")
	}

	r := &Recorder{storage: storage, scope: scope}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record stores a durable trace of the notification.
func (r *Recorder) Record(ctx context.Context, n toast.Notification) error {
	rec := Record{
		ID:        n.ID,
		Scope:     r.scope,
		Type:      n.Type,
		Priority:  n.Priority,
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
	}
	if r.ttl > 0 {
		expires := rec.CreatedAt.Add(r.ttl)
		rec.ExpiresAt = &expires
	}
	return r.storage.Create(ctx, rec)
}
