package history

import (
	"time"

	"github.com/agenthub/notifykit/pkg/toast"
)

// Record is a durable trace of a shown notification, the backing data for a
// notification drawer. Unlike the ephemeral toast entry it survives
// dismissal and carries read state.
type Record struct {
	ID        string         `json:"id"`
	Scope     string         `json:"scope"`
	Type      toast.Type     `json:"type"`
	Priority  toast.Priority `json:"priority"`
	Message   string         `json:"message"`
	Read      bool           `json:"read"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`
}

// IsExpired returns true if the record has expired.
func (r *Record) IsExpired() bool {
	if r.ExpiresAt == nil {
		return false
	}
	return time.Now().After(*r.ExpiresAt)
}

// MarkAsRead marks the record as read with the current timestamp.
func (r *Record) MarkAsRead() {
	r.Read = true
	now := time.Now()
	r.ReadAt = &now
}
