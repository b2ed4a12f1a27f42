package history

import (
	"context"
	"time"

	"github.com/agenthub/notifykit/pkg/toast"
)

// Storage handles record persistence and retrieval. Records are keyed by
// scope (user, session, screen) and id.
type Storage interface {
	// Create stores a new record.
	Create(ctx context.Context, rec Record) error

	// Get retrieves a single record.
	Get(ctx context.Context, scope, id string) (*Record, error)

	// List returns records for a scope, newest first.
	List(ctx context.Context, scope string, opts ListOptions) ([]Record, error)

	// MarkRead marks record(s) as read.
	MarkRead(ctx context.Context, scope string, ids ...string) error

	// Delete removes record(s).
	Delete(ctx context.Context, scope string, ids ...string) error

	// CountUnread returns the unread count for a scope.
	CountUnread(ctx context.Context, scope string) (int, error)
}

// ListOptions provides filtering and pagination for listing records.
type ListOptions struct {
	Limit      int          // Maximum number of records to return (0 = no limit)
	Offset     int          // Number of records to skip for pagination
	OnlyUnread bool         // When true, only return unread records
	Types      []toast.Type // If set, only return records of these types
	Since      *time.Time   // If set, only return records created after this time
}
