package history_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthub/notifykit/pkg/history"
	"github.com/agenthub/notifykit/pkg/toast"
)

func TestNewRecorder_Validation(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { history.NewRecorder(nil, "user:1") })
	assert.Panics(t, func() { history.NewRecorder(history.NewMemoryStorage(), "") })
}

func TestRecorder_Record(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := history.NewMemoryStorage()
	recorder := history.NewRecorder(storage, "user:1")

	n := toast.Notification{
		ID:        uuid.NewString(),
		Message:   "export finished",
		Type:      toast.TypeSuccess,
		Priority:  toast.PriorityDefault,
		CreatedAt: time.Now(),
	}
	require.NoError(t, recorder.Record(ctx, n))

	got, err := storage.Get(ctx, "user:1", n.ID)
	require.NoError(t, err)
	assert.Equal(t, n.Message, got.Message)
	assert.Equal(t, n.Type, got.Type)
	assert.Nil(t, got.ExpiresAt)
}

func TestRecorder_RecordWithTTL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := history.NewMemoryStorage()
	recorder := history.NewRecorder(storage, "user:1", history.WithTTL(time.Hour))

	n := toast.Notification{
		ID:        uuid.NewString(),
		Message:   "session expiring",
		Type:      toast.TypeWarning,
		CreatedAt: time.Now(),
	}
	require.NoError(t, recorder.Record(ctx, n))

	got, err := storage.Get(ctx, "user:1", n.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ExpiresAt)
	assert.WithinDuration(t, n.CreatedAt.Add(time.Hour), *got.ExpiresAt, time.Second)
}

func TestRecorder_SatisfiesCenterContract(t *testing.T) {
	t.Parallel()

	var _ toast.Recorder = history.NewRecorder(history.NewMemoryStorage(), "user:1")
}
