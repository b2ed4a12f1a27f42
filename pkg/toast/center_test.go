package toast_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/agenthub/notifykit/pkg/lifecycle"
	"github.com/agenthub/notifykit/pkg/overflow"
	"github.com/agenthub/notifykit/pkg/toast"
)

// testConfig returns a configuration with short windows so lifecycle tests
// complete quickly.
func testConfig() toast.Config {
	cfg := toast.DefaultConfig()
	cfg.CommitWindow = 10 * time.Millisecond
	cfg.EnterDelay = 5 * time.Millisecond
	cfg.ExitDuration = 30 * time.Millisecond
	return cfg
}

func newCenter(t *testing.T, cfg toast.Config, opts ...toast.Option) *toast.Center {
	t.Helper()
	c, err := toast.New(cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func info(message string) toast.Options {
	return toast.Options{Message: message, Type: toast.TypeInfo}
}

func TestShow_UniqueIDs(t *testing.T) {
	t.Parallel()

	c := newCenter(t, testConfig())

	seen := make(map[string]struct{})
	for _i := 0; _i < 100; _i++ {
		id, err := c.Show(info("unique"))
		require.NoError(t, err)
		_, dup := seen[id]
		require.False(t, dup, "id %s issued twice", id)
		seen[id] = struct{}{}
	}
}

func TestShow_Validation(t *testing.T) {
	t.Parallel()

	c := newCenter(t, testConfig())

	_, err := c.Show(toast.Options{Message: "  ", Type: toast.TypeInfo})
	assert.ErrorIs(t, err, toast.ErrEmptyMessage)

	_, err = c.Show(toast.Options{Message: "hi", Type: toast.Type("fatal")})
	assert.ErrorIs(t, err, toast.ErrInvalidType)
}

func TestShow_TypeDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		typ          toast.Type
		wantPriority toast.Priority
		wantAria     toast.AriaLive
	}{
		{"error is high and assertive", toast.TypeError, toast.PriorityHigh, toast.AriaAssertive},
		{"warning is high but polite", toast.TypeWarning, toast.PriorityHigh, toast.AriaPolite},
		{"success is default and polite", toast.TypeSuccess, toast.PriorityDefault, toast.AriaPolite},
		{"info is default and polite", toast.TypeInfo, toast.PriorityDefault, toast.AriaPolite},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newCenter(t, testConfig())
			id, err := c.Show(toast.Options{Message: "m", Type: tt.typ})
			require.NoError(t, err)

			visible := c.Visible()
			require.Len(t, visible, 1)
			assert.Equal(t, id, visible[0].ID)
			assert.Equal(t, tt.wantPriority, visible[0].Priority)
			assert.Equal(t, tt.wantAria, visible[0].AriaLive)
		})
	}
}

func TestShow_ExplicitPriorityOverridesDefault(t *testing.T) {
	t.Parallel()

	c := newCenter(t, testConfig())

	p := toast.PriorityDefault
	_, err := c.Show(toast.Options{Message: "m", Type: toast.TypeError, Priority: &p})
	require.NoError(t, err)

	visible := c.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, toast.PriorityDefault, visible[0].Priority)
	// Announcement mode still follows the type.
	assert.Equal(t, toast.AriaAssertive, visible[0].AriaLive)
}

func TestShow_CapsVisibleAndQueuesRest(t *testing.T) {
	t.Parallel()

	c := newCenter(t, testConfig())

	for i := 0; i < 7; i++ {
		_, err := c.Show(toast.Options{Message: string(rune('a' + i)), Type: toast.TypeInfo})
		require.NoError(t, err)
	}

	assert.Len(t, c.Visible(), 5)
	assert.Equal(t, 2, c.Queued())
}

func TestShow_QueueOverflowScenario(t *testing.T) {
	t.Parallel()

	c := newCenter(t, testConfig())

	// 6 INFO notifications with auto-dismiss in immediate succession. The
	// first expires well before the rest so exactly one slot frees up.
	for i := 0; i < 6; i++ {
		duration := 10 * time.Second
		if i == 0 {
			duration = 50 * time.Millisecond
		}
		_, err := c.Show(toast.Options{Message: "m", Type: toast.TypeInfo, Duration: duration})
		require.NoError(t, err)
	}

	require.Len(t, c.Visible(), 5)
	require.Equal(t, 1, c.Queued())
	assert.Equal(t, uint64(5), c.ShownTotal())

	// After the first dismiss timer fires and the exit animation completes,
	// the queued notification is promoted: still 5 visible, 6 ever shown.
	require.Eventually(t, func() bool {
		return c.ShownTotal() == 6 && c.Queued() == 0
	}, time.Second, 5*time.Millisecond)
	assert.Len(t, c.Visible(), 5)
}

func TestShow_PersistentNeverAutoDismissed(t *testing.T) {
	t.Parallel()

	c := newCenter(t, testConfig())

	id, err := c.Show(toast.Options{
		Message:    "stay",
		Type:       toast.TypeWarning,
		Duration:   10 * time.Millisecond,
		Persistent: true,
	})
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)

	visible := c.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, id, visible[0].ID)
}

func TestShow_GroupReplacement(t *testing.T) {
	t.Parallel()

	c := newCenter(t, testConfig())

	first, err := c.Show(toast.Options{Message: "40%", Type: toast.TypeInfo, GroupID: "deploy"})
	require.NoError(t, err)

	second, err := c.Show(toast.Options{Message: "80%", Type: toast.TypeInfo, GroupID: "deploy"})
	require.NoError(t, err)

	visible := c.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, second, visible[0].ID)
	assert.Equal(t, "80%", visible[0].Message)
	assert.NotEqual(t, first, second)
}

func TestShow_GroupReplacementAtCapacity(t *testing.T) {
	t.Parallel()

	c := newCenter(t, testConfig())

	// Fill every slot; the first one holds the group.
	_, err := c.Show(toast.Options{Message: "grouped", Type: toast.TypeInfo, GroupID: "g"})
	require.NoError(t, err)
	for _i := 0; _i < 4; _i++ {
		_, err := c.Show(info("filler"))
		require.NoError(t, err)
	}
	require.Len(t, c.Visible(), 5)

	// The replacement takes the freed slot immediately instead of queuing.
	id, err := c.Show(toast.Options{Message: "grouped v2", Type: toast.TypeInfo, GroupID: "g"})
	require.NoError(t, err)

	visible := c.Visible()
	assert.Len(t, visible, 5)
	assert.Zero(t, c.Queued())
	assert.Equal(t, id, visible[len(visible)-1].ID)
}

func TestDismiss_UnknownIDIsNoOp(t *testing.T) {
	t.Parallel()

	c := newCenter(t, testConfig())
	assert.NotPanics(t, func() { c.Dismiss("nope") })
}

func TestDismiss_TransitionsThenRemoves(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.ExitDuration = 80 * time.Millisecond
	c := newCenter(t, cfg)

	id, err := c.Show(info("bye"))
	require.NoError(t, err)

	c.Dismiss(id)

	// The exit transition is synchronous; removal waits for the exit window.
	visible := c.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, lifecycle.StateExiting, visible[0].AnimationState)

	require.Eventually(t, func() bool {
		return len(c.Visible()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestDismiss_QueuedNotification(t *testing.T) {
	t.Parallel()

	c := newCenter(t, testConfig())

	for _i := 0; _i < 5; _i++ {
		_, err := c.Show(info("filler"))
		require.NoError(t, err)
	}
	queued, err := c.Show(info("queued"))
	require.NoError(t, err)
	require.Equal(t, 1, c.Queued())

	c.Dismiss(queued)
	assert.Zero(t, c.Queued())
	assert.Len(t, c.Visible(), 5)
}

func TestDismiss_EntranceSettles(t *testing.T) {
	t.Parallel()

	c := newCenter(t, testConfig())

	_, err := c.Show(info("settling"))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		visible := c.Visible()
		return len(visible) == 1 && visible[0].AnimationState == lifecycle.StateEntered
	}, time.Second, 2*time.Millisecond)
}

func TestDismissWait(t *testing.T) {
	t.Parallel()

	t.Run("returns after removal", func(t *testing.T) {
		t.Parallel()

		c := newCenter(t, testConfig())
		id, err := c.Show(info("await"))
		require.NoError(t, err)

		require.NoError(t, c.DismissWait(context.Background(), id))
		assert.Empty(t, c.Visible())
	})

	t.Run("unknown id returns immediately", func(t *testing.T) {
		t.Parallel()

		c := newCenter(t, testConfig())
		assert.NoError(t, c.DismissWait(context.Background(), "gone"))
	})

	t.Run("races auto dismiss without hanging", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.EnterDelay = time.Millisecond
		cfg.ExitDuration = time.Millisecond
		c := newCenter(t, cfg)

		// The auto-dismiss exit may complete before, during, or after the
		// wait starts; every interleaving must resolve without a timeout.
		for _i := 0; _i < 50; _i++ {
			id, err := c.Show(toast.Options{Message: "m", Type: toast.TypeInfo, Duration: time.Millisecond})
			require.NoError(t, err)

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			assert.NoError(t, c.DismissWait(ctx, id))
			cancel()
		}
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.ExitDuration = time.Hour
		c := newCenter(t, cfg)

		id, err := c.Show(info("slow exit"))
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, c.DismissWait(ctx, id), context.DeadlineExceeded)
	})
}

func TestDismissAll(t *testing.T) {
	t.Parallel()

	c := newCenter(t, testConfig())

	for _i := 0; _i < 7; _i++ {
		_, err := c.Show(toast.Options{Message: "m", Type: toast.TypeInfo, Duration: time.Hour})
		require.NoError(t, err)
	}
	require.Len(t, c.Visible(), 5)
	require.Equal(t, 2, c.Queued())

	c.DismissAll()

	// The queue is dropped immediately, visible entries exit through the
	// animation window.
	assert.Zero(t, c.Queued())
	require.Eventually(t, func() bool {
		return len(c.Visible()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestPromotion_HigherPriorityFirst(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.MaxVisible = 1
	c := newCenter(t, cfg)

	blocker, err := c.Show(info("blocker"))
	require.NoError(t, err)

	_, err = c.Show(info("low"))
	require.NoError(t, err)
	high, err := c.Show(toast.Options{Message: "high", Type: toast.TypeError})
	require.NoError(t, err)
	require.Equal(t, 2, c.Queued())

	c.Dismiss(blocker)

	require.Eventually(t, func() bool {
		visible := c.Visible()
		return len(visible) == 1 && visible[0].ID == high
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, c.Queued())
}

func TestShow_RejectPolicy(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.MaxVisible = 1
	cfg.QueueCapacity = 1
	cfg.QueuePolicy = overflow.Reject
	c := newCenter(t, cfg)

	_, err := c.Show(info("visible"))
	require.NoError(t, err)
	_, err = c.Show(info("queued"))
	require.NoError(t, err)

	_, err = c.Show(info("rejected"))
	assert.ErrorIs(t, err, overflow.ErrQueueFull)
}

func TestInvoke(t *testing.T) {
	t.Parallel()

	c := newCenter(t, testConfig())

	var invokedWith string
	id, err := c.Show(toast.Options{
		Message: "retry?",
		Type:    toast.TypeError,
		Actions: []toast.Action{
			{Label: "Retry", Variant: "primary", OnSelect: func(id string) { invokedWith = id }},
		},
	})
	require.NoError(t, err)

	require.NoError(t, c.Invoke(id, "Retry"))
	assert.Equal(t, id, invokedWith)

	// Invoking an action never dismisses the notification.
	assert.Len(t, c.Visible(), 1)

	assert.ErrorIs(t, c.Invoke(id, "Cancel"), toast.ErrUnknownAction)
	assert.ErrorIs(t, c.Invoke("missing", "Retry"), toast.ErrUnknownNotification)
}

func TestSubscribe_ReceivesSnapshots(t *testing.T) {
	t.Parallel()

	c := newCenter(t, testConfig())

	sub := c.Subscribe(context.Background())
	defer sub.Close()

	id, err := c.Show(info("snapshot"))
	require.NoError(t, err)

	select {
	case snapshot := <-sub.Receive():
		require.Len(t, snapshot, 1)
		assert.Equal(t, id, snapshot[0].ID)
	case <-time.After(time.Second):
		t.Fatal("no snapshot within the commit window")
	}
}

func TestSubscribe_BurstCoalesces(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.CommitWindow = 50 * time.Millisecond
	c := newCenter(t, cfg)

	sub := c.Subscribe(context.Background())
	defer sub.Close()

	for _i := 0; _i < 5; _i++ {
		_, err := c.Show(info("burst"))
		require.NoError(t, err)
	}

	// One window, one snapshot, carrying the final state of the burst.
	snapshot := <-sub.Receive()
	assert.Len(t, snapshot, 5)
}

func TestClose(t *testing.T) {
	t.Parallel()

	c, err := toast.New(testConfig())
	require.NoError(t, err)

	_, err = c.Show(info("doomed"))
	require.NoError(t, err)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, err = c.Show(info("too late"))
	assert.ErrorIs(t, err, toast.ErrCenterClosed)
	assert.Empty(t, c.Visible())
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.MaxVisible = 0
	_, err := toast.New(cfg)
	assert.ErrorIs(t, err, toast.ErrInvalidConfig)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Record(ctx context.Context, n toast.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func TestShow_RecordsNotifications(t *testing.T) {
	t.Parallel()

	rec := &mockRecorder{}
	rec.On("Record", mock.Anything, mock.MatchedBy(func(n toast.Notification) bool {
		return n.Message == "recorded"
	})).Return(nil).Once()

	c := newCenter(t, testConfig(), toast.WithRecorder(rec))

	_, err := c.Show(info("recorded"))
	require.NoError(t, err)

	rec.AssertExpectations(t)
}

func TestShow_RecorderFailureDoesNotFailShow(t *testing.T) {
	t.Parallel()

	rec := &mockRecorder{}
	rec.On("Record", mock.Anything, mock.Anything).Return(assert.AnError)

	c := newCenter(t, testConfig(), toast.WithRecorder(rec))

	_, err := c.Show(info("best effort"))
	require.NoError(t, err)
	assert.Len(t, c.Visible(), 1)
}
