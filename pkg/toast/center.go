package toast

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agenthub/notifykit/pkg/batch"
	"github.com/agenthub/notifykit/pkg/feed"
	"github.com/agenthub/notifykit/pkg/lifecycle"
	"github.com/agenthub/notifykit/pkg/logger"
	"github.com/agenthub/notifykit/pkg/overflow"
	"github.com/agenthub/notifykit/pkg/timer"
)

// Recorder persists shown notifications for later retrieval, e.g. a
// notification drawer backed by the history package. Recording is best
// effort: failures are logged, never surfaced to Show callers.
type Recorder interface {
	Record(ctx context.Context, n Notification) error
}

// Option configures a Center.
type Option func(*Center)

// WithLogger sets the logger for the Center.
func WithLogger(log *slog.Logger) Option {
	return func(c *Center) {
		if log != nil {
			c.log = log
		}
	}
}

// WithNow sets the time source used for CreatedAt stamps.
func WithNow(now func() time.Time) Option {
	return func(c *Center) {
		if now != nil {
			c.now = now
		}
	}
}

// WithRecorder attaches a history recorder.
func WithRecorder(rec Recorder) Option {
	return func(c *Center) {
		c.recorder = rec
	}
}

// entry pairs a visible notification with its lifecycle machine.
type entry struct {
	n   Notification
	fsm *lifecycle.Machine
}

// Center is the notification controller and store. It owns admission,
// group deduplication, dismiss timers, the overflow queue, and the snapshot
// feed. All methods are safe for concurrent use; every operation returns
// synchronously, deferred work runs on timer callbacks.
type Center struct {
	cfg      Config
	log      *slog.Logger
	now      func() time.Time
	recorder Recorder

	queue     *overflow.Queue[Notification]
	timers    *timer.Table
	committer *batch.Committer[[]Notification]
	feed      *feed.Feed[[]Notification]
	waiters   *waiterSet

	visible []*entry
	shown   uint64
	closed  bool
	mu      sync.Mutex
}

// New creates a notification center with the given configuration.
func New(cfg Config, opts ...Option) (*Center, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Center{
		cfg:     cfg,
		log:     slog.Default(),
		now:     time.Now,
		timers:  timer.NewTable(),
		feed:    feed.New[[]Notification](cfg.FeedBuffer),
		waiters: newWaiterSet(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.queue = overflow.New(cfg.QueueCapacity, cfg.QueuePolicy,
		overflow.WithOnDrop(func(n Notification) {
			// Runs under the queue's lock from Push; only touch structures
			// with their own locking.
			c.waiters.notify(n.ID)
			c.log.LogAttrs(context.Background(), slog.LevelWarn, "Overflow queue dropped a notification",
				logger.NotificationID(n.ID),
				slog.String("type", string(n.Type)),
				slog.String("policy", string(cfg.QueuePolicy)),
			)
		}))

	// The last snapshot of a window is the state worth publishing.
	c.committer = batch.New(cfg.CommitWindow, func(snapshots [][]Notification) {
		c.feed.Publish(snapshots[len(snapshots)-1])
	})

	return c, nil
}

// Show admits a notification or queues it when every visible slot is taken.
// It returns a stable id either way. Priority and announcement mode default
// from the type unless the caller supplies an explicit priority. When the
// notification shares a GroupID with a visible one, the older notification
// is replaced immediately, skipping its exit animation.
func (c *Center) Show(opts Options) (string, error) {
	if strings.TrimSpace(opts.Message) == "" {
		return "", ErrEmptyMessage
	}
	if !opts.Type.Valid() {
		return "", ErrInvalidType
	}

	priority, aria := opts.Type.defaults()
	if opts.Priority != nil {
		priority = *opts.Priority
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return "", ErrCenterClosed
	}

	n := Notification{
		ID:             uuid.New().String(),
		Message:        opts.Message,
		Type:           opts.Type,
		Priority:       priority,
		AriaLive:       aria,
		Duration:       opts.Duration,
		Persistent:     opts.Persistent,
		GroupID:        opts.GroupID,
		Actions:        opts.Actions,
		AnimationState: lifecycle.StateEntering,
		CreatedAt:      c.now(),
	}

	// Dedup by replacement: the visible holder of the group gives up its
	// slot synchronously so the newcomer can take it in the same call.
	if n.GroupID != "" {
		if old := c.findGroupLocked(n.GroupID); old != nil {
			c.evictLocked(old)
			c.log.LogAttrs(context.Background(), slog.LevelDebug, "Replaced grouped notification",
				logger.GroupID(n.GroupID),
				logger.NotificationID(old.n.ID),
			)
		}
	}

	if len(c.visible) < c.cfg.MaxVisible {
		c.admitLocked(n)
	} else {
		if err := c.queue.Push(n, int(n.Priority)); err != nil {
			c.mu.Unlock()
			return "", err
		}
		c.log.LogAttrs(context.Background(), slog.LevelDebug, "Notification queued",
			logger.NotificationID(n.ID),
			logger.QueueDepth(c.queue.Len()),
		)
	}
	c.mu.Unlock()

	c.record(n)
	return n.ID, nil
}

// Dismiss starts the exit transition for a visible notification, or drops a
// still-queued one. Unknown ids are ignored.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	if e := c.findLocked(id); e != nil {
		c.dismissLocked(e)
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	if c.queue.Remove(func(n Notification) bool { return n.ID == id }) > 0 {
		c.waiters.notify(id)
	}
}

// DismissWait dismisses a notification and blocks until it has left the
// store (after the exit animation) or the context is done. Returns
// immediately for ids that are already gone.
func (c *Center) DismissWait(ctx context.Context, id string) error {
	// Register before the existence check: an entry leaving the store
	// between check and register would otherwise never wake the waiter.
	done := c.waiters.register(id)

	c.mu.Lock()
	visible := c.findLocked(id) != nil
	c.mu.Unlock()

	if !visible {
		if _, queued := c.queue.Find(func(n Notification) bool { return n.ID == id }); !queued {
			c.waiters.unregister(id, done)
			return nil
		}
	}

	c.Dismiss(id)

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		c.waiters.unregister(id, done)
		return ctx.Err()
	}
}

// DismissAll cancels every pending timer, drops the overflow queue, and
// transitions all visible notifications to exiting; the store empties once
// the exit animation window elapses.
func (c *Center) DismissAll() {
	dropped := c.queue.Drain()
	for _, n := range dropped {
		c.waiters.notify(n.ID)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	for _, e := range c.visible {
		c.dismissLocked(e)
	}
	c.mu.Unlock()
}

// Invoke runs the OnSelect callback of the named action. Invoking an action
// never dismisses the notification.
func (c *Center) Invoke(id, label string) error {
	c.mu.Lock()
	e := c.findLocked(id)
	if e == nil {
		c.mu.Unlock()
		return ErrUnknownNotification
	}

	var onSelect func(string)
	for _, a := range e.n.Actions {
		if a.Label == label {
			onSelect = a.OnSelect
			break
		}
	}
	c.mu.Unlock()

	if onSelect == nil {
		return ErrUnknownAction
	}
	onSelect(id)
	return nil
}

// Visible returns a copy of the currently visible notifications in
// admission order.
func (c *Center) Visible() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notification, len(c.visible))
	for i, e := range c.visible {
		out[i] = e.n
	}
	return out
}

// Queued returns the overflow queue depth.
func (c *Center) Queued() int {
	return c.queue.Len()
}

// ShownTotal returns how many notifications have occupied a visible slot
// over the center's lifetime, promotions included.
func (c *Center) ShownTotal() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shown
}

// Subscribe attaches a read-only snapshot subscriber. A snapshot of the
// visible list is delivered after each commit window with changes.
func (c *Center) Subscribe(ctx context.Context) feed.Subscriber[[]Notification] {
	return c.feed.Subscribe(ctx)
}

// Close tears the center down: every timer is cancelled, visible and queued
// notifications are discarded without exit animations, and the feed closes.
// Idempotent.
func (c *Center) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true

	c.timers.CancelAll()
	for _, n := range c.queue.Drain() {
		c.waiters.notify(n.ID)
	}
	for _, e := range c.visible {
		c.waiters.notify(e.n.ID)
	}
	c.visible = nil
	c.committer.Add(nil)
	c.mu.Unlock()

	c.committer.Close()
	return c.feed.Close()
}

// findLocked returns the visible entry for id. Must hold c.mu.
func (c *Center) findLocked(id string) *entry {
	for _, e := range c.visible {
		if e.n.ID == id {
			return e
		}
	}
	return nil
}

// findGroupLocked returns the visible entry holding the group, skipping
// entries already on their way out. Must hold c.mu.
func (c *Center) findGroupLocked(groupID string) *entry {
	for _, e := range c.visible {
		if e.n.GroupID == groupID && e.fsm.CanDismiss() {
			return e
		}
	}
	return nil
}

// admitLocked places a notification into a visible slot, arms its timers,
// and schedules a snapshot. Must hold c.mu with a free slot available.
func (c *Center) admitLocked(n Notification) {
	e := &entry{n: n, fsm: lifecycle.New()}
	c.visible = append(c.visible, e)
	c.shown++

	id := n.ID
	c.timers.Arm("enter:"+id, c.cfg.EnterDelay, func() { c.settle(id) })
	if !n.Persistent && n.Duration > 0 {
		c.timers.Arm("dismiss:"+id, n.Duration, func() { c.Dismiss(id) })
	}

	c.publishLocked()
}

// dismissLocked starts the exit transition for a visible entry. Must hold
// c.mu. Entries already exiting are left alone.
func (c *Center) dismissLocked(e *entry) {
	if err := e.fsm.Dismiss(); err != nil {
		return
	}

	id := e.n.ID
	c.timers.Cancel("dismiss:" + id)
	c.timers.Cancel("enter:" + id)
	e.n.AnimationState = lifecycle.StateExiting
	c.timers.Arm("exit:"+id, c.cfg.ExitDuration, func() { c.finish(id) })

	c.publishLocked()
}

// evictLocked removes a visible entry immediately, without the exit
// animation, releasing its timers. Used for group replacement where the
// newcomer takes over the slot in the same call. Must hold c.mu.
func (c *Center) evictLocked(e *entry) {
	id := e.n.ID
	c.timers.Cancel("dismiss:" + id)
	c.timers.Cancel("enter:" + id)
	c.timers.Cancel("exit:" + id)

	// Drive the machine to its terminal state so transition observers see a
	// complete lifecycle even for replaced notifications.
	_ = e.fsm.Dismiss()
	_ = e.fsm.Finish()

	c.removeLocked(id)
	c.waiters.notify(id)
}

// removeLocked deletes a visible entry by id. Must hold c.mu.
func (c *Center) removeLocked(id string) {
	for i, e := range c.visible {
		if e.n.ID == id {
			c.visible = append(c.visible[:i], c.visible[i+1:]...)
			return
		}
	}
}

// settle commits the entrance transition after the enter delay.
func (c *Center) settle(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	e := c.findLocked(id)
	if e == nil {
		return
	}
	if err := e.fsm.Settle(); err != nil {
		// Already dismissed during the entrance; the exit path owns it now.
		return
	}
	e.n.AnimationState = lifecycle.StateEntered
	c.publishLocked()
}

// finish completes an exit: the entry leaves the store and the next queued
// notification, if any, is promoted into the freed slot.
func (c *Center) finish(id string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	e := c.findLocked(id)
	if e == nil {
		c.mu.Unlock()
		return
	}

	_ = e.fsm.Finish()
	c.removeLocked(id)
	c.waiters.notify(id)

	if next, ok := c.queue.Pop(); ok {
		c.admitLocked(next)
		c.log.LogAttrs(context.Background(), slog.LevelDebug, "Promoted queued notification",
			logger.NotificationID(next.ID),
			logger.QueueDepth(c.queue.Len()),
		)
	} else {
		c.publishLocked()
	}
	c.mu.Unlock()
}

// publishLocked schedules a snapshot of the visible list for the next
// commit window. Must hold c.mu.
func (c *Center) publishLocked() {
	snapshot := make([]Notification, len(c.visible))
	for i, e := range c.visible {
		snapshot[i] = e.n
	}
	c.committer.Add(snapshot)
}

// record persists a shown notification, best effort.
func (c *Center) record(n Notification) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.Record(context.Background(), n); err != nil {
		c.log.LogAttrs(context.Background(), slog.LevelWarn, "Failed to record notification, it was still shown",
			logger.NotificationID(n.ID),
			logger.Error(err),
		)
	}
}

// waiterSet tracks channels waiting for specific notifications to leave the
// store. It has its own lock so queue callbacks can notify without touching
// the center's mutex.
type waiterSet struct {
	m  map[string][]chan struct{}
	mu sync.Mutex
}

func newWaiterSet() *waiterSet {
	return &waiterSet{m: make(map[string][]chan struct{})}
}

func (w *waiterSet) register(id string) <-chan struct{} {
	ch := make(chan struct{})
	w.mu.Lock()
	w.m[id] = append(w.m[id], ch)
	w.mu.Unlock()
	return ch
}

// unregister drops a single waiter without closing its channel. No-op if
// the waiter was already notified.
func (w *waiterSet) unregister(id string, ch <-chan struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()

	chans := w.m[id]
	for i, c := range chans {
		if c == ch {
			w.m[id] = append(chans[:i], chans[i+1:]...)
			break
		}
	}
	if len(w.m[id]) == 0 {
		delete(w.m, id)
	}
}

func (w *waiterSet) notify(id string) {
	w.mu.Lock()
	chans := w.m[id]
	delete(w.m, id)
	w.mu.Unlock()

	for _, ch := range chans {
		close(ch)
	}
}
