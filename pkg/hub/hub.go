package hub

import (
	"context"
	"log/slog"
	"sync"

	"github.com/agenthub/notifykit/pkg/async"
	"github.com/agenthub/notifykit/pkg/cache"
	"github.com/agenthub/notifykit/pkg/feed"
	"github.com/agenthub/notifykit/pkg/toast"
)

const defaultMaxScopes = 1024

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the logger passed to every center the hub creates.
func WithLogger(log *slog.Logger) Option {
	return func(h *Hub) {
		h.log = log
	}
}

// WithMaxScopes caps how many per-scope centers the hub keeps alive.
// The least recently used center is closed when the cap is exceeded.
func WithMaxScopes(n int) Option {
	return func(h *Hub) {
		h.maxScopes = n
	}
}

// WithCenterOptions supplies extra per-scope options for the centers the
// hub creates, e.g. a scoped history recorder.
func WithCenterOptions(fn func(scope string) []toast.Option) Option {
	return func(h *Hub) {
		h.centerOpts = fn
	}
}

// Hub keeps one notification center per scope (user, session, screen).
// Centers are created lazily and held in an LRU cache; when a scope falls
// out of the cache its center is closed and queued notifications are
// dropped.
type Hub struct {
	cfg        toast.Config
	log        *slog.Logger
	centerOpts func(scope string) []toast.Option
	maxScopes  int

	centers *cache.LRU[string, *toast.Center]
	closed  bool
	mu      sync.Mutex
}

// New creates a Hub. Every center it spawns uses cfg.
func New(cfg toast.Config, opts ...Option) (*Hub, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	h := &Hub{
		cfg:       cfg,
		log:       slog.Default(),
		maxScopes: defaultMaxScopes,
	}
	for _, opt := range opts {
		opt(h)
	}

	h.centers = cache.New(h.maxScopes, cache.WithOnEvict(func(scope string, c *toast.Center) {
		if err := c.Close(); err != nil {
			h.log.LogAttrs(context.Background(), slog.LevelWarn,
				"failed to close evicted center",
				slog.String("scope", scope),
				slog.Any("error", err))
		}
	}))

	return h, nil
}

// Center returns the center for a scope, creating it on first use.
// Returns toast.ErrCenterClosed after the hub is closed.
func (h *Hub) Center(scope string) (*toast.Center, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, toast.ErrCenterClosed
	}

	if c, ok := h.centers.Get(scope); ok {
		return c, nil
	}

	opts := []toast.Option{toast.WithLogger(h.log.With(slog.String("scope", scope)))}
	if h.centerOpts != nil {
		opts = append(opts, h.centerOpts(scope)...)
	}

	c, err := toast.New(h.cfg, opts...)
	if err != nil {
		return nil, err
	}

	h.centers.Put(scope, c)
	return c, nil
}

// Show displays a notification in the scope's center.
func (h *Hub) Show(scope string, opts toast.Options) (string, error) {
	c, err := h.Center(scope)
	if err != nil {
		return "", err
	}
	return c.Show(opts)
}

// Dismiss dismisses a notification in the scope's center. Unknown scopes
// are a no-op.
func (h *Hub) Dismiss(scope, id string) {
	if c, ok := h.peek(scope); ok {
		c.Dismiss(id)
	}
}

// DismissAll dismisses every notification in the scope's center. Unknown
// scopes are a no-op.
func (h *Hub) DismissAll(scope string) {
	if c, ok := h.peek(scope); ok {
		c.DismissAll()
	}
}

// Subscribe attaches a read-only subscriber to the scope's center feed.
func (h *Hub) Subscribe(ctx context.Context, scope string) (feed.Subscriber[[]toast.Notification], error) {
	c, err := h.Center(scope)
	if err != nil {
		return nil, err
	}
	return c.Subscribe(ctx), nil
}

// Scopes returns the number of live centers.
func (h *Hub) Scopes() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.centers.Len()
}

// Close shuts down every center concurrently and marks the hub closed.
// Safe to call more than once.
func (h *Hub) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true

	// Drain without the eviction callback so closes run concurrently
	// below instead of serially under the cache lock.
	var centers []*toast.Center
	for _, scope := range h.centers.Keys() {
		if c, ok := h.centers.Remove(scope); ok {
			centers = append(centers, c)
		}
	}
	h.mu.Unlock()

	futures := make([]*async.Future[struct{}], len(centers))
	for i, c := range centers {
		futures[i] = async.Run(context.Background(), func(context.Context) (struct{}, error) {
			return struct{}{}, c.Close()
		})
	}
	_, err := async.WaitAll(futures...)
	return err
}

// peek fetches an existing center without creating one.
func (h *Hub) peek(scope string) (*toast.Center, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, false
	}
	return h.centers.Get(scope)
}
