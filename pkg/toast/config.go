package toast

import (
	"fmt"
	"time"

	"github.com/agenthub/notifykit/pkg/overflow"
)

// Config holds the tunables of a notification center. All fields can be
// populated from the environment via the config package.
type Config struct {
	// MaxVisible caps the number of concurrently visible notifications.
	MaxVisible int `env:"NOTIFY_MAX_VISIBLE" envDefault:"5"`

	// QueueCapacity bounds the overflow queue holding notifications that
	// could not be admitted immediately.
	QueueCapacity int `env:"NOTIFY_QUEUE_CAPACITY" envDefault:"64"`

	// QueuePolicy decides what gives way when the overflow queue is full.
	QueuePolicy overflow.Policy `env:"NOTIFY_QUEUE_POLICY" envDefault:"drop-lowest"`

	// CommitWindow is the micro-batching window for feed publications.
	CommitWindow time.Duration `env:"NOTIFY_COMMIT_WINDOW" envDefault:"100ms"`

	// EnterDelay is how long after admission the entrance transition
	// settles (entering -> entered).
	EnterDelay time.Duration `env:"NOTIFY_ENTER_DELAY" envDefault:"50ms"`

	// ExitDuration is the fixed exit-animation length between a dismiss
	// request and store removal.
	ExitDuration time.Duration `env:"NOTIFY_EXIT_DURATION" envDefault:"300ms"`

	// FeedBuffer is the per-subscriber snapshot buffer size.
	FeedBuffer int `env:"NOTIFY_FEED_BUFFER" envDefault:"8"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		MaxVisible:    5,
		QueueCapacity: 64,
		QueuePolicy:   overflow.DropLowest,
		CommitWindow:  100 * time.Millisecond,
		EnterDelay:    50 * time.Millisecond,
		ExitDuration:  300 * time.Millisecond,
		FeedBuffer:    8,
	}
}

// Validate checks the configuration for values the center cannot run with.
func (c Config) Validate() error {
	if c.MaxVisible <= 0 {
		return fmt.Errorf("%w: MaxVisible must be positive, got %d", ErrInvalidConfig, c.MaxVisible)
	}
	if c.QueueCapacity <= 0 {
		return fmt.Errorf("%w: QueueCapacity must be positive, got %d", ErrInvalidConfig, c.QueueCapacity)
	}
	if !c.QueuePolicy.Valid() {
		return fmt.Errorf("%w: unknown queue policy %q", ErrInvalidConfig, c.QueuePolicy)
	}
	if c.CommitWindow <= 0 {
		return fmt.Errorf("%w: CommitWindow must be positive, got %s", ErrInvalidConfig, c.CommitWindow)
	}
	if c.EnterDelay < 0 {
		return fmt.Errorf("%w: EnterDelay cannot be negative, got %s", ErrInvalidConfig, c.EnterDelay)
	}
	if c.ExitDuration < 0 {
		return fmt.Errorf("%w: ExitDuration cannot be negative, got %s", ErrInvalidConfig, c.ExitDuration)
	}
	if c.FeedBuffer <= 0 {
		return fmt.Errorf("%w: FeedBuffer must be positive, got %d", ErrInvalidConfig, c.FeedBuffer)
	}
	return nil
}
