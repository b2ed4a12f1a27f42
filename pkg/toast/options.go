package toast

import "time"

// Options is the caller-facing input to Show. Message and Type are
// required; everything else has a sensible zero value.
type Options struct {
	// Message is the display text. Required, non-empty.
	Message string

	// Type determines the default priority and announcement mode. Required.
	Type Type

	// Duration until auto-dismiss. Zero means no auto-dismiss.
	Duration time.Duration

	// Priority overrides the default derived from Type when non-nil.
	Priority *Priority

	// Persistent suppresses the auto-dismiss timer regardless of Duration.
	Persistent bool

	// GroupID dedups by replacement: a visible notification sharing the
	// group is dismissed immediately when this one is shown.
	GroupID string

	// Actions are rendered as buttons; invoking one never dismisses the
	// notification.
	Actions []Action
}
