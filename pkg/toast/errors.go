package toast

import "errors"

var (
	// ErrEmptyMessage is returned by Show when the message is empty or
	// whitespace only.
	ErrEmptyMessage = errors.New("toast: notification message is required")

	// ErrInvalidType is returned by Show for a type outside the defined set.
	ErrInvalidType = errors.New("toast: invalid notification type")

	// ErrInvalidConfig wraps configuration validation failures.
	ErrInvalidConfig = errors.New("toast: invalid configuration")

	// ErrCenterClosed is returned by operations on a closed center.
	ErrCenterClosed = errors.New("toast: center is closed")

	// ErrUnknownNotification is returned by Invoke for an id that is not
	// currently visible.
	ErrUnknownNotification = errors.New("toast: unknown notification")

	// ErrUnknownAction is returned by Invoke for an action label the
	// notification does not carry.
	ErrUnknownAction = errors.New("toast: unknown action")

	// ErrUnknownPreset is returned when building options from a preset name
	// that was never defined.
	ErrUnknownPreset = errors.New("toast: unknown preset")
)
