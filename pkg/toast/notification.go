package toast

import (
	"time"

	"github.com/agenthub/notifykit/pkg/lifecycle"
)

// Type represents the notification type/severity.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

// Valid reports whether the type is one of the defined constants.
func (t Type) Valid() bool {
	switch t {
	case TypeSuccess, TypeError, TypeWarning, TypeInfo:
		return true
	}
	return false
}

// Priority orders notifications competing for a visible slot. Callers may
// pass any value; higher wins when the overflow queue promotes.
type Priority int

const (
	PriorityDefault Priority = 0
	PriorityHigh    Priority = 10
)

// AriaLive is the screen-reader announcement mode attached to a
// notification for the rendering layer.
type AriaLive string

const (
	AriaPolite    AriaLive = "polite"
	AriaAssertive AriaLive = "assertive"
)

// defaults returns the priority and announcement mode implied by a type.
// Errors interrupt the user, warnings outrank but stay polite, the rest are
// ordinary.
func (t Type) defaults() (Priority, AriaLive) {
	switch t {
	case TypeError:
		return PriorityHigh, AriaAssertive
	case TypeWarning:
		return PriorityHigh, AriaPolite
	default:
		return PriorityDefault, AriaPolite
	}
}

// Action is a call-to-action button rendered with a notification.
// Invoking an action never dismisses the notification.
type Action struct {
	Label    string `json:"label"`
	Variant  string `json:"variant"` // primary, secondary, danger
	OnSelect func(notificationID string) `json:"-"`
}

// Notification is an ephemeral user-facing message owned by a Center.
// External callers receive copies; only the center mutates live entries.
type Notification struct {
	ID             string          `json:"id"`
	Message        string          `json:"message"`
	Type           Type            `json:"type"`
	Priority       Priority        `json:"priority"`
	AriaLive       AriaLive        `json:"aria_live"`
	Duration       time.Duration   `json:"duration"`
	Persistent     bool            `json:"persistent"`
	GroupID        string          `json:"group_id,omitempty"`
	Actions        []Action        `json:"actions,omitempty"`
	AnimationState lifecycle.State `json:"animation_state"`
	CreatedAt      time.Time       `json:"created_at"`
}
