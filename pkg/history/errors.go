package history

import "errors"

var (
	// ErrRecordNotFound is returned when a record does not exist for the
	// given scope and id.
	ErrRecordNotFound = errors.New("history: record not found")

	// ErrMissingID is returned when a record is created without an id.
	ErrMissingID = errors.New("history: record id is required")

	// ErrMissingScope is returned when a record is created without a scope.
	ErrMissingScope = errors.New("history: record scope is required")
)
