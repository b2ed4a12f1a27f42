package config

import "errors"

var (
	// ErrNilPointer is returned when a nil pointer is passed to Load.
	ErrNilPointer = errors.New("config: nil pointer passed to Load")

	// ErrParsingConfig is returned when environment parsing fails.
	ErrParsingConfig = errors.New("config: failed to parse configuration")

	// ErrConfigNotLoaded is returned when a cached configuration is expected
	// but was never stored, which happens if a concurrent Load failed.
	ErrConfigNotLoaded = errors.New("config: configuration not loaded")
)
