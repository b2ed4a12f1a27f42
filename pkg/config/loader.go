package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// typeCache stores parsed configuration structs keyed by their type name so
// each configuration type is only parsed once per process.
type typeCache struct {
	mu     sync.RWMutex
	values map[string]any
	onces  map[string]*sync.Once
}

var (
	cache = &typeCache{
		values: make(map[string]any),
		onces:  make(map[string]*sync.Once),
	}

	dotenvOnce sync.Once
)

// Load populates the provided configuration struct from environment
// variables. A .env file is loaded once per process if present; missing
// files are not an error. Each unique configuration type is parsed exactly
// once, subsequent calls return the cached value.
//
// Example:
//
//	type ToastConfig struct {
//		MaxVisible int `env:"NOTIFY_MAX_VISIBLE" envDefault:"5"`
//	}
//
//	var cfg ToastConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	name := typeName[T]()

	cache.mu.RLock()
	if cached, ok := cache.values[name]; ok {
		*v = cached.(T)
		cache.mu.RUnlock()
		return nil
	}
	cache.mu.RUnlock()

	cache.mu.Lock()
	once, ok := cache.onces[name]
	if !ok {
		once = new(sync.Once)
		cache.onces[name] = once
	}
	cache.mu.Unlock()

	var parseErr error
	once.Do(func() {
		if err := env.Parse(v); err != nil {
			parseErr = errors.Join(ErrParsingConfig, err)
			return
		}

		cache.mu.Lock()
		// Store a copy so callers cannot mutate the cached value.
		cache.values[name] = *v
		cache.mu.Unlock()
	})
	if parseErr != nil {
		return parseErr
	}

	cache.mu.RLock()
	defer cache.mu.RUnlock()
	if cached, ok := cache.values[name]; ok {
		*v = cached.(T)
		return nil
	}

	// The sync.Once already ran in another goroutine and failed there.
	return ErrConfigNotLoaded
}

// MustLoad works like Load but panics if configuration loading fails.
// Use for configurations required for the application to start.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// typeName returns a string identifier for the generic type T.
func typeName[T any]() string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		// Interface types have no concrete reflect.Type for the zero value.
		return fmt.Sprintf("%T", *new(T))
	}
	return t.String()
}
