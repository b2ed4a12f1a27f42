// Package config loads configuration structs from environment variables
// using caarlos0/env struct tags, with optional .env file support via
// godotenv.
//
// Each configuration type is parsed exactly once for the lifetime of the
// process; repeated Load calls for the same type return a cached copy, so
// packages can load their own configuration independently without
// coordinating initialization order.
//
//	type ToastConfig struct {
//		MaxVisible   int           `env:"NOTIFY_MAX_VISIBLE" envDefault:"5"`
//		ExitDuration time.Duration `env:"NOTIFY_EXIT_DURATION" envDefault:"300ms"`
//	}
//
//	var cfg ToastConfig
//	config.MustLoad(&cfg)
package config
