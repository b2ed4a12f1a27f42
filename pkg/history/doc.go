// Package history provides durable storage for shown notifications, the
// backing data for a notification drawer or inbox. A Recorder bridges a
// toast.Center to a Storage so every admitted notification leaves a trace
// that survives dismissal.
//
// Two Storage implementations are included: MemoryStorage for tests and
// single-process deployments, and RedisStorage for multi-process setups.
//
// Usage:
//
//	storage := history.NewMemoryStorage()
//	recorder := history.NewRecorder(storage, "user:42", history.WithTTL(30*24*time.Hour))
//
//	center := toast.New(cfg, toast.WithRecorder(recorder))
//	center.Show(ctx, toast.Options{Message: "Saved", Type: toast.TypeSuccess})
//
//	unread, _ := storage.CountUnread(ctx, "user:42")
package history
