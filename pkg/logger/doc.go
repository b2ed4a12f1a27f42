// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// The factory New creates a *slog.Logger configured by Option functions:
// output format (text or json), minimum level, static attributes applied to
// every record, and ContextExtractor callbacks that pull request-scoped
// values (scope, request id) out of the context on every Handle call.
//
// Helper constructors in attr.go (Error, NotificationID, Scope, ...) keep
// attribute naming consistent across the toolkit.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithDevelopment("agent-hub"),
//	    logger.WithContextValue("request_id", ctxKeyRequestID),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "notification shown",
//	    logger.NotificationID(id),
//	    logger.Scope("user-42"),
//	)
package logger
