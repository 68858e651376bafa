// Package logging defines the structured-logging interface used by the
// client core, with adapters for log/slog and go.uber.org/zap.
//
// A request id stored in the context with ContextWithRequestID is added to
// every entry logged with that context, so backend round trips and the
// actions they produce can be correlated.
package logging

import "context"

// Logger is a context-aware, structured logger. Args are key-value pairs:
//
//	log.Info(ctx, "command finished", "command", "fetch_colleges", "outcome", "ok")
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}

// RequestIDKey is the attribute name used for the correlation id.
const RequestIDKey = "request_id"

type requestIDKey struct{}

// ContextWithRequestID returns a copy of ctx carrying id.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the id stored by ContextWithRequestID, if any.
func RequestIDFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

// withContext prepends the context's request id to args.
func withContext(ctx context.Context, args []any) []any {
	id, ok := RequestIDFrom(ctx)
	if !ok {
		return args
	}
	return append([]any{RequestIDKey, id}, args...)
}
