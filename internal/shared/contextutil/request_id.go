package contextutil

import "context"

// Unexported key type so this package cannot collide with other context users.
type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID injects a request id into the context. Also used by unit
// tests that need a traceable context without going through the middleware.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

// GetRequestID returns the request id, or "" when none was propagated.
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}
