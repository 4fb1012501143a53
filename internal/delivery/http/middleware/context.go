package middleware

import "context"

type contextKey string

const (
	usernameKey  contextKey = "username"
	requestIDKey contextKey = "requestID"
)

// SetUsername returns a context with the authenticated username set.
// Used by the identity middleware.
func SetUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// UsernameFromContext returns the authenticated username from the context,
// if present. Absence means the request is anonymous.
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	return username, ok
}

// SetRequestID returns a context with the request ID set.
func SetRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID from the context, if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}
