package middleware

import "context"

// Context keys for request-scoped values set by middleware.
type contextKeyRequestID struct{}
type contextKeyUserID struct{}
type contextKeySessionID struct{}

var (
	ContextKeyRequestID = contextKeyRequestID{}
	ContextKeyUserID    = contextKeyUserID{}
	ContextKeySessionID = contextKeySessionID{}
)

// GetRequestID retrieves the request correlation id from the context.
func GetRequestID(ctx context.Context) string {
	v, ok := ctx.Value(ContextKeyRequestID).(string)
	if !ok {
		return ""
	}
	return v
}

// GetUserID retrieves the authenticated user id from the context.
func GetUserID(ctx context.Context) string {
	v, ok := ctx.Value(ContextKeyUserID).(string)
	if !ok {
		return ""
	}
	return v
}

// GetSessionID retrieves the session id from the context.
func GetSessionID(ctx context.Context) string {
	v, ok := ctx.Value(ContextKeySessionID).(string)
	if !ok {
		return ""
	}
	return v
}
