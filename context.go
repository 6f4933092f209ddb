package goCred

import "context"

type clientIDContextKey struct{}
type requestIDContextKey struct{}

// WithClientID attaches the caller identity to ctx. The Engine charges
// generation throttling to it and records it on audit events.
func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientIDContextKey{}, clientID)
}

// WithRequestID attaches a correlation id copied onto audit events and log records.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, requestID)
}

func clientIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(clientIDContextKey{}).(string)
	return id
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}
