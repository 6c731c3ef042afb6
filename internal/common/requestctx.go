package common

import "context"

type contextKey int

const correlationIDKey contextKey = iota

// WithCorrelationID stores the request correlation ID in ctx.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationIDFromContext returns the correlation ID of ctx, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// ForRequest returns l tagged with the correlation ID of ctx, when there is one.
func (l *Logger) ForRequest(ctx context.Context) *Logger {
	if id := CorrelationIDFromContext(ctx); id != "" {
		return l.WithCorrelationId(id)
	}
	return l
}
