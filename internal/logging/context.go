package logging

import (
	"context"
)

type contextKey struct{}

var logDataKey = contextKey{}

// WithLogData attaches a LogData to the context for the request's
// lifetime.
func WithLogData(ctx context.Context, logData *LogData) context.Context {
	return context.WithValue(ctx, logDataKey, logData)
}

// ContextKey returns the key LogData is stored under, for frameworks
// that set context values through their own API.
func ContextKey() any {
	return logDataKey
}

// GetLogData returns the request's LogData, or nil when the context
// carries none. Callers must nil-check before adding timings.
func GetLogData(ctx context.Context) *LogData {
	if logData, ok := ctx.Value(logDataKey).(*LogData); ok {
		return logData
	}
	return nil
}
