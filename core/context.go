package core

import "context"

// Context keys for evaluation options
type contextKey string

const (
	runIDKey          contextKey = "runID"
	suppressHeaderKey contextKey = "suppressHeader"
)

// withRunID attaches the history run id to the context
func withRunID(ctx context.Context, runID int64) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// getRunID returns the history run id from context, if any
func getRunID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(runIDKey).(int64)
	return id, ok
}

// WithSuppressHeader marks the context so no run header is logged.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	suppress, ok := ctx.Value(suppressHeaderKey).(bool)
	return ok && suppress
}
