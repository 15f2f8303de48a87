// Package context carries per-request values that cross layer
// boundaries without widening every signature.
package context

import "context"

type ctxKey int

const keyRequestID ctxKey = iota

// WithRequestID stores the request id for downstream log and outbox
// trace correlation.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

// RequestID returns the stored request id, or "" outside a request.
func RequestID(ctx context.Context) string {
	s, _ := ctx.Value(keyRequestID).(string)
	return s
}
