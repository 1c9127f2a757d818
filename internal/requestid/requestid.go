package requestid

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

const maxLen = 128

// New generates a random UUID v4 request ID.
func New() string {
	return uuid.NewString()
}

// Valid reports whether a client-supplied id is safe to echo and log:
// non-empty, bounded, printable ASCII without spaces.
func Valid(id string) bool {
	if id == "" || len(id) > maxLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns "" when ctx carries no request id.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
