package log

import (
	"context"
	"log/slog"

	"github.com/ErlanBelekov/netzone/internal/requestid"
)

type userKey struct{}

// WithUserID tags ctx with the session user so every record logged under
// it carries user_id.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userKey{}, id)
}

// ContextHandler wraps an slog.Handler and copies request-scoped values
// (request_id, user_id) from the context onto each record.
type ContextHandler struct {
	inner slog.Handler
}

func NewContextHandler(inner slog.Handler) *ContextHandler {
	return &ContextHandler{inner: inner}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := requestid.FromContext(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	if id, ok := ctx.Value(userKey{}).(int64); ok {
		r.AddAttrs(slog.Int64("user_id", id))
	}
	return h.inner.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{inner: h.inner.WithGroup(name)}
}
