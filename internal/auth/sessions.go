package auth

import (
	"context"
	"log/slog"

	"github.com/ErlanBelekov/netzone/internal/repository"
	"github.com/ErlanBelekov/netzone/internal/session"
)

// Sessions opens one Store per HTTP exchange over the bearer token the
// client presented. After a transition, Store.Record().Token is the token
// to hand back.
type Sessions struct {
	users  repository.UserRepository
	codec  *session.TokenCodec
	logger *slog.Logger
	opts   []Option
}

func NewSessions(users repository.UserRepository, codec *session.TokenCodec, logger *slog.Logger, opts ...Option) *Sessions {
	return &Sessions{users: users, codec: codec, logger: logger, opts: opts}
}

func (s *Sessions) Open(ctx context.Context, token string) *Store {
	return NewStore(ctx, s.users, session.NewTokenSlot(s.codec, token), s.logger, s.opts...)
}

// Codec exposes the token codec to the auth middleware.
func (s *Sessions) Codec() *session.TokenCodec {
	return s.codec
}
