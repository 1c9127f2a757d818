// Package auth holds the session state machine: anonymous or authenticated
// as exactly one user.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ErlanBelekov/netzone/internal/domain"
	"github.com/ErlanBelekov/netzone/internal/latency"
	"github.com/ErlanBelekov/netzone/internal/repository"
	"github.com/ErlanBelekov/netzone/internal/session"
)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Store owns the current session user. Every transition is persisted to the
// slot; failures (bad credentials, taken email) come back as errors and
// leave the session as it was.
type Store struct {
	users      repository.UserRepository
	slot       session.Slot
	logger     *slog.Logger
	delay      time.Duration
	hashCost   int
	mu         sync.RWMutex
	current    *domain.User
	lastRecord *session.Record
}

type Option func(*Store)

// WithDelay sets the simulated latency of login, register and profile updates.
func WithDelay(d time.Duration) Option {
	return func(s *Store) { s.delay = d }
}

// WithHashCost sets the bcrypt cost used for new registrations.
func WithHashCost(cost int) Option {
	return func(s *Store) { s.hashCost = cost }
}

// NewStore builds a store and restores any session the slot holds.
func NewStore(ctx context.Context, users repository.UserRepository, slot session.Slot, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		users:  users,
		slot:   slot,
		logger: logger.With("component", "auth_store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.restore(ctx)
	return s
}

func (s *Store) restore(ctx context.Context) {
	rec, err := s.slot.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "discarding saved session", "error", err)
		if clearErr := s.slot.Clear(ctx); clearErr != nil {
			s.logger.ErrorContext(ctx, "clear session slot", "error", clearErr)
		}
		return
	}
	if rec == nil {
		return
	}
	s.current = rec.DomainUser()
	s.lastRecord = rec
}

// Login succeeds only on an exact email match with the right password.
func (s *Store) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if err := latency.Wait(ctx, s.delay); err != nil {
		return nil, err
	}

	acc, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !VerifyPassword(acc.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	u := acc.User
	if err := s.setSession(ctx, &u); err != nil {
		return nil, err
	}
	return s.Current(), nil
}

// Register creates a user-role account and signs it in.
func (s *Store) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := latency.Wait(ctx, s.delay); err != nil {
		return nil, err
	}

	hash, err := HashPassword(input.Password, s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acc, err := s.users.Create(ctx, &domain.Account{
		User: domain.User{
			Email: input.Email,
			Name:  input.Name,
			Role:  domain.RoleUser,
		},
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	u := acc.User
	if err := s.setSession(ctx, &u); err != nil {
		return nil, err
	}
	return s.Current(), nil
}

// Logout clears the session. A slot that fails to clear is logged, not returned.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = nil
	s.lastRecord = nil
	s.mu.Unlock()

	if err := s.slot.Clear(ctx); err != nil {
		s.logger.ErrorContext(ctx, "clear session slot", "error", err)
	}
}

// UpdateProfile merges patch into the session user, writes it back to the
// directory and re-persists the session.
func (s *Store) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (*domain.User, error) {
	current := s.Current()
	if current == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := latency.Wait(ctx, s.delay); err != nil {
		return nil, err
	}

	updated, err := s.users.UpdateProfile(ctx, current.ID, patch)
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return nil, err
	case errors.Is(err, domain.ErrUserNotFound):
		// The session outlived its directory entry (e.g. a restart dropped a
		// registered user). Keep the session-only merge.
		updated = current
		patch.Apply(updated)
	case err != nil:
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if err := s.setSession(ctx, updated); err != nil {
		return nil, err
	}
	return s.Current(), nil
}

func (s *Store) setSession(ctx context.Context, u *domain.User) error {
	rec := session.NewRecord(u)
	if err := s.slot.Save(ctx, rec); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := *u
	s.current = &c
	s.lastRecord = rec
	return nil
}

// Current returns a copy of the session user, nil when anonymous.
func (s *Store) Current() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}

// Record returns the last persisted record, including the slot's token if it issues one.
func (s *Store) Record() *session.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastRecord == nil {
		return nil
	}
	c := *s.lastRecord
	return &c
}

func (s *Store) IsAuthenticated() bool {
	return s.Current() != nil
}

func (s *Store) IsAdmin() bool {
	return s.Current().IsAdmin()
}
