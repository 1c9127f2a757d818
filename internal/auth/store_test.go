package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ErlanBelekov/netzone/internal/domain"
	"github.com/ErlanBelekov/netzone/internal/infrastructure/memory"
	"github.com/ErlanBelekov/netzone/internal/session"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newUsers(t *testing.T) *memory.UserRepository {
	t.Helper()
	accounts, err := memory.SeedAccounts(time.Now(), Hasher(bcrypt.MinCost))
	require.NoError(t, err)
	return memory.NewUserRepository(accounts)
}

func newStore(t *testing.T, slot session.Slot) *Store {
	t.Helper()
	return NewStore(context.Background(), newUsers(t), slot, testLogger(), WithHashCost(bcrypt.MinCost))
}

func TestLogin_Admin(t *testing.T) {
	slot := session.NewMemorySlot()
	s := newStore(t, slot)

	u, err := s.Login(context.Background(), "admin@netzone.me", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin@netzone.me", u.Email)
	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.IsAdmin())

	rec, err := slot.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, domain.RoleAdmin, rec.User.Role)
}

func TestLogin_WrongPasswordStaysAnonymous(t *testing.T) {
	slot := session.NewMemorySlot()
	s := newStore(t, slot)

	_, err := s.Login(context.Background(), "admin@netzone.me", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.Current())

	_, err = s.Login(context.Background(), "nobody@netzone.me", "admin123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	rec, _ := slot.Load(context.Background())
	assert.Nil(t, rec)
}

func TestRegister(t *testing.T) {
	s := newStore(t, session.NewMemorySlot())
	ctx := context.Background()

	u, err := s.Register(ctx, RegisterInput{Email: "new@example.com", Password: "secret", Name: "New"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.False(t, s.IsAdmin())

	_, err = s.Register(ctx, RegisterInput{Email: "user@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserExists)
	assert.Equal(t, "new@example.com", s.Current().Email, "failed register keeps the previous session")

	s.Logout(ctx)
	_, err = s.Login(ctx, "new@example.com", "secret")
	assert.NoError(t, err)
}

func TestLogout(t *testing.T) {
	slot := session.NewMemorySlot()
	s := newStore(t, slot)
	ctx := context.Background()

	_, err := s.Login(ctx, "user@example.com", "user123")
	require.NoError(t, err)
	s.Logout(ctx)

	assert.False(t, s.IsAuthenticated())
	rec, _ := slot.Load(ctx)
	assert.Nil(t, rec)
}

func TestUpdateProfile(t *testing.T) {
	users := newUsers(t)
	slot := session.NewMemorySlot()
	s := NewStore(context.Background(), users, slot, testLogger())
	ctx := context.Background()

	name := "Renamed"
	_, err := s.UpdateProfile(ctx, domain.ProfilePatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = s.Login(ctx, "user@example.com", "user123")
	require.NoError(t, err)

	email := "renamed@example.com"
	u, err := s.UpdateProfile(ctx, domain.ProfilePatch{Name: &name, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", u.Name)

	acc, err := users.FindByEmail(ctx, "renamed@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", acc.Name)

	rec, _ := slot.Load(ctx)
	assert.Equal(t, "renamed@example.com", rec.User.Email)

	taken := "admin@netzone.me"
	_, err = s.UpdateProfile(ctx, domain.ProfilePatch{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrUserExists)
	assert.Equal(t, "renamed@example.com", s.Current().Email)
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	slot := session.NewMemorySlot()
	require.NoError(t, slot.Save(ctx, session.NewRecord(&domain.User{ID: 1, Email: "admin@netzone.me", Role: domain.RoleAdmin})))

	s := newStore(t, slot)
	assert.True(t, s.IsAdmin())
}

type corruptSlot struct {
	session.MemorySlot
	cleared bool
}

func (c *corruptSlot) Load(context.Context) (*session.Record, error) {
	return nil, session.ErrCorrupt
}

func (c *corruptSlot) Clear(context.Context) error {
	c.cleared = true
	return nil
}

func TestRestore_CorruptSlotIsCleared(t *testing.T) {
	slot := &corruptSlot{}
	s := newStore(t, slot)

	assert.False(t, s.IsAuthenticated())
	assert.True(t, slot.cleared)
}

func TestDelay_HonoursCancellation(t *testing.T) {
	s := NewStore(context.Background(), newUsers(t), session.NewMemorySlot(), testLogger(), WithDelay(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Login(ctx, "admin@netzone.me", "admin123")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, s.IsAuthenticated())
}

func TestSessions_OpenRoundTripsToken(t *testing.T) {
	codec := session.NewTokenCodec([]byte("test-jwt-secret-at-least-32-chars!!"), time.Hour)
	sessions := NewSessions(newUsers(t), codec, testLogger())
	ctx := context.Background()

	first := sessions.Open(ctx, "")
	_, err := first.Login(ctx, "admin@netzone.me", "admin123")
	require.NoError(t, err)
	token := first.Record().Token
	require.NotEmpty(t, token)

	second := sessions.Open(ctx, token)
	assert.True(t, second.IsAdmin())

	assert.False(t, sessions.Open(ctx, "garbage").IsAuthenticated())
}
