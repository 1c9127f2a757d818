// Package session persists the current user between requests or runs.
//
// A Slot is a single key-value cell: it holds at most one Record, is read
// once at startup and is cleared on logout.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ErlanBelekov/netzone/internal/domain"
)

// ErrCorrupt is returned by Load when the slot holds something unreadable.
var ErrCorrupt = errors.New("session record is corrupt")

type Slot interface {
	// Load returns nil, nil for an empty slot.
	Load(ctx context.Context) (*Record, error)
	Save(ctx context.Context, rec *Record) error
	Clear(ctx context.Context) error
}

// Record is the serialized current-user entry.
type Record struct {
	User  UserRecord `json:"user"`
	Token string     `json:"token,omitempty"`
}

type UserRecord struct {
	ID        int64       `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

func NewRecord(u *domain.User) *Record {
	return &Record{User: UserRecord{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}}
}

func (r *Record) DomainUser() *domain.User {
	return &domain.User{
		ID:        r.User.ID,
		Email:     r.User.Email,
		Name:      r.User.Name,
		Role:      r.User.Role,
		CreatedAt: r.User.CreatedAt,
	}
}

// MemorySlot keeps the record in process memory.
type MemorySlot struct {
	mu  sync.Mutex
	rec *Record
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Load(_ context.Context) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec == nil {
		return nil, nil
	}
	c := *s.rec
	return &c, nil
}

func (s *MemorySlot) Save(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *rec
	s.rec = &c
	return nil
}

func (s *MemorySlot) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = nil
	return nil
}
