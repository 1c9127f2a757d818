package memory

import (
	"context"

	"github.com/ErlanBelekov/netzone/internal/domain"
	"github.com/ErlanBelekov/netzone/internal/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository is the fixed user table plus whatever registers at runtime.
type UserRepository struct {
	base
	accounts []*domain.Account
}

func NewUserRepository(seed []*domain.Account, opts ...Option) *UserRepository {
	r := &UserRepository{base: newBase()}
	for _, opt := range opts {
		opt(&r.base)
	}
	for _, a := range seed {
		r.accounts = append(r.accounts, cloneAccount(a))
		r.ids.observe(a.ID)
	}
	return r
}

// FindByEmail is an exact, case-sensitive match.
func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if a := r.byEmail(email); a != nil {
		return cloneAccount(a), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.ID == id {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byEmail(a.Email) != nil {
		return nil, domain.ErrUserExists
	}

	now := r.now()
	stored := cloneAccount(a)
	stored.ID = r.ids.next(now)
	stored.CreatedAt = now
	r.accounts = append(r.accounts, stored)
	r.revision++

	return cloneAccount(stored), nil
}

func (r *UserRepository) UpdateProfile(_ context.Context, id int64, patch domain.ProfilePatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var target *domain.Account
	for _, a := range r.accounts {
		if a.ID == id {
			target = a
			break
		}
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}
	if patch.Email != nil && *patch.Email != target.Email && r.byEmail(*patch.Email) != nil {
		return nil, domain.ErrUserExists
	}

	patch.Apply(&target.User)
	r.revision++
	u := target.User
	return &u, nil
}

func (r *UserRepository) byEmail(email string) *domain.Account {
	for _, a := range r.accounts {
		if a.Email == email {
			return a
		}
	}
	return nil
}

func cloneAccount(a *domain.Account) *domain.Account {
	c := *a
	c.PasswordHash = append([]byte(nil), a.PasswordHash...)
	return &c
}
