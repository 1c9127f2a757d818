package repository

import (
	"context"

	"github.com/ErlanBelekov/netzone/internal/domain"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	// Create fails with domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, a *domain.Account) (*domain.Account, error)
	UpdateProfile(ctx context.Context, id int64, patch domain.ProfilePatch) (*domain.User, error)
}
