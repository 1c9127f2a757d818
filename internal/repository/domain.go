package repository

import (
	"context"

	"github.com/ErlanBelekov/netzone/internal/domain"
)

// DomainRepository stores listings in insertion order.
// Reads return copies; mutating a returned value never touches the store.
type DomainRepository interface {
	Create(ctx context.Context, d *domain.Domain) (*domain.Domain, error)
	GetByID(ctx context.Context, id int64) (*domain.Domain, error)
	FindByName(ctx context.Context, name string) (*domain.Domain, error)
	List(ctx context.Context, status domain.DomainStatus) ([]*domain.Domain, error) // empty status = all
	Update(ctx context.Context, id int64, patch domain.DomainPatch) (*domain.Domain, error)
	Delete(ctx context.Context, id int64) error

	// Revision changes on every successful mutation.
	Revision() uint64
}
