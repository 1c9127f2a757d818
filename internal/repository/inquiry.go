package repository

import (
	"context"

	"github.com/ErlanBelekov/netzone/internal/domain"
)

type InquiryRepository interface {
	Create(ctx context.Context, i *domain.Inquiry) (*domain.Inquiry, error)
	GetByID(ctx context.Context, id int64) (*domain.Inquiry, error)
	List(ctx context.Context, status domain.InquiryStatus) ([]*domain.Inquiry, error) // empty status = all
	ListByDomain(ctx context.Context, domainID int64) ([]*domain.Inquiry, error)
	Update(ctx context.Context, id int64, patch domain.InquiryPatch) (*domain.Inquiry, error)

	Revision() uint64
}
