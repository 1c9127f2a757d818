package memory

import (
	"context"

	"github.com/ErlanBelekov/netzone/internal/domain"
	"github.com/ErlanBelekov/netzone/internal/repository"
)

var _ repository.InquiryRepository = (*InquiryRepository)(nil)

type InquiryRepository struct {
	base
	inquiries []*domain.Inquiry
}

func NewInquiryRepository(seed []*domain.Inquiry, opts ...Option) *InquiryRepository {
	r := &InquiryRepository{base: newBase()}
	for _, opt := range opts {
		opt(&r.base)
	}
	for _, i := range seed {
		c := *i
		r.inquiries = append(r.inquiries, &c)
		r.ids.observe(i.ID)
	}
	return r
}

func (r *InquiryRepository) Create(_ context.Context, i *domain.Inquiry) (*domain.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	stored := *i
	stored.ID = r.ids.next(now)
	stored.CreatedAt = now
	r.inquiries = append(r.inquiries, &stored)
	r.revision++

	out := stored
	return &out, nil
}

func (r *InquiryRepository) GetByID(_ context.Context, id int64) (*domain.Inquiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, i := range r.inquiries {
		if i.ID == id {
			c := *i
			return &c, nil
		}
	}
	return nil, domain.ErrInquiryNotFound
}

func (r *InquiryRepository) List(_ context.Context, status domain.InquiryStatus) ([]*domain.Inquiry, error) {
	return r.filter(func(i *domain.Inquiry) bool {
		return status == "" || i.Status == status
	}), nil
}

// ListByDomain keeps insertion order.
func (r *InquiryRepository) ListByDomain(_ context.Context, domainID int64) ([]*domain.Inquiry, error) {
	return r.filter(func(i *domain.Inquiry) bool {
		return i.DomainID == domainID
	}), nil
}

func (r *InquiryRepository) Update(_ context.Context, id int64, patch domain.InquiryPatch) (*domain.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, i := range r.inquiries {
		if i.ID == id {
			patch.Apply(i)
			r.revision++
			c := *i
			return &c, nil
		}
	}
	return nil, domain.ErrInquiryNotFound
}

func (r *InquiryRepository) filter(keep func(*domain.Inquiry) bool) []*domain.Inquiry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Inquiry, 0, len(r.inquiries))
	for _, i := range r.inquiries {
		if keep(i) {
			c := *i
			out = append(out, &c)
		}
	}
	return out
}
