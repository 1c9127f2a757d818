package memory

import (
	"context"

	"github.com/ErlanBelekov/netzone/internal/domain"
	"github.com/ErlanBelekov/netzone/internal/repository"
)

var _ repository.DomainRepository = (*DomainRepository)(nil)

type DomainRepository struct {
	base
	domains []*domain.Domain
}

// NewDomainRepository returns a repository pre-loaded with seed (copied).
func NewDomainRepository(seed []*domain.Domain, opts ...Option) *DomainRepository {
	r := &DomainRepository{base: newBase()}
	for _, opt := range opts {
		opt(&r.base)
	}
	for _, d := range seed {
		r.domains = append(r.domains, d.Clone())
		r.ids.observe(d.ID)
	}
	return r
}

// Create assigns ID and CreatedAt and appends the record.
func (r *DomainRepository) Create(_ context.Context, d *domain.Domain) (*domain.Domain, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	stored := d.Clone()
	stored.ID = r.ids.next(now)
	stored.CreatedAt = now
	r.domains = append(r.domains, stored)
	r.revision++

	return stored.Clone(), nil
}

func (r *DomainRepository) GetByID(_ context.Context, id int64) (*domain.Domain, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.domains[i].Clone(), nil
	}
	return nil, domain.ErrDomainNotFound
}

// FindByName returns the first exact match on DomainName.
func (r *DomainRepository) FindByName(_ context.Context, name string) (*domain.Domain, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.domains {
		if d.DomainName == name {
			return d.Clone(), nil
		}
	}
	return nil, domain.ErrDomainNotFound
}

func (r *DomainRepository) List(_ context.Context, status domain.DomainStatus) ([]*domain.Domain, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Domain, 0, len(r.domains))
	for _, d := range r.domains {
		if status != "" && d.Status != status {
			continue
		}
		out = append(out, d.Clone())
	}
	return out, nil
}

func (r *DomainRepository) Update(_ context.Context, id int64, patch domain.DomainPatch) (*domain.Domain, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrDomainNotFound
	}
	patch.Apply(r.domains[i])
	r.revision++
	return r.domains[i].Clone(), nil
}

func (r *DomainRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.ErrDomainNotFound
	}
	r.domains = append(r.domains[:i], r.domains[i+1:]...)
	r.revision++
	return nil
}

func (r *DomainRepository) indexOf(id int64) int {
	for i, d := range r.domains {
		if d.ID == id {
			return i
		}
	}
	return -1
}
