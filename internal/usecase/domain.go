package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ErlanBelekov/netzone/internal/domain"
	"github.com/ErlanBelekov/netzone/internal/metrics"
	"github.com/ErlanBelekov/netzone/internal/repository"
)

const maxNameservers = 2

type DomainUsecase struct {
	repo   repository.DomainRepository
	logger *slog.Logger
}

func NewDomainUsecase(repo repository.DomainRepository, logger *slog.Logger) *DomainUsecase {
	return &DomainUsecase{repo: repo, logger: logger.With("component", "domain_usecase")}
}

type AddDomainInput struct {
	DomainName   string
	Nameservers  []string
	Price        float64
	Tagline      string
	ThemeVariant int
}

// Add lists a new domain. Every new domain starts out pending verification.
func (u *DomainUsecase) Add(ctx context.Context, input AddDomainInput) (*domain.Domain, error) {
	d := &domain.Domain{
		DomainName:   strings.TrimSpace(input.DomainName),
		Nameservers:  CleanNameservers(input.Nameservers),
		Status:       domain.DomainPendingVerification,
		Price:        input.Price,
		Tagline:      input.Tagline,
		ThemeVariant: input.ThemeVariant,
	}

	created, err := u.repo.Create(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("create domain: %w", err)
	}

	metrics.DomainsAddedTotal.Inc()
	u.logger.InfoContext(ctx, "domain added", "domain_id", created.ID, "domain", created.DomainName)
	return created, nil
}

// CleanNameservers trims entries, drops blanks and keeps at most two.
// The result is never nil.
func CleanNameservers(in []string) []string {
	out := make([]string, 0, maxNameservers)
	for _, ns := range in {
		ns = strings.TrimSpace(ns)
		if ns == "" {
			continue
		}
		out = append(out, ns)
		if len(out) == maxNameservers {
			break
		}
	}
	return out
}

func (u *DomainUsecase) Update(ctx context.Context, id int64, patch domain.DomainPatch) (*domain.Domain, error) {
	if patch.Nameservers != nil {
		patch.Nameservers = CleanNameservers(patch.Nameservers)
	}
	updated, err := u.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update domain: %w", err)
	}
	return updated, nil
}

// Delete removes the domain. Deleting an unknown id is not an error.
func (u *DomainUsecase) Delete(ctx context.Context, id int64) error {
	err := u.repo.Delete(ctx, id)
	if errors.Is(err, domain.ErrDomainNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete domain: %w", err)
	}
	u.logger.InfoContext(ctx, "domain deleted", "domain_id", id)
	return nil
}

func (u *DomainUsecase) GetByID(ctx context.Context, id int64) (*domain.Domain, error) {
	d, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get domain: %w", err)
	}
	return d, nil
}

func (u *DomainUsecase) FindByName(ctx context.Context, name string) (*domain.Domain, error) {
	d, err := u.repo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find domain: %w", err)
	}
	return d, nil
}

func (u *DomainUsecase) List(ctx context.Context, status domain.DomainStatus) ([]*domain.Domain, error) {
	ds, err := u.repo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list domains: %w", err)
	}
	return ds, nil
}

// Active lists what the public home page shows.
func (u *DomainUsecase) Active(ctx context.Context) ([]*domain.Domain, error) {
	return u.List(ctx, domain.DomainActive)
}

type DomainCounts struct {
	All      int                         `json:"all"`
	ByStatus map[domain.DomainStatus]int `json:"by_status"`
}

func (u *DomainUsecase) Counts(ctx context.Context) (DomainCounts, error) {
	ds, err := u.List(ctx, "")
	if err != nil {
		return DomainCounts{}, err
	}
	c := DomainCounts{All: len(ds), ByStatus: make(map[domain.DomainStatus]int, len(domain.DomainStatuses))}
	for _, s := range domain.DomainStatuses {
		c.ByStatus[s] = 0
	}
	for _, d := range ds {
		c.ByStatus[d.Status]++
	}
	return c, nil
}
