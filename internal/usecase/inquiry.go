package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ErlanBelekov/netzone/internal/domain"
	"github.com/ErlanBelekov/netzone/internal/metrics"
	"github.com/ErlanBelekov/netzone/internal/repository"
)

const defaultNotifyTimeout = 15 * time.Second

// Notifier is told about every accepted inquiry.
type Notifier interface {
	NotifyNewInquiry(ctx context.Context, inq *domain.Inquiry) error
}

type InquiryUsecase struct {
	repo          repository.InquiryRepository
	notifier      Notifier
	notifyTimeout time.Duration
	logger        *slog.Logger
	inflight      sync.WaitGroup
}

type InquiryOption func(*InquiryUsecase)

// WithNotifyTimeout sets the deadline for one inquiry's notification,
// retries included.
func WithNotifyTimeout(d time.Duration) InquiryOption {
	return func(u *InquiryUsecase) {
		if d > 0 {
			u.notifyTimeout = d
		}
	}
}

func NewInquiryUsecase(repo repository.InquiryRepository, notifier Notifier, logger *slog.Logger, opts ...InquiryOption) *InquiryUsecase {
	u := &InquiryUsecase{
		repo:          repo,
		notifier:      notifier,
		notifyTimeout: defaultNotifyTimeout,
		logger:        logger.With("component", "inquiry_usecase"),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

type SubmitInquiryInput struct {
	DomainID   int64
	DomainName string
	Name       string
	Email      string
	Message    string
	Budget     string
	Reseller   bool
}

// Submit records a new inquiry and notifies the owner in the background.
// A failed notification is logged; the inquiry is kept either way.
func (u *InquiryUsecase) Submit(ctx context.Context, input SubmitInquiryInput) (*domain.Inquiry, error) {
	inq := &domain.Inquiry{
		DomainID:   input.DomainID,
		DomainName: input.DomainName,
		Name:       strings.TrimSpace(input.Name),
		Email:      strings.TrimSpace(input.Email),
		Message:    input.Message,
		Budget:     input.Budget,
		Reseller:   input.Reseller,
		Status:     domain.InquiryNew,
	}

	created, err := u.repo.Create(ctx, inq)
	if err != nil {
		return nil, fmt.Errorf("create inquiry: %w", err)
	}
	metrics.InquiriesSubmittedTotal.Inc()
	u.logger.InfoContext(ctx, "inquiry submitted", "inquiry_id", created.ID, "domain_id", created.DomainID)

	u.inflight.Add(1)
	go u.notify(context.WithoutCancel(ctx), *created)

	return created, nil
}

func (u *InquiryUsecase) notify(ctx context.Context, inq domain.Inquiry) {
	defer u.inflight.Done()

	ctx, cancel := context.WithTimeout(ctx, u.notifyTimeout)
	defer cancel()

	if err := u.notifier.NotifyNewInquiry(ctx, &inq); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		u.logger.ErrorContext(ctx, "inquiry notification failed", "inquiry_id", inq.ID, "error", err)
	}
}

// Wait blocks until every notification started by Submit has finished.
func (u *InquiryUsecase) Wait() {
	u.inflight.Wait()
}

func (u *InquiryUsecase) Update(ctx context.Context, id int64, patch domain.InquiryPatch) (*domain.Inquiry, error) {
	updated, err := u.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update inquiry: %w", err)
	}
	return updated, nil
}

func (u *InquiryUsecase) GetByID(ctx context.Context, id int64) (*domain.Inquiry, error) {
	inq, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get inquiry: %w", err)
	}
	return inq, nil
}

func (u *InquiryUsecase) List(ctx context.Context, status domain.InquiryStatus) ([]*domain.Inquiry, error) {
	out, err := u.repo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	return out, nil
}

func (u *InquiryUsecase) ListForDomain(ctx context.Context, domainID int64) ([]*domain.Inquiry, error) {
	out, err := u.repo.ListByDomain(ctx, domainID)
	if err != nil {
		return nil, fmt.Errorf("list inquiries for domain: %w", err)
	}
	return out, nil
}

type InquiryCounts struct {
	All      int                          `json:"all"`
	ByStatus map[domain.InquiryStatus]int `json:"by_status"`
}

func (u *InquiryUsecase) Counts(ctx context.Context) (InquiryCounts, error) {
	all, err := u.List(ctx, "")
	if err != nil {
		return InquiryCounts{}, err
	}
	c := InquiryCounts{All: len(all), ByStatus: make(map[domain.InquiryStatus]int, len(domain.InquiryStatuses))}
	for _, s := range domain.InquiryStatuses {
		c.ByStatus[s] = 0
	}
	for _, inq := range all {
		c.ByStatus[inq.Status]++
	}
	return c, nil
}
