package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ErlanBelekov/netzone/internal/analytics"
	"github.com/ErlanBelekov/netzone/internal/domain"
	"github.com/ErlanBelekov/netzone/internal/infrastructure/memory"
	"github.com/ErlanBelekov/netzone/internal/notify"
	"github.com/ErlanBelekov/netzone/internal/usecase"
)

// ---- fakes ----

type fakeNotifier struct {
	notify func(ctx context.Context, inq *domain.Inquiry) error
}

func (n *fakeNotifier) NotifyNewInquiry(ctx context.Context, inq *domain.Inquiry) error {
	return n.notify(ctx, inq)
}

// countingGenerator wraps a seeded generator and counts derivations.
type countingGenerator struct {
	*analytics.SyntheticGenerator
	calls atomic.Int32
}

func (g *countingGenerator) PageViews(days []time.Time) []domain.PageViewDay {
	g.calls.Add(1)
	return g.SyntheticGenerator.PageViews(days)
}

// ---- helpers ----

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func clock() func() time.Time {
	return func() time.Time { return testNow }
}

func newDomainUsecase() (*usecase.DomainUsecase, *memory.DomainRepository) {
	repo := memory.NewDomainRepository(memory.SeedDomains(testNow), memory.WithClock(clock()))
	return usecase.NewDomainUsecase(repo, testLogger()), repo
}

func newInquiryUsecase(n usecase.Notifier) (*usecase.InquiryUsecase, *memory.InquiryRepository) {
	repo := memory.NewInquiryRepository(nil, memory.WithClock(clock()))
	return usecase.NewInquiryUsecase(repo, n, testLogger()), repo
}

func okNotifier() *fakeNotifier {
	return &fakeNotifier{notify: func(context.Context, *domain.Inquiry) error { return nil }}
}

// ---- domain ----

func TestAddDomain_ForcesPendingAndDropsBlankNameservers(t *testing.T) {
	uc, _ := newDomainUsecase()
	ctx := context.Background()

	before, _ := uc.List(ctx, "")
	created, err := uc.Add(ctx, usecase.AddDomainInput{
		DomainName:  "test.com",
		Price:       5000,
		Nameservers: []string{"", "  "},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after, _ := uc.List(ctx, "")

	if len(after) != len(before)+1 {
		t.Fatalf("expected %d domains, got %d", len(before)+1, len(after))
	}
	if created.Status != domain.DomainPendingVerification {
		t.Errorf("status = %q, want pending_verification", created.Status)
	}
	if created.Price != 5000 {
		t.Errorf("price = %v, want 5000", created.Price)
	}
	if created.Nameservers == nil || len(created.Nameservers) != 0 {
		t.Errorf("nameservers = %#v, want empty", created.Nameservers)
	}
	if created.ID == 0 || !created.CreatedAt.Equal(testNow) {
		t.Errorf("id/created_at not assigned: %d %v", created.ID, created.CreatedAt)
	}
}

func TestCleanNameservers(t *testing.T) {
	got := usecase.CleanNameservers([]string{" ns1.a.com ", "", "ns2.a.com", "ns3.a.com"})
	if len(got) != 2 || got[0] != "ns1.a.com" || got[1] != "ns2.a.com" {
		t.Errorf("got %#v", got)
	}
}

func TestDeleteDomain_UnknownIDIsNoop(t *testing.T) {
	uc, repo := newDomainUsecase()
	ctx := context.Background()
	rev := repo.Revision()

	if err := uc.Delete(ctx, 424242); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	all, _ := uc.List(ctx, "")
	if len(all) != 3 {
		t.Errorf("expected store unchanged, got %d domains", len(all))
	}
	if repo.Revision() != rev {
		t.Error("revision changed on a no-op delete")
	}
}

func TestUpdateDomain(t *testing.T) {
	uc, _ := newDomainUsecase()
	ctx := context.Background()

	sold := domain.DomainSold
	updated, err := uc.Update(ctx, 1, domain.DomainPatch{Status: &sold})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.DomainSold || updated.DomainName != "techstartup.com" {
		t.Errorf("unexpected record: %+v", updated)
	}

	_, err = uc.Update(ctx, 999, domain.DomainPatch{Status: &sold})
	if !errors.Is(err, domain.ErrDomainNotFound) {
		t.Errorf("expected ErrDomainNotFound, got %v", err)
	}
}

func TestFindByName_Idempotent(t *testing.T) {
	uc, _ := newDomainUsecase()
	ctx := context.Background()

	a, err := uc.FindByName(ctx, "digitalagency.net")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := uc.FindByName(ctx, "digitalagency.net")
	if a.ID != b.ID || a.Price != b.Price {
		t.Errorf("lookups differ: %+v vs %+v", a, b)
	}

	if _, err := uc.FindByName(ctx, "DigitalAgency.net"); !errors.Is(err, domain.ErrDomainNotFound) {
		t.Errorf("lookup should be exact, got %v", err)
	}
}

func TestDomainCounts(t *testing.T) {
	uc, _ := newDomainUsecase()
	c, err := uc.Counts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.All != 3 || c.ByStatus[domain.DomainActive] != 2 || c.ByStatus[domain.DomainPendingVerification] != 1 {
		t.Errorf("unexpected counts: %+v", c)
	}
	if _, ok := c.ByStatus[domain.DomainArchived]; !ok {
		t.Error("statuses with no domains should be present with zero")
	}
}

// ---- inquiry ----

func TestSubmitInquiry_NotifiesExactlyOnce(t *testing.T) {
	var calls atomic.Int32
	var got *domain.Inquiry
	var mu sync.Mutex
	uc, _ := newInquiryUsecase(&fakeNotifier{notify: func(_ context.Context, inq *domain.Inquiry) error {
		calls.Add(1)
		mu.Lock()
		got = inq
		mu.Unlock()
		return nil
	}})
	ctx := context.Background()

	created, err := uc.Submit(ctx, usecase.SubmitInquiryInput{
		DomainID:   1,
		DomainName: "techstartup.com",
		Name:       "Ada",
		Email:      "ada@example.com",
		Message:    "Interested",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	uc.Wait()

	if created.Status != domain.InquiryNew {
		t.Errorf("status = %q, want new", created.Status)
	}
	all, _ := uc.List(ctx, "")
	if len(all) != 1 {
		t.Errorf("expected 1 inquiry, got %d", len(all))
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 notification, got %d", calls.Load())
	}
	mu.Lock()
	defer mu.Unlock()
	if got == nil || got.ID != created.ID {
		t.Errorf("notified about the wrong inquiry: %+v", got)
	}
}

func TestSubmitInquiry_NotifierFailureIsSwallowed(t *testing.T) {
	uc, _ := newInquiryUsecase(&fakeNotifier{notify: func(context.Context, *domain.Inquiry) error {
		return errors.New("smtp down")
	}})

	if _, err := uc.Submit(context.Background(), usecase.SubmitInquiryInput{DomainID: 1}); err != nil {
		t.Fatalf("notifier failure leaked: %v", err)
	}
	uc.Wait()
}

func TestSubmitInquiry_NotificationOutlivesRequest(t *testing.T) {
	done := make(chan error, 1)
	uc, _ := newInquiryUsecase(&fakeNotifier{notify: func(ctx context.Context, _ *domain.Inquiry) error {
		done <- ctx.Err()
		return nil
	}})

	ctx, cancel := context.WithCancel(context.Background())
	if _, err := uc.Submit(ctx, usecase.SubmitInquiryInput{DomainID: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cancel()
	uc.Wait()

	if err := <-done; err != nil {
		t.Errorf("notification context was cancelled with the request: %v", err)
	}
}

func TestSubmitInquiry_NotifyTimeoutOption(t *testing.T) {
	deadlines := make(chan time.Duration, 1)
	repo := memory.NewInquiryRepository(nil, memory.WithClock(clock()))
	uc := usecase.NewInquiryUsecase(repo, &fakeNotifier{notify: func(ctx context.Context, _ *domain.Inquiry) error {
		dl, _ := ctx.Deadline()
		deadlines <- time.Until(dl)
		return nil
	}}, testLogger(), usecase.WithNotifyTimeout(2*time.Minute))

	if _, err := uc.Submit(context.Background(), usecase.SubmitInquiryInput{DomainID: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	uc.Wait()

	if left := <-deadlines; left <= time.Minute {
		t.Errorf("notification deadline = %v away, want about 2m", left)
	}
}

func TestSubmitInquiry_EveryConfiguredAttemptRuns(t *testing.T) {
	var calls atomic.Int32
	failing := &fakeNotifier{notify: func(context.Context, *domain.Inquiry) error {
		calls.Add(1)
		return errors.New("smtp down")
	}}
	worker := notify.NewWorker(failing, testLogger(),
		notify.WithMaxAttempts(10),
		notify.WithBaseDelay(time.Millisecond),
		notify.WithAttemptTimeout(50*time.Millisecond),
	)

	repo := memory.NewInquiryRepository(nil, memory.WithClock(clock()))
	uc := usecase.NewInquiryUsecase(repo, worker, testLogger(), usecase.WithNotifyTimeout(worker.MaxDuration()))

	if _, err := uc.Submit(context.Background(), usecase.SubmitInquiryInput{DomainID: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	uc.Wait()

	if got := calls.Load(); got != 10 {
		t.Errorf("attempts = %d, want 10", got)
	}
}

func TestInquiryUpdateAndListForDomain(t *testing.T) {
	uc, _ := newInquiryUsecase(okNotifier())
	ctx := context.Background()

	a, _ := uc.Submit(ctx, usecase.SubmitInquiryInput{DomainID: 1})
	b, _ := uc.Submit(ctx, usecase.SubmitInquiryInput{DomainID: 2})
	c, _ := uc.Submit(ctx, usecase.SubmitInquiryInput{DomainID: 1})
	uc.Wait()

	if !(a.ID < b.ID && b.ID < c.ID) {
		t.Errorf("ids not strictly increasing: %d %d %d", a.ID, b.ID, c.ID)
	}

	forOne, _ := uc.ListForDomain(ctx, 1)
	if len(forOne) != 2 || forOne[0].ID != a.ID || forOne[1].ID != c.ID {
		t.Errorf("unexpected list: %+v", forOne)
	}

	replied := domain.InquiryReplied
	updated, err := uc.Update(ctx, b.ID, domain.InquiryPatch{Status: &replied})
	if err != nil || updated.Status != domain.InquiryReplied {
		t.Fatalf("update failed: %v %+v", err, updated)
	}

	counts, _ := uc.Counts(ctx)
	if counts.All != 3 || counts.ByStatus[domain.InquiryNew] != 2 || counts.ByStatus[domain.InquiryReplied] != 1 {
		t.Errorf("unexpected counts: %+v", counts)
	}

	if _, err := uc.Update(ctx, 1, domain.InquiryPatch{Status: &replied}); !errors.Is(err, domain.ErrInquiryNotFound) {
		t.Errorf("expected ErrInquiryNotFound, got %v", err)
	}
}

// ---- dashboard ----

func TestDashboardStats(t *testing.T) {
	domains, _ := newDomainUsecase()
	inquiries, _ := newInquiryUsecase(okNotifier())
	ctx := context.Background()

	var last *domain.Inquiry
	for i := 0; i < 7; i++ {
		last, _ = inquiries.Submit(ctx, usecase.SubmitInquiryInput{DomainID: 1})
	}
	inquiries.Wait()
	closed := domain.InquiryClosed
	inquiries.Update(ctx, last.ID, domain.InquiryPatch{Status: &closed})

	stats, err := usecase.NewDashboardUsecase(domains, inquiries).Stats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.TotalDomains != 3 || stats.ActiveDomains != 2 || stats.SoldDomains != 0 {
		t.Errorf("unexpected domain stats: %+v", stats)
	}
	if stats.PortfolioValue != 35500 {
		t.Errorf("portfolio value = %v, want 35500", stats.PortfolioValue)
	}
	if stats.TotalInquiries != 7 || stats.NewInquiries != 6 {
		t.Errorf("unexpected inquiry stats: %+v", stats)
	}
	if len(stats.RecentInquiries) != 5 || stats.RecentInquiries[0].ID != last.ID {
		t.Errorf("recent inquiries should be the last five, newest first")
	}
}

// ---- analytics ----

func TestAnalytics_RegeneratesOnlyOnChange(t *testing.T) {
	domainRepo := memory.NewDomainRepository(memory.SeedDomains(testNow), memory.WithClock(clock()))
	inquiryRepo := memory.NewInquiryRepository(nil, memory.WithClock(clock()))
	gen := &countingGenerator{SyntheticGenerator: analytics.NewSyntheticGenerator(1)}

	uc := usecase.NewAnalyticsUsecase(domainRepo, inquiryRepo, gen, 30, testLogger())
	uc.SetClock(clock())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := uc.Snapshot(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if n := gen.calls.Load(); n != 1 {
		t.Fatalf("expected a single derivation, got %d", n)
	}

	domains := usecase.NewDomainUsecase(domainRepo, testLogger())
	domains.Add(ctx, usecase.AddDomainInput{DomainName: "new.com"})

	snap, _ := uc.Snapshot(ctx)
	if n := gen.calls.Load(); n != 2 {
		t.Fatalf("expected a rebuild after a domain change, got %d derivations", n)
	}
	if len(snap.Domains) != 4 {
		t.Errorf("snapshot sees %d domains, want 4", len(snap.Domains))
	}
}

func TestAnalytics_LiveEventsSurviveRegeneration(t *testing.T) {
	domainRepo := memory.NewDomainRepository(memory.SeedDomains(testNow), memory.WithClock(clock()))
	inquiryRepo := memory.NewInquiryRepository(nil, memory.WithClock(clock()))
	uc := usecase.NewAnalyticsUsecase(domainRepo, inquiryRepo, &fakeGenerator{}, 30, testLogger())
	uc.SetClock(clock())
	ctx := context.Background()

	uc.TrackEvent(ctx, usecase.TrackEventInput{Type: domain.EventPageView, DomainID: 1, IPAddress: "10.0.0.1"})
	uc.TrackEvent(ctx, usecase.TrackEventInput{Type: domain.EventPageView, DomainID: 1, IPAddress: "10.0.0.2"})

	inquiries := usecase.NewInquiryUsecase(inquiryRepo, okNotifier(), testLogger())
	inquiries.Submit(ctx, usecase.SubmitInquiryInput{DomainID: 1})
	inquiries.Wait()

	m, err := uc.DomainMetrics(ctx, 1, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.TotalViews != 2 || m.UniqueVisitors != 2 || m.Inquiries != 1 {
		t.Errorf("unexpected metrics: %+v", m)
	}
	if m.ConversionRate != 50 {
		t.Errorf("conversion = %v, want 50", m.ConversionRate)
	}
}

func TestAnalyticsPage(t *testing.T) {
	domainRepo := memory.NewDomainRepository(memory.SeedDomains(testNow), memory.WithClock(clock()))
	inquiryRepo := memory.NewInquiryRepository(nil, memory.WithClock(clock()))
	uc := usecase.NewAnalyticsUsecase(domainRepo, inquiryRepo, analytics.NewSyntheticGenerator(3), 90, testLogger())
	uc.SetClock(clock())

	page, err := uc.Page(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.PageViews.Points) != 7 {
		t.Errorf("expected 7 page-view points, got %d", len(page.PageViews.Points))
	}
	if len(page.Funnel) != 5 || page.Funnel[0].Conversion != 100 {
		t.Errorf("unexpected funnel: %+v", page.Funnel)
	}
	if len(page.DomainPerformance) != 3 {
		t.Errorf("expected 3 performance rows, got %d", len(page.DomainPerformance))
	}
	var sweep float64
	for _, s := range page.TrafficPie {
		sweep += s.EndAngle - s.StartAngle
	}
	if len(page.TrafficPie) > 0 && (sweep < 359.999 || sweep > 360.001) {
		t.Errorf("traffic pie sweeps %v degrees", sweep)
	}
}

type fakeGenerator struct{}

func (fakeGenerator) PageViews([]time.Time) []domain.PageViewDay     { return nil }
func (fakeGenerator) Conversions([]time.Time) []domain.ConversionDay { return nil }
func (fakeGenerator) Events([]*domain.Domain, []time.Time, time.Time) []domain.AnalyticsEvent {
	return nil
}
