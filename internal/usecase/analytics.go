package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ErlanBelekov/netzone/internal/analytics"
	"github.com/ErlanBelekov/netzone/internal/chart"
	"github.com/ErlanBelekov/netzone/internal/domain"
	"github.com/ErlanBelekov/netzone/internal/metrics"
	"github.com/ErlanBelekov/netzone/internal/repository"
)

const (
	maxLiveEvents = 10_000
	trendDays     = 7
	barHeight     = 200
)

// AnalyticsUsecase serves analytics from a cached derivation that is
// rebuilt whenever domains or inquiries change, or the day rolls over.
// Live events are kept separately and survive rebuilds.
type AnalyticsUsecase struct {
	domains    repository.DomainRepository
	inquiries  repository.InquiryRepository
	generator  analytics.Generator
	windowDays int
	now        func() time.Time
	logger     *slog.Logger

	mu         sync.Mutex
	cached     *analytics.Snapshot
	domainRev  uint64
	inquiryRev uint64
	liveEvents []domain.AnalyticsEvent
}

func NewAnalyticsUsecase(
	domains repository.DomainRepository,
	inquiries repository.InquiryRepository,
	generator analytics.Generator,
	windowDays int,
	logger *slog.Logger,
) *AnalyticsUsecase {
	if windowDays <= 0 {
		windowDays = analytics.DefaultWindowDays
	}
	return &AnalyticsUsecase{
		domains:    domains,
		inquiries:  inquiries,
		generator:  generator,
		windowDays: windowDays,
		now:        time.Now,
		logger:     logger.With("component", "analytics_usecase"),
	}
}

// SetClock replaces time.Now.
func (u *AnalyticsUsecase) SetClock(now func() time.Time) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.now = now
}

// Snapshot returns the current derivation with live events merged in.
func (u *AnalyticsUsecase) Snapshot(ctx context.Context) (*analytics.Snapshot, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	now := u.now()
	domainRev, inquiryRev := u.domains.Revision(), u.inquiries.Revision()
	stale := u.cached == nil ||
		domainRev != u.domainRev ||
		inquiryRev != u.inquiryRev ||
		analytics.DateKey(now) != analytics.DateKey(u.cached.Now)

	if stale {
		ds, err := u.domains.List(ctx, "")
		if err != nil {
			return nil, fmt.Errorf("list domains: %w", err)
		}
		inqs, err := u.inquiries.List(ctx, "")
		if err != nil {
			return nil, fmt.Errorf("list inquiries: %w", err)
		}
		u.cached = analytics.Derive(ds, inqs, now, u.windowDays, u.generator)
		u.domainRev, u.inquiryRev = domainRev, inquiryRev
		metrics.AnalyticsRegenerationsTotal.Inc()
		u.logger.DebugContext(ctx, "analytics regenerated", "domains", len(ds), "inquiries", len(inqs), "events", len(u.cached.Events))
	}

	return u.cached.WithEvents(u.liveEvents), nil
}

type TrackEventInput struct {
	Type       domain.EventType
	DomainID   int64
	DomainName string
	Referrer   string
	IPAddress  string
	UserAgent  string
	Location   string
	Metadata   map[string]string
}

// TrackEvent appends a live event. It never fails; the oldest live events
// are dropped once the buffer is full.
func (u *AnalyticsUsecase) TrackEvent(ctx context.Context, input TrackEventInput) domain.AnalyticsEvent {
	u.mu.Lock()
	defer u.mu.Unlock()

	e := domain.AnalyticsEvent{
		ID:         uuid.NewString(),
		DomainID:   input.DomainID,
		DomainName: input.DomainName,
		Type:       input.Type,
		Timestamp:  u.now(),
		Referrer:   input.Referrer,
		Location:   input.Location,
		IPAddress:  input.IPAddress,
		UserAgent:  input.UserAgent,
		Metadata:   input.Metadata,
	}
	if len(u.liveEvents) >= maxLiveEvents {
		u.liveEvents = append(u.liveEvents[:0:0], u.liveEvents[1:]...)
	}
	u.liveEvents = append(u.liveEvents, e)

	metrics.EventsTrackedTotal.WithLabelValues(string(e.Type)).Inc()
	u.logger.DebugContext(ctx, "event tracked", "type", e.Type, "domain_id", e.DomainID)
	return e
}

func (u *AnalyticsUsecase) DomainMetrics(ctx context.Context, domainID int64, windowDays int) (analytics.DomainMetrics, error) {
	snap, err := u.Snapshot(ctx)
	if err != nil {
		return analytics.DomainMetrics{}, err
	}
	return snap.Domain(domainID, windowDays), nil
}

// MetricCard is one headline number, with a short trend where one exists.
type MetricCard struct {
	Title  string          `json:"title"`
	Value  float64         `json:"value"`
	Suffix string          `json:"suffix,omitempty"`
	Trend  []chart.BarItem `json:"trend,omitempty"`
}

type AnalyticsPage struct {
	RangeDays         int                           `json:"range_days"`
	Overview          analytics.OverallMetrics      `json:"overview"`
	Cards             []MetricCard                  `json:"cards"`
	PageViews         *chart.LineChart              `json:"page_views"`
	Visitors          *chart.LineChart              `json:"visitors"`
	ConversionRate    *chart.LineChart              `json:"conversion_rate"`
	DomainPerformance []analytics.DomainPerformance `json:"domain_performance"`
	PerformanceBars   []chart.BarItem               `json:"performance_bars"`
	TrafficSources    []analytics.TrafficSource     `json:"traffic_sources"`
	TrafficPie        []chart.PieSlice              `json:"traffic_pie"`
	Funnel            []chart.FunnelStage           `json:"funnel"`
}

// Page assembles everything the analytics page draws for the trailing
// rangeDays days.
func (u *AnalyticsUsecase) Page(ctx context.Context, rangeDays int) (*AnalyticsPage, error) {
	snap, err := u.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	views := snap.PageViewSeries(rangeDays)
	conversions := snap.ConversionSeries(rangeDays)
	overview := snap.Overall()

	viewPts := make([]chart.Point, len(views))
	visitorPts := make([]chart.Point, len(views))
	for i, d := range views {
		viewPts[i] = chart.Point{Label: d.Date, Value: float64(d.Views)}
		visitorPts[i] = chart.Point{Label: d.Date, Value: float64(d.UniqueVisitors)}
	}
	convPts := make([]chart.Point, len(conversions))
	for i, d := range conversions {
		convPts[i] = chart.Point{Label: d.Date, Value: d.ConversionRate}
	}

	perf := snap.Performance(rangeDays, analytics.DomainPerformanceLimit)
	perfPts := make([]chart.Point, len(perf))
	for i, p := range perf {
		perfPts[i] = chart.Point{Label: p.Name, Value: float64(p.Views)}
	}

	sources := snap.TrafficSources()
	sourcePts := make([]chart.Point, len(sources))
	for i, s := range sources {
		sourcePts[i] = chart.Point{Label: s.Source, Value: float64(s.Visits)}
	}

	return &AnalyticsPage{
		RangeDays: rangeDays,
		Overview:  overview,
		Cards: []MetricCard{
			{Title: "Total Page Views", Value: float64(overview.TotalPageViews), Trend: chart.Bar(lastN(viewPts, trendDays), 100)},
			{Title: "Unique Visitors", Value: float64(overview.TotalUniqueVisitors), Trend: chart.Bar(lastN(visitorPts, trendDays), 100)},
			{Title: "Total Inquiries", Value: float64(overview.TotalInquiries)},
			{Title: "Conversion Rate", Value: overview.ConversionRate, Suffix: "%"},
			{Title: "Avg. Bounce Rate", Value: overview.AvgBounceRate * 100, Suffix: "%"},
			{Title: "Avg. Session Duration", Value: float64(overview.AvgSessionDuration), Suffix: "s"},
		},
		PageViews:         chart.Line(viewPts),
		Visitors:          chart.Line(visitorPts),
		ConversionRate:    chart.Line(convPts),
		DomainPerformance: perf,
		PerformanceBars:   chart.Bar(perfPts, barHeight),
		TrafficSources:    sources,
		TrafficPie:        chart.Pie(sourcePts),
		Funnel:            chart.Funnel(snap.FunnelStages()),
	}, nil
}

func lastN(pts []chart.Point, n int) []chart.Point {
	if len(pts) <= n {
		return pts
	}
	return pts[len(pts)-n:]
}
