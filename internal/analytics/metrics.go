package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/ErlanBelekov/netzone/internal/chart"
	"github.com/ErlanBelekov/netzone/internal/domain"
)

const (
	topReferrerLimit       = 5
	DomainPerformanceLimit = 10
	directReferrer         = "direct"
)

type OverallMetrics struct {
	TotalPageViews      int     `json:"total_page_views"`
	TotalUniqueVisitors int     `json:"total_unique_visitors"`
	AvgBounceRate       float64 `json:"avg_bounce_rate"`
	AvgSessionDuration  int     `json:"avg_session_duration"`
	TotalInquiries      int     `json:"total_inquiries"`
	ConversionRate      float64 `json:"conversion_rate"`
}

// Overall totals the whole page-view series. Inquiries come from the
// inquiry list, not the synthetic conversion series.
func (s *Snapshot) Overall() OverallMetrics {
	m := OverallMetrics{TotalInquiries: len(s.Inquiries)}
	if len(s.PageViews) == 0 {
		return m
	}

	var bounce float64
	var session int
	for _, d := range s.PageViews {
		m.TotalPageViews += d.Views
		m.TotalUniqueVisitors += d.UniqueVisitors
		bounce += d.BounceRate
		session += d.AvgSessionDuration
	}
	n := len(s.PageViews)
	m.AvgBounceRate = round2(bounce / float64(n))
	m.AvgSessionDuration = session / n
	m.ConversionRate = rate(m.TotalInquiries, m.TotalPageViews)
	return m
}

type ReferrerCount struct {
	Referrer string `json:"referrer"`
	Count    int    `json:"count"`
}

type DayViews struct {
	Date  string `json:"date"`
	Views int    `json:"views"`
}

type DomainMetrics struct {
	DomainID       int64           `json:"domain_id"`
	TotalViews     int             `json:"total_views"`
	UniqueVisitors int             `json:"unique_visitors"`
	Inquiries      int             `json:"inquiries"`
	ConversionRate float64         `json:"conversion_rate"`
	TopReferrers   []ReferrerCount `json:"top_referrers"`
	ViewsByDay     []DayViews      `json:"views_by_day"`
}

// Domain aggregates one domain's events and inquiries that are strictly
// newer than now minus windowDays.
func (s *Snapshot) Domain(domainID int64, windowDays int) DomainMetrics {
	if windowDays <= 0 {
		windowDays = s.WindowDays
	}
	cutoff := s.Now.Add(-time.Duration(windowDays) * day)

	var recent []domain.AnalyticsEvent
	for _, e := range s.Events {
		if e.DomainID == domainID && e.Timestamp.After(cutoff) {
			recent = append(recent, e)
		}
	}

	m := DomainMetrics{DomainID: domainID}
	for _, inq := range s.Inquiries {
		if inq.DomainID == domainID && inq.CreatedAt.After(cutoff) {
			m.Inquiries++
		}
	}

	visitors := make(map[string]struct{})
	for _, e := range recent {
		if e.Type == domain.EventPageView {
			m.TotalViews++
		}
		if e.IPAddress != "" {
			visitors[e.IPAddress] = struct{}{}
		}
	}
	m.UniqueVisitors = len(visitors)
	m.ConversionRate = rate(m.Inquiries, m.TotalViews)
	m.TopReferrers = TopReferrers(recent, topReferrerLimit)
	m.ViewsByDay = ViewsByDay(recent, s.Now, windowDays)
	return m
}

// TopReferrers counts events per referrer, an empty referrer counting as
// direct, and returns the busiest ones. Ties keep first-seen order.
func TopReferrers(events []domain.AnalyticsEvent, limit int) []ReferrerCount {
	index := make(map[string]int)
	var out []ReferrerCount
	for _, e := range events {
		ref := e.Referrer
		if ref == "" {
			ref = directReferrer
		}
		i, ok := index[ref]
		if !ok {
			i = len(out)
			index[ref] = i
			out = append(out, ReferrerCount{Referrer: ref})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Count > out[b].Count })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ViewsByDay is a zero-filled page_view histogram over the days of the
// window, oldest first.
func ViewsByDay(events []domain.AnalyticsEvent, now time.Time, windowDays int) []DayViews {
	days := Days(now, windowDays)
	out := make([]DayViews, len(days))
	index := make(map[string]int, len(days))
	for i, d := range days {
		key := DateKey(d)
		out[i] = DayViews{Date: key}
		index[key] = i
	}
	for _, e := range events {
		if e.Type != domain.EventPageView {
			continue
		}
		if i, ok := index[DateKey(e.Timestamp)]; ok {
			out[i].Views++
		}
	}
	return out
}

// PageViewSeries is the trailing rangeDays of the page-view series.
func (s *Snapshot) PageViewSeries(rangeDays int) []domain.PageViewDay {
	return tail(s.PageViews, rangeDays)
}

func (s *Snapshot) ConversionSeries(rangeDays int) []domain.ConversionDay {
	return tail(s.Conversions, rangeDays)
}

func tail[T any](xs []T, n int) []T {
	if n <= 0 || n >= len(xs) {
		return xs
	}
	return xs[len(xs)-n:]
}

type DomainPerformance struct {
	Name           string  `json:"name"`
	Views          int     `json:"views"`
	Inquiries      int     `json:"inquiries"`
	ConversionRate float64 `json:"conversion_rate"`
}

// Performance ranks domains by page views over rangeDays.
func (s *Snapshot) Performance(rangeDays, limit int) []DomainPerformance {
	out := make([]DomainPerformance, 0, len(s.Domains))
	for _, d := range s.Domains {
		m := s.Domain(d.ID, rangeDays)
		out = append(out, DomainPerformance{
			Name:           d.DomainName,
			Views:          m.TotalViews,
			Inquiries:      m.Inquiries,
			ConversionRate: m.ConversionRate,
		})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Views > out[b].Views })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

type TrafficSource struct {
	Source     string  `json:"source"`
	Visits     int     `json:"visits"`
	Percentage float64 `json:"percentage"`
}

var sourceOrder = []string{"Direct", "Google", "Social Media", "Referrals"}

func sourceFor(referrer string) string {
	switch referrer {
	case "", directReferrer:
		return "Direct"
	case "google.com":
		return "Google"
	case "facebook.com", "twitter.com":
		return "Social Media"
	default:
		return "Referrals"
	}
}

// TrafficSources groups the window's events by referrer family, busiest
// first. Sources with no visits are left out.
func (s *Snapshot) TrafficSources() []TrafficSource {
	counts := make(map[string]int)
	var total int
	for _, e := range s.Events {
		counts[sourceFor(e.Referrer)]++
		total++
	}

	var out []TrafficSource
	for _, src := range sourceOrder {
		if counts[src] == 0 {
			continue
		}
		out = append(out, TrafficSource{
			Source:     src,
			Visits:     counts[src],
			Percentage: math.Round(float64(counts[src])/float64(total)*1000) / 10,
		})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Visits > out[b].Visits })
	return out
}

// FunnelStages estimates the visitor funnel from the overall totals.
func (s *Snapshot) FunnelStages() []chart.Point {
	o := s.Overall()
	views := float64(o.TotalPageViews)
	inquiries := float64(o.TotalInquiries)
	return []chart.Point{
		{Label: "Page Views", Value: views},
		{Label: "Domain Views", Value: math.Floor(views * 0.6)},
		{Label: "Inquiry Form Views", Value: math.Floor(views * 0.3)},
		{Label: "Inquiries Submitted", Value: inquiries},
		{Label: "Qualified Leads", Value: math.Floor(inquiries * 0.7)},
	}
}
