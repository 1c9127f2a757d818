// Package analytics derives the demo page-view, event and conversion
// datasets from the current domains and inquiries, and answers the
// aggregate queries the analytics pages are built on.
//
// Derive is pure given its Generator: the same inputs and a deterministic
// generator yield the same Snapshot.
package analytics

import (
	"math"
	"time"

	"github.com/ErlanBelekov/netzone/internal/domain"
)

const DefaultWindowDays = 30

const day = 24 * time.Hour

// Snapshot is one derivation. It is never authoritative and is thrown away
// whenever domains or inquiries change.
type Snapshot struct {
	Now         time.Time
	WindowDays  int
	PageViews   []domain.PageViewDay
	Conversions []domain.ConversionDay
	Events      []domain.AnalyticsEvent
	Domains     []*domain.Domain
	Inquiries   []*domain.Inquiry
}

// Derive builds a snapshot covering the trailing windowDays days ending at now.
func Derive(domains []*domain.Domain, inquiries []*domain.Inquiry, now time.Time, windowDays int, gen Generator) *Snapshot {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	days := Days(now, windowDays)

	return &Snapshot{
		Now:         now,
		WindowDays:  windowDays,
		PageViews:   gen.PageViews(days),
		Conversions: gen.Conversions(days),
		Events:      gen.Events(domains, days, now),
		Domains:     domains,
		Inquiries:   inquiries,
	}
}

// WithEvents returns a shallow copy whose event list has extra appended.
func (s *Snapshot) WithEvents(extra []domain.AnalyticsEvent) *Snapshot {
	if len(extra) == 0 {
		return s
	}
	c := *s
	c.Events = make([]domain.AnalyticsEvent, 0, len(s.Events)+len(extra))
	c.Events = append(c.Events, s.Events...)
	c.Events = append(c.Events, extra...)
	return &c
}

// Days returns the UTC midnights of the n days ending with now's day, oldest first.
func Days(now time.Time, n int) []time.Time {
	today := startOfDay(now)
	out := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, today.Add(-time.Duration(i)*day))
	}
	return out
}

func DateKey(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// rate is num/den as a percentage with two decimals; 0 when den is 0.
func rate(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return round2(float64(num) / float64(den) * 100)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
