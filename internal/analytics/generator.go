package analytics

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ErlanBelekov/netzone/internal/domain"
)

// Generator produces the datasets a real telemetry pipeline would deliver.
// Swap SyntheticGenerator for an ingestion-backed implementation without
// touching Derive or its consumers.
type Generator interface {
	PageViews(days []time.Time) []domain.PageViewDay
	Events(domains []*domain.Domain, days []time.Time, now time.Time) []domain.AnalyticsEvent
	Conversions(days []time.Time) []domain.ConversionDay
}

var (
	referrers = []string{"google.com", "direct", "facebook.com", "twitter.com"}
	locations = []string{"US", "UK", "CA", "AU", "DE"}
)

const syntheticUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// SyntheticGenerator makes up plausible demo numbers. A fixed seed gives a
// reproducible sequence.
type SyntheticGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSyntheticGenerator seeds the generator; seed 0 picks a time-based seed.
func NewSyntheticGenerator(seed uint64) *SyntheticGenerator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &SyntheticGenerator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (g *SyntheticGenerator) PageViews(days []time.Time) []domain.PageViewDay {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]domain.PageViewDay, 0, len(days))
	for _, day := range days {
		out = append(out, domain.PageViewDay{
			Date:               DateKey(day),
			Views:              g.rng.IntN(200) + 50,
			UniqueVisitors:     g.rng.IntN(150) + 30,
			BounceRate:         round2(g.rng.Float64()*0.4 + 0.3),
			AvgSessionDuration: g.rng.IntN(300) + 120,
		})
	}
	return out
}

func (g *SyntheticGenerator) Events(domains []*domain.Domain, days []time.Time, now time.Time) []domain.AnalyticsEvent {
	g.mu.Lock()
	defer g.mu.Unlock()

	var out []domain.AnalyticsEvent
	for _, d := range domains {
		for _, day := range days {
			count := g.rng.IntN(10)
			for i := 0; i < count; i++ {
				ts := day.Add(time.Duration(g.rng.Int64N(int64(24 * time.Hour))))
				if ts.After(now) {
					ts = now
				}
				out = append(out, domain.AnalyticsEvent{
					ID:         fmt.Sprintf("%d-%d-%d", d.ID, day.UnixMilli(), i),
					DomainID:   d.ID,
					DomainName: d.DomainName,
					Type:       domain.EventTypes[g.rng.IntN(len(domain.EventTypes))],
					Timestamp:  ts,
					UserAgent:  syntheticUserAgent,
					IPAddress:  fmt.Sprintf("192.168.1.%d", g.rng.IntN(255)),
					Referrer:   referrers[g.rng.IntN(len(referrers))],
					Location:   locations[g.rng.IntN(len(locations))],
				})
			}
		}
	}
	return out
}

func (g *SyntheticGenerator) Conversions(days []time.Time) []domain.ConversionDay {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]domain.ConversionDay, 0, len(days))
	for _, day := range days {
		views := g.rng.IntN(200) + 50
		inquiries := g.rng.IntN(10) + 1
		out = append(out, domain.ConversionDay{
			Date:           DateKey(day),
			PageViews:      views,
			Inquiries:      inquiries,
			ConversionRate: rate(inquiries, views),
		})
	}
	return out
}
