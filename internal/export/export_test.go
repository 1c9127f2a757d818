package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ErlanBelekov/netzone/internal/analytics"
	"github.com/ErlanBelekov/netzone/internal/domain"
)

var created = time.Date(2026, 2, 3, 23, 30, 0, 0, time.UTC)

func TestInquiriesCSV(t *testing.T) {
	inquiries := []*domain.Inquiry{
		{
			DomainID:  1,
			Name:      "Ada",
			Email:     "ada@example.com",
			Budget:    domain.Budget10kTo25k,
			Reseller:  true,
			Status:    domain.InquiryNew,
			Message:   `Hi "there"`,
			CreatedAt: created,
		},
		{
			DomainID:  99,
			Name:      "Lovelace, Ada",
			Email:     "ada@example.com",
			Status:    domain.InquiryClosed,
			Message:   "plain",
			CreatedAt: created,
		},
	}

	out := string(InquiriesCSV(inquiries, map[int64]string{1: "techstartup.com"}))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "Date,Domain,Name,Email,Budget,Reseller,Status,Message", lines[0])
	assert.Equal(t, `2026-02-03,techstartup.com,Ada,ada@example.com,10k-25k,Yes,new,"Hi ""there"""`, lines[1])
	assert.Equal(t, `2026-02-03,Unknown Domain,"Lovelace, Ada",ada@example.com,Not specified,No,closed,"plain"`, lines[2])
}

func TestInquiriesCSV_HeaderOnly(t *testing.T) {
	assert.Equal(t, "Date,Domain,Name,Email,Budget,Reseller,Status,Message", string(InquiriesCSV(nil, nil)))
}

type oneDay struct{}

func (oneDay) PageViews(days []time.Time) []domain.PageViewDay {
	return []domain.PageViewDay{{Date: "2026-02-03", Views: 10, UniqueVisitors: 5, BounceRate: 0.5, AvgSessionDuration: 200}}
}
func (oneDay) Conversions([]time.Time) []domain.ConversionDay { return nil }
func (oneDay) Events([]*domain.Domain, []time.Time, time.Time) []domain.AnalyticsEvent {
	return []domain.AnalyticsEvent{{DomainID: 1, Type: domain.EventPageView, Timestamp: created, Referrer: "google.com"}}
}

func TestAnalyticsJSON(t *testing.T) {
	snap := analytics.Derive(
		[]*domain.Domain{{ID: 1, DomainName: "techstartup.com"}},
		[]*domain.Inquiry{{ID: 1, DomainID: 1, CreatedAt: created}},
		created, 30, oneDay{},
	)

	raw, err := AnalyticsJSON(NewAnalyticsReport(snap, 30, created))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"overview\": {")

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &got))
	for _, key := range []string{"overview", "page_views", "domain_performance", "traffic_sources", "export_date"} {
		assert.Contains(t, got, key)
	}

	var perf []analytics.DomainPerformance
	require.NoError(t, json.Unmarshal(got["domain_performance"], &perf))
	require.Len(t, perf, 1)
	assert.Equal(t, analytics.DomainPerformance{Name: "techstartup.com", Views: 1, Inquiries: 1, ConversionRate: 100}, perf[0])
}

func TestAnalyticsFilename(t *testing.T) {
	assert.Equal(t, "analytics-2026-02-03.json", AnalyticsFilename(created))
}
