package export

import (
	"encoding/json"
	"time"

	"github.com/ErlanBelekov/netzone/internal/analytics"
	"github.com/ErlanBelekov/netzone/internal/domain"
)

type AnalyticsReport struct {
	Overview          analytics.OverallMetrics      `json:"overview"`
	PageViews         []domain.PageViewDay          `json:"page_views"`
	DomainPerformance []analytics.DomainPerformance `json:"domain_performance"`
	TrafficSources    []analytics.TrafficSource     `json:"traffic_sources"`
	ExportDate        time.Time                     `json:"export_date"`
}

// NewAnalyticsReport collects the exportable view of snap for the last
// rangeDays days.
func NewAnalyticsReport(snap *analytics.Snapshot, rangeDays int, at time.Time) AnalyticsReport {
	return AnalyticsReport{
		Overview:          snap.Overall(),
		PageViews:         snap.PageViewSeries(rangeDays),
		DomainPerformance: snap.Performance(rangeDays, analytics.DomainPerformanceLimit),
		TrafficSources:    snap.TrafficSources(),
		ExportDate:        at.UTC(),
	}
}

// AnalyticsJSON renders the report indented by two spaces.
func AnalyticsJSON(r AnalyticsReport) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

func AnalyticsFilename(at time.Time) string {
	return "analytics-" + at.UTC().Format("2006-01-02") + ".json"
}
