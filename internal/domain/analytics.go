package domain

import "time"

type EventType string

const (
	EventPageView        EventType = "page_view"
	EventInquiryFormView EventType = "inquiry_form_view"
	EventInquirySubmit   EventType = "inquiry_submit"
)

var EventTypes = []EventType{EventPageView, EventInquiryFormView, EventInquirySubmit}

func (t EventType) Valid() bool {
	switch t {
	case EventPageView, EventInquiryFormView, EventInquirySubmit:
		return true
	}
	return false
}

// AnalyticsEvent is either synthetic (regenerated on every derivation) or
// tracked live. Neither kind is authoritative.
type AnalyticsEvent struct {
	ID         string
	DomainID   int64
	DomainName string
	Type       EventType
	Timestamp  time.Time
	Referrer   string
	Location   string
	IPAddress  string
	UserAgent  string
	Metadata   map[string]string
}

type PageViewDay struct {
	Date               string  `json:"date"`
	Views              int     `json:"views"`
	UniqueVisitors     int     `json:"unique_visitors"`
	BounceRate         float64 `json:"bounce_rate"`
	AvgSessionDuration int     `json:"avg_session_duration"`
}

type ConversionDay struct {
	Date           string  `json:"date"`
	PageViews      int     `json:"page_views"`
	Inquiries      int     `json:"inquiries"`
	ConversionRate float64 `json:"conversion_rate"`
}
