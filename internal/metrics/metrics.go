package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/ErlanBelekov/netzone/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Store metrics

	DomainsAddedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "netzone",
		Name:      "domains_added_total",
		Help:      "Domains added through the domain manager.",
	})

	InquiriesSubmittedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "netzone",
		Name:      "inquiries_submitted_total",
		Help:      "Inquiries submitted through landing pages.",
	})

	NotificationFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "netzone",
		Name:      "inquiry_notification_failures_total",
		Help:      "New-inquiry notifications that could not be delivered.",
	})

	NotificationAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "netzone",
		Name:      "inquiry_notification_attempts_total",
		Help:      "Notification delivery attempts, by outcome.",
	}, []string{"outcome"})

	// Auth metrics

	LoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "netzone",
		Name:      "logins_total",
		Help:      "Login attempts, by outcome.",
	}, []string{"outcome"})

	// Analytics metrics

	EventsTrackedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "netzone",
		Name:      "analytics_events_tracked_total",
		Help:      "Live analytics events recorded, by type.",
	}, []string{"type"})

	AnalyticsRegenerationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "netzone",
		Name:      "analytics_regenerations_total",
		Help:      "Times the synthetic analytics snapshot was rebuilt.",
	})

	RealtimeTicksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "netzone",
		Name:      "realtime_ticks_total",
		Help:      "Real-time widget counter updates applied.",
	})

	// HTTP metrics

	GuardRejectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "netzone",
		Name:      "guard_rejections_total",
		Help:      "Requests refused by the route guard, by reason.",
	}, []string{"reason"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "netzone",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "netzone",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		DomainsAddedTotal,
		InquiriesSubmittedTotal,
		NotificationFailuresTotal,
		NotificationAttemptsTotal,
		LoginsTotal,
		EventsTrackedTotal,
		AnalyticsRegenerationsTotal,
		RealtimeTicksTotal,
		GuardRejectionsTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

// NewServer serves /metrics and the liveness/readiness probes on a separate port.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Readiness(r.Context()))
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, result health.HealthResult) {
	w.Header().Set("Content-Type", "application/json")
	if result.Status != "up" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(result)
}

