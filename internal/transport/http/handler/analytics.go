package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ErlanBelekov/netzone/internal/analytics"
	"github.com/ErlanBelekov/netzone/internal/export"
	"github.com/ErlanBelekov/netzone/internal/realtime"
	"github.com/ErlanBelekov/netzone/internal/usecase"
)

const defaultRangeDays = 30

type analyticsReader interface {
	Snapshot(ctx context.Context) (*analytics.Snapshot, error)
	Page(ctx context.Context, rangeDays int) (*usecase.AnalyticsPage, error)
	DomainMetrics(ctx context.Context, domainID int64, windowDays int) (analytics.DomainMetrics, error)
}

type realtimeFeed interface {
	Snapshot() realtime.Snapshot
	Pause() realtime.Snapshot
	Resume() realtime.Snapshot
}

type dashboardReader interface {
	Stats(ctx context.Context) (usecase.DashboardStats, error)
}

// AdminHandler serves the dashboard, the analytics page and its exports.
type AdminHandler struct {
	dashboard dashboardReader
	analytics analyticsReader
	realtime  realtimeFeed
	now       func() time.Time
	logger    *slog.Logger
}

func NewAdminHandler(dashboard dashboardReader, reader analyticsReader, feed realtimeFeed, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		dashboard: dashboard,
		analytics: reader,
		realtime:  feed,
		now:       time.Now,
		logger:    logger.With("component", "admin_handler"),
	}
}

// GET /admin
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		h.internalError(c, "dashboard stats", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_domains":    stats.TotalDomains,
		"active_domains":   stats.ActiveDomains,
		"sold_domains":     stats.SoldDomains,
		"total_inquiries":  stats.TotalInquiries,
		"new_inquiries":    stats.NewInquiries,
		"portfolio_value":  stats.PortfolioValue,
		"recent_inquiries": toInquiryResponses(stats.RecentInquiries),
	})
}

// GET /admin/analytics?range=7|30|90
func (h *AdminHandler) Analytics(c *gin.Context) {
	days, ok := rangeParam(c)
	if !ok {
		return
	}
	page, err := h.analytics.Page(c.Request.Context(), days)
	if err != nil {
		h.internalError(c, "analytics page", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /admin/analytics/domains/:id?range=
func (h *AdminHandler) DomainAnalytics(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return
	}
	days, ok := rangeParam(c)
	if !ok {
		return
	}
	m, err := h.analytics.DomainMetrics(c.Request.Context(), id, days)
	if err != nil {
		h.internalError(c, "domain analytics", err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// GET /admin/analytics/export?range=
func (h *AdminHandler) ExportAnalytics(c *gin.Context) {
	days, ok := rangeParam(c)
	if !ok {
		return
	}
	snap, err := h.analytics.Snapshot(c.Request.Context())
	if err != nil {
		h.internalError(c, "analytics snapshot", err)
		return
	}

	now := h.now()
	body, err := export.AnalyticsJSON(export.NewAnalyticsReport(snap, days, now))
	if err != nil {
		h.internalError(c, "encode analytics export", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.AnalyticsFilename(now)+`"`)
	c.Data(http.StatusOK, "application/json", body)
}

// GET /admin/analytics/realtime
func (h *AdminHandler) Realtime(c *gin.Context) {
	c.JSON(http.StatusOK, h.realtime.Snapshot())
}

// POST /admin/analytics/realtime/pause
func (h *AdminHandler) PauseRealtime(c *gin.Context) {
	c.JSON(http.StatusOK, h.realtime.Pause())
}

// POST /admin/analytics/realtime/resume
func (h *AdminHandler) ResumeRealtime(c *gin.Context) {
	c.JSON(http.StatusOK, h.realtime.Resume())
}

// rangeParam reads ?range=, defaulting to 30. It answers 400 itself on a
// value outside 7, 30 and 90.
func rangeParam(c *gin.Context) (int, bool) {
	raw := c.Query("range")
	if raw == "" {
		return defaultRangeDays, true
	}
	days, err := strconv.Atoi(raw)
	switch {
	case err != nil:
	case days == 7, days == 30, days == 90:
		return days, true
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidRange})
	return 0, false
}

func (h *AdminHandler) internalError(c *gin.Context, op string, err error) {
	h.logger.ErrorContext(c.Request.Context(), op, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
}
