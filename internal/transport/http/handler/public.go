package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ErlanBelekov/netzone/internal/domain"
	"github.com/ErlanBelekov/netzone/internal/usecase"
)

// Point-of-use views of the use cases, so tests can inject fakes.
type domainFinder interface {
	Active(ctx context.Context) ([]*domain.Domain, error)
	FindByName(ctx context.Context, name string) (*domain.Domain, error)
}

type inquirySubmitter interface {
	Submit(ctx context.Context, input usecase.SubmitInquiryInput) (*domain.Inquiry, error)
}

type eventTracker interface {
	TrackEvent(ctx context.Context, input usecase.TrackEventInput) domain.AnalyticsEvent
}

// PublicHandler serves the home page and the per-domain landing pages.
type PublicHandler struct {
	domains   domainFinder
	inquiries inquirySubmitter
	events    eventTracker
	logger    *slog.Logger
}

func NewPublicHandler(domains domainFinder, inquiries inquirySubmitter, events eventTracker, logger *slog.Logger) *PublicHandler {
	return &PublicHandler{
		domains:   domains,
		inquiries: inquiries,
		events:    events,
		logger:    logger.With("component", "public_handler"),
	}
}

type homeResponse struct {
	Domains     []domainResponse `json:"domains"`
	ActiveCount int              `json:"active_count"`
}

// GET /
func (h *PublicHandler) Home(c *gin.Context) {
	active, err := h.domains.Active(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list active domains", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	c.JSON(http.StatusOK, homeResponse{Domains: toDomainResponses(active), ActiveCount: len(active)})
}

type landingResponse struct {
	Domain    domainResponse `json:"domain"`
	Theme     domain.Theme   `json:"theme"`
	Available bool           `json:"available"`
}

// GET /domain/:name
func (h *PublicHandler) Landing(c *gin.Context) {
	d, ok := h.findDomain(c)
	if !ok {
		return
	}

	h.track(c, domain.EventPageView, d)
	c.JSON(http.StatusOK, landingResponse{
		Domain:    toDomainResponse(d),
		Theme:     domain.ThemeFor(d.ThemeVariant),
		Available: d.Status == domain.DomainActive,
	})
}

type submitInquiryRequest struct {
	Name     string `json:"name"     binding:"required"`
	Email    string `json:"email"    binding:"required,email"`
	Message  string `json:"message"  binding:"required"`
	Budget   string `json:"budget"   binding:"omitempty,oneof=under-5k 5k-10k 10k-25k 25k-50k over-50k"`
	Reseller bool   `json:"reseller"`
}

// POST /domain/:name/inquiries
func (h *PublicHandler) SubmitInquiry(c *gin.Context) {
	var req submitInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, ok := h.findDomain(c)
	if !ok {
		return
	}

	inq, err := h.inquiries.Submit(c.Request.Context(), usecase.SubmitInquiryInput{
		DomainID:   d.ID,
		DomainName: d.DomainName,
		Name:       req.Name,
		Email:      req.Email,
		Message:    req.Message,
		Budget:     req.Budget,
		Reseller:   req.Reseller,
	})
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "submit inquiry", "domain_id", d.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	h.track(c, domain.EventInquirySubmit, d)
	c.JSON(http.StatusCreated, toInquiryResponse(inq))
}

func (h *PublicHandler) findDomain(c *gin.Context) (*domain.Domain, bool) {
	name := c.Param("name")
	d, err := h.domains.FindByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrDomainNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errDomainNotFound})
			return nil, false
		}
		h.logger.ErrorContext(c.Request.Context(), "find domain", "domain", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return nil, false
	}
	return d, true
}

func (h *PublicHandler) track(c *gin.Context, typ domain.EventType, d *domain.Domain) {
	h.events.TrackEvent(c.Request.Context(), usecase.TrackEventInput{
		Type:       typ,
		DomainID:   d.ID,
		DomainName: d.DomainName,
		Referrer:   referrerHost(c.Request.Referer()),
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})
}

// referrerHost reduces a Referer header to its bare host, the form the
// traffic-source breakdown groups on. No header means a direct visit.
func referrerHost(raw string) string {
	if raw == "" {
		return "direct"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
