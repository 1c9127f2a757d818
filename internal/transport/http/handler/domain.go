package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ErlanBelekov/netzone/internal/domain"
	"github.com/ErlanBelekov/netzone/internal/usecase"
)

type domainManager interface {
	List(ctx context.Context, status domain.DomainStatus) ([]*domain.Domain, error)
	Counts(ctx context.Context) (usecase.DomainCounts, error)
	Add(ctx context.Context, input usecase.AddDomainInput) (*domain.Domain, error)
	Update(ctx context.Context, id int64, patch domain.DomainPatch) (*domain.Domain, error)
	Delete(ctx context.Context, id int64) error
}

type DomainHandler struct {
	domains domainManager
	logger  *slog.Logger
}

func NewDomainHandler(domains domainManager, logger *slog.Logger) *DomainHandler {
	return &DomainHandler{domains: domains, logger: logger.With("component", "domain_handler")}
}

type listDomainsResponse struct {
	Domains []domainResponse     `json:"domains"`
	Counts  usecase.DomainCounts `json:"counts"`
}

// GET /admin/domains?status=
func (h *DomainHandler) List(c *gin.Context) {
	status := domain.DomainStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidStatus})
		return
	}

	ds, err := h.domains.List(c.Request.Context(), status)
	if err != nil {
		h.internalError(c, "list domains", err)
		return
	}
	counts, err := h.domains.Counts(c.Request.Context())
	if err != nil {
		h.internalError(c, "count domains", err)
		return
	}

	c.JSON(http.StatusOK, listDomainsResponse{Domains: toDomainResponses(ds), Counts: counts})
}

type createDomainRequest struct {
	DomainName   string      `json:"domain_name"   binding:"required"`
	Nameservers  []string    `json:"nameservers"   binding:"omitempty,max=2"`
	Price        json.Number `json:"price"         binding:"required"`
	Tagline      string      `json:"tagline"`
	ThemeVariant int         `json:"theme_variant" binding:"omitempty,min=1,max=3"`
}

// POST /admin/domains
// Price may be sent as a number or a numeric string.
func (h *DomainHandler) Create(c *gin.Context) {
	var req createDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	price, ok := parsePrice(req.Price)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidPrice})
		return
	}
	if req.ThemeVariant == 0 {
		req.ThemeVariant = 1
	}

	d, err := h.domains.Add(c.Request.Context(), usecase.AddDomainInput{
		DomainName:   req.DomainName,
		Nameservers:  req.Nameservers,
		Price:        price,
		Tagline:      req.Tagline,
		ThemeVariant: req.ThemeVariant,
	})
	if err != nil {
		h.internalError(c, "add domain", err)
		return
	}

	c.JSON(http.StatusCreated, toDomainResponse(d))
}

type updateDomainRequest struct {
	DomainName   *string              `json:"domain_name"   binding:"omitempty,min=1"`
	Nameservers  []string             `json:"nameservers"   binding:"omitempty,max=2"`
	Status       *domain.DomainStatus `json:"status"`
	Price        *json.Number         `json:"price"`
	Tagline      *string              `json:"tagline"`
	ThemeVariant *int                 `json:"theme_variant" binding:"omitempty,min=1,max=3"`
}

// PATCH /admin/domains/:id
func (h *DomainHandler) Update(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return
	}

	var req updateDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidStatus})
		return
	}

	patch := domain.DomainPatch{
		DomainName:   req.DomainName,
		Nameservers:  req.Nameservers,
		Status:       req.Status,
		Tagline:      req.Tagline,
		ThemeVariant: req.ThemeVariant,
	}
	if req.Price != nil {
		price, ok := parsePrice(*req.Price)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidPrice})
			return
		}
		patch.Price = &price
	}

	d, err := h.domains.Update(c.Request.Context(), id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrDomainNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errDomainNotFound})
			return
		}
		h.internalError(c, "update domain", err)
		return
	}

	c.JSON(http.StatusOK, toDomainResponse(d))
}

// DELETE /admin/domains/:id
// Deleting an id that does not exist still answers 204.
func (h *DomainHandler) Delete(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return
	}
	if err := h.domains.Delete(c.Request.Context(), id); err != nil {
		h.internalError(c, "delete domain", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DomainHandler) internalError(c *gin.Context, op string, err error) {
	h.logger.ErrorContext(c.Request.Context(), op, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
}
