package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ErlanBelekov/netzone/internal/domain"
	"github.com/ErlanBelekov/netzone/internal/export"
	"github.com/ErlanBelekov/netzone/internal/usecase"
)

type inquiryManager interface {
	List(ctx context.Context, status domain.InquiryStatus) ([]*domain.Inquiry, error)
	Counts(ctx context.Context) (usecase.InquiryCounts, error)
	Update(ctx context.Context, id int64, patch domain.InquiryPatch) (*domain.Inquiry, error)
}

type domainLister interface {
	List(ctx context.Context, status domain.DomainStatus) ([]*domain.Domain, error)
}

type InquiryHandler struct {
	inquiries inquiryManager
	domains   domainLister
	logger    *slog.Logger
}

func NewInquiryHandler(inquiries inquiryManager, domains domainLister, logger *slog.Logger) *InquiryHandler {
	return &InquiryHandler{
		inquiries: inquiries,
		domains:   domains,
		logger:    logger.With("component", "inquiry_handler"),
	}
}

type listInquiriesResponse struct {
	Inquiries []inquiryResponse     `json:"inquiries"`
	Counts    usecase.InquiryCounts `json:"counts"`
}

// GET /admin/inquiries?status=
func (h *InquiryHandler) List(c *gin.Context) {
	status := domain.InquiryStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidStatus})
		return
	}

	inqs, err := h.inquiries.List(c.Request.Context(), status)
	if err != nil {
		h.internalError(c, "list inquiries", err)
		return
	}
	counts, err := h.inquiries.Counts(c.Request.Context())
	if err != nil {
		h.internalError(c, "count inquiries", err)
		return
	}

	c.JSON(http.StatusOK, listInquiriesResponse{Inquiries: toInquiryResponses(inqs), Counts: counts})
}

type updateInquiryRequest struct {
	Status   *domain.InquiryStatus `json:"status"`
	Budget   *string               `json:"budget"   binding:"omitempty,oneof=under-5k 5k-10k 10k-25k 25k-50k over-50k"`
	Reseller *bool                 `json:"reseller"`
	Message  *string               `json:"message"`
}

// PATCH /admin/inquiries/:id
func (h *InquiryHandler) Update(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return
	}

	var req updateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidStatus})
		return
	}

	inq, err := h.inquiries.Update(c.Request.Context(), id, domain.InquiryPatch{
		Status:   req.Status,
		Budget:   req.Budget,
		Reseller: req.Reseller,
		Message:  req.Message,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInquiryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errInquiryNotFound})
			return
		}
		h.internalError(c, "update inquiry", err)
		return
	}

	c.JSON(http.StatusOK, toInquiryResponse(inq))
}

// GET /admin/inquiries/export
func (h *InquiryHandler) Export(c *gin.Context) {
	inqs, err := h.inquiries.List(c.Request.Context(), "")
	if err != nil {
		h.internalError(c, "list inquiries for export", err)
		return
	}
	ds, err := h.domains.List(c.Request.Context(), "")
	if err != nil {
		h.internalError(c, "list domains for export", err)
		return
	}

	names := make(map[int64]string, len(ds))
	for _, d := range ds {
		names[d.ID] = d.DomainName
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.InquiriesFilename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", export.InquiriesCSV(inqs, names))
}

func (h *InquiryHandler) internalError(c *gin.Context, op string, err error) {
	h.logger.ErrorContext(c.Request.Context(), op, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
}
