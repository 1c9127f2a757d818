package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ErlanBelekov/netzone/internal/auth"
	"github.com/ErlanBelekov/netzone/internal/domain"
	"github.com/ErlanBelekov/netzone/internal/metrics"
	"github.com/ErlanBelekov/netzone/internal/transport/http/middleware"
)

// SessionStore is the subset of auth.Store the handler drives.
type SessionStore interface {
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, input auth.RegisterInput) (*domain.User, error)
	Logout(ctx context.Context)
	UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (*domain.User, error)
	Current() *domain.User
	Token() string
}

// SessionOpener builds the store for one exchange from the caller's token.
type SessionOpener func(ctx context.Context, token string) SessionStore

// OpenWith adapts auth.Sessions to a SessionOpener.
func OpenWith(s *auth.Sessions) SessionOpener {
	return func(ctx context.Context, token string) SessionStore {
		return storeAdapter{s.Open(ctx, token)}
	}
}

type storeAdapter struct{ *auth.Store }

func (a storeAdapter) Token() string {
	if rec := a.Record(); rec != nil {
		return rec.Token
	}
	return ""
}

type AuthHandler struct {
	open   SessionOpener
	logger *slog.Logger
}

func NewAuthHandler(open SessionOpener, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{open: open, logger: logger.With("component", "auth_handler")}
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
// Returns {"user", "token"} on success, 401 on bad credentials.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store := h.open(c.Request.Context(), "")
	u, err := store.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCredentials})
			return
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		h.logger.ErrorContext(c.Request.Context(), "login", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, sessionResponse{User: toUserResponse(u), Token: store.Token()})
}

type registerRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"     binding:"required"`
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store := h.open(c.Request.Context(), "")
	u, err := store.Register(c.Request.Context(), auth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": errUserExists})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "register", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, sessionResponse{User: toUserResponse(u), Token: store.Token()})
}

// POST /auth/logout
// Tokens are held by the client; the server side is only the log line.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.open(c.Request.Context(), middleware.BearerToken(c)).Logout(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// GET /profile
func (h *AuthHandler) Profile(c *gin.Context) {
	u := h.open(c.Request.Context(), middleware.BearerToken(c)).Current()
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(u)})
}

type updateProfileRequest struct {
	Name  *string `json:"name"  binding:"omitempty,min=1"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// PATCH /profile
// Answers with the updated user and a fresh token carrying it.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store := h.open(c.Request.Context(), middleware.BearerToken(c))
	u, err := store.UpdateProfile(c.Request.Context(), domain.ProfilePatch{Name: req.Name, Email: req.Email})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		case errors.Is(err, domain.ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"error": errUserExists})
		default:
			h.logger.ErrorContext(c.Request.Context(), "update profile", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, sessionResponse{User: toUserResponse(u), Token: store.Token()})
}
