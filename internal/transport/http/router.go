package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/ErlanBelekov/netzone/internal/session"
	"github.com/ErlanBelekov/netzone/internal/transport/http/handler"
	"github.com/ErlanBelekov/netzone/internal/transport/http/middleware"
)

type Handlers struct {
	Public    *handler.PublicHandler
	Auth      *handler.AuthHandler
	Domains   *handler.DomainHandler
	Inquiries *handler.InquiryHandler
	Admin     *handler.AdminHandler
}

type RouterConfig struct {
	Logger *slog.Logger
	Codec  *session.TokenCodec
	HSTS   bool
}

// NewRouter wires every page behind Session and Guard; which routes need a
// session or the admin role is decided by access.CanAccess, not here.
func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security(cfg.HSTS))
	r.Use(sloggin.New(cfg.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.Session(cfg.Codec))
	r.Use(middleware.Guard())

	r.GET("/", h.Public.Home)
	r.GET("/domain/:name", h.Public.Landing)
	r.POST("/domain/:name/inquiries", h.Public.SubmitInquiry)

	authGroup := r.Group("/auth")
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/logout", h.Auth.Logout)

	r.GET("/profile", h.Auth.Profile)
	r.PATCH("/profile", h.Auth.UpdateProfile)

	admin := r.Group("/admin")
	admin.GET("", h.Admin.Dashboard)

	admin.GET("/domains", h.Domains.List)
	admin.POST("/domains", h.Domains.Create)
	admin.PATCH("/domains/:id", h.Domains.Update)
	admin.DELETE("/domains/:id", h.Domains.Delete)

	admin.GET("/inquiries", h.Inquiries.List)
	admin.GET("/inquiries/export", h.Inquiries.Export)
	admin.PATCH("/inquiries/:id", h.Inquiries.Update)

	admin.GET("/analytics", h.Admin.Analytics)
	admin.GET("/analytics/domains/:id", h.Admin.DomainAnalytics)
	admin.GET("/analytics/export", h.Admin.ExportAnalytics)
	admin.GET("/analytics/realtime", h.Admin.Realtime)
	admin.POST("/analytics/realtime/pause", h.Admin.PauseRealtime)
	admin.POST("/analytics/realtime/resume", h.Admin.ResumeRealtime)

	return r
}
