package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"github.com/ErlanBelekov/netzone/config"
	"github.com/ErlanBelekov/netzone/internal/analytics"
	"github.com/ErlanBelekov/netzone/internal/auth"
	"github.com/ErlanBelekov/netzone/internal/email"
	"github.com/ErlanBelekov/netzone/internal/health"
	"github.com/ErlanBelekov/netzone/internal/infrastructure/memory"
	ctxlog "github.com/ErlanBelekov/netzone/internal/log"
	"github.com/ErlanBelekov/netzone/internal/metrics"
	"github.com/ErlanBelekov/netzone/internal/notify"
	"github.com/ErlanBelekov/netzone/internal/realtime"
	"github.com/ErlanBelekov/netzone/internal/session"
	httptransport "github.com/ErlanBelekov/netzone/internal/transport/http"
	"github.com/ErlanBelekov/netzone/internal/transport/http/handler"
	"github.com/ErlanBelekov/netzone/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Stores
	now := time.Now()
	accounts, err := memory.SeedAccounts(now, auth.Hasher(bcrypt.DefaultCost))
	if err != nil {
		stop()
		log.Fatalf("seed users: %v", err)
	}
	domainRepo := memory.NewDomainRepository(memory.SeedDomains(now))
	inquiryRepo := memory.NewInquiryRepository(nil)
	userRepo := memory.NewUserRepository(accounts)

	// Auth
	codec := session.NewTokenCodec([]byte(cfg.JWTSecret), cfg.SessionTTL)
	sessions := auth.NewSessions(userRepo, codec, logger, auth.WithDelay(cfg.SubmitDelay))

	// Domains and inquiries
	notifier := notify.NewWorker(
		email.NewInquiryNotifier(email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger), cfg.NotifyEmail),
		logger,
		notify.WithConcurrency(cfg.NotifyConcurrency),
		notify.WithMaxAttempts(cfg.NotifyMaxAttempts),
	)
	domainUsecase := usecase.NewDomainUsecase(domainRepo, logger)
	inquiryUsecase := usecase.NewInquiryUsecase(inquiryRepo, notifier, logger,
		usecase.WithNotifyTimeout(notifier.MaxDuration()),
	)

	// Analytics
	analyticsUsecase := usecase.NewAnalyticsUsecase(
		domainRepo,
		inquiryRepo,
		analytics.NewSyntheticGenerator(cfg.AnalyticsSeed),
		cfg.AnalyticsWindowDays,
		logger,
	)
	dashboardUsecase := usecase.NewDashboardUsecase(domainUsecase, inquiryUsecase)
	ticker := realtime.NewTicker(cfg.RealtimeSpec, cfg.AnalyticsSeed, logger)

	metrics.Register()
	checker := health.NewChecker(logger, prometheus.DefaultRegisterer,
		health.Dependency{Name: "realtime", Pinger: ticker},
		health.Dependency{Name: "notifier", Pinger: notifier},
	)

	router := httptransport.NewRouter(
		httptransport.RouterConfig{Logger: logger, Codec: codec, HSTS: cfg.Env == "production"},
		httptransport.Handlers{
			Public:    handler.NewPublicHandler(domainUsecase, inquiryUsecase, analyticsUsecase, logger),
			Auth:      handler.NewAuthHandler(handler.OpenWith(sessions), logger),
			Domains:   handler.NewDomainHandler(domainUsecase, logger),
			Inquiries: handler.NewInquiryHandler(inquiryUsecase, domainUsecase, logger),
			Admin:     handler.NewAdminHandler(dashboardUsecase, analyticsUsecase, ticker, logger),
		},
	)

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	tickerDone, err := ticker.Start(ctx)
	if err != nil {
		stop()
		log.Fatalf("realtime ticker: %v", err)
	}

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
	<-tickerDone
	inquiryUsecase.Wait()
	logger.Info("shutdown complete")
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
