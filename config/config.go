package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret   string        `env:"JWT_SECRET,required" validate:"required,min=32"`
	SessionTTL  time.Duration `env:"SESSION_TTL"  envDefault:"24h" validate:"min=1m"`
	SubmitDelay time.Duration `env:"SUBMIT_DELAY" envDefault:"1s"  validate:"min=0,max=10s"`

	AnalyticsWindowDays int    `env:"ANALYTICS_WINDOW_DAYS" envDefault:"30"         validate:"min=1,max=365"`
	AnalyticsSeed       uint64 `env:"ANALYTICS_SEED"        envDefault:"0"`
	RealtimeSpec        string `env:"REALTIME_SPEC"         envDefault:"@every 3s" validate:"required"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`
	NotifyEmail  string `env:"NOTIFY_EMAIL"   envDefault:"owner@netzone.me" validate:"required,email"`

	NotifyConcurrency int `env:"NOTIFY_CONCURRENCY"  envDefault:"4" validate:"min=1,max=64"`
	NotifyMaxAttempts int `env:"NOTIFY_MAX_ATTEMPTS" envDefault:"3" validate:"min=1,max=10"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
