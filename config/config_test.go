package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", strings.Repeat("s", 32))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, time.Second, cfg.SubmitDelay)
	assert.Equal(t, 30, cfg.AnalyticsWindowDays)
	assert.Equal(t, "@every 3s", cfg.RealtimeSpec)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_ShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ProductionNeedsResend(t *testing.T) {
	t.Setenv("JWT_SECRET", strings.Repeat("s", 32))
	t.Setenv("ENV", "production")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("RESEND_API_KEY", "re_123")
	t.Setenv("RESEND_FROM", "Netzone <noreply@netzone.me>")
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoad_WindowOutOfRange(t *testing.T) {
	t.Setenv("JWT_SECRET", strings.Repeat("s", 32))
	t.Setenv("ANALYTICS_WINDOW_DAYS", "400")

	_, err := Load()
	assert.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "DEBUG"}).SlogLevel())
	assert.Equal(t, slog.LevelError, (&Config{LogLevel: "error"}).SlogLevel())
}
