package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/ErlanBelekov/netzone/internal/requestid"
)

func TestContextHandler_AddsRequestScopedAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewContextHandler(slog.NewJSONHandler(&buf, nil)))

	ctx := requestid.WithRequestID(context.Background(), "req-1")
	ctx = WithUserID(ctx, 42)
	logger.InfoContext(ctx, "hello")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if rec["request_id"] != "req-1" {
		t.Errorf("request_id = %v", rec["request_id"])
	}
	if rec["user_id"] != float64(42) {
		t.Errorf("user_id = %v", rec["user_id"])
	}
}

func TestContextHandler_EmptyContext(t *testing.T) {
	var buf bytes.Buffer
	slog.New(NewContextHandler(slog.NewJSONHandler(&buf, nil))).Info("hello")

	if bytes.Contains(buf.Bytes(), []byte("request_id")) || bytes.Contains(buf.Bytes(), []byte("user_id")) {
		t.Errorf("unexpected attrs: %s", buf.String())
	}
}
