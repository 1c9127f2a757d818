package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

var ErrNotConfigured = errors.New("email sender not configured")

type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender writes notifications to the log. Used when ENV=local.
type LogSender struct {
	logger *slog.Logger
}

func (s *LogSender) Send(ctx context.Context, to, subject, body string) error {
	s.logger.InfoContext(ctx, "notification email (local dev)", "to", to, "subject", subject, "body_bytes", len(body))
	return nil
}

func (s *LogSender) Ping(context.Context) error { return nil }

// ResendSender delivers through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
	ready  bool
}

func (s *ResendSender) Send(ctx context.Context, to, subject, body string) error {
	if !s.ready {
		return ErrNotConfigured
	}
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}
	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send email via resend: %w", err)
	}
	return nil
}

// Ping only checks configuration; Resend has no cheap liveness endpoint.
func (s *ResendSender) Ping(context.Context) error {
	if !s.ready {
		return ErrNotConfigured
	}
	return nil
}

// NewSender returns a LogSender for ENV=local and a ResendSender otherwise.
func NewSender(env, apiKey, from string, logger *slog.Logger) Sender {
	if env == "local" {
		return &LogSender{logger: logger.With("component", "email")}
	}
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		ready:  apiKey != "" && from != "",
	}
}
