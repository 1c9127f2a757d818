// Package notify delivers new-inquiry notifications with bounded
// concurrency and retries.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/ErlanBelekov/netzone/internal/domain"
	"github.com/ErlanBelekov/netzone/internal/latency"
	"github.com/ErlanBelekov/netzone/internal/metrics"
)

const (
	defaultConcurrency = 4
	defaultMaxAttempts = 3
	defaultBaseDelay   = time.Second
	defaultAttemptTime = 10 * time.Second
	maxDelay           = 30 * time.Second
)

// Deliverer sends one notification attempt.
type Deliverer interface {
	NotifyNewInquiry(ctx context.Context, inq *domain.Inquiry) error
}

type Worker struct {
	next        Deliverer
	logger      *slog.Logger
	maxAttempts    int
	baseDelay      time.Duration
	attemptTimeout time.Duration
	sem            chan struct{}
}

type Option func(*Worker)

func WithConcurrency(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.sem = make(chan struct{}, n)
		}
	}
}

func WithMaxAttempts(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.maxAttempts = n
		}
	}
}

// WithBaseDelay sets the wait before the first retry; later retries double it.
func WithBaseDelay(d time.Duration) Option {
	return func(w *Worker) { w.baseDelay = d }
}

// WithAttemptTimeout bounds a single delivery attempt.
func WithAttemptTimeout(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.attemptTimeout = d
		}
	}
}

func NewWorker(next Deliverer, logger *slog.Logger, opts ...Option) *Worker {
	w := &Worker{
		next:           next,
		logger:         logger.With("component", "notify_worker"),
		maxAttempts:    defaultMaxAttempts,
		baseDelay:      defaultBaseDelay,
		attemptTimeout: defaultAttemptTime,
		sem:            make(chan struct{}, defaultConcurrency),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NotifyNewInquiry waits for a free slot, then tries up to maxAttempts
// times. It returns the last error once attempts or ctx run out.
func (w *Worker) NotifyNewInquiry(ctx context.Context, inq *domain.Inquiry) error {
	select {
	case w.sem <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("wait for notify slot: %w", ctx.Err())
	}
	defer func() { <-w.sem }()

	var err error
	for attempt := range w.maxAttempts {
		err = w.attempt(ctx, inq)
		if err == nil {
			metrics.NotificationAttemptsTotal.WithLabelValues("success").Inc()
			return nil
		}

		if attempt+1 == w.maxAttempts {
			metrics.NotificationAttemptsTotal.WithLabelValues("failed").Inc()
			break
		}
		metrics.NotificationAttemptsTotal.WithLabelValues("retry").Inc()

		delay := retryDelay(w.baseDelay, attempt)
		w.logger.WarnContext(ctx, "notification failed, will retry",
			"inquiry_id", inq.ID,
			"error", err,
			"attempt", attempt+1,
			"max_attempts", w.maxAttempts,
			"retry_in", delay,
		)
		if werr := latency.Wait(ctx, delay); werr != nil {
			return fmt.Errorf("%w (retry abandoned: %v)", err, werr)
		}
	}
	return err
}

func (w *Worker) attempt(ctx context.Context, inq *domain.Inquiry) error {
	ctx, cancel := context.WithTimeout(ctx, w.attemptTimeout)
	defer cancel()
	return w.next.NotifyNewInquiry(ctx, inq)
}

// MaxDuration is the longest a delivery can take once it holds a slot:
// every attempt running to its timeout plus the longest jittered wait
// before each retry. Callers size their deadline from it.
func (w *Worker) MaxDuration() time.Duration {
	total := time.Duration(w.maxAttempts) * w.attemptTimeout
	for attempt := range w.maxAttempts - 1 {
		total += maxRetryDelay(w.baseDelay, attempt)
	}
	return total
}

// Ping delegates to the wrapped deliverer when it can report its health.
func (w *Worker) Ping(ctx context.Context) error {
	if p, ok := w.next.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

func backoff(base time.Duration, attempt int) time.Duration {
	return time.Duration(math.Min(float64(base)*math.Pow(2, float64(attempt)), float64(maxDelay)))
}

// maxRetryDelay is the upper bound of retryDelay for attempt.
func maxRetryDelay(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}
	delay := backoff(base, attempt)
	return delay + delay/2 - delay/4
}

// retryDelay doubles base per attempt, capped at maxDelay, with ±25% jitter.
func retryDelay(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}
	delay := backoff(base, attempt)
	jitter := time.Duration(rand.Int64N(int64(delay/2)+1)) - delay/4
	return delay + jitter
}
