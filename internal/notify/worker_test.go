package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ErlanBelekov/netzone/internal/domain"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type deliverFunc func(ctx context.Context, inq *domain.Inquiry) error

func (f deliverFunc) NotifyNewInquiry(ctx context.Context, inq *domain.Inquiry) error {
	return f(ctx, inq)
}

func TestWorker_RetriesUntilSuccess(t *testing.T) {
	var calls atomic.Int32
	next := deliverFunc(func(context.Context, *domain.Inquiry) error {
		if calls.Add(1) < 3 {
			return errors.New("smtp down")
		}
		return nil
	})

	w := NewWorker(next, discard, WithBaseDelay(0), WithMaxAttempts(3))
	require.NoError(t, w.NotifyNewInquiry(context.Background(), &domain.Inquiry{ID: 1}))
	assert.EqualValues(t, 3, calls.Load())
}

func TestWorker_GivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	boom := errors.New("smtp down")
	next := deliverFunc(func(context.Context, *domain.Inquiry) error {
		calls.Add(1)
		return boom
	})

	w := NewWorker(next, discard, WithBaseDelay(0), WithMaxAttempts(2))
	err := w.NotifyNewInquiry(context.Background(), &domain.Inquiry{ID: 1})
	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 2, calls.Load())
}

func TestWorker_StopsRetryingWhenContextEnds(t *testing.T) {
	boom := errors.New("smtp down")
	next := deliverFunc(func(context.Context, *domain.Inquiry) error { return boom })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	w := NewWorker(next, discard, WithBaseDelay(time.Hour), WithMaxAttempts(5))
	start := time.Now()
	err := w.NotifyNewInquiry(ctx, &domain.Inquiry{ID: 1})
	assert.ErrorIs(t, err, boom)
	assert.Less(t, time.Since(start), time.Second)
}

func TestWorker_BoundsConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	release := make(chan struct{})
	next := deliverFunc(func(context.Context, *domain.Inquiry) error {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		<-release
		inFlight.Add(-1)
		return nil
	})

	w := NewWorker(next, discard, WithConcurrency(2))
	var wg sync.WaitGroup
	for i := range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = w.NotifyNewInquiry(context.Background(), &domain.Inquiry{ID: int64(i)})
		}()
	}

	require.Eventually(t, func() bool { return inFlight.Load() == 2 }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()
	assert.EqualValues(t, 2, peak.Load())
}

func TestRetryDelay(t *testing.T) {
	assert.Zero(t, retryDelay(0, 3))
	for attempt := range 4 {
		d := retryDelay(time.Second, attempt)
		want := time.Second << attempt
		assert.GreaterOrEqual(t, d, want-want/4)
		assert.LessOrEqual(t, d, want+want/4)
	}
	assert.LessOrEqual(t, retryDelay(time.Second, 20), maxDelay+maxDelay/4)
}

func TestWorker_AttemptTimeoutBoundsEachTry(t *testing.T) {
	var calls atomic.Int32
	next := deliverFunc(func(ctx context.Context, _ *domain.Inquiry) error {
		calls.Add(1)
		<-ctx.Done()
		return ctx.Err()
	})

	w := NewWorker(next, discard, WithBaseDelay(0), WithMaxAttempts(2), WithAttemptTimeout(10*time.Millisecond))
	err := w.NotifyNewInquiry(context.Background(), &domain.Inquiry{ID: 1})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.EqualValues(t, 2, calls.Load())
}

func TestMaxDuration(t *testing.T) {
	// 3 attempts of 10s, plus retry waits of at most 1.25s and 2.5s.
	assert.Equal(t, 33750*time.Millisecond, NewWorker(nil, discard).MaxDuration())

	// 10 attempts of 10s, plus waits 1,2,4,8,16,30,30,30,30s each up to +25%.
	w := NewWorker(nil, discard, WithMaxAttempts(10))
	assert.Equal(t, 100*time.Second+188750*time.Millisecond, w.MaxDuration())

	assert.Equal(t, 10*time.Second, NewWorker(nil, discard, WithMaxAttempts(1)).MaxDuration())
}

func TestRetryDelay_NeverExceedsBound(t *testing.T) {
	for attempt := range 8 {
		for range 50 {
			assert.LessOrEqual(t, retryDelay(time.Second, attempt), maxRetryDelay(time.Second, attempt))
		}
	}
}
