// Package realtime drives the live activity counters on the analytics page.
package realtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/ErlanBelekov/netzone/internal/metrics"
)

const DefaultSpec = "@every 3s"

var ErrNotRunning = errors.New("realtime ticker not running")

type Snapshot struct {
	ActiveUsers  int  `json:"active_users"`
	PageViews    int  `json:"page_views"`
	NewInquiries int  `json:"new_inquiries"`
	Live         bool `json:"live"`
}

// Ticker nudges the counters on every cron tick while live.
type Ticker struct {
	spec   string
	logger *slog.Logger

	mu      sync.Mutex
	rng     *rand.Rand
	state   Snapshot
	running bool
}

func NewTicker(spec string, seed uint64, logger *slog.Logger) *Ticker {
	if spec == "" {
		spec = DefaultSpec
	}
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Ticker{
		spec:   spec,
		logger: logger.With("component", "realtime"),
		rng:    rand.New(rand.NewPCG(seed, seed>>1)),
		state:  Snapshot{Live: true},
	}
}

// Start registers the schedule and marks the ticker running before it
// returns, so readiness holds as soon as Start succeeds. The cron loop
// stops when ctx is cancelled; the returned channel closes once it has.
func (t *Ticker) Start(ctx context.Context) (<-chan struct{}, error) {
	c := cron.New()
	if _, err := c.AddFunc(t.spec, t.Tick); err != nil {
		return nil, fmt.Errorf("schedule realtime ticker: %w", err)
	}

	t.setRunning(true)
	c.Start()
	t.logger.Info("realtime ticker started", "spec", t.spec)

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		<-c.Stop().Done()
		t.setRunning(false)
		t.logger.Info("realtime ticker shut down")
	}()
	return done, nil
}

// Tick applies one update. Paused tickers are left untouched.
func (t *Ticker) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.state.Live {
		return
	}
	if t.rng.Float64() > 0.5 {
		t.state.ActiveUsers++
	} else if t.state.ActiveUsers > 0 {
		t.state.ActiveUsers--
	}
	t.state.PageViews += t.rng.IntN(3)
	if t.rng.Float64() > 0.9 {
		t.state.NewInquiries++
	}
	metrics.RealtimeTicksTotal.Inc()
}

func (t *Ticker) Pause() Snapshot  { return t.setLive(false) }
func (t *Ticker) Resume() Snapshot { return t.setLive(true) }

func (t *Ticker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Ping reports whether the cron loop is running.
func (t *Ticker) Ping(context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return ErrNotRunning
	}
	return nil
}

func (t *Ticker) setLive(live bool) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Live = live
	return t.state
}

func (t *Ticker) setRunning(running bool) {
	t.mu.Lock()
	t.running = running
	t.mu.Unlock()
}
