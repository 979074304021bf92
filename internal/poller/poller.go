package poller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/breadwithmeth/ecobazar-frontend-sub000/internal/domain"
)

// Outcome of one poll cycle.
type Outcome int

const (
	// OutcomeSkipped means a fetch was already outstanding and this cycle
	// was dropped, not queued.
	OutcomeSkipped Outcome = iota
	OutcomeFailed
	OutcomeUnchanged
	OutcomeUpdated
)

// OrdersAPI is the collaborator the loop polls.
type OrdersAPI interface {
	ListOrders(ctx context.Context) ([]domain.OrderSnapshot, error)
}

// OrderPoller keeps a held list of the user's active orders eventually
// consistent with the server. The held list is replaced only when the
// structural comparison detects a real change, so consumers keying
// re-renders off slice identity correctly skip redundant work.
//
// A secondary countdown ticker feeds delivery countdowns; it never triggers
// a fetch.
type OrderPoller struct {
	orders        OrdersAPI
	interval      time.Duration
	clockInterval time.Duration
	logger        zerolog.Logger

	fetching atomic.Bool
	clock    atomic.Int64

	mu        sync.RWMutex
	snapshots []domain.OrderSnapshot
	lastErr   error
}

func NewOrderPoller(orders OrdersAPI, interval, clockInterval time.Duration, logger zerolog.Logger) *OrderPoller {
	return &OrderPoller{
		orders:        orders,
		interval:      interval,
		clockInterval: clockInterval,
		logger:        logger,
	}
}

// Run polls until ctx is cancelled. Cancellation aborts any in-flight fetch
// through its context, so nothing mutates the held list after teardown.
func (p *OrderPoller) Run(ctx context.Context) {
	pollTicker := time.NewTicker(p.interval)
	clockTicker := time.NewTicker(p.clockInterval)
	defer pollTicker.Stop()
	defer clockTicker.Stop()

	for {
		select {
		case <-pollTicker.C:
			p.Poll(ctx)
		case <-clockTicker.C:
			p.clock.Add(1)
		case <-ctx.Done():
			return
		}
	}
}

// Poll runs one fetch-filter-compare cycle. A cycle arriving while another
// fetch is outstanding returns OutcomeSkipped without touching anything.
// Errors never propagate: a failed fetch records the error and leaves the
// previously held list in place.
func (p *OrderPoller) Poll(ctx context.Context) Outcome {
	if !p.fetching.CompareAndSwap(false, true) {
		return OutcomeSkipped
	}
	defer p.fetching.Store(false)

	fetched, err := p.orders.ListOrders(ctx)
	if err != nil {
		p.mu.Lock()
		p.lastErr = err
		p.mu.Unlock()
		p.logger.Warn().Err(err).Msg("order poll failed, keeping stale list")
		return OutcomeFailed
	}

	// Only non-terminal orders are tracked by the loop.
	active := make([]domain.OrderSnapshot, 0, len(fetched))
	for _, order := range fetched {
		if order.Status.IsTerminal() {
			continue
		}
		active = append(active, order)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastErr = nil
	if domain.SnapshotsEqual(p.snapshots, active) {
		return OutcomeUnchanged
	}
	p.snapshots = active
	p.logger.Debug().Int("orders", len(active)).Msg("active orders updated")
	return OutcomeUpdated
}

// Refresh runs an immediate cycle, subject to the same overlap guard as a
// timer tick. Poked after a successful checkout so the new order shows up
// without waiting for the next tick.
func (p *OrderPoller) Refresh(ctx context.Context) {
	p.Poll(ctx)
}

// Snapshots returns the held list. The same slice is returned until a poll
// detects a change; callers must treat it as read-only.
func (p *OrderPoller) Snapshots() []domain.OrderSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshots
}

// Err returns the error recorded by the most recent cycle, nil after a
// successful one. Surfacing it is non-blocking: the held list stays
// available regardless.
func (p *OrderPoller) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastErr
}

// Displayed filters the held list down to orders created within the window.
// This is presentation only — change detection always runs on the full held
// list.
func (p *OrderPoller) Displayed(now time.Time, window time.Duration) []domain.OrderSnapshot {
	held := p.Snapshots()
	cutoff := now.Add(-window)

	out := make([]domain.OrderSnapshot, 0, len(held))
	for _, order := range held {
		if order.CreatedAt.Before(cutoff) {
			continue
		}
		out = append(out, order)
	}
	return out
}

// ClockTicks returns how many countdown periods have elapsed since Run
// started. Consumed by delivery countdowns only.
func (p *OrderPoller) ClockTicks() int64 {
	return p.clock.Load()
}
