// Package poller keeps slow-changing reference data fresh by reloading it on an interval.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/game-catalog-service/internal/logging"
)

const defaultInterval = 6 * time.Hour

// Refresher reloads data and reports how many items it loaded.
type Refresher interface {
	Refresh(ctx context.Context) (int, error)
}

// CycleRecorder receives the outcome of every refresh cycle.
type CycleRecorder interface {
	RecordCatalogRefresh(duration time.Duration, err error)
}

// Poller calls a Refresher once at start and then on every tick.
// A failed cycle is not retried before the next tick.
type Poller struct {
	refresher Refresher
	logger    *slog.Logger
	metrics   CycleRecorder
	interval  time.Duration
	now       func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastCount           int
}

// IsReady reports whether the poller has had a success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(refresher Refresher, logger *slog.Logger, recorder CycleRecorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		refresher: refresher,
		logger:    logger,
		metrics:   recorder,
		interval:  interval,
		now:       time.Now,
		done:      make(chan struct{}),
	}
}

// Start begins refreshing until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		p.logInfo("poller started", logging.DurationMS(p.interval))
		// Initial load to warm data on boot.
		p.refreshOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.ticker.C:
				p.refreshOnce(ctx)
			}
		}
	}()
}

// Stop halts the refresh loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

func (p *Poller) refreshOnce(ctx context.Context) {
	start := p.now()
	p.recordAttempt(start)
	count, err := p.refresher.Refresh(ctx)
	elapsed := p.now().Sub(start)
	if p.metrics != nil {
		p.metrics.RecordCatalogRefresh(elapsed, err)
	}
	if err != nil {
		p.logError("poller refresh failed", err, logging.DurationMS(elapsed))
		p.recordFailure(err, start)
		return
	}

	p.recordSuccess(start, count)
	p.logInfo("poller refreshed catalog",
		logging.FieldCount, count,
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) logInfo(msg string, args ...any) {
	logging.Info(p.logger, msg, args...)
}

func (p *Poller) logError(msg string, err error, attrs ...any) {
	logging.Error(p.logger, msg, err, attrs...)
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, count int) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.LastCount = count
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
