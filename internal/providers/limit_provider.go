package providers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/game-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/genres"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/platforms"
)

const (
	rateLimitedName        = "rate-limited"
	defaultLimiterInterval = 250 * time.Millisecond
)

// rateLimitedProvider wraps a CatalogProvider and spaces upstream calls at least interval apart.
type rateLimitedProvider struct {
	next     CatalogProvider
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	nextSlot time.Time
}

// NewRateLimitedProvider returns a CatalogProvider that limits calls to one per interval.
// Calls block until their slot arrives; concurrent callers queue in arrival order.
func NewRateLimitedProvider(next CatalogProvider, interval time.Duration, logger *slog.Logger) CatalogProvider {
	if interval <= 0 {
		interval = defaultLimiterInterval
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

func (p *rateLimitedProvider) FetchGenres(ctx context.Context) ([]genres.Genre, error) {
	if err := p.wait(ctx, ResourceGenres); err != nil {
		return nil, err
	}
	return p.next.FetchGenres(ctx)
}

func (p *rateLimitedProvider) FetchPlatforms(ctx context.Context) ([]platforms.Group, error) {
	if err := p.wait(ctx, ResourcePlatforms); err != nil {
		return nil, err
	}
	return p.next.FetchPlatforms(ctx)
}

func (p *rateLimitedProvider) FetchGames(ctx context.Context, q GameQuery) ([]games.Game, error) {
	if err := p.wait(ctx, ResourceGames); err != nil {
		return nil, err
	}
	return p.next.FetchGames(ctx, q)
}

func (p *rateLimitedProvider) FetchGame(ctx context.Context, id int) (games.Game, error) {
	if err := p.wait(ctx, ResourceGame); err != nil {
		return games.Game{}, err
	}
	return p.next.FetchGame(ctx, id)
}

func (p *rateLimitedProvider) wait(ctx context.Context, resource string) error {
	if p == nil || p.next == nil {
		if p != nil {
			logProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, resource, "provider unavailable")
		}
		return ErrProviderUnavailable
	}

	delay := p.reserve()
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		logProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, resource, "rate-limited fetch canceled")
		return ctx.Err()
	case <-timer.C:
	}
	logProvider(ctx, p.logger, slog.LevelDebug, rateLimitedName, resource, "rate-limited provider fetch",
		slog.Duration("waited", delay))
	return nil
}

// reserve claims the next free slot and returns how long to wait for it.
func (p *rateLimitedProvider) reserve() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	slot := p.nextSlot
	if slot.Before(now) {
		slot = now
	}
	p.nextSlot = slot.Add(p.interval)
	return slot.Sub(now)
}
