package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/game-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/genres"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/platforms"
	"github.com/preston-bernstein/game-catalog-service/internal/logging"
)

// UpstreamRecorder receives per-call upstream outcomes.
type UpstreamRecorder interface {
	RecordUpstreamAttempt(resource string, duration time.Duration, err error)
	RecordRateLimit(resource string, retryAfter time.Duration)
}

// instrumentedProvider records latency and failures of every call. It never retries.
type instrumentedProvider struct {
	inner    CatalogProvider
	name     string
	recorder UpstreamRecorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewInstrumentedProvider wraps inner so each call is timed, counted and logged on failure.
func NewInstrumentedProvider(inner CatalogProvider, name string, recorder UpstreamRecorder, logger *slog.Logger) CatalogProvider {
	return &instrumentedProvider{
		inner:    inner,
		name:     name,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

func (p *instrumentedProvider) FetchGenres(ctx context.Context) ([]genres.Genre, error) {
	start := p.now()
	out, err := p.inner.FetchGenres(ctx)
	p.observe(ctx, ResourceGenres, start, len(out), err)
	return out, err
}

func (p *instrumentedProvider) FetchPlatforms(ctx context.Context) ([]platforms.Group, error) {
	start := p.now()
	out, err := p.inner.FetchPlatforms(ctx)
	p.observe(ctx, ResourcePlatforms, start, len(out), err)
	return out, err
}

func (p *instrumentedProvider) FetchGames(ctx context.Context, q GameQuery) ([]games.Game, error) {
	start := p.now()
	out, err := p.inner.FetchGames(ctx, q)
	p.observe(ctx, ResourceGames, start, len(out), err)
	return out, err
}

func (p *instrumentedProvider) FetchGame(ctx context.Context, id int) (games.Game, error) {
	start := p.now()
	out, err := p.inner.FetchGame(ctx, id)
	count := 1
	if err != nil {
		count = 0
	}
	p.observe(ctx, ResourceGame, start, count, err)
	return out, err
}

func (p *instrumentedProvider) observe(ctx context.Context, resource string, start time.Time, count int, err error) {
	duration := p.now().Sub(start)
	if p.recorder != nil {
		p.recorder.RecordUpstreamAttempt(resource, duration, err)
		if rl, ok := AsRateLimitError(err); ok {
			p.recorder.RecordRateLimit(resource, rl.RetryAfter)
		}
	}

	logger := logging.FromContext(ctx, p.logger)
	if err != nil {
		logProvider(ctx, logger, slog.LevelWarn, p.name, resource, "provider fetch failed",
			logging.DurationMS(duration),
			slog.Any(logging.FieldError, err),
		)
		return
	}
	logProvider(ctx, logger, slog.LevelDebug, p.name, resource, "provider fetch",
		slog.Int(logging.FieldCount, count),
		logging.DurationMS(duration),
	)
}
