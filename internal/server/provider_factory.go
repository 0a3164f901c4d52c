package server

import (
	"log/slog"

	"github.com/preston-bernstein/game-catalog-service/internal/config"
	"github.com/preston-bernstein/game-catalog-service/internal/metrics"
	"github.com/preston-bernstein/game-catalog-service/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (pacing + metrics).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

// wrap paces calls to the live upstream and instruments every provider.
// Failures are surfaced as-is; nothing here retries.
func (f providerFactory) wrap(cfg config.Config, base providers.CatalogProvider, name string) providers.CatalogProvider {
	p := base
	if name == config.ProviderIGDB {
		p = providers.NewRateLimitedProvider(p, cfg.IGDB.RateInterval, f.logger)
	}
	var recorder providers.UpstreamRecorder
	if f.metrics != nil {
		recorder = f.metrics
	}
	return providers.NewInstrumentedProvider(p, name, recorder, f.logger)
}
