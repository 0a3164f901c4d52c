package server

import (
	"log/slog"

	"github.com/preston-bernstein/game-catalog-service/internal/config"
	"github.com/preston-bernstein/game-catalog-service/internal/logging"
	"github.com/preston-bernstein/game-catalog-service/internal/providers"
	"github.com/preston-bernstein/game-catalog-service/internal/providers/fixture"
	"github.com/preston-bernstein/game-catalog-service/internal/providers/igdb"
)

// selectProvider returns the base provider and the name it reports under.
// IGDB needs a token source; without one the fixture is served instead.
func selectProvider(cfg config.Config, tokens igdb.TokenSource, logger *slog.Logger) (providers.CatalogProvider, string) {
	switch name := normalizeProviderName(cfg.Provider); name {
	case config.ProviderFixture:
		return fixture.New(), config.ProviderFixture
	case config.ProviderIGDB:
		if tokens == nil {
			logging.Warn(logger, "igdb credentials missing, falling back to fixture")
			return fixture.New(), config.ProviderFixture
		}
		return igdb.NewClient(igdb.Config{
			BaseURL:  cfg.IGDB.BaseURL,
			ClientID: cfg.IGDB.ClientID,
			Tokens:   tokens,
			PageSize: cfg.IGDB.PageSize,
		}), config.ProviderIGDB
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", slog.String(logging.FieldProvider, name))
		return fixture.New(), config.ProviderFixture
	}
}
