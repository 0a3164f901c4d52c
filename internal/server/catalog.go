package server

import (
	"context"
	"fmt"
	"log/slog"

	appcatalog "github.com/preston-bernstein/game-catalog-service/internal/app/catalog"
	"github.com/preston-bernstein/game-catalog-service/internal/config"
	"github.com/preston-bernstein/game-catalog-service/internal/credentials"
	"github.com/preston-bernstein/game-catalog-service/internal/logging"
	"github.com/preston-bernstein/game-catalog-service/internal/metrics"
	"github.com/preston-bernstein/game-catalog-service/internal/providers"
	"github.com/preston-bernstein/game-catalog-service/internal/providers/igdb"
	"github.com/preston-bernstein/game-catalog-service/internal/store"
)

var openStore = store.Open

// Catalog bundles the catalog service with the provider stack and credential
// cache that feed it. Both the HTTP server and the CLI build one.
type Catalog struct {
	Service  *appcatalog.Service
	Provider providers.CatalogProvider
	// Tokens is nil when the offline fixture is in use.
	Tokens *credentials.Cache
	// ProviderName is the name the provider reports under in logs and metrics.
	ProviderName string

	closeStore func() error
}

// Close releases the credential store.
func (c *Catalog) Close() error {
	if c == nil || c.closeStore == nil {
		return nil
	}
	return c.closeStore()
}

// BuildCatalog wires storage, credentials and the provider stack from cfg.
// recorder may be nil.
func BuildCatalog(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*Catalog, error) {
	c := &Catalog{}

	var tokens igdb.TokenSource
	if normalizeProviderName(cfg.Provider) == config.ProviderIGDB && cfg.IGDB.HasCredentials() {
		cache, closeFn, err := buildTokenCache(ctx, cfg, logger, recorder)
		if err != nil {
			return nil, err
		}
		c.Tokens = cache
		c.closeStore = closeFn
		tokens = cache
	}

	base, name := selectProvider(cfg, tokens, logger)
	c.ProviderName = name
	c.Provider = newProviderFactory(logger, recorder).wrap(cfg, base, name)
	c.Service = appcatalog.NewService(c.Provider,
		appcatalog.WithLogger(logger),
		appcatalog.WithGameCache(cfg.GameCache.Size, cfg.GameCache.TTL),
		appcatalog.WithPageSize(cfg.IGDB.PageSize),
	)

	logging.Info(logger, "catalog provider ready",
		slog.String(logging.FieldProvider, name),
		slog.String("credential_store", cfg.Storage.Backend),
		slog.Bool("encrypted", cfg.Storage.Encrypted()),
	)
	return c, nil
}

func buildTokenCache(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*credentials.Cache, func() error, error) {
	kv, closeFn, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("open credential store: %w", err)
	}

	source := credentials.NewTwitchSource(credentials.TwitchConfig{
		ClientID:     cfg.IGDB.ClientID,
		ClientSecret: cfg.IGDB.ClientSecret,
		TokenURL:     cfg.IGDB.TokenURL,
	})
	opts := []credentials.Option{credentials.WithLogger(logger)}
	if recorder != nil {
		opts = append(opts, credentials.WithMetrics(recorder))
	}
	return credentials.NewCache(kv, source, opts...), closeFn, nil
}
