package config

import "time"

const (
	envPort         = "PORT"
	envProvider     = "PROVIDER"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel     = "LOG_LEVEL"
	envLogFormat    = "LOG_FORMAT"

	envRefreshInterval = "CATALOG_REFRESH_INTERVAL"
	envGameCacheSize   = "GAME_CACHE_SIZE"
	envGameCacheTTL    = "GAME_CACHE_TTL"
	envAdminToken      = "ADMIN_TOKEN"

	defaultPort        = "4000"
	defaultProvider    = ProviderIGDB
	defaultMetricsPort = "9090"
	defaultServiceName = "game-catalog-service"
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"

	// Genres and platforms change rarely upstream.
	defaultRefreshInterval = 6 * Duration(time.Hour)
	defaultGameCacheSize   = 256
	defaultGameCacheTTL    = 10 * Duration(time.Minute)
)

// Provider names accepted by PROVIDER.
const (
	ProviderIGDB    = "igdb"
	ProviderFixture = "fixture"
)
