package config

import "github.com/joho/godotenv"

// Config holds runtime configuration for the server and CLI.
type Config struct {
	Port            string
	Provider        string
	RefreshInterval Duration
	GameCache       GameCacheConfig
	IGDB            IGDBConfig
	Storage         StorageConfig
	Metrics         MetricsConfig
	Log             LogConfig
	// AdminToken guards the admin endpoints. Empty leaves them unmounted.
	AdminToken string
}

// GameCacheConfig sizes the in-process game detail cache.
type GameCacheConfig struct {
	Size int
	TTL  Duration
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present; variables
// already set in the environment win.
func Load() Config {
	_ = godotenv.Load()
	return fromEnv()
}

// LoadFiles is Load with explicit .env paths. Missing files are reported.
func LoadFiles(paths ...string) (Config, error) {
	if len(paths) > 0 {
		if err := godotenv.Load(paths...); err != nil {
			return Config{}, err
		}
	}
	return fromEnv(), nil
}

func fromEnv() Config {
	return Config{
		Port:            envOrDefault(envPort, defaultPort),
		Provider:        envOrDefault(envProvider, defaultProvider),
		RefreshInterval: durationEnvOrDefault(envRefreshInterval, defaultRefreshInterval),
		GameCache: GameCacheConfig{
			Size: intEnvOrDefault(envGameCacheSize, defaultGameCacheSize),
			TTL:  durationEnvOrDefault(envGameCacheTTL, defaultGameCacheTTL),
		},
		IGDB:    loadIGDB(),
		Storage: loadStorage(),
		Metrics: loadMetrics(),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		AdminToken: envOrDefault(envAdminToken, ""),
	}
}
