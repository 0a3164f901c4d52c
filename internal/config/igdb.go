package config

import "time"

const (
	envIGDBBaseURL      = "IGDB_BASE_URL"
	envIGDBClientID     = "IGDB_CLIENT_ID"
	envIGDBClientSecret = "IGDB_CLIENT_SECRET"
	envTwitchTokenURL   = "TWITCH_TOKEN_URL"
	envIGDBRateInterval = "IGDB_RATE_INTERVAL"
	envIGDBPageSize     = "IGDB_PAGE_SIZE"

	defaultIGDBBaseURL    = "https://api.igdb.com/v4"
	defaultTwitchTokenURL = "https://id.twitch.tv/oauth2/token"
	// IGDB allows 4 requests per second per client.
	defaultIGDBRateInterval = 250 * time.Millisecond
	defaultIGDBPageSize     = 30
)

// IGDBConfig controls how we talk to IGDB and the Twitch token endpoint.
type IGDBConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	TokenURL     string
	RateInterval time.Duration
	PageSize     int
}

// HasCredentials reports whether both halves of the client credentials are set.
func (c IGDBConfig) HasCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

func loadIGDB() IGDBConfig {
	return IGDBConfig{
		BaseURL:      envOrDefault(envIGDBBaseURL, defaultIGDBBaseURL),
		ClientID:     envOrDefault(envIGDBClientID, ""),
		ClientSecret: envOrDefault(envIGDBClientSecret, ""),
		TokenURL:     envOrDefault(envTwitchTokenURL, defaultTwitchTokenURL),
		RateInterval: durationEnvOrDefault(envIGDBRateInterval, defaultIGDBRateInterval),
		PageSize:     intEnvOrDefault(envIGDBPageSize, defaultIGDBPageSize),
	}
}
