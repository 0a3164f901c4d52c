package server

import (
	"strings"

	"github.com/preston-bernstein/game-catalog-service/internal/config"
)

// normalizeProviderName lower-cases the configured provider. An empty value
// selects the offline fixture.
// Used across server wiring and provider factory to keep naming consistent in metrics/logs.
func normalizeProviderName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return config.ProviderFixture
	}
	return name
}
