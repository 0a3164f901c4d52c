package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Duration wraps time.Duration for clearer type usage in Config.
type Duration = time.Duration

// lookup returns the trimmed value of key. Values copied into .env files often
// carry stray whitespace, and a blank value counts as unset.
func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func envOrDefault(key, fallback string) string {
	if v, ok := lookup(key); ok {
		return v
	}
	return fallback
}

// durationEnvOrDefault accepts Go duration strings ("250ms", "6h") and bare
// integers, which are read as milliseconds. Non-positive values fall back.
func durationEnvOrDefault(key string, fallback Duration) Duration {
	v, ok := lookup(key)
	if !ok {
		return fallback
	}
	if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
		if ms <= 0 {
			return fallback
		}
		return Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// intEnvOrDefault falls back on anything that is not a positive integer.
func intEnvOrDefault(key string, fallback int) int {
	v, ok := lookup(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func boolEnvOrDefault(key string, fallback bool) bool {
	v, ok := lookup(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}
