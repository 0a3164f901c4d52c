package igdb

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// httpDoer is the part of *http.Client the query client uses.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// resolveHTTPClient sets no client timeout of its own; calls are bounded by
// the request context and the transport defaults.
func resolveHTTPClient(client *http.Client) httpDoer {
	if client == nil {
		client = &http.Client{}
	}
	return client
}

// normalizeBaseURL strips trailing slashes so endpoint paths can be appended
// with a leading one.
func normalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultBaseURL
	}
	return strings.TrimRight(raw, "/")
}

// parseRetryAfter understands both Retry-After forms: delta seconds and an
// HTTP date. Dates in the past and malformed values yield zero.
func parseRetryAfter(h http.Header, now time.Time) time.Duration {
	raw := strings.TrimSpace(h.Get("Retry-After"))
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(max(secs, 0)) * time.Second
	}
	at, err := http.ParseTime(raw)
	if err != nil || !at.After(now) {
		return 0
	}
	return at.Sub(now).Round(time.Second)
}
