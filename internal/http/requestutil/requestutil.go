// Package requestutil holds the small request parsing helpers shared by
// handlers and middleware.
package requestutil

import (
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Incoming request IDs are echoed only when they look like an identifier.
var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

var newUUID = uuid.NewRandom

// SanitizeRequestID keeps a well-formed incoming ID and mints one otherwise.
func SanitizeRequestID(incoming string) string {
	if requestIDPattern.MatchString(incoming) {
		return incoming
	}
	return NewRequestID()
}

// NewRequestID returns a random UUID, or a base36 timestamp if the system
// random source fails.
func NewRequestID() string {
	id, err := newUUID()
	if err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return id.String()
}

// ClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// host part of RemoteAddr.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// IntParam reads an optional non-negative integer from the query string.
// present reports whether the key was given; ok is false when it was given
// but did not parse.
func IntParam(r *http.Request, name string) (value int, present bool, ok bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, false, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, true, false
	}
	return n, true, true
}

// BoolParam accepts strconv.ParseBool spellings plus "yes".
func BoolParam(r *http.Request, name string) bool {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if strings.EqualFold(raw, "yes") {
		return true
	}
	v, _ := strconv.ParseBool(raw)
	return v
}
