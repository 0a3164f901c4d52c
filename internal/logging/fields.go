package logging

import (
	"log/slog"
	"strings"
	"time"
)

// Structured field keys shared across packages so log queries stay stable.
const (
	FieldService       = "service"
	FieldVersion       = "version"
	FieldProvider      = "provider"
	FieldResource      = "resource"
	FieldRequestID     = "request_id"
	FieldPath          = "path"
	FieldMethod        = "method"
	FieldStatusCode    = "status_code"
	FieldCount         = "count"
	FieldOffset        = "offset"
	FieldLimit         = "limit"
	FieldDurationMS    = "duration_ms"
	FieldGenreID       = "genre_id"
	FieldPlatformGroup = "platform_group"
	FieldGameID        = "game_id"
	FieldError         = "err"
)

// Redacted replaces the value of any attribute whose key names a secret.
const Redacted = "[redacted]"

var secretKeys = map[string]struct{}{
	"token":         {},
	"access_token":  {},
	"client_secret": {},
	"authorization": {},
	"secret":        {},
}

// WithCommon appends service and version fields when provided.
func WithCommon(attrs []slog.Attr, service, version string) []slog.Attr {
	if service != "" {
		attrs = append(attrs, slog.String(FieldService, service))
	}
	if version != "" {
		attrs = append(attrs, slog.String(FieldVersion, version))
	}
	return attrs
}

// DurationMS reports d in whole milliseconds under FieldDurationMS.
func DurationMS(d time.Duration) slog.Attr {
	return slog.Int64(FieldDurationMS, d.Milliseconds())
}

// redactSecrets is the handler's ReplaceAttr hook.
func redactSecrets(_ []string, a slog.Attr) slog.Attr {
	if _, ok := secretKeys[strings.ToLower(a.Key)]; ok {
		return slog.String(a.Key, Redacted)
	}
	return a
}
