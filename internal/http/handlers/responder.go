package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	appcatalog "github.com/preston-bernstein/game-catalog-service/internal/app/catalog"
	"github.com/preston-bernstein/game-catalog-service/internal/credentials"
	"github.com/preston-bernstein/game-catalog-service/internal/http/middleware"
	"github.com/preston-bernstein/game-catalog-service/internal/logging"
	"github.com/preston-bernstein/game-catalog-service/internal/providers"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", logging.FieldError, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(middleware.RequestIDHeader)
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeServiceError maps a catalog failure to a status code. Upstream detail
// stays in the log; clients only see the generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, generic string, logger *slog.Logger) {
	status := http.StatusBadGateway
	message := generic

	switch {
	case errors.Is(err, appcatalog.ErrUnknownPlatformGroup):
		status, message = http.StatusBadRequest, "unknown platform group"
	case errors.Is(err, providers.ErrNotFound):
		status, message = http.StatusNotFound, "game not found"
	case errors.Is(err, credentials.ErrNoToken):
		status, message = http.StatusServiceUnavailable, "catalog credentials unavailable"
	case errors.Is(err, providers.ErrProviderUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	if rl, ok := providers.AsRateLimitError(err); ok {
		status, message = http.StatusTooManyRequests, "upstream rate limited"
		if rl.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.RetryAfter.Seconds()+0.5)))
		}
	}

	if status >= http.StatusInternalServerError {
		logging.Warn(logger, "catalog request failed",
			slog.Int(logging.FieldStatusCode, status),
			slog.Any(logging.FieldError, err),
		)
	}
	writeError(w, r, status, message, logger)
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string, logger *slog.Logger) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", logger)
	return false
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
