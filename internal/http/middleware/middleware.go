package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/klauspost/compress/gzhttp"

	"github.com/preston-bernstein/game-catalog-service/internal/http/requestutil"
	"github.com/preston-bernstein/game-catalog-service/internal/logging"
	"github.com/preston-bernstein/game-catalog-service/internal/metrics"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// unmatchedRoute labels every path the router does not serve.
const unmatchedRoute = "unmatched"

var knownRoutes = map[string]struct{}{
	"/health":                {},
	"/ready":                 {},
	"/genres":                {},
	"/platforms":             {},
	"/games":                 {},
	"/auth/token":            {},
	"/admin/catalog/refresh": {},
}

// LoggingMiddleware assigns a request id, stores a request-scoped logger in
// the context and writes one access log line plus an HTTP metric per request.
func LoggingMiddleware(baseLogger *slog.Logger, recorder *metrics.Recorder, next http.Handler) http.Handler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := requestutil.SanitizeRequestID(r.Header.Get(RequestIDHeader))
		w.Header().Set(RequestIDHeader, reqID)

		logger := baseLogger.With(
			slog.String(logging.FieldRequestID, reqID),
			slog.String(logging.FieldMethod, r.Method),
			slog.String(logging.FieldPath, r.URL.Path),
		)
		ctx := withRequestID(logging.WithLogger(r.Context(), logger), reqID)

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r.WithContext(ctx))

		elapsed := time.Since(start)
		recorder.RecordHTTPRequest(r.Method, routeLabel(r.URL.Path), sw.status, elapsed)
		logAccess(ctx, logger, r, sw, elapsed)
	})
}

func logAccess(ctx context.Context, logger *slog.Logger, r *http.Request, sw *statusWriter, elapsed time.Duration) {
	level := slog.LevelInfo
	if sw.status >= http.StatusInternalServerError {
		level = slog.LevelWarn
	}
	logger.LogAttrs(ctx, level, "request complete",
		slog.Int(logging.FieldStatusCode, sw.status),
		slog.Int("bytes", sw.written),
		slog.String("query", r.URL.RawQuery),
		slog.String("client_ip", requestutil.ClientIP(r)),
		logging.DurationMS(elapsed),
	)
}

// Compress gzips responses for clients that accept it. Small bodies are sent as-is.
func Compress(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}

type statusWriter struct {
	http.ResponseWriter
	status  int
	written int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	n, err := w.ResponseWriter.Write(p)
	w.written += n
	return n, err
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

type requestIDKey struct{}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id set by LoggingMiddleware, or "".
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// routeLabel maps a path onto one of the served routes so the metric label
// set stays fixed regardless of what clients request.
func routeLabel(path string) string {
	path = strings.TrimSuffix(path, "/")
	if _, ok := knownRoutes[path]; ok {
		return path
	}
	if id, ok := strings.CutPrefix(path, "/games/"); ok && id != "" && !strings.Contains(id, "/") {
		return "/games/{id}"
	}
	return unmatchedRoute
}
