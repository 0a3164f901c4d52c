package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/game-catalog-service/internal/http/requestutil"
	"github.com/preston-bernstein/game-catalog-service/internal/logging"
)

// CatalogAdmin is the part of the catalog service admin endpoints drive.
type CatalogAdmin interface {
	Refresh(ctx context.Context) (int, error)
	Forget()
}

// TokenResetter drops the cached upstream credential.
type TokenResetter interface {
	Clear(ctx context.Context) error
}

// AdminHandler exposes operator endpoints guarded by a bearer token.
type AdminHandler struct {
	catalog CatalogAdmin
	tokens  TokenResetter
	token   string
	logger  *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(catalog CatalogAdmin, tokens TokenResetter, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		catalog: catalog,
		tokens:  tokens,
		token:   token,
		logger:  logger,
	}
}

// ClearToken removes the cached credential so the next upstream call fetches a new one.
func (h *AdminHandler) ClearToken(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodDelete, h.logger) {
		return
	}
	if !h.authorize(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.tokens == nil {
		writeError(w, r, http.StatusServiceUnavailable, "credential cache not configured", logger)
		return
	}
	if err := h.tokens.Clear(r.Context()); err != nil {
		logging.Warn(logger, "admin token clear failed", slog.Any(logging.FieldError, err))
		writeError(w, r, http.StatusInternalServerError, "failed to clear token", logger)
		return
	}
	logging.Info(logger, "admin cleared token")
	w.WriteHeader(http.StatusNoContent)
}

// RefreshCatalog reloads reference data and drops cached game details.
func (h *AdminHandler) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	if !h.authorize(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.catalog == nil {
		writeError(w, r, http.StatusServiceUnavailable, "catalog not configured", logger)
		return
	}
	count, err := h.catalog.Refresh(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to refresh catalog", logger)
		return
	}
	h.catalog.Forget()

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"loaded": count,
	}, logger)
	logging.Info(logger, "admin catalog refreshed", slog.Int(logging.FieldCount, count))
}

func (h *AdminHandler) authorize(w http.ResponseWriter, r *http.Request) bool {
	want := "Bearer " + h.token
	got := r.Header.Get("Authorization")
	if h.token != "" && subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1 {
		return true
	}
	logging.Warn(h.logger, "admin unauthorized",
		slog.String(logging.FieldPath, r.URL.Path),
		slog.String("client_ip", requestutil.ClientIP(r)),
	)
	writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
	return false
}
