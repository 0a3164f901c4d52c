package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	appcatalog "github.com/preston-bernstein/game-catalog-service/internal/app/catalog"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/genres"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/platforms"
	"github.com/preston-bernstein/game-catalog-service/internal/http/requestutil"
	"github.com/preston-bernstein/game-catalog-service/internal/logging"
	"github.com/preston-bernstein/game-catalog-service/internal/poller"
)

// Catalog is what the read endpoints need from the catalog service.
type Catalog interface {
	Reference(ctx context.Context) (appcatalog.Reference, error)
	Refresh(ctx context.Context) (int, error)
	ListGames(ctx context.Context, req appcatalog.ListRequest) (games.Page, error)
	Game(ctx context.Context, id int) (games.Game, error)
}

// Handler wires HTTP routes to the catalog service.
type Handler struct {
	svc      Catalog
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. statusFn may be nil when no refresher runs.
func NewHandler(svc Catalog, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		statusFn: statusFn,
	}
}

type genresResponse struct {
	Genres []genres.Genre `json:"genres"`
}

type platformsResponse struct {
	Groups []platforms.Group `json:"groups"`
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness once reference data has loaded.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Genres returns the genre list. ?reload=1 refreshes reference data first.
func (h *Handler) Genres(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	ref, ok := h.reference(w, r)
	if !ok {
		return
	}
	writeJSON(w, nethttp.StatusOK, genresResponse{Genres: ref.Genres}, h.logger)
}

// Platforms returns the platform groups. ?reload=1 refreshes reference data first.
func (h *Handler) Platforms(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	ref, ok := h.reference(w, r)
	if !ok {
		return
	}
	writeJSON(w, nethttp.StatusOK, platformsResponse{Groups: ref.Groups}, h.logger)
}

// Games returns one page of the filtered game listing.
func (h *Handler) Games(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	req, msg := parseListRequest(r)
	if msg != "" {
		writeError(w, r, nethttp.StatusBadRequest, msg, logger)
		return
	}

	page, err := h.svc.ListGames(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "failed to load games", logger)
		return
	}
	logging.Info(logger, "served games",
		slog.Int(logging.FieldCount, len(page.Games)),
		slog.Int(logging.FieldOffset, page.Offset),
		slog.Int(logging.FieldLimit, page.Limit),
	)
	writeJSON(w, nethttp.StatusOK, page, logger)
}

// GameByID returns a game with its detail fields.
func (h *Handler) GameByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	raw := mux.Vars(r)["id"]
	if raw == "" {
		raw = strings.TrimPrefix(r.URL.Path, "/games/")
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", logger)
		return
	}

	game, err := h.svc.Game(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "failed to load game", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, game, logger)
}

// NotFound answers unknown routes in the same error shape as the handlers.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

func (h *Handler) reference(w nethttp.ResponseWriter, r *nethttp.Request) (appcatalog.Reference, bool) {
	logger := loggerFromContext(r, h.logger)
	if requestutil.BoolParam(r, "reload") {
		if _, err := h.svc.Refresh(r.Context()); err != nil {
			writeServiceError(w, r, err, "failed to load data", logger)
			return appcatalog.Reference{}, false
		}
	}
	ref, err := h.svc.Reference(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to load data", logger)
		return appcatalog.Reference{}, false
	}
	return ref, true
}

// parseListRequest reads genre, platform, search, limit and offset. A non-empty
// message means the query was malformed.
func parseListRequest(r *nethttp.Request) (appcatalog.ListRequest, string) {
	q := r.URL.Query()
	req := appcatalog.ListRequest{
		PlatformGroup: strings.TrimSpace(q.Get("platform")),
		Search:        q.Get("search"),
	}

	genre, present, ok := requestutil.IntParam(r, "genre")
	if !ok || (present && genre == 0) {
		return req, "invalid genre"
	}
	if present {
		req.GenreID = &genre
	}

	limit, _, ok := requestutil.IntParam(r, "limit")
	if !ok {
		return req, "invalid limit"
	}
	offset, _, ok := requestutil.IntParam(r, "offset")
	if !ok {
		return req, "invalid offset"
	}
	req.Limit = limit
	req.Offset = offset
	return req, ""
}
