package http

import (
	nethttp "net/http"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/game-catalog-service/internal/http/handlers"
)

// NewRouter registers the catalog routes. Admin routes are mounted only when
// admin is non-nil.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", handler.Health)
	r.HandleFunc("/ready", handler.Ready)
	r.HandleFunc("/genres", handler.Genres)
	r.HandleFunc("/platforms", handler.Platforms)
	r.HandleFunc("/games", handler.Games)
	r.HandleFunc("/games/{id}", handler.GameByID)
	if admin != nil {
		r.HandleFunc("/auth/token", admin.ClearToken)
		r.HandleFunc("/admin/catalog/refresh", admin.RefreshCatalog)
	}
	r.NotFoundHandler = nethttp.HandlerFunc(handler.NotFound)
	return r
}
