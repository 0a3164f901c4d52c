package http

import (
	"context"
	"net/http"
	"testing"

	appcatalog "github.com/preston-bernstein/game-catalog-service/internal/app/catalog"
	"github.com/preston-bernstein/game-catalog-service/internal/http/handlers"
	"github.com/preston-bernstein/game-catalog-service/internal/teststubs"
	"github.com/preston-bernstein/game-catalog-service/internal/testutil"
)

func newTestRouter(t *testing.T, withAdmin bool) http.Handler {
	t.Helper()
	provider := &teststubs.StubProvider{
		Genres: testutil.SampleGenres(),
		Groups: testutil.SampleGroups(),
		Games:  teststubs.GamesN(1, 3),
	}
	game := testutil.SampleGame(1942)
	provider.Game = &game
	svc := appcatalog.NewService(provider)
	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	h := handlers.NewHandler(svc, nil, nil)
	var admin *handlers.AdminHandler
	if withAdmin {
		admin = handlers.NewAdminHandler(svc, nil, "secret", nil)
	}
	return NewRouter(h, admin)
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router := newTestRouter(t, false)

	cases := map[string]int{
		"/health":               http.StatusOK,
		"/ready":                http.StatusOK,
		"/genres":               http.StatusOK,
		"/platforms":            http.StatusOK,
		"/games":                http.StatusOK,
		"/games?platform=pc":    http.StatusOK,
		"/games?platform=amiga": http.StatusBadRequest,
		"/games/1942":           http.StatusOK,
		"/games/7":              http.StatusNotFound, // known route with missing game
		"/games/not-a-number":   http.StatusBadRequest,
	}

	for path, expected := range cases {
		rr := testutil.Serve(router, http.MethodGet, path, nil)
		if rr.Code != expected {
			t.Fatalf("route %s expected status %d, got %d", path, expected, rr.Code)
		}
	}
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	router := newTestRouter(t, false)

	rr := testutil.Serve(router, http.MethodGet, "/does-not-exist", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "not found" {
		t.Fatalf("expected json not found body, got %+v", resp)
	}
}

func TestRouterMountsAdminOnlyWhenConfigured(t *testing.T) {
	rr := testutil.Serve(newTestRouter(t, false), http.MethodDelete, "/auth/token", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	rr = testutil.Serve(newTestRouter(t, true), http.MethodDelete, "/auth/token", nil)
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}
