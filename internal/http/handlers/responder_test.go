package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	appcatalog "github.com/preston-bernstein/game-catalog-service/internal/app/catalog"
	"github.com/preston-bernstein/game-catalog-service/internal/credentials"
	"github.com/preston-bernstein/game-catalog-service/internal/providers"
	"github.com/preston-bernstein/game-catalog-service/internal/testutil"
)

func TestWriteErrorBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "header-id")
	rr := httptest.NewRecorder()

	writeError(rr, req, http.StatusTeapot, "boom", nil)

	testutil.AssertStatus(t, rr, http.StatusTeapot)
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected content type json, got %s", got)
	}
	var body map[string]string
	testutil.DecodeJSON(t, rr, &body)
	if body["error"] != "boom" || body["requestId"] != "header-id" {
		t.Fatalf("unexpected error body %v", body)
	}
}

func TestWriteErrorOmitsMissingRequestID(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, httptest.NewRequest(http.MethodGet, "/games", nil), http.StatusBadRequest, "bad", nil)

	var body map[string]string
	testutil.DecodeJSON(t, rr, &body)
	if _, ok := body["requestId"]; ok {
		t.Fatalf("expected no requestId without header or context, got %v", body)
	}
}

func TestWriteJSONLogsEncodeError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := httptest.NewRecorder()

	writeJSON(rr, http.StatusOK, make(chan int), logger)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if !strings.Contains(buf.String(), "failed to encode response") {
		t.Fatalf("expected encode error logged, got %s", buf.String())
	}
}

func TestWriteServiceErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		status     int
		message    string
		retryAfter string
	}{
		{"upstream status", &providers.StatusError{Provider: "igdb", StatusCode: 500, Body: "trace"}, http.StatusBadGateway, "failed to load games", ""},
		{"unknown group", fmt.Errorf("games: %w", appcatalog.ErrUnknownPlatformGroup), http.StatusBadRequest, "unknown platform group", ""},
		{"not found", providers.ErrNotFound, http.StatusNotFound, "game not found", ""},
		{"no token", credentials.ErrNoToken, http.StatusServiceUnavailable, "catalog credentials unavailable", ""},
		{"unavailable", providers.ErrProviderUnavailable, http.StatusServiceUnavailable, "failed to load games", ""},
		{"canceled", fmt.Errorf("igdb games: %w", context.Canceled), http.StatusServiceUnavailable, "failed to load games", ""},
		{"rate limited", &providers.RateLimitError{StatusCode: 429, RetryAfter: 1600 * time.Millisecond}, http.StatusTooManyRequests, "upstream rate limited", "2"},
		{"rate limited without hint", &providers.RateLimitError{StatusCode: 429}, http.StatusTooManyRequests, "upstream rate limited", ""},
	}

	for _, tc := range cases {
		rr := httptest.NewRecorder()
		writeServiceError(rr, httptest.NewRequest(http.MethodGet, "/games", nil), tc.err, "failed to load games", nil)

		if rr.Code != tc.status {
			t.Fatalf("%s: status = %d, want %d", tc.name, rr.Code, tc.status)
		}
		var body map[string]string
		testutil.DecodeJSON(t, rr, &body)
		if body["error"] != tc.message {
			t.Fatalf("%s: message = %q, want %q", tc.name, body["error"], tc.message)
		}
		if got := rr.Header().Get("Retry-After"); got != tc.retryAfter {
			t.Fatalf("%s: Retry-After = %q, want %q", tc.name, got, tc.retryAfter)
		}
	}
}

func TestWriteServiceErrorLogsUpstreamDetailOnly(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := httptest.NewRecorder()
	err := &providers.StatusError{Provider: "igdb", Resource: providers.ResourceGames, StatusCode: 500, Body: "internal trace"}

	writeServiceError(rr, httptest.NewRequest(http.MethodGet, "/games", nil), err, "failed to load games", logger)

	if strings.Contains(rr.Body.String(), "internal trace") {
		t.Fatalf("expected upstream body hidden from client")
	}
	if !strings.Contains(buf.String(), "internal trace") {
		t.Fatalf("expected upstream body logged, got %s", buf.String())
	}

	buf2Logger, buf2 := testutil.NewBufferLogger()
	writeServiceError(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/games/1", nil), providers.ErrNotFound, "x", buf2Logger)
	if buf2.Len() != 0 {
		t.Fatalf("expected client errors not logged, got %s", buf2.String())
	}
}
