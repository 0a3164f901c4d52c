package igdb

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/game-catalog-service/internal/providers"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

type staticTokens struct {
	token string
	err   error
	calls int
}

func (s *staticTokens) Token(ctx context.Context) (string, error) {
	s.calls++
	return s.token, s.err
}

type captured struct {
	path    string
	body    string
	headers http.Header
}

func newTestClient(t *testing.T, status int, body string, capture *captured) *Client {
	t.Helper()
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", req.Method)
		}
		raw, _ := io.ReadAll(req.Body)
		if capture != nil {
			capture.path = req.URL.Path
			capture.body = string(raw)
			capture.headers = req.Header.Clone()
		}
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     http.Header{"Retry-After": []string{"2"}},
		}, nil
	})
	return NewClient(Config{
		BaseURL:    "http://example.com/v4/",
		ClientID:   "client-id",
		Tokens:     &staticTokens{token: "tok"},
		HTTPClient: &http.Client{Transport: rt},
	})
}

func TestFetchGenresSendsHeadersAndQuery(t *testing.T) {
	var c captured
	client := newTestClient(t, http.StatusOK, `[{"id": 5, "name": "Shooter", "slug": "shooter"}]`, &c)

	got, err := client.FetchGenres(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Shooter" {
		t.Fatalf("unexpected genres %+v", got)
	}
	if c.path != "/v4/genres" {
		t.Fatalf("expected /v4/genres, got %s", c.path)
	}
	if c.body != "fields name, slug; limit 50;" {
		t.Fatalf("unexpected body %q", c.body)
	}
	if c.headers.Get("Client-ID") != "client-id" {
		t.Fatalf("expected client id header, got %q", c.headers.Get("Client-ID"))
	}
	if c.headers.Get("Authorization") != "Bearer tok" {
		t.Fatalf("expected bearer header, got %q", c.headers.Get("Authorization"))
	}
	if c.headers.Get("Content-Type") != "text/plain" {
		t.Fatalf("expected text/plain, got %q", c.headers.Get("Content-Type"))
	}
}

func TestFetchPlatformsGroupsResults(t *testing.T) {
	var c captured
	body := `[
		{"id": 7, "name": "PlayStation", "abbreviation": "PS1"},
		{"id": 11, "name": "Xbox", "abbreviation": "XBOX"},
		{"id": 999, "name": "Unknown Console"}
	]`
	client := newTestClient(t, http.StatusOK, body, &c)

	groups, err := client.FetchPlatforms(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.body != "fields name, abbreviation, alternative_name, platform_type; sort name asc; limit 300;" {
		t.Fatalf("unexpected body %q", c.body)
	}
	if len(groups) != 2 {
		t.Fatalf("expected two groups, got %d", len(groups))
	}
	if groups[0].GroupKey != "playstation" || groups[0].Platforms[0].ID != 7 {
		t.Fatalf("unexpected first group %+v", groups[0])
	}
	if groups[1].GroupKey != "xbox" || groups[1].Platforms[0].ID != 11 {
		t.Fatalf("unexpected second group %+v", groups[1])
	}
}

func TestFetchGamesBuildsFilteredQuery(t *testing.T) {
	var c captured
	client := newTestClient(t, http.StatusOK, `[{"id": 1, "name": "Halo", "total_rating_count": 900, "platforms": [11]}]`, &c)
	genre := 5

	got, err := client.FetchGames(context.Background(), providers.GameQuery{
		GenreID:     &genre,
		PlatformIDs: []int{11, 12},
		Search:      "halo",
		Limit:       20,
		Offset:      20,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].TotalRatingCount == nil || *got[0].TotalRatingCount != 900 {
		t.Fatalf("unexpected games %+v", got)
	}
	want := `fields name, cover.url, rating, total_rating_count, game_type, platforms; where genres = (5) & platforms = (11,12) & name ~ *"halo"*; sort total_rating_count desc; limit 20; offset 20;`
	if c.body != want {
		t.Fatalf("expected body\n%q\ngot\n%q", want, c.body)
	}
	if c.path != "/v4/games" {
		t.Fatalf("expected /v4/games, got %s", c.path)
	}
}

func TestFetchGamesDefaultsAndIgnoresBlankSearch(t *testing.T) {
	var c captured
	client := newTestClient(t, http.StatusOK, `[]`, &c)

	got, err := client.FetchGames(context.Background(), providers.GameQuery{Search: "   "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	want := "fields name, cover.url, rating, total_rating_count, game_type, platforms; sort total_rating_count desc; limit 30;"
	if c.body != want {
		t.Fatalf("expected %q, got %q", want, c.body)
	}
}

func TestFetchGameDetailAndNotFound(t *testing.T) {
	var c captured
	client := newTestClient(t, http.StatusOK, `[{"id": 9, "name": "Doom", "summary": "Rip and tear."}]`, &c)

	g, err := client.FetchGame(context.Background(), 9)
	if err != nil || g.Summary != "Rip and tear." {
		t.Fatalf("unexpected game %+v err %v", g, err)
	}
	if c.path != "/v4/games" {
		t.Fatalf("expected detail lookup on the games endpoint, got %s", c.path)
	}
	if !strings.Contains(c.body, "where id = 9;") || !strings.Contains(c.body, "multiplayer_modes.*") || !strings.HasSuffix(c.body, "limit 1;") {
		t.Fatalf("unexpected detail body %q", c.body)
	}

	empty := newTestClient(t, http.StatusOK, `[]`, nil)
	if _, err := empty.FetchGame(context.Background(), 9); !errors.Is(err, providers.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClientMapsUpstreamErrors(t *testing.T) {
	client := newTestClient(t, http.StatusBadRequest, `[{"title":"Syntax Error"}]`, nil)
	_, err := client.FetchGames(context.Background(), providers.GameQuery{})
	st, ok := providers.AsStatusError(err)
	if !ok || st.StatusCode != http.StatusBadRequest || !strings.Contains(st.Body, "Syntax Error") {
		t.Fatalf("expected status error, got %v", err)
	}

	limited := newTestClient(t, http.StatusTooManyRequests, ``, nil)
	_, err = limited.FetchGenres(context.Background())
	rl, ok := providers.AsRateLimitError(err)
	if !ok || rl.RetryAfter != 2*time.Second {
		t.Fatalf("expected rate limit error with retry-after, got %v", err)
	}
}

func TestClientDecodeError(t *testing.T) {
	client := newTestClient(t, http.StatusOK, `{bad json`, nil)
	if _, err := client.FetchGenres(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestClientAbortsWhenTokenUnavailable(t *testing.T) {
	called := false
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		called = true
		return nil, errors.New("unreachable")
	})
	tokenErr := errors.New("no access token available")
	client := NewClient(Config{Tokens: &staticTokens{err: tokenErr}, HTTPClient: &http.Client{Transport: rt}})

	if _, err := client.FetchGenres(context.Background()); !errors.Is(err, tokenErr) {
		t.Fatalf("expected token error, got %v", err)
	}
	if called {
		t.Fatal("request must not be sent without a token")
	}

	noTokens := NewClient(Config{HTTPClient: &http.Client{Transport: rt}})
	if _, err := noTokens.FetchGenres(context.Background()); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestClientTransportErrorIsNotRetried(t *testing.T) {
	calls := 0
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return nil, errors.New("connection reset")
	})
	client := NewClient(Config{Tokens: &staticTokens{token: "t"}, HTTPClient: &http.Client{Transport: rt}})

	if _, err := client.FetchGames(context.Background(), providers.GameQuery{}); err == nil {
		t.Fatal("expected transport error")
	}
	if calls != 1 {
		t.Fatalf("expected a single attempt, got %d", calls)
	}
}
