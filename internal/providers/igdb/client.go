package igdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/preston-bernstein/game-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/genres"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/platforms"
	"github.com/preston-bernstein/game-catalog-service/internal/providers"
)

// TokenSource supplies the bearer token attached to every request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Config controls how the client reaches IGDB.
type Config struct {
	BaseURL    string
	ClientID   string
	Tokens     TokenSource
	HTTPClient *http.Client
	PageSize   int
	Groups     []platforms.GroupDef
}

// Client queries IGDB and maps responses to domain models. It never retries.
type Client struct {
	baseURL    string
	clientID   string
	tokens     TokenSource
	httpClient httpDoer
	pageSize   int
	groups     []platforms.GroupDef
}

// NewClient constructs an IGDB client with the provided configuration.
func NewClient(cfg Config) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = providers.DefaultPageSize
	}
	groups := cfg.Groups
	if len(groups) == 0 {
		groups = platforms.DefaultGroups
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		clientID:   cfg.ClientID,
		tokens:     cfg.Tokens,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		pageSize:   pageSize,
		groups:     groups,
	}
}

// FetchGenres lists up to 50 genres.
func (c *Client) FetchGenres(ctx context.Context) ([]genres.Genre, error) {
	q := Query{Fields: genreFields, Limit: genresLimit}
	var payload []genreResponse
	if err := c.post(ctx, providers.ResourceGenres, q, &payload); err != nil {
		return nil, err
	}
	return lo.Map(payload, func(g genreResponse, _ int) genres.Genre { return mapGenre(g) }), nil
}

// FetchPlatforms lists platforms sorted by name and buckets them into groups.
// Only groups with at least one fetched platform are returned.
func (c *Client) FetchPlatforms(ctx context.Context) ([]platforms.Group, error) {
	q := Query{Fields: platformFields, Sort: "name asc", Limit: platformsLimit}
	var payload []platformResponse
	if err := c.post(ctx, providers.ResourcePlatforms, q, &payload); err != nil {
		return nil, err
	}
	fetched := lo.Map(payload, func(p platformResponse, _ int) platforms.Platform { return mapPlatform(p) })
	return platforms.GroupWith(c.groups, fetched), nil
}

// FetchGames lists games matching every filter present in gq, most rated first.
func (c *Client) FetchGames(ctx context.Context, gq providers.GameQuery) ([]games.Game, error) {
	if gq.Limit <= 0 {
		gq.Limit = c.pageSize
	}
	gq = gq.Normalized()

	var payload []gameResponse
	if err := c.post(ctx, providers.ResourceGames, BuildGamesQuery(gq), &payload); err != nil {
		return nil, err
	}
	return lo.Map(payload, func(g gameResponse, _ int) games.Game { return mapGame(g) }), nil
}

// FetchGame loads one game with its detail fields.
func (c *Client) FetchGame(ctx context.Context, id int) (games.Game, error) {
	q := Query{Fields: detailFields, Where: []Predicate{Equals("id", id)}, Limit: 1}
	var payload []gameResponse
	if err := c.post(ctx, providers.ResourceGame, q, &payload); err != nil {
		return games.Game{}, err
	}
	if len(payload) == 0 {
		return games.Game{}, fmt.Errorf("%s game %d: %w", providerName, id, providers.ErrNotFound)
	}
	return mapGame(payload[0]), nil
}

// BuildGamesQuery renders a listing request. Absent filters are left out and a
// blank search is ignored.
func BuildGamesQuery(gq providers.GameQuery) Query {
	var where []Predicate
	if gq.GenreID != nil {
		where = append(where, InSet("genres", *gq.GenreID))
	}
	if len(gq.PlatformIDs) > 0 {
		where = append(where, InSet("platforms", gq.PlatformIDs...))
	}
	if strings.TrimSpace(gq.Search) != "" {
		where = append(where, NameContains(gq.Search))
	}
	return Query{
		Fields: listFields,
		Where:  where,
		Sort:   gameSort,
		Limit:  gq.Limit,
		Offset: gq.Offset,
	}
}

// endpoint maps a resource label to its IGDB path. Detail lookups are
// labelled separately for metrics but query the games endpoint.
func endpoint(resource string) string {
	if resource == providers.ResourceGame {
		return providers.ResourceGames
	}
	return resource
}

func (c *Client) post(ctx context.Context, resource string, q Query, dest any) error {
	if c.tokens == nil {
		return providers.ErrProviderUnavailable
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint(resource), strings.NewReader(q.String()))
	if err != nil {
		return err
	}
	req.Header.Set("Client-ID", c.clientID)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", providerName, resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header, time.Now()),
			Message:    providerName + " " + resource + " rate limited",
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &providers.StatusError{
			Provider:   providerName,
			Resource:   resource,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%s %s: empty response", providerName, resource)
		}
		return fmt.Errorf("%s %s: decode: %w", providerName, resource, err)
	}
	return nil
}
