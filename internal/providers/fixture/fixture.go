package fixture

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/preston-bernstein/game-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/genres"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/platforms"
	"github.com/preston-bernstein/game-catalog-service/internal/providers"
)

// Provider serves a small static catalog useful for local testing and offline development.
type Provider struct {
	genres    []genres.Genre
	platforms []platforms.Platform
	games     []games.Game
}

// New creates a fixture provider with the built-in catalog.
func New() *Provider {
	return &Provider{
		genres:    sampleGenres(),
		platforms: samplePlatforms(),
		games:     sampleGames(),
	}
}

// FetchGenres returns the static genre list.
func (p *Provider) FetchGenres(ctx context.Context) ([]genres.Genre, error) {
	return slices.Clone(p.genres), nil
}

// FetchPlatforms returns the static platforms grouped like the live provider does.
func (p *Provider) FetchPlatforms(ctx context.Context) ([]platforms.Group, error) {
	return platforms.GroupPlatforms(p.platforms), nil
}

// FetchGames filters the static games by every present criterion, orders them
// by total rating count and slices out the requested page.
func (p *Provider) FetchGames(ctx context.Context, q providers.GameQuery) ([]games.Game, error) {
	q = q.Normalized()
	search := strings.ToLower(strings.TrimSpace(q.Search))

	matched := lo.Filter(p.games, func(g games.Game, _ int) bool {
		if q.GenreID != nil && !lo.Contains(g.Genres, *q.GenreID) {
			return false
		}
		if len(q.PlatformIDs) > 0 && len(lo.Intersect(g.Platforms, q.PlatformIDs)) == 0 {
			return false
		}
		if search != "" && !strings.Contains(strings.ToLower(g.Name), search) {
			return false
		}
		return true
	})
	slices.SortStableFunc(matched, func(a, b games.Game) int {
		return cmp.Compare(ratingCount(b), ratingCount(a))
	})

	if q.Offset >= len(matched) {
		return []games.Game{}, nil
	}
	end := min(q.Offset+q.Limit, len(matched))
	return matched[q.Offset:end], nil
}

// FetchGame returns the static game with the given id.
func (p *Provider) FetchGame(ctx context.Context, id int) (games.Game, error) {
	g, ok := lo.Find(p.games, func(g games.Game) bool { return g.ID == id })
	if !ok {
		return games.Game{}, fmt.Errorf("fixture game %d: %w", id, providers.ErrNotFound)
	}
	return g, nil
}

func ratingCount(g games.Game) int {
	if g.TotalRatingCount == nil {
		return 0
	}
	return *g.TotalRatingCount
}
