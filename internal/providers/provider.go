package providers

import (
	"context"

	"github.com/preston-bernstein/game-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/genres"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/platforms"
)

// Resource names used for logging and metrics.
const (
	ResourceGenres    = "genres"
	ResourcePlatforms = "platforms"
	ResourceGames     = "games"
	ResourceGame      = "game"
)

// DefaultPageSize is used when a GameQuery leaves Limit unset.
const DefaultPageSize = 30

// GameQuery narrows a game listing. Every present filter must match.
type GameQuery struct {
	GenreID     *int
	PlatformIDs []int
	Search      string
	Limit       int
	Offset      int
}

// Normalized returns q with Limit and Offset defaulted.
func (q GameQuery) Normalized() GameQuery {
	if q.Limit <= 0 {
		q.Limit = DefaultPageSize
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}

// GenreProvider fetches the genre list.
type GenreProvider interface {
	FetchGenres(ctx context.Context) ([]genres.Genre, error)
}

// PlatformProvider fetches platforms already bucketed into groups.
type PlatformProvider interface {
	FetchPlatforms(ctx context.Context) ([]platforms.Group, error)
}

// GameProvider fetches game listings and single games.
// Listings are sorted by total rating count, highest first.
type GameProvider interface {
	FetchGames(ctx context.Context, q GameQuery) ([]games.Game, error)
	FetchGame(ctx context.Context, id int) (games.Game, error)
}

// CatalogProvider combines all provider capabilities.
type CatalogProvider interface {
	GenreProvider
	PlatformProvider
	GameProvider
}
