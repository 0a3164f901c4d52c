package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/game-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/genres"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/platforms"
	"github.com/preston-bernstein/game-catalog-service/internal/providers"
)

// StubProvider is a test double for providers.CatalogProvider.
// Each resource has its own canned result, error and call counter.
type StubProvider struct {
	Genres    []genres.Genre
	Groups    []platforms.Group
	Games     []games.Game
	Game      *games.Game
	GenresErr error
	GroupsErr error
	GamesErr  error
	GameErr   error

	// GamesFunc, when set, answers FetchGames instead of Games/GamesErr.
	GamesFunc func(q providers.GameQuery) ([]games.Game, error)

	GenreCalls    atomic.Int32
	PlatformCalls atomic.Int32
	GamesCalls    atomic.Int32
	GameCalls     atomic.Int32

	mu      sync.Mutex
	queries []providers.GameQuery
}

// FetchGenres returns configured genres and error while tracking calls.
func (s *StubProvider) FetchGenres(ctx context.Context) ([]genres.Genre, error) {
	s.GenreCalls.Add(1)
	return s.Genres, s.GenresErr
}

// FetchPlatforms returns configured groups and error while tracking calls.
func (s *StubProvider) FetchPlatforms(ctx context.Context) ([]platforms.Group, error) {
	s.PlatformCalls.Add(1)
	return s.Groups, s.GroupsErr
}

// FetchGames records the query and returns configured games.
func (s *StubProvider) FetchGames(ctx context.Context, q providers.GameQuery) ([]games.Game, error) {
	s.GamesCalls.Add(1)
	s.mu.Lock()
	s.queries = append(s.queries, q)
	s.mu.Unlock()
	if s.GamesFunc != nil {
		return s.GamesFunc(q)
	}
	return s.Games, s.GamesErr
}

// FetchGame returns the configured game, or ErrNotFound when none is set.
func (s *StubProvider) FetchGame(ctx context.Context, id int) (games.Game, error) {
	s.GameCalls.Add(1)
	if s.GameErr != nil {
		return games.Game{}, s.GameErr
	}
	if s.Game == nil || s.Game.ID != id {
		return games.Game{}, providers.ErrNotFound
	}
	return *s.Game, nil
}

// Queries returns every GameQuery received so far.
func (s *StubProvider) Queries() []providers.GameQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]providers.GameQuery(nil), s.queries...)
}

// LastQuery returns the most recent GameQuery and whether one was received.
func (s *StubProvider) LastQuery() (providers.GameQuery, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queries) == 0 {
		return providers.GameQuery{}, false
	}
	return s.queries[len(s.queries)-1], true
}

// GamesN builds n numbered games starting at id start.
func GamesN(start, n int) []games.Game {
	out := make([]games.Game, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, games.Game{ID: start + i, Name: "Game"})
	}
	return out
}
