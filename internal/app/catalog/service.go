package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/preston-bernstein/game-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/genres"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/platforms"
	"github.com/preston-bernstein/game-catalog-service/internal/logging"
	"github.com/preston-bernstein/game-catalog-service/internal/providers"
)

const (
	defaultGameCacheSize = 256
	defaultGameCacheTTL  = 10 * time.Minute
	// MaxPageSize is the largest page the upstream accepts.
	MaxPageSize = 500
)

// ErrUnknownPlatformGroup is returned when a listing names a group that is not loaded.
var ErrUnknownPlatformGroup = errors.New("unknown platform group")

// ListRequest selects one page of the game listing.
type ListRequest struct {
	GenreID       *int
	PlatformGroup string
	Search        string
	Limit         int
	Offset        int
}

// Reference is the slow-changing data every listing screen needs first.
type Reference struct {
	Genres   []genres.Genre    `json:"genres"`
	Groups   []platforms.Group `json:"groups"`
	LoadedAt time.Time         `json:"loadedAt"`
}

// Option configures a Service.
type Option func(*Service)

// WithGameCache sizes the game detail cache.
func WithGameCache(size int, ttl time.Duration) Option {
	return func(s *Service) {
		if size > 0 {
			s.cacheSize = size
		}
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithPageSize sets the listing page size used when a request leaves Limit unset.
func WithPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// Service answers catalog queries for the HTTP layer. Genres and platform
// groups are held as a reference snapshot; game listings always go upstream;
// game details are cached for a short time.
type Service struct {
	provider  providers.CatalogProvider
	logger    *slog.Logger
	pageSize  int
	cacheSize int
	cacheTTL  time.Duration
	details   *expirable.LRU[int, games.Game]
	now       func() time.Time

	mu  sync.RWMutex
	ref Reference
}

// NewService constructs a Service over provider.
func NewService(provider providers.CatalogProvider, opts ...Option) *Service {
	s := &Service{
		provider:  provider,
		pageSize:  providers.DefaultPageSize,
		cacheSize: defaultGameCacheSize,
		cacheTTL:  defaultGameCacheTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.details = expirable.NewLRU[int, games.Game](s.cacheSize, nil, s.cacheTTL)
	return s
}

// Refresh reloads genres and platform groups together. On failure the previous
// snapshot is kept. It returns the number of genres plus groups loaded.
func (s *Service) Refresh(ctx context.Context) (int, error) {
	var (
		wg        sync.WaitGroup
		genreList []genres.Genre
		groups    []platforms.Group
		genreErr  error
		groupErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		genreList, genreErr = s.provider.FetchGenres(ctx)
	}()
	go func() {
		defer wg.Done()
		groups, groupErr = s.provider.FetchPlatforms(ctx)
	}()
	wg.Wait()

	if err := errors.Join(genreErr, groupErr); err != nil {
		return 0, fmt.Errorf("refresh reference data: %w", err)
	}
	if genreList == nil {
		genreList = []genres.Genre{}
	}
	if groups == nil {
		groups = []platforms.Group{}
	}

	s.mu.Lock()
	s.ref = Reference{Genres: genreList, Groups: groups, LoadedAt: s.now()}
	s.mu.Unlock()

	logging.Info(logging.FromContext(ctx, s.logger), "reference data refreshed",
		slog.Int("genres", len(genreList)),
		slog.Int("groups", len(groups)),
	)
	return len(genreList) + len(groups), nil
}

// Reference returns the snapshot, loading it first when it has never been loaded.
func (s *Service) Reference(ctx context.Context) (Reference, error) {
	if ref, ok := s.loaded(); ok {
		return ref, nil
	}
	if _, err := s.Refresh(ctx); err != nil {
		return Reference{}, err
	}
	ref, _ := s.loaded()
	return ref, nil
}

// Genres returns the genre list.
func (s *Service) Genres(ctx context.Context) ([]genres.Genre, error) {
	ref, err := s.Reference(ctx)
	if err != nil {
		return nil, err
	}
	return ref.Genres, nil
}

// Groups returns the platform groups.
func (s *Service) Groups(ctx context.Context) ([]platforms.Group, error) {
	ref, err := s.Reference(ctx)
	if err != nil {
		return nil, err
	}
	return ref.Groups, nil
}

// Ready reports whether reference data has been loaded at least once.
func (s *Service) Ready() bool {
	_, ok := s.loaded()
	return ok
}

// ListGames returns one page of games. The platform group, when set, is
// resolved to its platform ids before querying.
func (s *Service) ListGames(ctx context.Context, req ListRequest) (games.Page, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = s.pageSize
	}
	limit = min(limit, MaxPageSize)
	offset := max(req.Offset, 0)

	q := providers.GameQuery{
		GenreID: req.GenreID,
		Search:  req.Search,
		Limit:   limit,
		Offset:  offset,
	}
	if req.PlatformGroup != "" {
		groups, err := s.Groups(ctx)
		if err != nil {
			return games.Page{}, err
		}
		g, ok := platforms.FindGroup(groups, req.PlatformGroup)
		if !ok {
			return games.Page{}, fmt.Errorf("%w: %q", ErrUnknownPlatformGroup, req.PlatformGroup)
		}
		q.PlatformIDs = g.IDs
	}

	list, err := s.provider.FetchGames(ctx, q)
	if err != nil {
		return games.Page{}, err
	}
	return games.NewPage(list, offset, limit), nil
}

// Game returns a game with its detail fields, served from cache when fresh.
func (s *Service) Game(ctx context.Context, id int) (games.Game, error) {
	if g, ok := s.details.Get(id); ok {
		return g, nil
	}
	g, err := s.provider.FetchGame(ctx, id)
	if err != nil {
		logging.Debug(logging.FromContext(ctx, s.logger), "game detail fetch failed",
			slog.Int(logging.FieldGameID, id),
			slog.Any(logging.FieldError, err),
		)
		return games.Game{}, err
	}
	s.details.Add(id, g)
	return g, nil
}

// Forget drops every cached game detail.
func (s *Service) Forget() {
	s.details.Purge()
}

func (s *Service) loaded() (Reference, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ref, !s.ref.LoadedAt.IsZero()
}
