// Package catalog holds the listing state behind the game browser: the active
// filter, the accumulated results and the pagination flags.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/game-catalog-service/internal/debounce"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/genres"
	"github.com/preston-bernstein/game-catalog-service/internal/domain/platforms"
	"github.com/preston-bernstein/game-catalog-service/internal/logging"
	"github.com/preston-bernstein/game-catalog-service/internal/providers"
)

// DefaultPageSize is the number of games requested per page.
const DefaultPageSize = 20

// ErrUnknownPlatformGroup is returned when selecting a group that was not loaded.
var ErrUnknownPlatformGroup = errors.New("unknown platform group")

// Option configures a Browser.
type Option func(*Browser)

// WithPageSize overrides DefaultPageSize.
func WithPageSize(n int) Option {
	return func(b *Browser) {
		if n > 0 {
			b.pageSize = n
		}
	}
}

// WithScheduler sets the scheduler behind the search debounce.
func WithScheduler(s debounce.Scheduler) Option {
	return func(b *Browser) { b.scheduler = s }
}

// WithDebounceDelay overrides the search quiet period.
func WithDebounceDelay(d time.Duration) Option {
	return func(b *Browser) { b.delay = d }
}

// WithLogger sets the logger that receives failure details.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Browser) { b.logger = logger }
}

// WithOnChange registers a callback invoked with a fresh snapshot after every state change.
func WithOnChange(fn func(State)) Option {
	return func(b *Browser) { b.onChange = fn }
}

// WithStaleGuard drops responses from requests superseded by a later filter
// change. Without it, whichever response arrives last is applied.
func WithStaleGuard() Option {
	return func(b *Browser) { b.staleGuard = true }
}

// Browser owns the listing state. All methods are safe for concurrent use.
// There is no automatic retry; Retry reruns the last failed load on request.
type Browser struct {
	provider   providers.CatalogProvider
	logger     *slog.Logger
	pageSize   int
	scheduler  debounce.Scheduler
	delay      time.Duration
	debouncer  *debounce.Debouncer
	onChange   func(State)
	staleGuard bool

	mu         sync.Mutex
	state      State
	generation uint64
	retry      func(context.Context) error
}

// NewBrowser builds a Browser over provider.
func NewBrowser(provider providers.CatalogProvider, opts ...Option) *Browser {
	b := &Browser{
		provider: provider,
		pageSize: DefaultPageSize,
		delay:    debounce.DefaultDelay,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.debouncer = debounce.New(b.scheduler, b.delay)
	b.state.Limit = b.pageSize
	return b
}

// State returns a copy of the current state.
func (b *Browser) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.clone()
}

// Bootstrap loads genres, platform groups and the first page concurrently.
// If any of the three fails, nothing is applied except the error message.
func (b *Browser) Bootstrap(ctx context.Context) error {
	b.mu.Lock()
	b.state.Loading = true
	b.state.Err = ""
	gen := b.nextGeneration()
	q := b.queryLocked(0)
	b.mu.Unlock()
	b.notify()

	var (
		wg        sync.WaitGroup
		genreList []genres.Genre
		groups    []platforms.Group
		page      []games.Game
		errs      [3]error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		genreList, errs[0] = b.provider.FetchGenres(ctx)
	}()
	go func() {
		defer wg.Done()
		groups, errs[1] = b.provider.FetchPlatforms(ctx)
	}()
	go func() {
		defer wg.Done()
		page, errs[2] = b.provider.FetchGames(ctx, q)
	}()
	wg.Wait()

	err := errors.Join(errs[:]...)

	b.mu.Lock()
	stale := b.isStale(gen)
	if !stale {
		b.state.Loading = false
	}
	if err != nil {
		b.state.Err = MsgLoadData
		b.retry = b.Bootstrap
		b.mu.Unlock()
		logging.Error(logging.FromContext(ctx, b.logger), "catalog bootstrap failed", err)
		b.notify()
		return fmt.Errorf("bootstrap: %w", err)
	}
	b.state.Genres = genreList
	b.state.Groups = groups
	if !stale {
		b.applyFirstPageLocked(page)
	}
	b.retry = nil
	b.mu.Unlock()
	b.notify()
	return nil
}

// SelectGenre toggles the genre filter and reloads the first page.
func (b *Browser) SelectGenre(ctx context.Context, id int) error {
	b.mu.Lock()
	if b.state.Filter.GenreID != nil && *b.state.Filter.GenreID == id {
		b.state.Filter.GenreID = nil
	} else {
		b.state.Filter.GenreID = &id
	}
	b.mu.Unlock()
	return b.LoadFirstPage(ctx)
}

// SelectPlatformGroup toggles the platform group filter and reloads the first page.
// The key is resolved to platform ids at query time.
func (b *Browser) SelectPlatformGroup(ctx context.Context, key string) error {
	b.mu.Lock()
	if b.state.Filter.PlatformGroup == key {
		b.state.Filter.PlatformGroup = ""
	} else {
		if _, ok := platforms.FindGroup(b.state.Groups, key); !ok {
			b.mu.Unlock()
			return fmt.Errorf("%w: %q", ErrUnknownPlatformGroup, key)
		}
		b.state.Filter.PlatformGroup = key
	}
	b.mu.Unlock()
	return b.LoadFirstPage(ctx)
}

// SetSearch stores the search text and schedules a first-page reload once the
// text has been stable for the debounce delay. Only the last text is queried.
func (b *Browser) SetSearch(ctx context.Context, text string) {
	b.mu.Lock()
	b.state.Filter.Search = text
	b.mu.Unlock()
	b.notify()

	b.debouncer.Trigger(func() {
		_ = b.LoadFirstPage(ctx)
	})
}

// LoadFirstPage replaces the list with the first page for the current filter.
func (b *Browser) LoadFirstPage(ctx context.Context) error {
	b.mu.Lock()
	b.state.Loading = true
	b.state.Err = ""
	gen := b.nextGeneration()
	q := b.queryLocked(0)
	b.mu.Unlock()
	b.notify()

	page, err := b.provider.FetchGames(ctx, q)

	b.mu.Lock()
	if b.isStale(gen) {
		b.mu.Unlock()
		return nil
	}
	b.state.Loading = false
	if err != nil {
		b.state.Err = MsgLoadGames
		b.retry = b.LoadFirstPage
		b.mu.Unlock()
		logging.Error(logging.FromContext(ctx, b.logger), "catalog first page failed", err, queryAttrs(q)...)
		b.notify()
		return err
	}
	b.applyFirstPageLocked(page)
	b.retry = nil
	b.mu.Unlock()
	b.notify()
	return nil
}

// LoadMore appends the next page. It does nothing while any load is in flight
// or when the last page came back short.
func (b *Browser) LoadMore(ctx context.Context) error {
	b.mu.Lock()
	if b.state.Loading || b.state.LoadingMore || !b.state.HasMore {
		b.mu.Unlock()
		return nil
	}
	b.state.LoadingMore = true
	b.state.Err = ""
	gen := b.generation
	next := b.state.Offset + b.state.Limit
	q := b.queryLocked(next)
	b.mu.Unlock()
	b.notify()

	page, err := b.provider.FetchGames(ctx, q)

	b.mu.Lock()
	b.state.LoadingMore = false
	if b.isStale(gen) {
		b.mu.Unlock()
		b.notify()
		return nil
	}
	if err != nil {
		b.state.Err = MsgLoadGames
		b.retry = b.LoadMore
		b.mu.Unlock()
		logging.Error(logging.FromContext(ctx, b.logger), "catalog load more failed", err, queryAttrs(q)...)
		b.notify()
		return err
	}
	b.state.Games = append(b.state.Games, page...)
	b.state.Offset = next
	b.state.HasMore = games.HasMore(len(page), q.Limit)
	b.retry = nil
	b.mu.Unlock()
	b.notify()
	return nil
}

// Retry reruns the last failed load. It is a no-op when nothing failed.
func (b *Browser) Retry(ctx context.Context) error {
	b.mu.Lock()
	retry := b.retry
	b.mu.Unlock()
	if retry == nil {
		return nil
	}
	return retry(ctx)
}

// FlushSearch runs a pending debounced search immediately and waits for it.
// It reports whether a search was pending.
func (b *Browser) FlushSearch() bool {
	return b.debouncer.Flush()
}

// Close drops any pending debounced search.
func (b *Browser) Close() {
	b.debouncer.Cancel()
}

func (b *Browser) applyFirstPageLocked(page []games.Game) {
	if page == nil {
		page = []games.Game{}
	}
	b.state.Games = page
	b.state.Offset = 0
	b.state.HasMore = games.HasMore(len(page), b.state.Limit)
}

// queryLocked builds the request for offset from the current filter.
func (b *Browser) queryLocked(offset int) providers.GameQuery {
	f := b.state.Filter
	q := providers.GameQuery{
		Search: f.Search,
		Limit:  b.state.Limit,
		Offset: offset,
	}
	if f.GenreID != nil {
		id := *f.GenreID
		q.GenreID = &id
	}
	if f.PlatformGroup != "" {
		if g, ok := platforms.FindGroup(b.state.Groups, f.PlatformGroup); ok {
			q.PlatformIDs = append([]int(nil), g.IDs...)
		}
	}
	return q
}

func queryAttrs(q providers.GameQuery) []any {
	attrs := []any{slog.Int(logging.FieldOffset, q.Offset), slog.Int(logging.FieldLimit, q.Limit)}
	if q.GenreID != nil {
		attrs = append(attrs, slog.Int(logging.FieldGenreID, *q.GenreID))
	}
	if len(q.PlatformIDs) > 0 {
		attrs = append(attrs, slog.Any(logging.FieldPlatformGroup, q.PlatformIDs))
	}
	return attrs
}

func (b *Browser) nextGeneration() uint64 {
	b.generation++
	return b.generation
}

func (b *Browser) isStale(gen uint64) bool {
	return b.staleGuard && gen != b.generation
}

func (b *Browser) notify() {
	if b.onChange == nil {
		return
	}
	b.onChange(b.State())
}
