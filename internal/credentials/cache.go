package credentials

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/game-catalog-service/internal/logging"
	"github.com/preston-bernstein/game-catalog-service/internal/store"
	"github.com/preston-bernstein/game-catalog-service/internal/timeutil"
)

// Cache hands out a bearer token, reusing the stored one until it is within
// ExpiryBuffer of expiring. Concurrent callers that all miss each refresh;
// the last write wins.
type Cache struct {
	store   Store
	source  TokenSource
	logger  *slog.Logger
	metrics Metrics
	now     func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger used for cache hits, refreshes and failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

// WithMetrics sets the recorder for hit and refresh counters.
func WithMetrics(m Metrics) Option {
	return func(c *Cache) { c.metrics = m }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCache builds a Cache over the given store and token source.
func NewCache(st Store, source TokenSource, opts ...Option) *Cache {
	c := &Cache{
		store:  st,
		source: source,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns a usable bearer token, fetching and persisting a new one when
// the stored token is missing, unparsable or about to expire. Every failure
// wraps ErrNoToken.
func (c *Cache) Token(ctx context.Context) (string, error) {
	if c == nil || c.store == nil || c.source == nil {
		return "", ErrNoToken
	}
	logger := logging.FromContext(ctx, c.logger)

	cred, found, err := c.load(ctx)
	if err != nil {
		logging.Error(logger, "credential read failed", err)
		return "", fmt.Errorf("%w: read: %v", ErrNoToken, err)
	}
	if found && cred.Valid(c.now()) {
		logging.Debug(logger, "using stored token", slog.Time("expires_at", cred.ExpiresAt))
		if c.metrics != nil {
			c.metrics.RecordTokenCacheHit()
		}
		return cred.Token, nil
	}

	logging.Info(logger, "requesting new token")
	token, err := c.refresh(ctx)
	if c.metrics != nil {
		c.metrics.RecordTokenRefresh(err)
	}
	if err != nil {
		logging.Error(logger, "token refresh failed", err)
		return "", err
	}
	return token, nil
}

// Current returns the stored credential without refreshing it.
func (c *Cache) Current(ctx context.Context) (Credential, error) {
	if c == nil || c.store == nil {
		return Credential{}, ErrNoToken
	}
	cred, found, err := c.load(ctx)
	if err != nil {
		// A store that cannot be read is not the same as an empty one.
		return Credential{}, fmt.Errorf("read credential: %w", err)
	}
	if !found {
		return Credential{}, ErrNoToken
	}
	return cred, nil
}

// Clear removes both stored entries. Missing entries are not an error.
func (c *Cache) Clear(ctx context.Context) error {
	if c == nil || c.store == nil {
		return nil
	}
	var errs []error
	for _, key := range []string{TokenKey, ExpiryKey} {
		if err := c.store.Delete(ctx, key); err != nil && !errors.Is(err, store.ErrNotFound) {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		logging.Error(logging.FromContext(ctx, c.logger), "credential clear failed", err)
		return err
	}
	logging.Info(logging.FromContext(ctx, c.logger), "credential cleared")
	return nil
}

// load reads the pair. found is false when either entry is absent or the
// expiry does not parse.
func (c *Cache) load(ctx context.Context) (Credential, bool, error) {
	token, err := c.store.Get(ctx, TokenKey)
	if errors.Is(err, store.ErrNotFound) {
		return Credential{}, false, nil
	}
	if err != nil {
		return Credential{}, false, err
	}
	rawExpiry, err := c.store.Get(ctx, ExpiryKey)
	if errors.Is(err, store.ErrNotFound) {
		return Credential{}, false, nil
	}
	if err != nil {
		return Credential{}, false, err
	}
	if token == "" || rawExpiry == "" {
		return Credential{}, false, nil
	}
	expiresAt, err := timeutil.ParseEpochMillis(rawExpiry)
	if err != nil {
		return Credential{}, false, nil
	}
	return Credential{Token: token, ExpiresAt: expiresAt}, true, nil
}

func (c *Cache) refresh(ctx context.Context) (string, error) {
	resp, err := c.source.FetchToken(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: fetch: %v", ErrNoToken, err)
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrNoToken)
	}

	expiresAt := c.now().Add(timeutil.SecondsToDuration(resp.ExpiresIn))
	if err := c.store.Set(ctx, TokenKey, resp.AccessToken); err != nil {
		return "", fmt.Errorf("%w: store token: %v", ErrNoToken, err)
	}
	if err := c.store.Set(ctx, ExpiryKey, timeutil.FormatEpochMillis(expiresAt)); err != nil {
		return "", fmt.Errorf("%w: store expiry: %v", ErrNoToken, err)
	}
	return resp.AccessToken, nil
}
