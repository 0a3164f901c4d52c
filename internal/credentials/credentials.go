// Package credentials obtains and caches the app access token used to call the catalog API.
package credentials

import (
	"context"
	"errors"
	"time"
)

// Keys under which the credential pair is persisted.
const (
	TokenKey  = "twitch_access_token"
	ExpiryKey = "twitch_token_expiry"
)

// ExpiryBuffer is how long before its expiry a stored token stops being reused.
const ExpiryBuffer = 60 * time.Second

// ErrNoToken is returned when no usable token could be obtained.
var ErrNoToken = errors.New("no access token available")

// Credential is a bearer token and the instant it stops being valid.
type Credential struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Valid reports whether the credential can still be used at now.
func (c Credential) Valid(now time.Time) bool {
	return c.Token != "" && now.Before(c.ExpiresAt.Add(-ExpiryBuffer))
}

// Store persists the credential entries. Get returns store.ErrNotFound when a key is absent.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// TokenResponse is the token endpoint payload.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// TokenSource exchanges client credentials for a fresh token.
type TokenSource interface {
	FetchToken(ctx context.Context) (TokenResponse, error)
}

// Metrics receives cache outcomes.
type Metrics interface {
	RecordTokenCacheHit()
	RecordTokenRefresh(err error)
}
