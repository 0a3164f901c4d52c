package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// DefaultTokenURL is the Twitch OAuth client-credentials endpoint.
	DefaultTokenURL = "https://id.twitch.tv/oauth2/token"
)

var errMissingClientCredentials = errors.New("twitch: client id and secret are required")

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TwitchConfig controls how the token endpoint is reached.
type TwitchConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	HTTPClient   *http.Client
}

// TwitchSource fetches app access tokens with the client-credentials grant.
type TwitchSource struct {
	clientID     string
	clientSecret string
	tokenURL     string
	httpClient   httpDoer
}

// NewTwitchSource constructs a TwitchSource with the provided configuration.
func NewTwitchSource(cfg TwitchConfig) *TwitchSource {
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	// No client timeout: the request is bounded by ctx and the transport.
	var client httpDoer = cfg.HTTPClient
	if cfg.HTTPClient == nil {
		client = &http.Client{}
	}
	return &TwitchSource{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		tokenURL:     tokenURL,
		httpClient:   client,
	}
}

// FetchToken posts the client credentials and decodes the token payload.
func (s *TwitchSource) FetchToken(ctx context.Context) (TokenResponse, error) {
	if s.clientID == "" || s.clientSecret == "" {
		return TokenResponse{}, errMissingClientCredentials
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, nil)
	if err != nil {
		return TokenResponse{}, err
	}
	q := req.URL.Query()
	q.Set("client_id", s.clientID)
	q.Set("client_secret", s.clientSecret)
	q.Set("grant_type", "client_credentials")
	req.URL.RawQuery = q.Encode()

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return TokenResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return TokenResponse{}, fmt.Errorf("twitch: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return TokenResponse{}, fmt.Errorf("twitch: decode token: %w", err)
	}
	return payload, nil
}
