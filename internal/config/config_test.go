package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := fromEnv()

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.Provider != ProviderIGDB {
		t.Fatalf("expected default provider %s, got %s", ProviderIGDB, cfg.Provider)
	}
	if cfg.RefreshInterval != defaultRefreshInterval {
		t.Fatalf("expected default refresh interval %s, got %s", defaultRefreshInterval, cfg.RefreshInterval)
	}
	if cfg.IGDB.BaseURL != defaultIGDBBaseURL {
		t.Fatalf("expected default igdb base url %s, got %s", defaultIGDBBaseURL, cfg.IGDB.BaseURL)
	}
	if cfg.IGDB.TokenURL != defaultTwitchTokenURL {
		t.Fatalf("expected default token url %s, got %s", defaultTwitchTokenURL, cfg.IGDB.TokenURL)
	}
	if cfg.IGDB.PageSize != 30 {
		t.Fatalf("expected default page size 30, got %d", cfg.IGDB.PageSize)
	}
	if cfg.IGDB.HasCredentials() {
		t.Fatalf("expected no credentials by default")
	}
	if cfg.Storage.Backend != StoreFile {
		t.Fatalf("expected file store by default, got %s", cfg.Storage.Backend)
	}
	if cfg.Storage.Encrypted() {
		t.Fatalf("expected plaintext store by default")
	}
	if cfg.GameCache.Size != defaultGameCacheSize || cfg.GameCache.TTL != defaultGameCacheTTL {
		t.Fatalf("unexpected game cache defaults: %+v", cfg.GameCache)
	}
	if cfg.AdminToken != "" {
		t.Fatalf("expected no admin token by default")
	}
	if cfg.Metrics.ServiceName != defaultServiceName {
		t.Fatalf("expected service name %s, got %s", defaultServiceName, cfg.Metrics.ServiceName)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envPort, "5000")
	t.Setenv(envProvider, ProviderFixture)
	t.Setenv(envRefreshInterval, "45s")
	t.Setenv(envIGDBBaseURL, "http://example.com/v4")
	t.Setenv(envIGDBClientID, "client")
	t.Setenv(envIGDBClientSecret, "secret")
	t.Setenv(envIGDBRateInterval, "1s")
	t.Setenv(envIGDBPageSize, "20")
	t.Setenv(envCredentialStore, StoreSQLite)
	t.Setenv(envCredentialDSN, "/tmp/creds.db")
	t.Setenv(envCredentialSecret, "hunter2")
	t.Setenv(envLogFormat, "json")
	t.Setenv(envAdminToken, "admin-secret")

	cfg := fromEnv()

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.Provider != ProviderFixture {
		t.Fatalf("expected provider fixture, got %s", cfg.Provider)
	}
	if cfg.RefreshInterval != 45*time.Second {
		t.Fatalf("expected refresh interval 45s, got %s", cfg.RefreshInterval)
	}
	if cfg.IGDB.BaseURL != "http://example.com/v4" {
		t.Fatalf("expected igdb base url override, got %s", cfg.IGDB.BaseURL)
	}
	if !cfg.IGDB.HasCredentials() {
		t.Fatalf("expected credentials to be set")
	}
	if cfg.IGDB.RateInterval != time.Second {
		t.Fatalf("expected rate interval 1s, got %s", cfg.IGDB.RateInterval)
	}
	if cfg.IGDB.PageSize != 20 {
		t.Fatalf("expected page size 20, got %d", cfg.IGDB.PageSize)
	}
	if cfg.Storage.Backend != StoreSQLite || cfg.Storage.DSN != "/tmp/creds.db" {
		t.Fatalf("unexpected storage config: %+v", cfg.Storage)
	}
	if !cfg.Storage.Encrypted() {
		t.Fatalf("expected encryption when secret is set")
	}
	if cfg.Log.Format != "json" {
		t.Fatalf("expected json log format, got %s", cfg.Log.Format)
	}
	if cfg.AdminToken != "admin-secret" {
		t.Fatalf("expected admin token override, got %q", cfg.AdminToken)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv(envRefreshInterval, "not-a-duration")

	cfg := fromEnv()

	if cfg.RefreshInterval != defaultRefreshInterval {
		t.Fatalf("expected default refresh interval on invalid value, got %s", cfg.RefreshInterval)
	}
}

func TestLoadNonPositiveValuesFallBack(t *testing.T) {
	t.Setenv(envRefreshInterval, "0s")
	t.Setenv(envGameCacheSize, "-4")

	cfg := fromEnv()

	if cfg.RefreshInterval != defaultRefreshInterval {
		t.Fatalf("expected default refresh interval on non-positive value, got %s", cfg.RefreshInterval)
	}
	if cfg.GameCache.Size != defaultGameCacheSize {
		t.Fatalf("expected default cache size on non-positive value, got %d", cfg.GameCache.Size)
	}
}

func TestLoadFilesAppliesDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("IGDB_CLIENT_ID=from-file\nPORT=7000\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv(envPort, "6000")
	t.Setenv(envIGDBClientID, "")
	os.Unsetenv(envIGDBClientID)

	cfg, err := LoadFiles(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.IGDB.ClientID != "from-file" {
		t.Fatalf("expected client id from file, got %q", cfg.IGDB.ClientID)
	}
	if cfg.Port != "6000" {
		t.Fatalf("expected environment to win over file, got %s", cfg.Port)
	}
}

func TestLoadFilesMissingFile(t *testing.T) {
	if _, err := LoadFiles(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("expected error for missing env file")
	}
}
