package config

import (
	"os"
	"path/filepath"
)

const (
	envCredentialStore  = "CREDENTIAL_STORE"
	envCredentialPath   = "CREDENTIAL_PATH"
	envCredentialDSN    = "CREDENTIAL_DSN"
	envCredentialSecret = "CREDENTIAL_SECRET"

	defaultCredentialStore = StoreFile
	appDirName             = "game-catalog"
)

// Credential store backends accepted by CREDENTIAL_STORE.
const (
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// StorageConfig selects where the cached access token is persisted.
type StorageConfig struct {
	Backend string
	Path    string // directory for the file backend
	DSN     string // sqlite path or postgres connection string
	Secret  string // non-empty enables encryption at rest
}

// Encrypted reports whether stored values are sealed.
func (s StorageConfig) Encrypted() bool {
	return s.Secret != ""
}

func loadStorage() StorageConfig {
	return StorageConfig{
		Backend: envOrDefault(envCredentialStore, defaultCredentialStore),
		Path:    envOrDefault(envCredentialPath, defaultCredentialPath()),
		DSN:     envOrDefault(envCredentialDSN, ""),
		Secret:  envOrDefault(envCredentialSecret, ""),
	}
}

func defaultCredentialPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return filepath.Join(".", "data", appDirName)
	}
	return filepath.Join(dir, appDirName)
}
