package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/preston-bernstein/game-catalog-service/internal/config"
)

const sqliteFileName = "credentials.db"

// Open builds the backend selected by cfg, sealing it when a secret is set.
// The returned close func is never nil.
func Open(ctx context.Context, cfg config.StorageConfig) (KV, func() error, error) {
	noop := func() error { return nil }

	var (
		kv      KV
		closeFn = noop
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case config.StoreFile, "":
		kv = NewFSStore(cfg.Path)
	case config.StoreMemory:
		kv = NewMemoryStore()
	case config.StoreSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			if err := os.MkdirAll(cfg.Path, 0o700); err != nil {
				return nil, noop, fmt.Errorf("create store dir: %w", err)
			}
			dsn = filepath.Join(cfg.Path, sqliteFileName)
		}
		s, err := OpenSQLStore(ctx, DriverSQLite, dsn)
		if err != nil {
			return nil, noop, err
		}
		kv, closeFn = s, s.Close
	case config.StorePostgres:
		s, err := OpenSQLStore(ctx, DriverPostgres, cfg.DSN)
		if err != nil {
			return nil, noop, err
		}
		kv, closeFn = s, s.Close
	default:
		return nil, noop, fmt.Errorf("unknown credential store %q", cfg.Backend)
	}

	if !cfg.Encrypted() {
		return kv, closeFn, nil
	}
	sealed, err := NewSealedStore(kv, []byte(cfg.Secret))
	if err != nil {
		_ = closeFn()
		return nil, noop, err
	}
	return sealed, closeFn, nil
}
