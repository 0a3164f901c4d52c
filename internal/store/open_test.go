package store

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/game-catalog-service/internal/config"
)

func TestOpenBackends(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		cfg  config.StorageConfig
	}{
		{"memory", config.StorageConfig{Backend: config.StoreMemory}},
		{"file", config.StorageConfig{Backend: config.StoreFile, Path: t.TempDir()}},
		{"default is file", config.StorageConfig{Path: t.TempDir()}},
		{"sqlite in path", config.StorageConfig{Backend: config.StoreSQLite, Path: t.TempDir()}},
		{"sealed memory", config.StorageConfig{Backend: config.StoreMemory, Secret: "hunter2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv, closeFn, err := Open(ctx, tt.cfg)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer closeFn()

			if err := kv.Set(ctx, "twitch_access_token", "abc"); err != nil {
				t.Fatalf("set: %v", err)
			}
			got, err := kv.Get(ctx, "twitch_access_token")
			if err != nil || got != "abc" {
				t.Fatalf("expected round trip, got %q err=%v", got, err)
			}
			if err := kv.Delete(ctx, "twitch_access_token"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, err := kv.Get(ctx, "twitch_access_token"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound after delete, got %v", err)
			}
		})
	}
}

func TestOpenSealsWhenSecretSet(t *testing.T) {
	kv, closeFn, err := Open(context.Background(), config.StorageConfig{Backend: config.StoreMemory, Secret: "s"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer closeFn()
	if _, ok := kv.(*SealedStore); !ok {
		t.Fatalf("expected sealed store, got %T", kv)
	}
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	_, closeFn, err := Open(context.Background(), config.StorageConfig{Backend: "etcd"})
	if err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	if closeFn == nil {
		t.Fatalf("expected non-nil close func on error")
	}
}

func TestOpenPostgresRequiresDSN(t *testing.T) {
	if _, _, err := Open(context.Background(), config.StorageConfig{Backend: config.StorePostgres}); err == nil {
		t.Fatalf("expected error without dsn")
	}
}
