package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/halfmesh/pkg/errors"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Store.Backend != BackendFile {
		t.Errorf("default backend = %q, want %q", cfg.Store.Backend, BackendFile)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("default serve addr = %q, want :8080", cfg.Serve.Addr)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[store]
backend = "redis"

[store.redis]
addr = "redis.example:6379"
db = 2

[serve]
addr = ":9090"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Store.Backend != BackendRedis {
		t.Errorf("backend = %q, want redis", cfg.Store.Backend)
	}
	if cfg.Store.Redis.Addr != "redis.example:6379" {
		t.Errorf("redis addr = %q", cfg.Store.Redis.Addr)
	}
	if cfg.Store.Redis.DB != 2 {
		t.Errorf("redis db = %d, want 2", cfg.Store.Redis.DB)
	}
	if cfg.Serve.Addr != ":9090" {
		t.Errorf("serve addr = %q, want :9090", cfg.Serve.Addr)
	}

	// Unset fields keep their defaults.
	if cfg.Store.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("mongo uri = %q, should keep default", cfg.Store.Mongo.URI)
	}
}

func TestLoadConfigBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("store = {{{"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err == nil {
		t.Fatal("LoadConfig() should report the parse error")
	}

	// Broken config still yields usable defaults.
	if cfg.Store.Backend != BackendFile {
		t.Errorf("backend = %q, want file fallback", cfg.Store.Backend)
	}
}

func TestOpenStoreBackends(t *testing.T) {
	ctx := context.Background()

	s, err := openStore(ctx, StoreConfig{Backend: BackendFile, Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("openStore(file) error: %v", err)
	}
	s.Close()

	s, err = openStore(ctx, StoreConfig{Backend: BackendNull})
	if err != nil {
		t.Fatalf("openStore(null) error: %v", err)
	}
	s.Close()

	if _, err := openStore(ctx, StoreConfig{Backend: "carrier-pigeon"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("openStore(unknown) error = %v, want INVALID_INPUT", err)
	}
}
