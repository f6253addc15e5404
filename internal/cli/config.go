package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/halfmesh/pkg/errors"
	"github.com/matzehuels/halfmesh/pkg/store"
)

// Store backend names accepted in the configuration.
const (
	BackendFile  = "file"
	BackendNull  = "null"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config is the on-disk CLI configuration, read from
// ~/.config/halfmesh/config.toml (or $XDG_CONFIG_HOME/halfmesh/config.toml).
type Config struct {
	Store StoreConfig `toml:"store"`
	Serve ServeConfig `toml:"serve"`
}

// StoreConfig selects and configures the snapshot store backend.
type StoreConfig struct {
	// Backend is one of "file", "null", "redis", "mongo". Empty means file.
	Backend string `toml:"backend"`

	// Dir overrides the snapshot directory for the file backend.
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
	Mongo MongoConfig `toml:"mongo"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTLHours int    `toml:"ttl_hours"`
}

// MongoConfig configures the mongo backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServeConfig configures the HTTP API server.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Store: StoreConfig{
			Backend: BackendFile,
			Redis:   RedisConfig{Addr: "localhost:6379"},
			Mongo:   MongoConfig{URI: "mongodb://localhost:27017"},
		},
		Serve: ServeConfig{Addr: ":8080"},
	}
}

// LoadConfig reads the configuration from path, or from the default
// location when path is empty. A missing file yields [DefaultConfig] and no
// error; a present but unparseable file yields the defaults plus the error,
// so callers can warn and continue.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		var err error
		if path, err = configPath(); err != nil {
			return cfg, nil
		}
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = BackendFile
	}
	return cfg, nil
}

// configPath returns the config file location using XDG standard.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// openStore opens the snapshot store selected by cfg.
func openStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case "", BackendFile:
		dir := cfg.Dir
		if dir == "" {
			var err error
			if dir, err = dataDir(); err != nil {
				return nil, fmt.Errorf("resolve store directory: %w", err)
			}
		}
		return store.NewFileStore(dir)
	case BackendNull:
		return store.NewNullStore(), nil
	case BackendRedis:
		return store.NewRedisStore(ctx, store.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      time.Duration(cfg.Redis.TTLHours) * time.Hour,
		})
	case BackendMongo:
		return store.NewMongoStore(ctx, store.MongoOptions{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"unknown store backend %q (known: file, null, redis, mongo)", cfg.Backend)
	}
}
