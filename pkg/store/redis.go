package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/halfmesh/pkg/errors"
	"github.com/matzehuels/halfmesh/pkg/meshio"
)

// redisIndexKey is the set holding all stored names, kept in lockstep with
// the per-name keys so List needs no SCAN.
const redisIndexKey = "halfmesh:meshes"

// RedisStore persists snapshots in Redis, one JSON value per name plus an
// index set for listing. Suitable for shared deployments where snapshots
// are hot state rather than durable records.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisOptions configures a [RedisStore].
type RedisOptions struct {
	Addr     string
	Password string
	DB       int

	// TTL expires snapshots after the given duration; zero keeps them
	// until deleted. The index entry is removed lazily on the next Get.
	TTL time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, Retryable(errors.Wrap(errors.ErrCodeStore, err, "connect to redis at %s", opts.Addr))
	}
	return &RedisStore{client: client, ttl: opts.TTL}, nil
}

// Put stores a snapshot under name.
func (s *RedisStore) Put(ctx context.Context, name string, doc meshio.Document) error {
	if err := errors.ValidateMeshName(name); err != nil {
		return err
	}
	data, err := meshio.Marshal(doc)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(name), data, s.ttl)
	pipe.SAdd(ctx, redisIndexKey, name)
	if _, err := pipe.Exec(ctx); err != nil {
		return Retryable(errors.Wrap(errors.ErrCodeStore, err, "store snapshot %q", name))
	}
	return nil
}

// Get retrieves the snapshot stored under name.
func (s *RedisStore) Get(ctx context.Context, name string) (meshio.Document, error) {
	if err := errors.ValidateMeshName(name); err != nil {
		return meshio.Document{}, err
	}
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err == redis.Nil {
		// Expired or deleted; drop the stale index entry.
		_ = s.client.SRem(ctx, redisIndexKey, name).Err()
		return meshio.Document{}, errors.New(errors.ErrCodeMeshNotFound, "mesh %q not found", name)
	}
	if err != nil {
		return meshio.Document{}, Retryable(errors.Wrap(errors.ErrCodeStore, err, "read snapshot %q", name))
	}
	return meshio.Unmarshal(data)
}

// Delete removes the snapshot stored under name.
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateMeshName(name); err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(name))
	pipe.SRem(ctx, redisIndexKey, name)
	if _, err := pipe.Exec(ctx); err != nil {
		return Retryable(errors.Wrap(errors.ErrCodeStore, err, "delete snapshot %q", name))
	}
	return nil
}

// List returns the stored names.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return nil, Retryable(errors.Wrap(errors.ErrCodeStore, err, "list snapshots"))
	}
	return names, nil
}

// Close releases the client connection pool.
func (s *RedisStore) Close() error { return s.client.Close() }

func (s *RedisStore) key(name string) string {
	return fmt.Sprintf("halfmesh:mesh:%s", name)
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
