// Package settingsstore holds the small runtime settings that live outside
// the static configuration: which provider is active and the refill job's
// schedule overrides and last outcome.
//
// Two key/value backends are available. DatabaseStore keeps values in the
// settings table; RedisStore keeps them in Redis so several service
// instances share one active provider.
package settingsstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/mrlokans/lexicon/internal/database/settings"
	"github.com/mrlokans/lexicon/internal/lexicon"
)

// KeyValueStore reads and writes string settings. A missing key is reported
// with ok == false and a nil error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// DatabaseStore is a KeyValueStore over the settings table.
type DatabaseStore struct {
	repo *settings.Repository
}

func NewDatabaseStore(repo *settings.Repository) *DatabaseStore {
	return &DatabaseStore{repo: repo}
}

func (s *DatabaseStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.repo.Get(ctx, key)
	if errors.Is(err, lexicon.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *DatabaseStore) Set(ctx context.Context, key, value string) error {
	return s.repo.Set(ctx, key, value)
}

// RedisOptions selects the Redis server backing a RedisStore.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore is a KeyValueStore over Redis string keys.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis. The connection is verified lazily; call
// Ping to fail fast at startup.
func NewRedisStore(opts RedisOptions) *RedisStore {
	return &RedisStore{client: redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
