package store

import (
	"context"
	"strings"
	"time"

	errors "github.com/Laisky/errors/v2"
	gredis "github.com/Laisky/go-redis/v2"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces every key written by RedisStore.
const DefaultRedisPrefix = "miridev/"

// RedisStore keeps records in Redis, honouring ttl on Put.
type RedisStore struct {
	client *gredis.Utils
	prefix string
}

// NewRedisStore connects a redis-backed store.
func NewRedisStore(opt *redis.Options, prefix string) (*RedisStore, error) {
	if opt == nil {
		return nil, errors.New("redis options are required")
	}

	return NewRedisStoreWithClient(redis.NewClient(opt), prefix)
}

// NewRedisStoreWithClient wraps an existing redis client.
func NewRedisStoreWithClient(rdb *redis.Client, prefix string) (*RedisStore, error) {
	if rdb == nil {
		return nil, errors.New("redis client is required")
	}
	if strings.TrimSpace(prefix) == "" {
		prefix = DefaultRedisPrefix
	}

	return &RedisStore{
		client: gredis.NewRedisUtils(rdb),
		prefix: prefix,
	}, nil
}

// Put stores value under key. A non-positive ttl keeps the record forever.
func (s *RedisStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.SetItem(ctx, s.prefix+key, string(value), ttl); err != nil {
		return errors.Wrapf(err, "redis set %q", key)
	}

	return nil
}

// Get returns the record under key or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.GetItem(ctx, s.prefix+key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "redis get %q", key)
	}

	return []byte(value), nil
}

// Delete removes key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return errors.Wrapf(err, "redis del %q", key)
	}

	return nil
}
