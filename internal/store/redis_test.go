package store

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// TestNewRedisStoreValidation verifies constructor arguments and the default key prefix.
func TestNewRedisStoreValidation(t *testing.T) {
	_, err := NewRedisStore(nil, "")
	require.Error(t, err)

	_, err = NewRedisStoreWithClient(nil, "")
	require.Error(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer rdb.Close()

	s, err := NewRedisStoreWithClient(rdb, "  ")
	require.NoError(t, err)
	require.Equal(t, DefaultRedisPrefix, s.prefix)
}

// TestRedisStoreUnreachable verifies connection failures are not reported as missing records.
func TestRedisStoreUnreachable(t *testing.T) {
	s, err := NewRedisStore(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	}, "test/")
	require.NoError(t, err)

	ctx := context.Background()
	_, err = s.Get(ctx, "credential")
	require.Error(t, err)
	require.False(t, IsNotFound(err))

	require.Error(t, s.Put(ctx, "credential", []byte("{}"), time.Minute))
}
