// Package blocklist answers whether an account is barred from registration
// updates. Blocks are written by the fraud desk out of band; this service
// only reads them.
package blocklist

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Store reports whether an account's unique id is on the block list.
type Store interface {
	IsBlocked(ctx context.Context, uniqueID string) (bool, error)
}

// RedisStore reads block markers from Redis. A block is a key with an
// optional TTL, so temporary blocks expire without a cleanup job.
type RedisStore struct {
	client redis.Cmdable
}

var _ Store = (*RedisStore)(nil)

func NewRedis(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func blockKey(uniqueID string) string {
	return "blocklist:" + uniqueID
}

func (s *RedisStore) IsBlocked(ctx context.Context, uniqueID string) (bool, error) {
	n, err := s.client.Exists(ctx, blockKey(uniqueID)).Result()
	if err != nil {
		return false, fmt.Errorf("check block list: %w", err)
	}
	return n > 0, nil
}
