package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func key(sid string) string {
	return fmt.Sprintf("session:%s", sid)
}

func (s *RedisStore) Save(
	ctx context.Context,
	sid string,
	userID uint,
	ttl time.Duration,
) error {
	return s.rdb.Set(ctx, key(sid), strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

func (s *RedisStore) UserID(
	ctx context.Context,
	sid string,
) (uint, bool, error) {

	val, err := s.rdb.Get(ctx, key(sid)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return uint(id), true, nil
}

func (s *RedisStore) Destroy(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, key(sid)).Err()
}

// Compile-time check
var _ Store = (*RedisStore)(nil)
