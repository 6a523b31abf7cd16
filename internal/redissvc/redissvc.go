package redissvc

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisService wraps the shared redis client plus the small cache operations
// the handlers need.
type RedisService struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisService(rdb *redis.Client, ctx context.Context) *RedisService {
	return &RedisService{
		rdb: rdb,
		ctx: ctx,
	}
}

func (s *RedisService) Rdb() *redis.Client {
	return s.rdb
}

func (s *RedisService) Ctx() context.Context {
	return s.ctx
}

// GetCached returns the cached value for key, or ok=false on a miss.
func (s *RedisService) GetCached(key string) (string, bool) {
	val, err := s.rdb.Get(s.ctx, key).Result()
	if errors.Is(err, redis.Nil) || err != nil {
		return "", false
	}
	return val, true
}

// SetCached stores value under key with the given TTL.
func (s *RedisService) SetCached(key, value string, ttl time.Duration) error {
	return s.rdb.Set(s.ctx, key, value, ttl).Err()
}

// Invalidate drops a cached key.
func (s *RedisService) Invalidate(key string) error {
	return s.rdb.Del(s.ctx, key).Err()
}

// PushLog appends an entry to a redis list, used by the daily alert summary.
func (s *RedisService) PushLog(key string, entry []byte) error {
	return s.rdb.RPush(s.ctx, key, entry).Err()
}

// DrainLog reads and clears a redis list.
func (s *RedisService) DrainLog(key string) ([]string, error) {
	entries, err := s.rdb.LRange(s.ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	_ = s.rdb.Del(s.ctx, key).Err()
	return entries, nil
}
