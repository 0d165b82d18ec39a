package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisClient caches read-time derived vendor aggregates. A miss or any
// redis failure falls back to recomputing from the store.
type RedisClient struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisClient(addr, password string, db int, log *zap.Logger) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("redis connected", zap.String("addr", addr))

	return &RedisClient{client: rdb, log: log}, nil
}

func (r *RedisClient) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.log.Warn("redis get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return raw, true
}

func (r *RedisClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.log.Warn("redis set failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
