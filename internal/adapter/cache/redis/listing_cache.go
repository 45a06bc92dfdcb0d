package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/renohome/listing-service/internal/config"
	"github.com/renohome/listing-service/internal/port/cache"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// cacheRepository keeps opaque byte blobs in Redis; the listings snapshot is
// its only tenant today, but it knows nothing about listings.
type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisClient(cfg *config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Address, err)
	}
	logger.Info("Redis connection established", zap.String("address", cfg.Address))
	return rdb, nil
}

func NewRedisCacheRepository(client *redis.Client, logger *zap.Logger) cache.CacheRepository {
	return &cacheRepository{
		client: client,
		logger: logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cache.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Cache read failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("redis cache get %q: %w", key, err)
	}
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Cache write failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis cache set %q: %w", key, err)
	}
	r.logger.Debug("Cache entry stored", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Cache delete failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis cache delete %q: %w", key, err)
	}
	return nil
}
