package cache

import (
	"context"
	"fmt"

	"bento-planner/internal/infrastructure/config"
	"bento-planner/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// RedisStore Redis 後端的模型回應快取
type RedisStore struct {
	client *redis.Client
	config *config.Config
}

// NewRedisStore 創建 Redis 快取，連不上時直接失敗
func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client: client,
		config: cfg,
	}, nil
}

// Get 獲取緩存
func (s *RedisStore) Get(ctx context.Context, instruction, payload string) (string, error) {
	key := generateKey(instruction, payload)

	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			common.LogCacheMiss("redis")
			return "", common.ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}

	common.LogCacheHit("redis")
	return val, nil
}

// Set 設置緩存
func (s *RedisStore) Set(ctx context.Context, instruction, payload, value string) error {
	key := generateKey(instruction, payload)

	if err := s.client.Set(ctx, key, value, s.config.Cache.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Close 關閉 Redis 連接
func (s *RedisStore) Close() error {
	return s.client.Close()
}
