// Package cache stores weather series in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/NicoloTrevisan/WeatherMap/internal/config"
	"github.com/NicoloTrevisan/WeatherMap/internal/weather"
)

// RedisCache implements weather.Cache with JSON-encoded series.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(cfg config.CacheConfig) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

// Ping checks that the server is reachable.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) Get(ctx context.Context, key string) (weather.Series, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var series weather.Series
	if err := json.Unmarshal(payload, &series); err != nil {
		return nil, false, fmt.Errorf("decode cached series %s: %w", key, err)
	}
	return series, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, series weather.Series, ttl time.Duration) error {
	payload, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("encode series %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
