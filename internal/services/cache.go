package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheService wraps redis as the TTL store the FPL client and the API layer
// read through.
type CacheService struct {
	client *redis.Client
}

func NewCacheService(client *redis.Client) *CacheService {
	return &CacheService{
		client: client,
	}
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := s.client.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("key not found")
		}
		return fmt.Errorf("failed to get cache: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}

	return nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}

func (s *CacheService) Exists(ctx context.Context, key string) (bool, error) {
	val, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check cache existence: %w", err)
	}
	return val > 0, nil
}

// DeletePattern removes every key matching a glob pattern, e.g. "fpl:picks:*".
func (s *CacheService) DeletePattern(ctx context.Context, pattern string) (int, error) {
	var deleted int
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return deleted, fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("failed to scan cache: %w", err)
	}
	return deleted, nil
}

// Flush clears all cache entries.
func (s *CacheService) Flush(ctx context.Context) error {
	return s.client.FlushDB(ctx).Err()
}

// Stats reports key count and memory usage for the cache admin endpoint.
func (s *CacheService) Stats(ctx context.Context) (map[string]interface{}, error) {
	size, err := s.client.DBSize(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get cache size: %w", err)
	}
	memory, err := s.client.Info(ctx, "memory").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get cache info: %w", err)
	}
	return map[string]interface{}{
		"keys":        size,
		"memory_info": memory,
	}, nil
}

// Ping verifies the redis connection for health checks.
func (s *CacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Cache key generators
func BootstrapCacheKey() string {
	return "fpl:bootstrap"
}

func LeagueCacheKey(leagueID, phase int) string {
	return fmt.Sprintf("fpl:league:%d:%d", leagueID, phase)
}

func HistoryCacheKey(teamID int) string {
	return fmt.Sprintf("fpl:history:%d", teamID)
}

func PicksCacheKey(teamID, gw int) string {
	return fmt.Sprintf("fpl:picks:%d:%d", teamID, gw)
}
