package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/kv"
	"github.com/redis/go-redis/v9"
)

// Storage is the redis kv.Storage backend.
type Storage struct {
	client *redis.Client
	ttl    time.Duration
}

var (
	_ kv.Storage        = (*Storage)(nil)
	_ kv.ProfileCounter = (*Storage)(nil)
)

// NewStorage wraps client. Every Set refreshes the key's TTL when ttl > 0,
// so payloads of profiles that never come back are eventually evicted.
func NewStorage(client *redis.Client, ttl time.Duration) *Storage {
	return &Storage{
		client: client,
		ttl:    ttl,
	}
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Storage) Name() string {
	return "redis"
}

// CountFavorites returns how many profiles have a favorites payload.
func (s *Storage) CountFavorites(ctx context.Context) (int, error) {
	n := 0
	iter := s.client.Scan(ctx, 0, FavoritesPattern(), 100).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan favorites keys: %w", err)
	}
	return n, nil
}
