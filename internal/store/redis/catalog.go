package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/domain"
	"github.com/redis/go-redis/v9"
)

// CatalogCache keeps a copy of the last good catalog so a restart can
// serve listings before the catalog file is read again.
type CatalogCache struct {
	client *redis.Client
}

func NewCatalogCache(client *redis.Client) *CatalogCache {
	return &CatalogCache{client: client}
}

// SaveCatalog replaces the snapshot in one transaction.
func (c *CatalogCache) SaveCatalog(ctx context.Context, startups []domain.Startup) error {
	data, err := json.Marshal(startups)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, KeyCatalogSnapshot, data, 0)
		pipe.Set(ctx, KeyCatalogSavedAt, strconv.FormatInt(time.Now().Unix(), 10), 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	return nil
}

// GetCatalog returns the snapshot, found=false when none was saved yet.
func (c *CatalogCache) GetCatalog(ctx context.Context) ([]domain.Startup, bool, error) {
	data, err := c.client.Get(ctx, KeyCatalogSnapshot).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get catalog: %w", err)
	}

	var startups []domain.Startup
	if err := json.Unmarshal(data, &startups); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	return startups, true, nil
}

// CatalogSavedAt returns when the snapshot was written, zero if never.
func (c *CatalogCache) CatalogSavedAt(ctx context.Context) (time.Time, error) {
	v, err := c.client.Get(ctx, KeyCatalogSavedAt).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to get catalog timestamp: %w", err)
	}
	return time.Unix(v, 0), nil
}
