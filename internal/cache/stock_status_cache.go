// internal/cache/stock_status_cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arisathang/Stock-management/internal/config"
	"github.com/arisathang/Stock-management/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	stockStatusKeyPrefix     = "stock:status"
	stockStatusScanBatchSize = 100

	// LatestStockKey is the cache key segment for the live snapshot.
	LatestStockKey = "latest"
)

// StockStatusCache caches the live-page payload per requested day. Stock
// updates invalidate the whole prefix since the live snapshot and the updated
// day both change.
type StockStatusCache interface {
	GetStatus(ctx context.Context, dateKey string) (*domain.StockStatus, bool, error)
	SetStatus(ctx context.Context, dateKey string, status *domain.StockStatus) error
	InvalidateAll(ctx context.Context) error
}

type redisStockStatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopStockStatusCache struct{}

func NewStockStatusCache(cfg config.CacheConfig) (StockStatusCache, error) {
	if !cfg.Enabled {
		return &noopStockStatusCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisStockStatusCache{client: client, ttl: ttl}, nil
}

func NewNoopStockStatusCache() StockStatusCache {
	return &noopStockStatusCache{}
}

func (c *redisStockStatusCache) GetStatus(ctx context.Context, dateKey string) (*domain.StockStatus, bool, error) {
	payload, err := c.client.Get(ctx, stockStatusKey(dateKey)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var status domain.StockStatus
	if err := json.Unmarshal(payload, &status); err != nil {
		return nil, false, fmt.Errorf("decode stock status cache: %w", err)
	}
	return &status, true, nil
}

func (c *redisStockStatusCache) SetStatus(ctx context.Context, dateKey string, status *domain.StockStatus) error {
	payload, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("encode stock status cache: %w", err)
	}

	if err := c.client.Set(ctx, stockStatusKey(dateKey), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisStockStatusCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, stockStatusKeyPrefix, stockStatusScanBatchSize)
}

func (n *noopStockStatusCache) GetStatus(ctx context.Context, dateKey string) (*domain.StockStatus, bool, error) {
	return nil, false, nil
}

func (n *noopStockStatusCache) SetStatus(ctx context.Context, dateKey string, status *domain.StockStatus) error {
	return nil
}

func (n *noopStockStatusCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func stockStatusKey(dateKey string) string {
	if dateKey == "" {
		dateKey = LatestStockKey
	}
	return fmt.Sprintf("%s:%s", stockStatusKeyPrefix, dateKey)
}
