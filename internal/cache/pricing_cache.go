// internal/cache/pricing_cache.go
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/arisathang/Stock-management/internal/config"
	"github.com/arisathang/Stock-management/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	pricingKeyPrefix     = "pricing:offers"
	pricingScanBatchSize = 100
)

// PricingCache caches the unfiltered vendor-offer catalog per item-id set.
// Vendor filters are applied in memory after the cache lookup, so one cached
// catalog serves every filter combination.
type PricingCache interface {
	GetOffers(ctx context.Context, itemIDs []string) (map[string][]domain.VendorOffer, bool, error)
	SetOffers(ctx context.Context, itemIDs []string, catalog map[string][]domain.VendorOffer) error
	InvalidateAll(ctx context.Context) error
}

type redisPricingCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopPricingCache struct{}

func NewPricingCache(cfg config.CacheConfig) (PricingCache, error) {
	if !cfg.Enabled {
		return &noopPricingCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisPricingCache{client: client, ttl: ttl}, nil
}

func NewNoopPricingCache() PricingCache {
	return &noopPricingCache{}
}

func (c *redisPricingCache) GetOffers(ctx context.Context, itemIDs []string) (map[string][]domain.VendorOffer, bool, error) {
	payload, err := c.client.Get(ctx, buildPricingKey(itemIDs)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var catalog map[string][]domain.VendorOffer
	if err := json.Unmarshal(payload, &catalog); err != nil {
		return nil, false, fmt.Errorf("decode pricing cache: %w", err)
	}
	return catalog, true, nil
}

func (c *redisPricingCache) SetOffers(ctx context.Context, itemIDs []string, catalog map[string][]domain.VendorOffer) error {
	payload, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("encode pricing cache: %w", err)
	}

	if err := c.client.Set(ctx, buildPricingKey(itemIDs), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisPricingCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, pricingKeyPrefix, pricingScanBatchSize)
}

func (n *noopPricingCache) GetOffers(ctx context.Context, itemIDs []string) (map[string][]domain.VendorOffer, bool, error) {
	return nil, false, nil
}

func (n *noopPricingCache) SetOffers(ctx context.Context, itemIDs []string, catalog map[string][]domain.VendorOffer) error {
	return nil
}

func (n *noopPricingCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildPricingKey(itemIDs []string) string {
	ids := append([]string(nil), itemIDs...)
	for i := range ids {
		ids[i] = strings.TrimSpace(strings.ToLower(ids[i]))
	}
	sort.Strings(ids)

	sum := sha1.Sum([]byte(strings.Join(ids, ",")))
	return fmt.Sprintf("%s:%s", pricingKeyPrefix, hex.EncodeToString(sum[:]))
}
