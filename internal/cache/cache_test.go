package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPricingKeyIsOrderAndCaseInsensitive(t *testing.T) {
	a := buildPricingKey([]string{"Flour", "sugar"})
	b := buildPricingKey([]string{"sugar", " flour "})
	assert.Equal(t, a, b)

	c := buildPricingKey([]string{"flour"})
	assert.NotEqual(t, a, c)
}

func TestStockStatusKeyDefaultsToLatest(t *testing.T) {
	assert.Equal(t, stockStatusKey(LatestStockKey), stockStatusKey(""))
	assert.NotEqual(t, stockStatusKey("2026-08-30"), stockStatusKey(""))
}

func TestNoopCachesAlwaysMiss(t *testing.T) {
	ctx := context.Background()

	pricing := NewNoopPricingCache()
	_, ok, err := pricing.GetOffers(ctx, []string{"flour"})
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, pricing.SetOffers(ctx, []string{"flour"}, nil))
	require.NoError(t, pricing.InvalidateAll(ctx))

	stock := NewNoopStockStatusCache()
	_, ok, err = stock.GetStatus(ctx, LatestStockKey)
	require.NoError(t, err)
	assert.False(t, ok)
}
