package planner

import (
	"testing"

	"github.com/arisathang/Stock-management/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(itemID string, amount int) domain.OrderLine {
	return domain.OrderLine{ItemID: itemID, Name: itemID, Unit: "kg", OrderAmount: amount}
}

func TestSelectVendorsPicksCheapest(t *testing.T) {
	catalog := map[string][]domain.VendorOffer{
		"flour": {
			{VendorID: "vendor-x", VendorName: "Vendor X", Price: dec("10.00")}, // cost 100
			{VendorID: "vendor-y", VendorName: "Vendor Y", Price: dec("9.50")},  // cost 95
		},
	}

	selections, diags, err := SelectVendors([]domain.OrderLine{line("flour", 10)}, catalog, GreedyBundlePricer{})
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.Len(t, selections, 1)

	assert.Equal(t, "vendor-y", selections[0].Offer.VendorID)
	assert.True(t, selections[0].Quote.Cost.Equal(dec("95.00")))

	// Chosen cost is <= every candidate's cost.
	for _, offer := range catalog["flour"] {
		quote, qerr := GreedyBundlePricer{}.Quote(10, offer.Price, offer.Bundles)
		require.NoError(t, qerr)
		assert.True(t, selections[0].Quote.Cost.LessThanOrEqual(quote.Cost))
	}
}

func TestSelectVendorsFilterExcludesCheapest(t *testing.T) {
	catalog := map[string][]domain.VendorOffer{
		"flour": {
			{VendorID: "vendor-x", VendorName: "Vendor X", Price: dec("10.00")},
			{VendorID: "vendor-y", VendorName: "Vendor Y", Price: dec("9.50")},
		},
	}

	filtered := FilterOffers(catalog, []string{"vendor-x"})
	selections, _, err := SelectVendors([]domain.OrderLine{line("flour", 10)}, filtered, GreedyBundlePricer{})
	require.NoError(t, err)
	require.Len(t, selections, 1)

	// The cheapest remaining vendor wins, not the globally cheapest one.
	assert.Equal(t, "vendor-x", selections[0].Offer.VendorID)
}

func TestSelectVendorsSingleOfferAlwaysChosen(t *testing.T) {
	catalog := map[string][]domain.VendorOffer{
		"saffron": {
			{VendorID: "vendor-z", VendorName: "Vendor Z", Price: dec("999.00")},
		},
	}

	selections, diags, err := SelectVendors([]domain.OrderLine{line("saffron", 2)}, catalog, GreedyBundlePricer{})
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.Len(t, selections, 1)
	assert.Equal(t, "vendor-z", selections[0].Offer.VendorID)
}

func TestSelectVendorsTieGoesToFirstOffer(t *testing.T) {
	catalog := map[string][]domain.VendorOffer{
		"flour": {
			{VendorID: "vendor-a", VendorName: "Vendor A", Price: dec("5.00")},
			{VendorID: "vendor-b", VendorName: "Vendor B", Price: dec("5.00")},
		},
	}

	selections, _, err := SelectVendors([]domain.OrderLine{line("flour", 4)}, catalog, GreedyBundlePricer{})
	require.NoError(t, err)
	require.Len(t, selections, 1)
	assert.Equal(t, "vendor-a", selections[0].Offer.VendorID)
}

func TestSelectVendorsDropsUnpricedItems(t *testing.T) {
	catalog := map[string][]domain.VendorOffer{
		"flour": {{VendorID: "vendor-x", Price: dec("10.00")}},
	}

	lines := []domain.OrderLine{line("flour", 10), line("truffle", 1)}
	selections, diags, err := SelectVendors(lines, catalog, GreedyBundlePricer{})
	require.NoError(t, err)

	require.Len(t, selections, 1)
	assert.Equal(t, "flour", selections[0].Line.ItemID)

	require.Len(t, diags, 1)
	assert.Equal(t, "truffle", diags[0].ItemID)
}

func TestFilterOffersEmptyAllowListIsNoop(t *testing.T) {
	catalog := map[string][]domain.VendorOffer{
		"flour": {{VendorID: "vendor-x"}},
	}
	assert.Equal(t, catalog, FilterOffers(catalog, nil))
}

func TestFilterOffersRemovesEmptiedItems(t *testing.T) {
	catalog := map[string][]domain.VendorOffer{
		"flour": {{VendorID: "vendor-x"}},
		"sugar": {{VendorID: "vendor-y"}},
	}

	filtered := FilterOffers(catalog, []string{"vendor-x"})
	assert.Contains(t, filtered, "flour")
	assert.NotContains(t, filtered, "sugar")
}
