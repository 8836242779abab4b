package planner

import (
	"testing"

	"github.com/arisathang/Stock-management/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selection(itemID, vendorID string, qty int, cost, savings, shipping, threshold string) Selection {
	return Selection{
		Line: domain.OrderLine{ItemID: itemID, Name: itemID, Unit: "kg", OrderAmount: qty},
		Offer: domain.VendorOffer{
			VendorID:              vendorID,
			VendorName:            vendorID,
			ShippingCost:          dec(shipping),
			FreeShippingThreshold: dec(threshold),
		},
		Quote: domain.CostQuote{
			Cost:              dec(cost),
			NonDiscountedCost: dec(cost).Add(dec(savings)),
			Savings:           dec(savings),
		},
	}
}

func TestBuildInvoiceShippingNotWaivedBelowThreshold(t *testing.T) {
	inv := BuildInvoice([]Selection{
		selection("flour", "vendor-x", 10, "480.00", "0.00", "15.00", "500.00"),
	})

	group := inv.VendorOrders["vendor-x"]
	require.NotNil(t, group)

	assert.True(t, group.Subtotal.Equal(dec("480.00")))
	assert.True(t, group.ShippingCost.Equal(dec("15.00")), "just under threshold pays full shipping")
	assert.True(t, inv.TotalShippingSavings.IsZero())
	assert.True(t, inv.TotalCost.Equal(dec("495.00")))
}

func TestBuildInvoiceShippingWaivedAtThreshold(t *testing.T) {
	inv := BuildInvoice([]Selection{
		selection("flour", "vendor-x", 10, "500.00", "0.00", "15.00", "500.00"),
	})

	group := inv.VendorOrders["vendor-x"]
	require.NotNil(t, group)

	assert.True(t, group.ShippingCost.IsZero())
	assert.True(t, group.OriginalShippingCost.Equal(dec("15.00")))
	assert.True(t, inv.TotalShippingSavings.Equal(dec("15.00")))
	assert.True(t, inv.TotalCost.Equal(dec("500.00")))
}

func TestBuildInvoiceThresholdUsesDiscountedSubtotal(t *testing.T) {
	// Discounted subtotal 490 < 500 even though the non-discounted total
	// (540) clears the threshold. Full shipping applies.
	inv := BuildInvoice([]Selection{
		selection("flour", "vendor-x", 10, "490.00", "50.00", "12.00", "500.00"),
	})

	group := inv.VendorOrders["vendor-x"]
	assert.True(t, group.ShippingCost.Equal(dec("12.00")))
	assert.True(t, inv.TotalBundleSavings.Equal(dec("50.00")))
	assert.True(t, inv.TotalShippingSavings.IsZero())
}

func TestBuildInvoiceTotals(t *testing.T) {
	inv := BuildInvoice([]Selection{
		selection("flour", "vendor-x", 10, "300.00", "20.00", "15.00", "500.00"),
		selection("sugar", "vendor-x", 5, "250.00", "10.00", "15.00", "500.00"),
		selection("salt", "vendor-y", 3, "40.00", "0.00", "8.00", "100.00"),
	})

	require.Len(t, inv.VendorOrders, 2)

	x := inv.VendorOrders["vendor-x"]
	assert.True(t, x.Subtotal.Equal(dec("550.00")))
	assert.True(t, x.ShippingCost.IsZero(), "550 >= 500 waives shipping")
	assert.Len(t, x.Items, 2)

	y := inv.VendorOrders["vendor-y"]
	assert.True(t, y.Subtotal.Equal(dec("40.00")))
	assert.True(t, y.ShippingCost.Equal(dec("8.00")))

	// total_cost == sum over groups of subtotal + shipping
	want := decimal.Zero
	for _, g := range inv.VendorOrders {
		want = want.Add(g.Subtotal).Add(g.ShippingCost)
	}
	assert.True(t, inv.TotalCost.Equal(want))
	assert.True(t, inv.TotalBundleSavings.Equal(dec("30.00")))
	assert.True(t, inv.TotalShippingSavings.Equal(dec("15.00")))
	assert.True(t, inv.TotalSavings.Equal(dec("45.00")))
}

func TestBuildInvoiceEmpty(t *testing.T) {
	inv := BuildInvoice(nil)

	assert.Empty(t, inv.VendorOrders)
	assert.True(t, inv.TotalCost.IsZero())
	assert.True(t, inv.TotalSavings.IsZero())
}
