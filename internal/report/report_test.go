package report

import (
	"testing"

	"github.com/arisathang/Stock-management/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestStockAlerts(t *testing.T) {
	items := []domain.Item{
		{Name: "Flour", RemainingStock: 5, MinStock: 10, MaxStock: 100},
		{Name: "Sugar", RemainingStock: 50, MinStock: 10, MaxStock: 100},
		{Name: "Salt", RemainingStock: 120, MinStock: 10, MaxStock: 100},
		{Name: "Rice", RemainingStock: 10, MinStock: 10, MaxStock: 100},  // at min: no alert
		{Name: "Beans", RemainingStock: 100, MinStock: 10, MaxStock: 100}, // at max: no alert
	}

	alerts := StockAlerts(items)
	require.Len(t, alerts, 2)

	assert.Equal(t, AlertLow, alerts[0].Type)
	assert.Equal(t, "Flour is below minimum stock (5/10).", alerts[0].Message)

	assert.Equal(t, AlertHigh, alerts[1].Type)
	assert.Equal(t, "Salt is over maximum stock (120/100).", alerts[1].Message)
}

func TestSpendingBreakdownSumsToInvoiceTotals(t *testing.T) {
	inv := &domain.Invoice{
		VendorOrders: map[string]*domain.VendorGroup{
			"vendor-b": {
				VendorName:           "Vendor B",
				Items:                []domain.InvoiceItem{{ID: "salt"}},
				Subtotal:             dec("40.00"),
				BundleSavings:        dec("0.00"),
				ShippingCost:         dec("8.00"),
				OriginalShippingCost: dec("8.00"),
			},
			"vendor-a": {
				VendorName:           "Vendor A",
				Items:                []domain.InvoiceItem{{ID: "flour"}, {ID: "sugar"}},
				Subtotal:             dec("550.00"),
				BundleSavings:        dec("30.00"),
				ShippingCost:         dec("0.00"),
				OriginalShippingCost: dec("15.00"),
			},
		},
		TotalCost:            dec("598.00"),
		TotalBundleSavings:   dec("30.00"),
		TotalShippingSavings: dec("15.00"),
		TotalSavings:         dec("45.00"),
	}

	rows := SpendingBreakdown(inv)
	require.Len(t, rows, 2)

	// Sorted by vendor id.
	assert.Equal(t, "vendor-a", rows[0].VendorID)
	assert.Equal(t, "vendor-b", rows[1].VendorID)

	assert.Equal(t, 2, rows[0].ItemCount)
	assert.True(t, rows[0].ShippingSavings.Equal(dec("15.00")))
	assert.True(t, rows[1].ShippingSavings.IsZero())

	total := decimal.Zero
	bundle := decimal.Zero
	shipping := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Total)
		bundle = bundle.Add(row.BundleSavings)
		shipping = shipping.Add(row.ShippingSavings)
	}
	assert.True(t, total.Equal(inv.TotalCost))
	assert.True(t, bundle.Equal(inv.TotalBundleSavings))
	assert.True(t, shipping.Equal(inv.TotalShippingSavings))
}

func TestSpendingBreakdownEmptyInvoice(t *testing.T) {
	rows := SpendingBreakdown(&domain.Invoice{VendorOrders: map[string]*domain.VendorGroup{}})
	assert.Empty(t, rows)
}
