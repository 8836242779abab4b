// internal/report/breakdown.go
package report

import (
	"sort"

	"github.com/arisathang/Stock-management/internal/domain"
	"github.com/shopspring/decimal"
)

// BreakdownRow is one vendor's slice of a spending breakdown.
type BreakdownRow struct {
	VendorID        string          `json:"vendor_id"`
	VendorName      string          `json:"vendor_name"`
	ItemCount       int             `json:"item_count"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	BundleSavings   decimal.Decimal `json:"bundle_savings"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	ShippingSavings decimal.Decimal `json:"shipping_savings"`
	Total           decimal.Decimal `json:"total"`
}

// SpendingBreakdown flattens an invoice into per-vendor rows, sorted by
// vendor id for stable rendering. Shipping savings per row is the listed fee
// minus what the invoice actually charges, so the rows agree with the
// aggregator's discounted-subtotal shipping decision by construction.
func SpendingBreakdown(inv *domain.Invoice) []BreakdownRow {
	rows := make([]BreakdownRow, 0, len(inv.VendorOrders))
	for vendorID, group := range inv.VendorOrders {
		rows = append(rows, BreakdownRow{
			VendorID:        vendorID,
			VendorName:      group.VendorName,
			ItemCount:       len(group.Items),
			Subtotal:        group.Subtotal,
			BundleSavings:   group.BundleSavings,
			ShippingCost:    group.ShippingCost,
			ShippingSavings: group.OriginalShippingCost.Sub(group.ShippingCost),
			Total:           group.Subtotal.Add(group.ShippingCost),
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].VendorID < rows[j].VendorID })
	return rows
}
