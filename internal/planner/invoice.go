// internal/planner/invoice.go
package planner

import (
	"github.com/arisathang/Stock-management/internal/domain"
	"github.com/shopspring/decimal"
)

// BuildInvoice groups the chosen selections by vendor and settles shipping.
// Free shipping is decided against the bundle-discounted subtotal, not the
// non-discounted one: a vendor whose discounted subtotal lands just under the
// threshold pays full shipping even when the pre-discount total would have
// cleared it.
func BuildInvoice(selections []Selection) *domain.Invoice {
	groups := make(map[string]*domain.VendorGroup)

	for _, sel := range selections {
		group, ok := groups[sel.Offer.VendorID]
		if !ok {
			group = &domain.VendorGroup{
				VendorName:            sel.Offer.VendorName,
				Items:                 []domain.InvoiceItem{},
				Subtotal:              decimal.Zero,
				BundleSavings:         decimal.Zero,
				ShippingCost:          sel.Offer.ShippingCost,
				OriginalShippingCost:  sel.Offer.ShippingCost,
				FreeShippingThreshold: sel.Offer.FreeShippingThreshold,
			}
			groups[sel.Offer.VendorID] = group
		}

		group.Items = append(group.Items, domain.InvoiceItem{
			ID:       sel.Line.ItemID,
			Name:     sel.Line.Name,
			Unit:     sel.Line.Unit,
			Quantity: sel.Line.OrderAmount,
			Cost:     sel.Quote.Cost,
			Price:    sel.Offer.Price,
			Bundles:  sel.Offer.Bundles,
		})
		group.Subtotal = group.Subtotal.Add(sel.Quote.Cost)
		group.BundleSavings = group.BundleSavings.Add(sel.Quote.Savings)
	}

	invoice := &domain.Invoice{
		VendorOrders:         groups,
		TotalCost:            decimal.Zero,
		TotalBundleSavings:   decimal.Zero,
		TotalShippingSavings: decimal.Zero,
		TotalSavings:         decimal.Zero,
	}

	for _, group := range groups {
		if group.Subtotal.GreaterThanOrEqual(group.FreeShippingThreshold) {
			group.ShippingCost = decimal.Zero
			invoice.TotalShippingSavings = invoice.TotalShippingSavings.Add(group.OriginalShippingCost)
		}
		invoice.TotalCost = invoice.TotalCost.Add(group.Subtotal).Add(group.ShippingCost)
		invoice.TotalBundleSavings = invoice.TotalBundleSavings.Add(group.BundleSavings)
	}
	invoice.TotalSavings = invoice.TotalBundleSavings.Add(invoice.TotalShippingSavings)

	return invoice
}
