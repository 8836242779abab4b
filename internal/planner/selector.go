// internal/planner/selector.go
package planner

import (
	"fmt"

	"github.com/arisathang/Stock-management/internal/domain"
)

// Selection pairs an order line with the vendor chosen for it and the quote
// that won the comparison.
type Selection struct {
	Line  domain.OrderLine
	Offer domain.VendorOffer
	Quote domain.CostQuote
}

// FilterOffers restricts a catalog to the allowed vendor ids. An empty allow
// list means no restriction. The min-cost comparison later runs over the
// filtered rows only, so excluding the globally cheapest vendor promotes the
// cheapest remaining one.
func FilterOffers(catalog map[string][]domain.VendorOffer, allowed []string) map[string][]domain.VendorOffer {
	if len(allowed) == 0 {
		return catalog
	}
	allowSet := make(map[string]struct{}, len(allowed))
	for _, id := range allowed {
		allowSet[id] = struct{}{}
	}

	filtered := make(map[string][]domain.VendorOffer, len(catalog))
	for itemID, offers := range catalog {
		var kept []domain.VendorOffer
		for _, offer := range offers {
			if _, ok := allowSet[offer.VendorID]; ok {
				kept = append(kept, offer)
			}
		}
		if len(kept) > 0 {
			filtered[itemID] = kept
		}
	}
	return filtered
}

// SelectVendors picks, for every order line, the offer with the lowest bundle
// cost. Ties go to the first offer encountered. Lines with no offer in the
// catalog are dropped with a diagnostic; callers detect under-fulfilment by
// diffing requested lines against the result. A pricer error is a defect in
// the inputs and fails the run.
func SelectVendors(lines []domain.OrderLine, catalog map[string][]domain.VendorOffer, pricer BundlePricer) ([]Selection, []domain.Diagnostic, error) {
	selections := make([]Selection, 0, len(lines))
	var diags []domain.Diagnostic

	for _, line := range lines {
		offers := catalog[line.ItemID]
		if len(offers) == 0 {
			diags = append(diags, domain.Diagnostic{
				ItemID: line.ItemID,
				Reason: "no vendor offers this item",
			})
			continue
		}

		var (
			best    Selection
			haveAny bool
		)
		for _, offer := range offers {
			quote, err := pricer.Quote(line.OrderAmount, offer.Price, offer.Bundles)
			if err != nil {
				return nil, nil, fmt.Errorf("pricing %s from %s: %w", line.ItemID, offer.VendorID, err)
			}
			if !haveAny || quote.Cost.LessThan(best.Quote.Cost) {
				best = Selection{Line: line, Offer: offer, Quote: quote}
				haveAny = true
			}
		}
		selections = append(selections, best)
	}

	return selections, diags, nil
}
