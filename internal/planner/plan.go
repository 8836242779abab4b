// internal/planner/plan.go
package planner

import (
	"encoding/json"
	"fmt"

	"github.com/arisathang/Stock-management/internal/domain"
)

// ParsedPlan is the decoded form of an externally produced allocation plan.
// Only structurally sound lines make it into Lines; everything questionable
// is re-checked against the snapshot and catalog in ApplyPlan.
type ParsedPlan struct {
	Lines []domain.PlanLine
}

// planPayload mirrors the wire shape an external planner returns:
//
//	{"vendor1": {"items": [{"product_id": "item1", "quantity": 50}]}}
//
// Quantity is decoded as json.Number so a non-numeric value fails one line,
// not the whole document.
type planPayload map[string]struct {
	Items []struct {
		ProductID string      `json:"product_id"`
		Quantity  json.Number `json:"quantity"`
	} `json:"items"`
}

// ParsePlan decodes an external allocation plan. A payload that cannot be
// decoded at all is a fatal error: no numeric fallback of consistent quality
// exists in that branch, so the caller must fail the run rather than guess.
// Individual malformed lines are skipped with a diagnostic.
func ParsePlan(raw []byte) (ParsedPlan, []domain.Diagnostic, error) {
	var payload planPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ParsedPlan{}, nil, fmt.Errorf("planner: unparseable allocation plan: %w", err)
	}

	var (
		plan  ParsedPlan
		diags []domain.Diagnostic
	)
	for vendorID, group := range payload {
		for _, item := range group.Items {
			if item.ProductID == "" {
				diags = append(diags, domain.Diagnostic{
					VendorID: vendorID,
					Reason:   "plan line missing product id",
				})
				continue
			}
			qty, err := item.Quantity.Int64()
			if err != nil {
				diags = append(diags, domain.Diagnostic{
					ItemID:   item.ProductID,
					VendorID: vendorID,
					Reason:   fmt.Sprintf("non-numeric quantity %q", item.Quantity.String()),
				})
				continue
			}
			plan.Lines = append(plan.Lines, domain.PlanLine{
				VendorID: vendorID,
				ItemID:   item.ProductID,
				Quantity: int(qty),
			})
		}
	}
	return plan, diags, nil
}

// ApplyPlan validates an external plan line by line against the snapshot and
// catalog, re-prices each surviving line with the pricer, and returns the
// selections. Unknown items, unknown vendors, missing pricing rows and
// non-positive or fully clamped quantities skip the line with a diagnostic;
// they never fail the run.
func ApplyPlan(plan ParsedPlan, items []domain.Item, catalog map[string][]domain.VendorOffer, pricer BundlePricer) ([]Selection, []domain.Diagnostic, error) {
	byID := make(map[string]domain.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	selections := make([]Selection, 0, len(plan.Lines))
	var diags []domain.Diagnostic

	for _, line := range plan.Lines {
		item, ok := byID[line.ItemID]
		if !ok {
			diags = append(diags, domain.Diagnostic{
				ItemID:   line.ItemID,
				VendorID: line.VendorID,
				Reason:   "plan references unknown item",
			})
			continue
		}
		if line.Quantity <= 0 {
			diags = append(diags, domain.Diagnostic{
				ItemID:   line.ItemID,
				VendorID: line.VendorID,
				Reason:   fmt.Sprintf("non-positive quantity %d", line.Quantity),
			})
			continue
		}

		offer, ok := findOffer(catalog[line.ItemID], line.VendorID)
		if !ok {
			diags = append(diags, domain.Diagnostic{
				ItemID:   line.ItemID,
				VendorID: line.VendorID,
				Reason:   "no pricing row for planned vendor",
			})
			continue
		}

		amount := ClampOrderAmount(item, line.Quantity)
		if amount == 0 {
			diags = append(diags, domain.Diagnostic{
				ItemID:   line.ItemID,
				VendorID: line.VendorID,
				Reason:   "planned quantity clamped to zero by stock bounds",
			})
			continue
		}

		quote, err := pricer.Quote(amount, offer.Price, offer.Bundles)
		if err != nil {
			return nil, nil, fmt.Errorf("pricing planned line %s from %s: %w", line.ItemID, line.VendorID, err)
		}

		selections = append(selections, Selection{
			Line: domain.OrderLine{
				ItemID:         item.ID,
				Name:           item.Name,
				Unit:           item.Unit,
				OrderAmount:    amount,
				Prediction:     item.Prediction,
				RemainingStock: item.RemainingStock,
			},
			Offer: offer,
			Quote: quote,
		})
	}

	return selections, diags, nil
}

func findOffer(offers []domain.VendorOffer, vendorID string) (domain.VendorOffer, bool) {
	for _, offer := range offers {
		if offer.VendorID == vendorID {
			return offer, true
		}
	}
	return domain.VendorOffer{}, false
}
