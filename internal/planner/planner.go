// internal/planner/planner.go
//
// Package planner implements the purchase-planning core: the order quantity
// policy, the bundle cost calculator, the vendor selector and the invoice
// aggregator. The package is pure; fetching the stock snapshot and pricing
// catalog, and doing anything with the resulting invoice, is the caller's
// job. A planning run is one synchronous pass over in-memory data, so
// concurrent runs need no locking here.
package planner

import (
	"fmt"

	"github.com/arisathang/Stock-management/internal/domain"
)

// Planner wires a pricer into the selection and aggregation steps.
type Planner struct {
	pricer BundlePricer
}

// New returns a Planner using the given pricer, defaulting to the greedy
// largest-tier-first policy when pricer is nil.
func New(pricer BundlePricer) *Planner {
	if pricer == nil {
		pricer = GreedyBundlePricer{}
	}
	return &Planner{pricer: pricer}
}

// Result is the output of one planning run. Requested keeps the full set of
// order lines so callers can diff it against the invoice to spot items that
// were silently dropped for lack of pricing.
type Result struct {
	Invoice     *domain.Invoice     `json:"invoice"`
	Requested   []domain.OrderLine  `json:"requested"`
	Diagnostics []domain.Diagnostic `json:"diagnostics,omitempty"`
}

// Plan allocates every order line to its cheapest vendor and aggregates the
// result into an invoice. Lines must carry positive amounts; a non-positive
// amount here is a defect in the strategy that produced them.
func (p *Planner) Plan(lines []domain.OrderLine, catalog map[string][]domain.VendorOffer) (*Result, error) {
	for _, line := range lines {
		if line.OrderAmount <= 0 {
			return nil, fmt.Errorf("order line %s has non-positive amount %d: %w",
				line.ItemID, line.OrderAmount, ErrNegativeQuantity)
		}
	}

	selections, diags, err := SelectVendors(lines, catalog, p.pricer)
	if err != nil {
		return nil, err
	}

	return &Result{
		Invoice:     BuildInvoice(selections),
		Requested:   lines,
		Diagnostics: diags,
	}, nil
}

// PlanFromExternal builds an invoice from an externally produced allocation
// plan. The plan's quantities are re-priced with the configured pricer so the
// invoice math stays consistent regardless of who chose the vendors.
func (p *Planner) PlanFromExternal(plan ParsedPlan, items []domain.Item, catalog map[string][]domain.VendorOffer) (*Result, error) {
	selections, diags, err := ApplyPlan(plan, items, catalog, p.pricer)
	if err != nil {
		return nil, err
	}

	requested := make([]domain.OrderLine, 0, len(selections))
	for _, sel := range selections {
		requested = append(requested, sel.Line)
	}

	return &Result{
		Invoice:     BuildInvoice(selections),
		Requested:   requested,
		Diagnostics: diags,
	}, nil
}
