// internal/planner/pricing.go
package planner

import (
	"errors"
	"sort"

	"github.com/arisathang/Stock-management/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrNegativeQuantity means a negative order amount reached the pricer.
	// That is a caller defect, not recoverable input.
	ErrNegativeQuantity = errors.New("planner: order quantity must not be negative")

	// ErrInvalidBundleTier means a tier with a non-positive threshold quantity
	// reached the pricer.
	ErrInvalidBundleTier = errors.New("planner: bundle tier quantity must be positive")
)

// BundlePricer prices a quantity of one item against a vendor's unit price
// and bundle tiers.
type BundlePricer interface {
	Quote(quantity int, unitPrice decimal.Decimal, bundles []domain.BundleTier) (domain.CostQuote, error)
}

// GreedyBundlePricer fills the largest tiers first and prices the leftover at
// the unit price. Largest-first is not guaranteed optimal for adversarial tier
// tables (two small bundles can in theory undercut one large one); it is kept
// deliberately because every historical invoice was priced this way. Swap the
// BundlePricer implementation to change the policy.
type GreedyBundlePricer struct{}

func (GreedyBundlePricer) Quote(quantity int, unitPrice decimal.Decimal, bundles []domain.BundleTier) (domain.CostQuote, error) {
	if quantity < 0 {
		return domain.CostQuote{}, ErrNegativeQuantity
	}
	for _, tier := range bundles {
		if tier.Quantity <= 0 {
			return domain.CostQuote{}, ErrInvalidBundleTier
		}
	}

	nonDiscounted := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))

	// Stable sort keeps the stored relative order of equal thresholds, so a
	// run always prices equal tiers the same way.
	sorted := append([]domain.BundleTier(nil), bundles...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Quantity > sorted[j].Quantity
	})

	cost := decimal.Zero
	remaining := quantity
	for _, tier := range sorted {
		numBundles := remaining / tier.Quantity
		if numBundles > 0 {
			cost = cost.Add(tier.Price.Mul(decimal.NewFromInt(int64(numBundles))))
			remaining -= numBundles * tier.Quantity
		}
	}
	cost = cost.Add(unitPrice.Mul(decimal.NewFromInt(int64(remaining))))

	return domain.CostQuote{
		Cost:              cost,
		NonDiscountedCost: nonDiscounted,
		Savings:           nonDiscounted.Sub(cost),
	}, nil
}
