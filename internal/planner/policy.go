// internal/planner/policy.go
package planner

import (
	"context"

	"github.com/arisathang/Stock-management/internal/domain"
)

// OrderPlanner turns a stock snapshot into the lines that need purchasing.
// Implementations must emit only positive order amounts and must keep the
// projected stock (remaining + amount) inside [MinStock, MaxStock] wherever a
// single order can achieve that.
type OrderPlanner interface {
	PlanOrders(ctx context.Context, items []domain.Item) ([]domain.OrderLine, []domain.Diagnostic, error)
}

// RestockPolicy is the rule-based order quantity policy: last year's
// consumption is the demand forecast, clamped into the item's stock band.
// It is pure and needs no context; ctx is accepted only to satisfy
// OrderPlanner.
type RestockPolicy struct{}

func (RestockPolicy) PlanOrders(_ context.Context, items []domain.Item) ([]domain.OrderLine, []domain.Diagnostic, error) {
	lines := make([]domain.OrderLine, 0, len(items))
	for _, item := range items {
		amount := OrderAmount(item)
		if amount <= 0 {
			continue
		}
		lines = append(lines, domain.OrderLine{
			ItemID:         item.ID,
			Name:           item.Name,
			Unit:           item.Unit,
			OrderAmount:    amount,
			Prediction:     item.Prediction,
			RemainingStock: item.RemainingStock,
		})
	}
	return lines, nil, nil
}

// OrderAmount computes the quantity to purchase for one item. The naive order
// replaces exactly what the forecast says will be consumed; the clamp then
// pulls the projected total back inside the [min, max] band. Never negative.
func OrderAmount(item domain.Item) int {
	naive := item.Prediction - item.RemainingStock
	projected := item.RemainingStock + naive

	amount := naive
	if projected < item.MinStock {
		amount = item.MinStock - item.RemainingStock
	} else if projected > item.MaxStock {
		amount = item.MaxStock - item.RemainingStock
	}

	if amount < 0 {
		amount = 0
	}
	return amount
}

// ClampOrderAmount bounds an externally supplied quantity into
// [0, MaxStock - RemainingStock]. Every alternate strategy result passes
// through here before it may become an order line.
func ClampOrderAmount(item domain.Item, amount int) int {
	limit := item.MaxStock - item.RemainingStock
	if limit < 0 {
		limit = 0
	}
	if amount > limit {
		amount = limit
	}
	if amount < 0 {
		amount = 0
	}
	return amount
}
