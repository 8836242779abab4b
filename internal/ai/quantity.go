// internal/ai/quantity.go
package ai

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/arisathang/Stock-management/internal/domain"
	"github.com/arisathang/Stock-management/internal/planner"
	"github.com/rs/zerolog/log"
)

// ConsumptionReader supplies per-item consumption history for the model
// prompt.
type ConsumptionReader interface {
	GetConsumptionHistory(ctx context.Context, productID string, days int) ([]domain.ConsumptionDay, error)
}

const historyWindowDays = 90

// QuantityAdvisor is the model-backed order quantity strategy. Only items
// already below their minimum stock are sent to the model; everything else is
// left alone. It satisfies planner.OrderPlanner.
type QuantityAdvisor struct {
	gen     TextGenerator
	history ConsumptionReader
}

func NewQuantityAdvisor(gen TextGenerator, history ConsumptionReader) *QuantityAdvisor {
	return &QuantityAdvisor{gen: gen, history: history}
}

func (a *QuantityAdvisor) PlanOrders(ctx context.Context, items []domain.Item) ([]domain.OrderLine, []domain.Diagnostic, error) {
	var (
		lines     []domain.OrderLine
		diags     []domain.Diagnostic
		attempted int
		failed    int
	)

	for _, item := range items {
		if item.RemainingStock >= item.MinStock {
			continue
		}
		attempted++

		history, err := a.history.GetConsumptionHistory(ctx, item.ID, historyWindowDays)
		if err != nil {
			log.Warn().Err(err).Str("item", item.ID).Msg("consumption history unavailable, prompting without it")
			history = nil
		}

		text, err := a.gen.GenerateText(ctx, quantityPrompt(item, history))
		if err != nil {
			failed++
			diags = append(diags, domain.Diagnostic{
				ItemID: item.ID,
				Reason: fmt.Sprintf("model request failed: %v", err),
			})
			continue
		}

		amount, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			diags = append(diags, domain.Diagnostic{
				ItemID: item.ID,
				Reason: fmt.Sprintf("model returned non-integer quantity %q", strings.TrimSpace(text)),
			})
			continue
		}

		amount = planner.ClampOrderAmount(item, amount)
		if amount <= 0 {
			continue
		}

		lines = append(lines, domain.OrderLine{
			ItemID:         item.ID,
			Name:           item.Name,
			Unit:           item.Unit,
			OrderAmount:    amount,
			Prediction:     amount,
			RemainingStock: item.RemainingStock,
		})
	}

	// Every single request failing means the model is down, not that the
	// items were awkward. That is a failed run, not a quietly empty plan.
	if attempted > 0 && failed == attempted {
		return nil, nil, fmt.Errorf("ai: model unavailable, all %d quantity requests failed", attempted)
	}

	return lines, diags, nil
}
