// internal/ai/allocation.go
package ai

import (
	"context"
	"fmt"

	"github.com/arisathang/Stock-management/internal/domain"
	"github.com/arisathang/Stock-management/internal/planner"
)

// AllocationAdvisor asks the model for a complete vendor allocation plan and
// validates it into a planner.ParsedPlan. The caller re-prices the plan with
// the bundle cost calculator; the model only chooses vendors and quantities.
type AllocationAdvisor struct {
	gen TextGenerator
}

func NewAllocationAdvisor(gen TextGenerator) *AllocationAdvisor {
	return &AllocationAdvisor{gen: gen}
}

// PlanAllocation requests a plan for the given order lines. An unreachable
// model or a body that is not JSON at all is fatal for the run; the caller
// gets an explicit failure instead of a partially guessed invoice.
func (a *AllocationAdvisor) PlanAllocation(ctx context.Context, lines []domain.OrderLine, catalog map[string][]domain.VendorOffer) (planner.ParsedPlan, []domain.Diagnostic, error) {
	if len(lines) == 0 {
		return planner.ParsedPlan{}, nil, nil
	}

	text, err := a.gen.GenerateText(ctx, allocationPrompt(lines, catalog))
	if err != nil {
		return planner.ParsedPlan{}, nil, fmt.Errorf("ai: allocation request failed: %w", err)
	}

	plan, diags, err := planner.ParsePlan([]byte(CleanModelJSON(text)))
	if err != nil {
		return planner.ParsedPlan{}, nil, err
	}
	return plan, diags, nil
}
