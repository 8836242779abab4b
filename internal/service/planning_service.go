package service

import (
	"context"
	"fmt"

	"github.com/arisathang/Stock-management/internal/ai"
	"github.com/arisathang/Stock-management/internal/cache"
	"github.com/arisathang/Stock-management/internal/domain"
	"github.com/arisathang/Stock-management/internal/planner"
	"github.com/arisathang/Stock-management/internal/report"
	"github.com/arisathang/Stock-management/internal/repository"
	"github.com/arisathang/Stock-management/internal/storage"
	"github.com/rs/zerolog/log"
)

// PlanningService runs the full invoice pipeline: pick a quantity strategy,
// fetch the pricing catalog, allocate vendors, aggregate the invoice, then
// persist and archive the result.
type PlanningService struct {
	stockRepo repository.StockRepository
	pricing   repository.PricingRepository
	invoices  repository.InvoiceRepository
	offers    cache.PricingCache
	planner   *planner.Planner
	rule      planner.RestockPolicy
	aiQty     *ai.QuantityAdvisor
	aiPlan    *ai.AllocationAdvisor
	archiver  *storage.InvoiceArchiver
}

// NewPlanningService wires the pipeline. aiQty, aiPlan and archiver may be
// nil; the matching strategies and the archive step are then disabled.
func NewPlanningService(
	stockRepo repository.StockRepository,
	pricing repository.PricingRepository,
	invoices repository.InvoiceRepository,
	offers cache.PricingCache,
	aiQty *ai.QuantityAdvisor,
	aiPlan *ai.AllocationAdvisor,
	archiver *storage.InvoiceArchiver,
) *PlanningService {
	if offers == nil {
		offers = cache.NewNoopPricingCache()
	}
	return &PlanningService{
		stockRepo: stockRepo,
		pricing:   pricing,
		invoices:  invoices,
		offers:    offers,
		planner:   planner.New(nil),
		aiQty:     aiQty,
		aiPlan:    aiPlan,
		archiver:  archiver,
	}
}

// GenerateInvoice runs one planning pass over the submitted stock snapshot.
// Persistence and archival failures are logged but do not fail the run; the
// caller still gets the invoice it asked for.
func (s *PlanningService) GenerateInvoice(ctx context.Context, req domain.PlanRequest) (*planner.Result, error) {
	items := req.StockItems
	if len(items) == 0 {
		snapshot, err := s.stockRepo.GetStockLevels(ctx)
		if err != nil {
			return nil, fmt.Errorf("planning: load stock snapshot: %w", err)
		}
		items = snapshot
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = domain.StrategyRule
	}

	catalog, err := s.vendorOffers(ctx, itemIDs(items))
	if err != nil {
		return nil, err
	}
	catalog = planner.FilterOffers(catalog, req.VendorFilter)

	var result *planner.Result
	switch strategy {
	case domain.StrategyRule:
		result, err = s.planWith(ctx, s.rule, items, catalog)
	case domain.StrategyAIQuantity:
		if s.aiQty == nil {
			return nil, fmt.Errorf("planning: strategy %q is not configured", strategy)
		}
		result, err = s.planWith(ctx, s.aiQty, items, catalog)
	case domain.StrategyAIPlan:
		if s.aiPlan == nil {
			return nil, fmt.Errorf("planning: strategy %q is not configured", strategy)
		}
		result, err = s.planFromModel(ctx, items, catalog)
	default:
		return nil, fmt.Errorf("planning: unknown strategy %q", strategy)
	}
	if err != nil {
		return nil, err
	}

	s.persistAndArchive(ctx, strategy, result.Invoice)
	return result, nil
}

// GetSpendingBreakdown flattens the most recent invoice into per-vendor rows.
func (s *PlanningService) GetSpendingBreakdown(ctx context.Context) ([]report.BreakdownRow, error) {
	inv, err := s.invoices.GetLatestInvoice(ctx)
	if err != nil {
		return nil, fmt.Errorf("planning: load latest invoice: %w", err)
	}
	if inv == nil {
		return []report.BreakdownRow{}, nil
	}
	return report.SpendingBreakdown(inv), nil
}

func (s *PlanningService) planWith(ctx context.Context, strategy planner.OrderPlanner, items []domain.Item, catalog map[string][]domain.VendorOffer) (*planner.Result, error) {
	lines, diags, err := strategy.PlanOrders(ctx, items)
	if err != nil {
		return nil, err
	}

	result, err := s.planner.Plan(lines, catalog)
	if err != nil {
		return nil, err
	}
	result.Diagnostics = append(diags, result.Diagnostics...)
	return result, nil
}

func (s *PlanningService) planFromModel(ctx context.Context, items []domain.Item, catalog map[string][]domain.VendorOffer) (*planner.Result, error) {
	lines, diags, err := s.rule.PlanOrders(ctx, items)
	if err != nil {
		return nil, err
	}

	plan, planDiags, err := s.aiPlan.PlanAllocation(ctx, lines, catalog)
	if err != nil {
		return nil, err
	}
	diags = append(diags, planDiags...)

	result, err := s.planner.PlanFromExternal(plan, items, catalog)
	if err != nil {
		return nil, err
	}
	result.Diagnostics = append(diags, result.Diagnostics...)
	return result, nil
}

func (s *PlanningService) vendorOffers(ctx context.Context, ids []string) (map[string][]domain.VendorOffer, error) {
	if catalog, ok, err := s.offers.GetOffers(ctx, ids); err == nil && ok {
		return catalog, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("planning: cache get offers failed")
	}

	catalog, err := s.pricing.GetVendorOffers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("planning: load vendor offers: %w", err)
	}

	if err := s.offers.SetOffers(ctx, ids, catalog); err != nil {
		log.Warn().Err(err).Msg("planning: cache set offers failed")
	}

	return catalog, nil
}

func (s *PlanningService) persistAndArchive(ctx context.Context, strategy string, inv *domain.Invoice) {
	id, err := s.invoices.SaveInvoice(ctx, strategy, inv)
	if err != nil {
		log.Warn().Err(err).Msg("planning: invoice save failed")
		return
	}

	if s.archiver == nil {
		return
	}
	key, err := s.archiver.ArchiveInvoice(ctx, id, inv)
	if err != nil {
		log.Warn().Err(err).Int64("invoice_id", id).Msg("planning: invoice archive failed")
		return
	}
	log.Info().Int64("invoice_id", id).Str("key", key).Msg("invoice archived")
}

func itemIDs(items []domain.Item) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}
