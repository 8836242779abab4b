package service

import (
	"context"
	"testing"
	"time"

	"github.com/arisathang/Stock-management/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStockRepo struct {
	items   []domain.Item
	updates int
}

func (f *fakeStockRepo) GetStockLevels(context.Context) ([]domain.Item, error) {
	return f.items, nil
}

func (f *fakeStockRepo) GetStockLevelsForDate(context.Context, time.Time) ([]domain.Item, error) {
	return f.items, nil
}

func (f *fakeStockRepo) UpdateStock(context.Context, string, int, time.Time) error {
	f.updates++
	return nil
}

func (f *fakeStockRepo) GetConsumptionHistory(context.Context, string, int) ([]domain.ConsumptionDay, error) {
	return nil, nil
}

type fakePricingRepo struct {
	catalog map[string][]domain.VendorOffer
	calls   int
}

func (f *fakePricingRepo) GetVendorOffers(context.Context, []string) (map[string][]domain.VendorOffer, error) {
	f.calls++
	return f.catalog, nil
}

type fakeInvoiceRepo struct {
	saved    []*domain.Invoice
	strategy string
	latest   *domain.Invoice
}

func (f *fakeInvoiceRepo) SaveInvoice(_ context.Context, strategy string, inv *domain.Invoice) (int64, error) {
	f.saved = append(f.saved, inv)
	f.strategy = strategy
	return int64(len(f.saved)), nil
}

func (f *fakeInvoiceRepo) GetLatestInvoice(context.Context) (*domain.Invoice, error) {
	return f.latest, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testCatalog() map[string][]domain.VendorOffer {
	return map[string][]domain.VendorOffer{
		"flour": {
			{VendorID: "vendor-x", VendorName: "Vendor X", Price: dec("2.00"),
				ShippingCost: dec("10.00"), FreeShippingThreshold: dec("500.00")},
			{VendorID: "vendor-y", VendorName: "Vendor Y", Price: dec("1.50"),
				ShippingCost: dec("15.00"), FreeShippingThreshold: dec("500.00")},
		},
	}
}

func testItems() []domain.Item {
	return []domain.Item{
		{ID: "flour", Name: "Flour", Unit: "kg", Prediction: 100, RemainingStock: 20, MinStock: 30, MaxStock: 150},
	}
}

func newTestService(stock *fakeStockRepo, pricing *fakePricingRepo, invoices *fakeInvoiceRepo) *PlanningService {
	return NewPlanningService(stock, pricing, invoices, nil, nil, nil, nil)
}

func TestGenerateInvoiceRuleStrategy(t *testing.T) {
	stock := &fakeStockRepo{items: testItems()}
	pricing := &fakePricingRepo{catalog: testCatalog()}
	invoices := &fakeInvoiceRepo{}
	svc := newTestService(stock, pricing, invoices)

	result, err := svc.GenerateInvoice(context.Background(), domain.PlanRequest{})
	require.NoError(t, err)

	require.Len(t, result.Requested, 1)
	assert.Equal(t, 80, result.Requested[0].OrderAmount)

	group, ok := result.Invoice.VendorOrders["vendor-y"]
	require.True(t, ok, "cheapest vendor wins")
	assert.True(t, group.Subtotal.Equal(dec("120.00")), "80 units at 1.50, got %s", group.Subtotal)

	require.Len(t, invoices.saved, 1, "invoice is persisted")
	assert.Equal(t, domain.StrategyRule, invoices.strategy)
}

func TestGenerateInvoiceUsesSubmittedSnapshot(t *testing.T) {
	stock := &fakeStockRepo{}
	pricing := &fakePricingRepo{catalog: testCatalog()}
	svc := newTestService(stock, pricing, &fakeInvoiceRepo{})

	result, err := svc.GenerateInvoice(context.Background(), domain.PlanRequest{
		StockItems: testItems(),
	})
	require.NoError(t, err)
	require.Len(t, result.Requested, 1)
	assert.Equal(t, "flour", result.Requested[0].ItemID)
}

func TestGenerateInvoiceVendorFilter(t *testing.T) {
	stock := &fakeStockRepo{items: testItems()}
	pricing := &fakePricingRepo{catalog: testCatalog()}
	svc := newTestService(stock, pricing, &fakeInvoiceRepo{})

	result, err := svc.GenerateInvoice(context.Background(), domain.PlanRequest{
		VendorFilter: []string{"vendor-x"},
	})
	require.NoError(t, err)

	_, ok := result.Invoice.VendorOrders["vendor-x"]
	assert.True(t, ok, "filter narrows the candidates to vendor-x")
	assert.NotContains(t, result.Invoice.VendorOrders, "vendor-y")
}

func TestGenerateInvoiceUnknownStrategy(t *testing.T) {
	svc := newTestService(&fakeStockRepo{items: testItems()}, &fakePricingRepo{catalog: testCatalog()}, &fakeInvoiceRepo{})

	_, err := svc.GenerateInvoice(context.Background(), domain.PlanRequest{Strategy: "psychic"})
	assert.ErrorContains(t, err, "unknown strategy")
}

func TestGenerateInvoiceModelStrategiesNotConfigured(t *testing.T) {
	svc := newTestService(&fakeStockRepo{items: testItems()}, &fakePricingRepo{catalog: testCatalog()}, &fakeInvoiceRepo{})

	for _, strategy := range []string{domain.StrategyAIQuantity, domain.StrategyAIPlan} {
		_, err := svc.GenerateInvoice(context.Background(), domain.PlanRequest{Strategy: strategy})
		assert.ErrorContains(t, err, "not configured", strategy)
	}
}

func TestGetSpendingBreakdown(t *testing.T) {
	latest := &domain.Invoice{
		VendorOrders: map[string]*domain.VendorGroup{
			"vendor-y": {
				VendorName:           "Vendor Y",
				Items:                []domain.InvoiceItem{{ID: "flour", Quantity: 80}},
				Subtotal:             dec("120.00"),
				ShippingCost:         dec("15.00"),
				OriginalShippingCost: dec("15.00"),
			},
		},
	}
	svc := newTestService(&fakeStockRepo{}, &fakePricingRepo{}, &fakeInvoiceRepo{latest: latest})

	rows, err := svc.GetSpendingBreakdown(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "vendor-y", rows[0].VendorID)

	empty := newTestService(&fakeStockRepo{}, &fakePricingRepo{}, &fakeInvoiceRepo{})
	rows, err = empty.GetSpendingBreakdown(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}
