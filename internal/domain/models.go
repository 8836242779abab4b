// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is one row of a stock snapshot: the live stock position of a tracked
// product together with the thresholds and forecast the planner works from.
// Snapshots are read fresh per planning run and never mutated by the planner.
type Item struct {
	ID             string `json:"id" db:"id"`
	Name           string `json:"name" db:"name"`
	Unit           string `json:"unit" db:"unit"`
	ImageURL       string `json:"image_url,omitempty" db:"image_url"`
	Prediction     int    `json:"last_year_prediction" db:"last_year_prediction"`
	RemainingStock int    `json:"remaining_stock" db:"remaining_stock"`
	MinStock       int    `json:"min_stock" db:"min_stock"`
	MaxStock       int    `json:"max_stock" db:"max_stock"`
}

// OrderLine is an Item that needs purchasing. OrderAmount is always positive;
// items that need nothing are dropped, not emitted with zero.
type OrderLine struct {
	ItemID         string `json:"id"`
	Name           string `json:"name"`
	Unit           string `json:"unit"`
	OrderAmount    int    `json:"order_amount"`
	Prediction     int    `json:"prediction"`
	RemainingStock int    `json:"remaining_stock"`
}

// BundleTier is a volume discount: Quantity units for Price instead of
// Quantity times the unit price.
type BundleTier struct {
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// VendorOffer is one vendor's terms for one item.
type VendorOffer struct {
	VendorID              string          `json:"vendor_id" db:"vendor_id"`
	VendorName            string          `json:"vendor_name" db:"vendor_name"`
	Price                 decimal.Decimal `json:"price" db:"price"`
	Bundles               []BundleTier    `json:"bundles"`
	ShippingCost          decimal.Decimal `json:"shipping_cost" db:"shipping_cost"`
	FreeShippingThreshold decimal.Decimal `json:"free_shipping_threshold" db:"free_shipping_threshold"`
}

// CostQuote prices one order line against one vendor offer.
type CostQuote struct {
	Cost              decimal.Decimal `json:"cost"`
	NonDiscountedCost decimal.Decimal `json:"nonDiscountedCost"`
	Savings           decimal.Decimal `json:"savings"`
}

// InvoiceItem is one purchased line inside a vendor group.
type InvoiceItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Unit     string          `json:"unit"`
	Quantity int             `json:"quantity"`
	Cost     decimal.Decimal `json:"cost"`
	Price    decimal.Decimal `json:"price"`
	Bundles  []BundleTier    `json:"bundles"`
}

// VendorGroup aggregates every line assigned to one vendor. ShippingCost is
// zero when the discounted subtotal reaches the free-shipping threshold;
// OriginalShippingCost keeps the listed fee for savings reporting.
type VendorGroup struct {
	VendorName            string          `json:"vendorName"`
	Items                 []InvoiceItem   `json:"items"`
	Subtotal              decimal.Decimal `json:"subtotal"`
	BundleSavings         decimal.Decimal `json:"bundleSavings"`
	ShippingCost          decimal.Decimal `json:"shippingCost"`
	OriginalShippingCost  decimal.Decimal `json:"originalShippingCost"`
	FreeShippingThreshold decimal.Decimal `json:"freeShippingThreshold"`
}

// Invoice is the final purchase plan for one planning run, keyed by vendor id.
// Immutable once built; persisting or rendering it is the caller's concern.
type Invoice struct {
	VendorOrders         map[string]*VendorGroup `json:"vendorOrders"`
	TotalCost            decimal.Decimal         `json:"totalCost"`
	TotalBundleSavings   decimal.Decimal         `json:"totalBundleSavings"`
	TotalShippingSavings decimal.Decimal         `json:"totalShippingSavings"`
	TotalSavings         decimal.Decimal         `json:"totalSavings"`
}

// PlanLine is one validated allocation taken from an external planning
// strategy: buy Quantity units of ItemID from VendorID.
type PlanLine struct {
	VendorID string `json:"vendor_id"`
	ItemID   string `json:"product_id"`
	Quantity int    `json:"quantity"`
}

// Diagnostic records a line that was skipped during planning. Skips are
// recoverable; the run continues without the line.
type Diagnostic struct {
	ItemID   string `json:"item_id,omitempty"`
	VendorID string `json:"vendor_id,omitempty"`
	Reason   string `json:"reason"`
}

// StockAlert flags an item outside its configured stock band.
type StockAlert struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// StockStatus is the live-page payload: a snapshot plus its alerts.
type StockStatus struct {
	StockItems []Item       `json:"stockItems"`
	Alerts     []StockAlert `json:"alerts"`
}

// ConsumptionDay is one day of aggregated outbound stock movement, used as
// model context for demand forecasting.
type ConsumptionDay struct {
	Date     time.Time `json:"date" db:"movement_date"`
	Quantity int       `json:"quantity" db:"daily_total"`
}

// PlanRequest is a planning-run request as submitted by the client.
type PlanRequest struct {
	StockItems   []Item   `json:"stockItems"`
	VendorFilter []string `json:"vendorFilter,omitempty"`
	Strategy     string   `json:"strategy,omitempty"`
}

// Planning strategies accepted in PlanRequest.Strategy.
const (
	StrategyRule       = "rule"
	StrategyAIQuantity = "ai-quantity"
	StrategyAIPlan     = "ai-plan"
)
