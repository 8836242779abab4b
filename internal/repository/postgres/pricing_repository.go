// internal/repository/postgres/pricing_repository.go
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/arisathang/Stock-management/internal/domain"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type pricingRepository struct {
	db *DB
}

func NewPricingRepository(db *DB) *pricingRepository {
	return &pricingRepository{db: db}
}

type vendorOfferRow struct {
	ProductID             string          `db:"product_id"`
	VendorID              string          `db:"vendor_id"`
	VendorName            string          `db:"vendor_name"`
	Price                 decimal.Decimal `db:"price"`
	Bundles               []byte          `db:"bundles"`
	ShippingCost          decimal.Decimal `db:"shipping_cost"`
	FreeShippingThreshold decimal.Decimal `db:"free_shipping_threshold"`
}

// GetVendorOffers fetches all pricing, bundle and shipping terms for the
// requested items in a single query, keyed by item id.
func (r *pricingRepository) GetVendorOffers(ctx context.Context, itemIDs []string) (map[string][]domain.VendorOffer, error) {
	if len(itemIDs) == 0 {
		return map[string][]domain.VendorOffer{}, nil
	}

	query := `
		SELECT vp.product_id, vp.vendor_id, v.name AS vendor_name,
		       vp.price, vp.bundles, v.shipping_cost, v.free_shipping_threshold
		FROM vendor_products vp
		JOIN vendors v ON vp.vendor_id = v.id
		WHERE vp.product_id = ANY($1)
		ORDER BY vp.product_id, vp.vendor_id
	`

	var rows []vendorOfferRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(itemIDs)); err != nil {
		return nil, fmt.Errorf("failed to get vendor offers: %w", err)
	}

	catalog := make(map[string][]domain.VendorOffer, len(itemIDs))
	for _, row := range rows {
		var bundles []domain.BundleTier
		if len(row.Bundles) > 0 {
			if err := json.Unmarshal(row.Bundles, &bundles); err != nil {
				return nil, fmt.Errorf("failed to decode bundles for %s/%s: %w",
					row.ProductID, row.VendorID, err)
			}
		}

		catalog[row.ProductID] = append(catalog[row.ProductID], domain.VendorOffer{
			VendorID:              row.VendorID,
			VendorName:            row.VendorName,
			Price:                 row.Price,
			Bundles:               bundles,
			ShippingCost:          row.ShippingCost,
			FreeShippingThreshold: row.FreeShippingThreshold,
		})
	}

	return catalog, nil
}
