// internal/repository/pricing_repository.go
package repository

import (
	"context"

	"github.com/arisathang/Stock-management/internal/domain"
)

// PricingRepository serves the vendor pricing catalog.
type PricingRepository interface {
	// GetVendorOffers returns every vendor offer for the given items, keyed
	// by item id, including each vendor's shipping terms. Items nobody sells
	// are simply absent from the map.
	GetVendorOffers(ctx context.Context, itemIDs []string) (map[string][]domain.VendorOffer, error)
}
