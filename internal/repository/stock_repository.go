// internal/repository/stock_repository.go
package repository

import (
	"context"
	"time"

	"github.com/arisathang/Stock-management/internal/domain"
)

// StockRepository supplies stock snapshots and records stock corrections.
type StockRepository interface {
	// GetStockLevels returns the latest stock position of every product.
	GetStockLevels(ctx context.Context) ([]domain.Item, error)

	// GetStockLevelsForDate returns the stock position recorded for a given
	// day. Products with no history row for that day come back with zero
	// remaining stock.
	GetStockLevelsForDate(ctx context.Context, date time.Time) ([]domain.Item, error)

	// UpdateStock upserts the history row for (product, date). A same-day
	// update also refreshes the live product row.
	UpdateStock(ctx context.Context, productID string, remainingStock int, recordDate time.Time) error

	// GetConsumptionHistory aggregates outbound movements per day over the
	// trailing window, newest first.
	GetConsumptionHistory(ctx context.Context, productID string, days int) ([]domain.ConsumptionDay, error)
}
