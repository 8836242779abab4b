// internal/repository/postgres/stock_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/arisathang/Stock-management/internal/domain"
)

type stockRepository struct {
	db *DB
}

func NewStockRepository(db *DB) *stockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) GetStockLevels(ctx context.Context) ([]domain.Item, error) {
	query := `
		SELECT id, name, unit, COALESCE(image_url, '') AS image_url,
		       remaining_stock, min_stock, max_stock, last_year_prediction
		FROM products
		ORDER BY name
	`

	var items []domain.Item
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to get stock levels: %w", err)
	}
	return items, nil
}

func (r *stockRepository) GetStockLevelsForDate(ctx context.Context, date time.Time) ([]domain.Item, error) {
	// Products with no history row on that date get zero remaining stock.
	query := `
		SELECT p.id, p.name, p.unit, COALESCE(p.image_url, '') AS image_url,
		       COALESCE(h.remaining_stock, 0) AS remaining_stock,
		       p.min_stock, p.max_stock, p.last_year_prediction
		FROM products p
		LEFT JOIN stock_history h
		  ON p.id = h.product_id AND h.record_date = $1
		ORDER BY p.name
	`

	var items []domain.Item
	if err := r.db.SelectContext(ctx, &items, query, date.Format("2006-01-02")); err != nil {
		return nil, fmt.Errorf("failed to get stock levels for date: %w", err)
	}
	return items, nil
}

func (r *stockRepository) UpdateStock(ctx context.Context, productID string, remainingStock int, recordDate time.Time) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		historyQuery := `
			INSERT INTO stock_history (product_id, record_date, remaining_stock)
			VALUES ($1, $2, $3)
			ON CONFLICT (product_id, record_date) DO UPDATE
			SET remaining_stock = EXCLUDED.remaining_stock
		`
		day := recordDate.Format("2006-01-02")
		if _, err := tx.ExecContext(ctx, historyQuery, productID, day, remainingStock); err != nil {
			return fmt.Errorf("failed to upsert stock history: %w", err)
		}

		// A same-day correction is also the new live value.
		if day == time.Now().Format("2006-01-02") {
			liveQuery := `UPDATE products SET remaining_stock = $1 WHERE id = $2`
			if _, err := tx.ExecContext(ctx, liveQuery, remainingStock, productID); err != nil {
				return fmt.Errorf("failed to update live stock: %w", err)
			}
		}

		return nil
	})
}

func (r *stockRepository) GetConsumptionHistory(ctx context.Context, productID string, days int) ([]domain.ConsumptionDay, error) {
	if days <= 0 {
		days = 90
	}
	since := time.Now().AddDate(0, 0, -days).Format("2006-01-02")

	query := `
		SELECT movement_date::date AS movement_date,
		       ABS(SUM(quantity)) AS daily_total
		FROM stock_movements
		WHERE product_id = $1
		  AND movement_type != 'IN'
		  AND movement_date::date >= $2
		GROUP BY movement_date::date
		ORDER BY movement_date::date DESC
	`

	var history []domain.ConsumptionDay
	if err := r.db.SelectContext(ctx, &history, query, productID, since); err != nil {
		return nil, fmt.Errorf("failed to get consumption history: %w", err)
	}
	return history, nil
}
