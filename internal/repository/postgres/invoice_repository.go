// internal/repository/postgres/invoice_repository.go
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arisathang/Stock-management/internal/domain"
)

type invoiceRepository struct {
	db *DB
}

func NewInvoiceRepository(db *DB) *invoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) SaveInvoice(ctx context.Context, strategy string, invoice *domain.Invoice) (int64, error) {
	payload, err := json.Marshal(invoice)
	if err != nil {
		return 0, fmt.Errorf("failed to encode invoice: %w", err)
	}

	query := `
		INSERT INTO invoices (strategy, payload, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id
	`

	var id int64
	if err := r.db.QueryRowContext(ctx, query, strategy, payload).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to save invoice: %w", err)
	}
	return id, nil
}

func (r *invoiceRepository) GetLatestInvoice(ctx context.Context) (*domain.Invoice, error) {
	query := `
		SELECT payload
		FROM invoices
		ORDER BY created_at DESC
		LIMIT 1
	`

	var payload []byte
	err := r.db.QueryRowContext(ctx, query).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest invoice: %w", err)
	}

	var invoice domain.Invoice
	if err := json.Unmarshal(payload, &invoice); err != nil {
		return nil, fmt.Errorf("failed to decode invoice payload: %w", err)
	}
	return &invoice, nil
}
