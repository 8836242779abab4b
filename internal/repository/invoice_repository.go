// internal/repository/invoice_repository.go
package repository

import (
	"context"

	"github.com/arisathang/Stock-management/internal/domain"
)

// InvoiceRepository persists generated invoices for later reporting.
type InvoiceRepository interface {
	SaveInvoice(ctx context.Context, strategy string, invoice *domain.Invoice) (int64, error)
	GetLatestInvoice(ctx context.Context) (*domain.Invoice, error)
}
