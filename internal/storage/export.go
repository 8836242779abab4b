// internal/storage/export.go
package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"time"

	"github.com/arisathang/Stock-management/internal/domain"
)

// ExportPrefix is where archived invoice exports live in the bucket.
const ExportPrefix = "invoices/"

// InvoiceArchiver renders a generated invoice as CSV and uploads it to object
// storage, one object per invoice.
type InvoiceArchiver struct {
	store ObjectStorage
	now   func() time.Time
}

func NewInvoiceArchiver(store ObjectStorage) *InvoiceArchiver {
	return &InvoiceArchiver{store: store, now: time.Now}
}

// ArchiveInvoice uploads the CSV rendering of inv and returns the object key.
func (a *InvoiceArchiver) ArchiveInvoice(ctx context.Context, invoiceID int64, inv *domain.Invoice) (string, error) {
	data, err := renderInvoiceCSV(inv)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s%s/invoice_%d.csv", ExportPrefix, a.now().UTC().Format("2006-01-02"), invoiceID)
	if err := a.store.UploadObject(ctx, key, data, "text/csv"); err != nil {
		return "", err
	}
	return key, nil
}

func renderInvoiceCSV(inv *domain.Invoice) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"vendor_id", "vendor_name", "item_id", "item_name", "unit", "quantity", "cost"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("export: write header: %w", err)
	}

	vendorIDs := make([]string, 0, len(inv.VendorOrders))
	for id := range inv.VendorOrders {
		vendorIDs = append(vendorIDs, id)
	}
	sort.Strings(vendorIDs)

	for _, vendorID := range vendorIDs {
		group := inv.VendorOrders[vendorID]
		for _, item := range group.Items {
			row := []string{
				vendorID,
				group.VendorName,
				item.ID,
				item.Name,
				item.Unit,
				fmt.Sprintf("%d", item.Quantity),
				item.Cost.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, fmt.Errorf("export: write row: %w", err)
			}
		}
		shipping := []string{vendorID, group.VendorName, "", "shipping", "", "", group.ShippingCost.StringFixed(2)}
		if err := w.Write(shipping); err != nil {
			return nil, fmt.Errorf("export: write shipping row: %w", err)
		}
	}

	total := []string{"", "", "", "total", "", "", inv.TotalCost.StringFixed(2)}
	if err := w.Write(total); err != nil {
		return nil, fmt.Errorf("export: write total row: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
