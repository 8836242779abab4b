package storage

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arisathang/Stock-management/internal/domain"
)

type fakeStore struct {
	uploads map[string][]byte
}

func (f *fakeStore) ListObjects(context.Context, string) ([]ObjectInfo, error) {
	return nil, nil
}

func (f *fakeStore) DownloadObject(_ context.Context, key string) ([]byte, error) {
	return f.uploads[key], nil
}

func (f *fakeStore) UploadObject(_ context.Context, key string, data []byte, _ string) error {
	if f.uploads == nil {
		f.uploads = make(map[string][]byte)
	}
	f.uploads[key] = data
	return nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestArchiveInvoice(t *testing.T) {
	inv := &domain.Invoice{
		VendorOrders: map[string]*domain.VendorGroup{
			"vendor-y": {
				VendorName: "Vendor Y",
				Items: []domain.InvoiceItem{
					{ID: "flour", Name: "Flour", Unit: "kg", Quantity: 80, Cost: dec("120.00")},
				},
				Subtotal:     dec("120.00"),
				ShippingCost: dec("15.00"),
			},
			"vendor-x": {
				VendorName: "Vendor X",
				Items: []domain.InvoiceItem{
					{ID: "sugar", Name: "Sugar", Unit: "kg", Quantity: 10, Cost: dec("30.00")},
				},
				Subtotal:     dec("30.00"),
				ShippingCost: dec("0.00"),
			},
		},
		TotalCost: dec("165.00"),
	}

	store := &fakeStore{}
	archiver := NewInvoiceArchiver(store)
	archiver.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }

	key, err := archiver.ArchiveInvoice(context.Background(), 42, inv)
	require.NoError(t, err)
	assert.Equal(t, "invoices/2026-08-30/invoice_42.csv", key)

	data, ok := store.uploads[key]
	require.True(t, ok)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)

	// Header, two item rows, two shipping rows, total row.
	require.Len(t, records, 6)
	assert.Equal(t, []string{"vendor_id", "vendor_name", "item_id", "item_name", "unit", "quantity", "cost"}, records[0])

	// Vendors appear in sorted order regardless of map iteration.
	assert.Equal(t, "vendor-x", records[1][0])
	assert.Equal(t, "vendor-y", records[3][0])

	total := records[len(records)-1]
	assert.Equal(t, "total", total[3])
	assert.Equal(t, "165.00", total[6])
}
