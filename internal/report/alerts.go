// internal/report/alerts.go
package report

import (
	"fmt"

	"github.com/arisathang/Stock-management/internal/domain"
)

// Alert types emitted by StockAlerts.
const (
	AlertLow  = "low"
	AlertHigh = "high"
)

// StockAlerts flags every item sitting strictly below its minimum or strictly
// above its maximum stock level. Items inside the band produce nothing.
func StockAlerts(items []domain.Item) []domain.StockAlert {
	alerts := make([]domain.StockAlert, 0)
	for _, item := range items {
		switch {
		case item.RemainingStock < item.MinStock:
			alerts = append(alerts, domain.StockAlert{
				Type: AlertLow,
				Message: fmt.Sprintf("%s is below minimum stock (%d/%d).",
					item.Name, item.RemainingStock, item.MinStock),
			})
		case item.RemainingStock > item.MaxStock:
			alerts = append(alerts, domain.StockAlert{
				Type: AlertHigh,
				Message: fmt.Sprintf("%s is over maximum stock (%d/%d).",
					item.Name, item.RemainingStock, item.MaxStock),
			})
		}
	}
	return alerts
}
