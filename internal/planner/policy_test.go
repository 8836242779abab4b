package planner

import (
	"context"
	"testing"

	"github.com/arisathang/Stock-management/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderAmount(t *testing.T) {
	tests := []struct {
		name string
		item domain.Item
		want int
	}{
		{
			name: "forecast within bounds",
			item: domain.Item{Prediction: 100, RemainingStock: 20, MinStock: 30, MaxStock: 150},
			want: 80,
		},
		{
			name: "projected total below min forces order up to min",
			item: domain.Item{Prediction: 100, RemainingStock: 20, MinStock: 110, MaxStock: 150},
			want: 90,
		},
		{
			name: "projected total above max caps at max",
			item: domain.Item{Prediction: 200, RemainingStock: 20, MinStock: 30, MaxStock: 150},
			want: 130,
		},
		{
			name: "stock already at max orders nothing",
			item: domain.Item{Prediction: 100, RemainingStock: 150, MinStock: 30, MaxStock: 150},
			want: 0,
		},
		{
			name: "stock above max never orders negative",
			item: domain.Item{Prediction: 100, RemainingStock: 200, MinStock: 30, MaxStock: 150},
			want: 0,
		},
		{
			name: "stock and forecast both below min still fills to min",
			item: domain.Item{Prediction: 10, RemainingStock: 5, MinStock: 40, MaxStock: 150},
			want: 35,
		},
		{
			name: "forecast fully covered by stock",
			item: domain.Item{Prediction: 50, RemainingStock: 80, MinStock: 30, MaxStock: 150},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OrderAmount(tt.item))
		})
	}
}

func TestOrderAmountNeverNegativeAndBounded(t *testing.T) {
	items := []domain.Item{
		{Prediction: 0, RemainingStock: 0, MinStock: 0, MaxStock: 0},
		{Prediction: 500, RemainingStock: -10, MinStock: 20, MaxStock: 100},
		{Prediction: 3, RemainingStock: 99, MinStock: 10, MaxStock: 100},
		{Prediction: 77, RemainingStock: 12, MinStock: 12, MaxStock: 80},
	}

	for _, item := range items {
		amount := OrderAmount(item)
		assert.GreaterOrEqual(t, amount, 0)

		projected := item.RemainingStock + amount
		if item.RemainingStock <= item.MaxStock {
			assert.LessOrEqual(t, projected, item.MaxStock,
				"order must not push stock above max for %+v", item)
		}

		// Pure function: same input, same output.
		assert.Equal(t, amount, OrderAmount(item))
	}
}

func TestRestockPolicySuppressesZeroLines(t *testing.T) {
	items := []domain.Item{
		{ID: "rice", Name: "Rice", Unit: "kg", Prediction: 100, RemainingStock: 20, MinStock: 30, MaxStock: 150},
		{ID: "salt", Name: "Salt", Unit: "kg", Prediction: 10, RemainingStock: 50, MinStock: 5, MaxStock: 60},
	}

	lines, diags, err := RestockPolicy{}.PlanOrders(context.Background(), items)
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.Len(t, lines, 1)

	assert.Equal(t, "rice", lines[0].ItemID)
	assert.Equal(t, 80, lines[0].OrderAmount)
	assert.Equal(t, 100, lines[0].Prediction)
	assert.Equal(t, 20, lines[0].RemainingStock)
}

func TestClampOrderAmount(t *testing.T) {
	item := domain.Item{RemainingStock: 40, MinStock: 30, MaxStock: 100}

	assert.Equal(t, 60, ClampOrderAmount(item, 200), "clamped to max headroom")
	assert.Equal(t, 25, ClampOrderAmount(item, 25), "within headroom passes through")
	assert.Equal(t, 0, ClampOrderAmount(item, -5), "negative clamps to zero")

	overstocked := domain.Item{RemainingStock: 120, MinStock: 30, MaxStock: 100}
	assert.Equal(t, 0, ClampOrderAmount(overstocked, 10), "no headroom means zero")
}
