package Models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfitMarginZeroSellingPrice(t *testing.T) {
	item := InventoryItem{
		StockQuantity:        10,
		SellingPrice:         0,
		AveragePurchasePrice: floatPtr(5),
	}

	metrics := ComputeItemMetrics(item, nil, nil)

	assert.Equal(t, 0.0, metrics.ProfitMarginPercent)
	assert.False(t, math.IsNaN(metrics.ProfitMarginPercent))
}

func TestMarkupUnboundedWhenAverageCostZero(t *testing.T) {
	item := InventoryItem{SellingPrice: 10}

	metrics := ComputeItemMetrics(item, nil, nil)

	assert.True(t, math.IsInf(metrics.MarkupPercent, 1), "markup should be +Inf, not clamped to 0")
	assert.False(t, math.IsNaN(metrics.MarkupPercent))
}

func TestMarkupZeroWhenBothZero(t *testing.T) {
	metrics := ComputeItemMetrics(InventoryItem{}, nil, nil)
	assert.Equal(t, 0.0, metrics.MarkupPercent)
}

func TestMarkupSerializesAsNullWhenUnbounded(t *testing.T) {
	metrics := ComputeItemMetrics(InventoryItem{SellingPrice: 10}, nil, nil)

	data, err := json.Marshal(metrics)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Nil(t, decoded["markup_percent"])
}

func TestEstimatedStockValue(t *testing.T) {
	item := InventoryItem{
		StockQuantity:        4,
		AveragePurchasePrice: floatPtr(2.5),
	}
	metrics := ComputeItemMetrics(item, nil, nil)
	assert.Equal(t, 10.0, metrics.EstimatedStockValue)

	// nil average cost treated as 0
	metrics = ComputeItemMetrics(InventoryItem{StockQuantity: 4}, nil, nil)
	assert.Equal(t, 0.0, metrics.EstimatedStockValue)
}

func TestStockStatusClassification(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		reorder  *float64
		want     string
	}{
		{"at reorder point", 5, floatPtr(5), StatusLowStock},
		{"zero is out of stock regardless of reorder point", 0, floatPtr(5), StatusOutOfStock},
		{"above reorder point", 6, floatPtr(5), StatusInStock},
		{"no reorder point set", 1, nil, StatusInStock},
		{"negative treated as out of stock", -1, nil, StatusOutOfStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := InventoryItem{StockQuantity: tt.quantity, ReorderPoint: tt.reorder}
			assert.Equal(t, tt.want, StockStatus(item))
		})
	}
}

func TestPriceTrendDeltas(t *testing.T) {
	item := InventoryItem{
		StockQuantity:        10,
		SellingPrice:         10,
		AveragePurchasePrice: floatPtr(4),
		LastPurchasePrice:    floatPtr(5),
	}

	metrics := ComputeItemMetrics(item, floatPtr(5), floatPtr(4.5))

	require.NotNil(t, metrics.LastVsAvgDiffPercent)
	assert.InDelta(t, 25.0, *metrics.LastVsAvgDiffPercent, 0.0001)

	require.NotNil(t, metrics.LastVsSecondLastDiff)
	assert.InDelta(t, 0.5, *metrics.LastVsSecondLastDiff, 0.0001)
}

func TestPriceTrendDeltasAbsentInputs(t *testing.T) {
	// No average cost: last-vs-avg undefined.
	metrics := ComputeItemMetrics(InventoryItem{LastPurchasePrice: floatPtr(5)}, floatPtr(5), nil)
	assert.Nil(t, metrics.LastVsAvgDiffPercent)
	assert.Nil(t, metrics.LastVsSecondLastDiff)
}
