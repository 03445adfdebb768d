package Models

import (
	"encoding/json"
	"math"
)

// Stock status, evaluated out-of-stock first, then low stock.
const (
	StatusOutOfStock = "out_of_stock"
	StatusLowStock   = "low_stock"
	StatusInStock    = "in_stock"
)

// ItemMetrics holds values derived from an item's current fields plus its two
// most recent purchase transactions. Nothing here is persisted.
//
// MarkupPercent is +Inf when the average cost is 0 and the selling price is
// positive: the markup is unbounded, not zero. It serializes as JSON null.
type ItemMetrics struct {
	EstimatedStockValue  float64  `json:"estimated_stock_value"`
	ProfitPerUnit        float64  `json:"profit_per_unit"`
	ProfitMarginPercent  float64  `json:"profit_margin_percent"`
	MarkupPercent        float64  `json:"-"`
	LastVsAvgDiffPercent *float64 `json:"last_vs_avg_diff_percent"`
	LastVsSecondLastDiff *float64 `json:"last_vs_second_last_diff"`
	Status               string   `json:"status"`
}

func (m ItemMetrics) MarshalJSON() ([]byte, error) {
	type alias ItemMetrics
	out := struct {
		alias
		MarkupPercent *float64 `json:"markup_percent"`
	}{alias: alias(m)}
	if !math.IsInf(m.MarkupPercent, 1) {
		markup := m.MarkupPercent
		out.MarkupPercent = &markup
	}
	return json.Marshal(out)
}

// StockStatus classifies an item as out of stock, low stock or in stock.
func StockStatus(item InventoryItem) string {
	if item.StockQuantity <= 0 {
		return StatusOutOfStock
	}
	if item.ReorderPoint != nil && item.StockQuantity <= *item.ReorderPoint {
		return StatusLowStock
	}
	return StatusInStock
}

// ComputeItemMetrics derives display metrics for an item. lastCost and
// secondLastCost are the purchase prices of the item's two most recent
// purchase transactions; pass nil when absent.
func ComputeItemMetrics(item InventoryItem, lastCost, secondLastCost *float64) ItemMetrics {
	averageCost := 0.0
	if item.AveragePurchasePrice != nil {
		averageCost = *item.AveragePurchasePrice
	}

	metrics := ItemMetrics{
		EstimatedStockValue: item.StockQuantity * averageCost,
		ProfitPerUnit:       item.SellingPrice - averageCost,
		Status:              StockStatus(item),
	}

	if item.SellingPrice > 0 {
		metrics.ProfitMarginPercent = metrics.ProfitPerUnit / item.SellingPrice * 100
	}

	switch {
	case averageCost > 0:
		metrics.MarkupPercent = metrics.ProfitPerUnit / averageCost * 100
	case item.SellingPrice > 0:
		metrics.MarkupPercent = math.Inf(1)
	}

	if averageCost != 0 && item.LastPurchasePrice != nil {
		diff := (*item.LastPurchasePrice - averageCost) / averageCost * 100
		metrics.LastVsAvgDiffPercent = &diff
	}

	if lastCost != nil && secondLastCost != nil {
		diff := *lastCost - *secondLastCost
		metrics.LastVsSecondLastDiff = &diff
	}

	return metrics
}
