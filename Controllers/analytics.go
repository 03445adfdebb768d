package Controllers

import (
	"time"

	"StockPilot/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AnalyticsController handles inventory analytics endpoints.
type AnalyticsController struct {
	DB *gorm.DB
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db}
}

type inventorySummary struct {
	ItemCount       int64   `json:"item_count"`
	TotalStockValue float64 `json:"total_stock_value"`
	LowStockCount   int64   `json:"low_stock_count"`
	OutOfStockCount int64   `json:"out_of_stock_count"`
}

// Summary returns overall inventory health numbers.
func (c *AnalyticsController) Summary(ctx *fiber.Ctx) error {
	var summary inventorySummary

	c.DB.Model(&Models.InventoryItem{}).Count(&summary.ItemCount)

	c.DB.Model(&Models.InventoryItem{}).
		Select("COALESCE(SUM(stock_quantity * COALESCE(average_purchase_price, 0)), 0)").
		Scan(&summary.TotalStockValue)

	c.DB.Model(&Models.InventoryItem{}).
		Where("stock_quantity > 0 AND reorder_point IS NOT NULL AND stock_quantity <= reorder_point").
		Count(&summary.LowStockCount)

	c.DB.Model(&Models.InventoryItem{}).
		Where("stock_quantity <= 0").
		Count(&summary.OutOfStockCount)

	return ctx.JSON(summary)
}

// RecentActivity returns the most recent ledger rows joined with item and
// acting-user names.
func (c *AnalyticsController) RecentActivity(ctx *fiber.Ctx) error {
	type recentTransaction struct {
		ID              string    `json:"id"`
		ItemName        string    `json:"item_name"`
		TransactionType string    `json:"transaction_type"`
		QuantityChange  float64   `json:"quantity_change"`
		UserName        *string   `json:"user_name"`
		CreatedAt       time.Time `json:"created_at"`
	}

	var results []recentTransaction
	c.DB.Raw(`
		SELECT
			t.id,
			i.name AS item_name,
			t.transaction_type,
			t.quantity_change,
			u.name AS user_name,
			t.created_at
		FROM stock_transactions t
		JOIN inventory_items i ON t.item_id = i.id
		LEFT JOIN users u ON t.user_id = u.id
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT 10
	`).Scan(&results)

	return ctx.JSON(results)
}

// TopMovers returns the items with the most quantity moved over the last 30
// days, by absolute transaction volume.
func (c *AnalyticsController) TopMovers(ctx *fiber.Ctx) error {
	type itemVolume struct {
		ID       string  `json:"id"`
		Name     string  `json:"name"`
		Moved    float64 `json:"moved"`
		TxnCount int     `json:"transaction_count"`
	}

	since := time.Now().AddDate(0, 0, -30)

	var results []itemVolume
	c.DB.Raw(`
		SELECT
			i.id,
			i.name,
			SUM(ABS(t.quantity_change)) AS moved,
			COUNT(t.id) AS txn_count
		FROM inventory_items i
		JOIN stock_transactions t ON t.item_id = i.id
		WHERE i.deleted_at IS NULL
		AND t.created_at >= ?
		GROUP BY i.id, i.name
		ORDER BY moved DESC
		LIMIT 5
	`, since).Scan(&results)

	return ctx.JSON(results)
}
