package Controllers

import (
	"errors"
	"time"

	"StockPilot/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StockController handles stock adjustments and transaction history.
type StockController struct {
	DB *gorm.DB
}

// NewStockController creates a new StockController
func NewStockController(db *gorm.DB) *StockController {
	return &StockController{DB: db}
}

type AdjustStockRequest struct {
	Type            string   `json:"type" validate:"required,oneof=increase decrease"`
	TransactionType string   `json:"transactionType" validate:"required"`
	Quantity        float64  `json:"quantity" validate:"required,gt=0"`
	PurchasePrice   *float64 `json:"purchasePrice" validate:"omitempty,gte=0"`
	SellingPrice    *float64 `json:"sellingPrice" validate:"omitempty,gte=0"`
	TotalPrice      *float64 `json:"totalPrice" validate:"omitempty,gte=0"`
	ReferenceNumber *string  `json:"referenceNumber"`
	Reason          *string  `json:"reason"`
	Date            *string  `json:"date"`
}

// AdjustStock applies one stock adjustment and appends a ledger row.
// POST /api/items/:id/stock
func (c *StockController) AdjustStock(ctx *fiber.Ctx) error {
	var req AdjustStockRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(validationErrors(err))
	}

	adjustment := Models.StockAdjustment{
		Direction:       req.Type,
		TransactionType: req.TransactionType,
		Quantity:        req.Quantity,
		PurchasePrice:   req.PurchasePrice,
		SellingPrice:    req.SellingPrice,
		TotalPrice:      req.TotalPrice,
		ReferenceNumber: req.ReferenceNumber,
		Reason:          req.Reason,
	}
	if req.Date != nil && *req.Date != "" {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
		}
		adjustment.Date = &date
	}

	var userID *uint
	if user, ok := ctx.Locals("user").(Models.User); ok {
		id := user.ID
		userID = &id
	}

	newQuantity, err := Models.AdjustStock(c.DB, ctx.Params("id"), adjustment, userID)
	if err != nil {
		switch {
		case errors.Is(err, Models.ErrItemNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
		case errors.Is(err, Models.ErrInsufficientStock):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Insufficient stock for this adjustment"})
		case errors.Is(err, Models.ErrInvalidDirection),
			errors.Is(err, Models.ErrInvalidTransactionType),
			errors.Is(err, Models.ErrInvalidQuantity):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to adjust stock"})
		}
	}

	return ctx.JSON(fiber.Map{
		"message":     "Stock adjusted successfully",
		"newQuantity": newQuantity,
	})
}

// GetItemTransactions returns the item's ledger rows newest first, joined
// with the acting user's display name (null for system rows).
// GET /api/items/:id/transactions
func (c *StockController) GetItemTransactions(ctx *fiber.Ctx) error {
	itemID := ctx.Params("id")

	var item Models.InventoryItem
	if result := c.DB.First(&item, "id = ?", itemID); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	type transactionRow struct {
		ID              string    `json:"id"`
		TransactionType string    `json:"transaction_type"`
		QuantityChange  float64   `json:"quantity_change"`
		PurchasePrice   *float64  `json:"purchase_price"`
		SellingPrice    *float64  `json:"selling_price"`
		TotalPrice      *float64  `json:"total_price"`
		ReferenceNumber *string   `json:"reference_number"`
		Reason          *string   `json:"reason"`
		CreatedAt       time.Time `json:"created_at"`
		UserName        *string   `json:"user_name"`
	}

	var rows []transactionRow
	c.DB.Raw(`
		SELECT
			t.id,
			t.transaction_type,
			t.quantity_change,
			t.purchase_price,
			t.selling_price,
			t.total_price,
			t.reference_number,
			t.reason,
			t.created_at,
			u.name AS user_name
		FROM stock_transactions t
		LEFT JOIN users u ON t.user_id = u.id
		WHERE t.item_id = ?
		ORDER BY t.created_at DESC, t.id DESC
	`, itemID).Scan(&rows)

	if rows == nil {
		rows = []transactionRow{}
	}
	return ctx.JSON(rows)
}

// GetItemMetrics returns the derived metrics for one item.
// GET /api/items/:id/metrics
func (c *StockController) GetItemMetrics(ctx *fiber.Ctx) error {
	var item Models.InventoryItem
	if result := c.DB.First(&item, "id = ?", ctx.Params("id")); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	lastCost, secondLastCost := lastTwoPurchaseCosts(c.DB, item.ID)
	return ctx.JSON(Models.ComputeItemMetrics(item, lastCost, secondLastCost))
}
