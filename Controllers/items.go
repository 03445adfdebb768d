package Controllers

import (
	"strings"

	"StockPilot/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ItemController handles inventory item CRUD endpoints.
type ItemController struct {
	DB *gorm.DB
}

// NewItemController creates a new ItemController
func NewItemController(db *gorm.DB) *ItemController {
	return &ItemController{DB: db}
}

type CreateItemRequest struct {
	Name          string   `json:"name" validate:"required"`
	CategoryID    *string  `json:"category_id"`
	Unit          string   `json:"unit" validate:"required"`
	InitialStock  float64  `json:"initial_stock" validate:"gte=0"`
	SellingPrice  float64  `json:"selling_price" validate:"gte=0"`
	PurchasePrice *float64 `json:"purchase_price" validate:"omitempty,gte=0"`
	ReorderPoint  *float64 `json:"reorder_point" validate:"omitempty,gte=0"`
	Description   string   `json:"description"`
}

// UpdateItemRequest deliberately has no unit or stock-quantity fields: the
// unit is immutable after creation and quantity only moves through the
// stock-adjustment path.
type UpdateItemRequest struct {
	Name         string   `json:"name" validate:"required"`
	CategoryID   *string  `json:"category_id"`
	SellingPrice float64  `json:"selling_price" validate:"gte=0"`
	ReorderPoint *float64 `json:"reorder_point" validate:"omitempty,gte=0"`
	Description  string   `json:"description"`
}

type itemResponse struct {
	Models.InventoryItem
	Status string `json:"status"`
}

func withStatus(item Models.InventoryItem) itemResponse {
	return itemResponse{InventoryItem: item, Status: Models.StockStatus(item)}
}

// GetItems retrieves all items with their category and stock status.
func (c *ItemController) GetItems(ctx *fiber.Ctx) error {
	var items []Models.InventoryItem
	result := c.DB.Preload("Category").Order("name ASC").Find(&items)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve items"})
	}

	response := make([]itemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, withStatus(item))
	}
	return ctx.JSON(response)
}

// GetItem retrieves a single item with derived metrics.
func (c *ItemController) GetItem(ctx *fiber.Ctx) error {
	var item Models.InventoryItem
	result := c.DB.Preload("Category").First(&item, "id = ?", ctx.Params("id"))
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	lastCost, secondLastCost := lastTwoPurchaseCosts(c.DB, item.ID)
	return ctx.JSON(fiber.Map{
		"item":    withStatus(item),
		"metrics": Models.ComputeItemMetrics(item, lastCost, secondLastCost),
	})
}

// CreateItem creates a new inventory item with its initial stock. The
// initial quantity is part of the item row, not a ledger entry.
func (c *ItemController) CreateItem(ctx *fiber.Ctx) error {
	var req CreateItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(validationErrors(err))
	}

	var existing Models.InventoryItem
	if err := c.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "An item with this name already exists"})
	}

	if req.CategoryID != nil {
		var category Models.Category
		if err := c.DB.First(&category, "id = ?", *req.CategoryID).Error; err != nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
		}
	}

	item := Models.InventoryItem{
		Name:          req.Name,
		CategoryID:    req.CategoryID,
		Unit:          req.Unit,
		StockQuantity: req.InitialStock,
		SellingPrice:  req.SellingPrice,
		ReorderPoint:  req.ReorderPoint,
		Description:   req.Description,
	}
	if req.PurchasePrice != nil {
		item.LastPurchasePrice = req.PurchasePrice
		item.AveragePurchasePrice = req.PurchasePrice
	}

	if result := c.DB.Create(&item); result.Error != nil {
		if strings.Contains(result.Error.Error(), "unique constraint") ||
			strings.Contains(result.Error.Error(), "UNIQUE constraint") ||
			strings.Contains(result.Error.Error(), "Duplicate entry") {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "An item with this name already exists"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create item"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(withStatus(item))
}

// UpdateItem updates mutable item fields.
func (c *ItemController) UpdateItem(ctx *fiber.Ctx) error {
	var item Models.InventoryItem
	result := c.DB.First(&item, "id = ?", ctx.Params("id"))
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	var req UpdateItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(validationErrors(err))
	}

	var duplicate Models.InventoryItem
	if err := c.DB.Where("name = ? AND id != ?", req.Name, item.ID).First(&duplicate).Error; err == nil {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Another item with this name already exists"})
	}

	if req.CategoryID != nil {
		var category Models.Category
		if err := c.DB.First(&category, "id = ?", *req.CategoryID).Error; err != nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
		}
	}

	updates := map[string]interface{}{
		"name":          req.Name,
		"category_id":   req.CategoryID,
		"selling_price": req.SellingPrice,
		"reorder_point": req.ReorderPoint,
		"description":   req.Description,
	}
	if err := c.DB.Model(&item).Updates(updates).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update item"})
	}

	c.DB.Preload("Category").First(&item, "id = ?", item.ID)
	return ctx.JSON(withStatus(item))
}

// DeleteItem soft deletes an item. Its ledger rows remain for audit.
func (c *ItemController) DeleteItem(ctx *fiber.Ctx) error {
	var item Models.InventoryItem
	result := c.DB.First(&item, "id = ?", ctx.Params("id"))
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	c.DB.Delete(&item)

	return ctx.JSON(fiber.Map{"message": "Item deleted successfully"})
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

type bulkDeleteResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// BulkDelete deletes multiple items as independent per-item operations.
// Failures are reported per item; completed deletions are not rolled back.
func (c *ItemController) BulkDelete(ctx *fiber.Ctx) error {
	var req BulkDeleteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(validationErrors(err))
	}

	results := make([]bulkDeleteResult, 0, len(req.IDs))
	for _, id := range req.IDs {
		var item Models.InventoryItem
		if err := c.DB.First(&item, "id = ?", id).Error; err != nil {
			results = append(results, bulkDeleteResult{ID: id, Error: "Item not found"})
			continue
		}
		if err := c.DB.Delete(&item).Error; err != nil {
			results = append(results, bulkDeleteResult{ID: id, Error: "Failed to delete item"})
			continue
		}
		results = append(results, bulkDeleteResult{ID: id, Success: true})
	}

	return ctx.JSON(fiber.Map{"results": results})
}

// lastTwoPurchaseCosts returns the purchase prices of the item's two most
// recent purchase transactions, newest first. Nil entries mean absent.
func lastTwoPurchaseCosts(db *gorm.DB, itemID string) (*float64, *float64) {
	var transactions []Models.StockTransaction
	db.Where("item_id = ? AND transaction_type = ?", itemID, Models.TypePurchase).
		Order("created_at DESC, id DESC").
		Limit(2).
		Find(&transactions)

	var last, secondLast *float64
	if len(transactions) > 0 {
		last = transactions[0].PurchasePrice
	}
	if len(transactions) > 1 {
		secondLast = transactions[1].PurchasePrice
	}
	return last, secondLast
}
