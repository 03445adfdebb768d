package Controllers

import (
	"StockPilot/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	DB *gorm.DB
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// GetCategories retrieves all categories.
func (c *CategoryController) GetCategories(ctx *fiber.Ctx) error {
	var categories []Models.Category
	result := c.DB.Order("name ASC").Find(&categories)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve categories"})
	}
	return ctx.JSON(categories)
}

// CreateCategory creates a category. Name uniqueness is case-insensitive:
// "Produce" and "produce" are the same category.
func (c *CategoryController) CreateCategory(ctx *fiber.Ctx) error {
	var req CategoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(validationErrors(err))
	}

	taken, err := Models.CategoryNameTaken(c.DB, req.Name, "")
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create category"})
	}
	if taken {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A category with this name already exists"})
	}

	category := Models.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if result := c.DB.Create(&category); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create category"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory updates a category's name and description.
func (c *CategoryController) UpdateCategory(ctx *fiber.Ctx) error {
	var category Models.Category
	result := c.DB.First(&category, "id = ?", ctx.Params("id"))
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
	}

	var req CategoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(validationErrors(err))
	}

	taken, err := Models.CategoryNameTaken(c.DB, req.Name, category.ID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update category"})
	}
	if taken {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A category with this name already exists"})
	}

	c.DB.Model(&category).Updates(map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
	})

	return ctx.JSON(category)
}

// DeleteCategory deletes a category and orphans item references. Items keep
// existing and display as "Uncategorized".
func (c *CategoryController) DeleteCategory(ctx *fiber.Ctx) error {
	var category Models.Category
	result := c.DB.First(&category, "id = ?", ctx.Params("id"))
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
	}

	if err := c.DB.Model(&Models.InventoryItem{}).
		Where("category_id = ?", category.ID).
		Update("category_id", nil).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete category"})
	}

	c.DB.Delete(&category)

	return ctx.JSON(fiber.Map{"message": "Category deleted successfully"})
}
