package Controllers

import (
	"StockPilot/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SettingsController handles the singleton store and currency settings rows.
type SettingsController struct {
	DB *gorm.DB
}

// NewSettingsController creates a new SettingsController
func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{DB: db}
}

type StoreSettingsRequest struct {
	StoreName     string         `json:"store_name" validate:"required"`
	Address       string         `json:"address"`
	Phone         string         `json:"phone"`
	Email         string         `json:"email" validate:"omitempty,email"`
	BusinessHours datatypes.JSON `json:"business_hours"`
}

type CurrencySettingsRequest struct {
	CurrencyCode string `json:"currency_code" validate:"required,len=3,uppercase"`
}

// GetStoreSettings returns the store settings row.
func (c *SettingsController) GetStoreSettings(ctx *fiber.Ctx) error {
	var settings Models.StoreSettings
	if err := c.DB.First(&settings, Models.SettingsRowID).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve store settings"})
	}
	return ctx.JSON(settings)
}

// UpdateStoreSettings upserts the fixed-id store settings row.
func (c *SettingsController) UpdateStoreSettings(ctx *fiber.Ctx) error {
	var req StoreSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(validationErrors(err))
	}

	settings := Models.StoreSettings{
		ID:            Models.SettingsRowID,
		StoreName:     req.StoreName,
		Address:       req.Address,
		Phone:         req.Phone,
		Email:         req.Email,
		BusinessHours: req.BusinessHours,
	}
	if err := c.DB.Save(&settings).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update store settings"})
	}

	return ctx.JSON(settings)
}

// GetCurrencySettings returns the currency settings row.
func (c *SettingsController) GetCurrencySettings(ctx *fiber.Ctx) error {
	var settings Models.CurrencySettings
	if err := c.DB.First(&settings, Models.SettingsRowID).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve currency settings"})
	}
	return ctx.JSON(settings)
}

// UpdateCurrencySettings upserts the fixed-id currency settings row.
func (c *SettingsController) UpdateCurrencySettings(ctx *fiber.Ctx) error {
	var req CurrencySettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(validationErrors(err))
	}

	settings := Models.CurrencySettings{
		ID:           Models.SettingsRowID,
		CurrencyCode: req.CurrencyCode,
	}
	if err := c.DB.Save(&settings).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update currency settings"})
	}

	return ctx.JSON(settings)
}
