package FiberConfig

import (
	"fmt"
	"os"

	"StockPilot/Controllers"
	"StockPilot/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	authController := Controllers.NewAuthController(db)
	itemController := Controllers.NewItemController(db)
	stockController := Controllers.NewStockController(db)
	categoryController := Controllers.NewCategoryController(db)
	settingsController := Controllers.NewSettingsController(db)
	analyticsController := Controllers.NewAnalyticsController(db)
	exportController := Controllers.NewExportController(db)

	// Auth routes
	app.Post("/api/login", authController.Login)
	app.Post("/api/logout", authController.Logout)
	app.Get("/api/user", middleware.Verify(db, 1), authController.CurrentUser)
	app.Get("/api/validate-token", middleware.Verify(db, 1), authController.ValidateToken)
	app.Post("/api/register", middleware.Verify(db, 4), authController.Register)

	// Item routes - reads need viewer access, writes need manager access
	items := app.Group("/api/items", middleware.Verify(db, 1))
	items.Get("/", itemController.GetItems)
	items.Post("/", middleware.Verify(db, 3), itemController.CreateItem)
	items.Post("/bulk-delete", middleware.Verify(db, 3), itemController.BulkDelete)
	items.Get("/:id", itemController.GetItem)
	items.Put("/:id", middleware.Verify(db, 3), itemController.UpdateItem)
	items.Delete("/:id", middleware.Verify(db, 3), itemController.DeleteItem)

	// Stock ledger routes under items
	items.Post("/:id/stock", middleware.Verify(db, 3), stockController.AdjustStock)
	items.Get("/:id/transactions", stockController.GetItemTransactions)
	items.Get("/:id/metrics", stockController.GetItemMetrics)

	// Category routes
	categories := app.Group("/api/categories", middleware.Verify(db, 1))
	categories.Get("/", categoryController.GetCategories)
	categories.Post("/", middleware.Verify(db, 3), categoryController.CreateCategory)
	categories.Put("/:id", middleware.Verify(db, 3), categoryController.UpdateCategory)
	categories.Delete("/:id", middleware.Verify(db, 3), categoryController.DeleteCategory)

	// Settings routes
	settings := app.Group("/api/settings", middleware.Verify(db, 1))
	settings.Get("/store", settingsController.GetStoreSettings)
	settings.Put("/store", middleware.Verify(db, 3), settingsController.UpdateStoreSettings)
	settings.Get("/currency", settingsController.GetCurrencySettings)
	settings.Put("/currency", middleware.Verify(db, 3), settingsController.UpdateCurrencySettings)

	// Analytics routes
	analytics := app.Group("/api/analytics", middleware.Verify(db, 1))
	analytics.Get("/summary", analyticsController.Summary)
	analytics.Get("/recent-activity", analyticsController.RecentActivity)
	analytics.Get("/top-movers", analyticsController.TopMovers)

	// Export routes
	export := app.Group("/api/export", middleware.Verify(db, 1))
	export.Get("/inventory", exportController.ExportInventory)
	export.Get("/transactions", exportController.ExportTransactions)
}

func FiberConfig(db *gorm.DB) {
	fmt.Println("Server Up...")
	app := fiber.New()

	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true, // Important for cookies
		MaxAge:           300,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupRoutes(app, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	app.Listen(":" + port)
}
