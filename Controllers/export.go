package Controllers

import (
	"bytes"
	"fmt"
	"time"

	"StockPilot/Reports"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportController serves Excel downloads of the inventory and the ledger.
type ExportController struct {
	DB *gorm.DB
}

// NewExportController creates a new ExportController
func NewExportController(db *gorm.DB) *ExportController {
	return &ExportController{DB: db}
}

// ExportInventory streams the full inventory as an .xlsx download.
// GET /api/export/inventory
func (c *ExportController) ExportInventory(ctx *fiber.Ctx) error {
	f, err := Reports.BuildInventoryWorkbook(c.DB)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build inventory export"})
	}
	return sendWorkbook(ctx, f, "inventory")
}

// ExportTransactions streams the ledger as an .xlsx download, optionally
// filtered with ?item_id=.
// GET /api/export/transactions
func (c *ExportController) ExportTransactions(ctx *fiber.Ctx) error {
	f, err := Reports.BuildTransactionsWorkbook(c.DB, ctx.Query("item_id"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build transactions export"})
	}
	return sendWorkbook(ctx, f, "transactions")
}

func sendWorkbook(ctx *fiber.Ctx, f *excelize.File, name string) error {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write export file"})
	}

	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().Format("2006-01-02"))
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return ctx.Send(buf.Bytes())
}
