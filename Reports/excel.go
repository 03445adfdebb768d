package Reports

import (
	"fmt"

	"StockPilot/Models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const inventorySheet = "Inventory"

const transactionsSheet = "Transactions"

// BuildInventoryWorkbook renders the current inventory into an Excel
// workbook: one row per item with its category, stock status and estimated
// stock value.
func BuildInventoryWorkbook(db *gorm.DB) (*excelize.File, error) {
	var items []Models.InventoryItem
	if err := db.Preload("Category").Order("name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("error loading items: %w", err)
	}

	f := excelize.NewFile()
	index, err := f.NewSheet(inventorySheet)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"Name", "Category", "Unit", "Stock Quantity", "Reorder Point",
		"Selling Price", "Avg Purchase Price", "Last Purchase Price",
		"Stock Value", "Status",
	}
	writeHeaderRow(f, inventorySheet, headers)

	for rowIndex, item := range items {
		row := rowIndex + 2

		categoryName := "Uncategorized"
		if item.Category != nil {
			categoryName = item.Category.Name
		}

		averageCost := 0.0
		if item.AveragePurchasePrice != nil {
			averageCost = *item.AveragePurchasePrice
		}

		values := []interface{}{
			item.Name,
			categoryName,
			item.Unit,
			item.StockQuantity,
			derefOrBlank(item.ReorderPoint),
			item.SellingPrice,
			derefOrBlank(item.AveragePurchasePrice),
			derefOrBlank(item.LastPurchasePrice),
			item.StockQuantity * averageCost,
			Models.StockStatus(item),
		}
		writeRow(f, inventorySheet, row, values)
	}

	finishSheet(f, inventorySheet, len(headers))
	return f, nil
}

// BuildTransactionsWorkbook renders the ledger, newest first, optionally
// filtered to one item.
func BuildTransactionsWorkbook(db *gorm.DB, itemID string) (*excelize.File, error) {
	type ledgerRow struct {
		Models.StockTransaction
		ItemName string
		UserName *string
	}

	query := db.Table("stock_transactions t").
		Select("t.*, i.name AS item_name, u.name AS user_name").
		Joins("JOIN inventory_items i ON t.item_id = i.id").
		Joins("LEFT JOIN users u ON t.user_id = u.id").
		Order("t.created_at DESC, t.id DESC")
	if itemID != "" {
		query = query.Where("t.item_id = ?", itemID)
	}

	var rows []ledgerRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("error loading transactions: %w", err)
	}

	f := excelize.NewFile()
	index, err := f.NewSheet(transactionsSheet)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"Date", "Item", "Type", "Quantity Change", "Purchase Price",
		"Selling Price", "Total Price", "Reference", "Reason", "User",
	}
	writeHeaderRow(f, transactionsSheet, headers)

	for rowIndex, txn := range rows {
		row := rowIndex + 2

		userName := "System"
		if txn.UserName != nil {
			userName = *txn.UserName
		}

		values := []interface{}{
			txn.CreatedAt.Format("2006-01-02 15:04:05"),
			txn.ItemName,
			txn.TransactionType,
			txn.QuantityChange,
			derefOrBlank(txn.PurchasePrice),
			derefOrBlank(txn.SellingPrice),
			derefOrBlank(txn.TotalPrice),
			derefStrOrBlank(txn.ReferenceNumber),
			derefStrOrBlank(txn.Reason),
			userName,
		}
		writeRow(f, transactionsSheet, row, values)
	}

	finishSheet(f, transactionsSheet, len(headers))
	return f, nil
}

// BuildLowStockWorkbook renders items at or below their reorder point plus
// out-of-stock items, for the scheduled report.
func BuildLowStockWorkbook(db *gorm.DB) (*excelize.File, int, error) {
	var items []Models.InventoryItem
	err := db.Preload("Category").
		Where("stock_quantity <= 0 OR (reorder_point IS NOT NULL AND stock_quantity <= reorder_point)").
		Order("stock_quantity ASC").
		Find(&items).Error
	if err != nil {
		return nil, 0, fmt.Errorf("error loading low-stock items: %w", err)
	}

	sheetName := "Low Stock"
	f := excelize.NewFile()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"Name", "Category", "Unit", "Stock Quantity", "Reorder Point", "Status"}
	writeHeaderRow(f, sheetName, headers)

	for rowIndex, item := range items {
		row := rowIndex + 2

		categoryName := "Uncategorized"
		if item.Category != nil {
			categoryName = item.Category.Name
		}

		values := []interface{}{
			item.Name,
			categoryName,
			item.Unit,
			item.StockQuantity,
			derefOrBlank(item.ReorderPoint),
			Models.StockStatus(item),
		}
		writeRow(f, sheetName, row, values)
	}

	finishSheet(f, sheetName, len(headers))
	return f, len(items), nil
}

func writeHeaderRow(f *excelize.File, sheetName string, headers []string) {
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err == nil {
		f.SetRowStyle(sheetName, 1, 1, headerStyle)
	}
}

func writeRow(f *excelize.File, sheetName string, row int, values []interface{}) {
	for colIndex, value := range values {
		cell := fmt.Sprintf("%c%d", 'A'+colIndex, row)
		f.SetCellValue(sheetName, cell, value)
	}
}

func finishSheet(f *excelize.File, sheetName string, columns int) {
	for i := 0; i < columns; i++ {
		f.SetColWidth(sheetName, string('A'+rune(i)), string('A'+rune(i)), 18)
	}
	if f.GetSheetName(0) != sheetName {
		f.DeleteSheet("Sheet1")
	}
}

func derefOrBlank(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func derefStrOrBlank(v *string) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
