package Models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// StockAdjustment is one user-initiated mutation of an item's quantity.
// Pointer fields carry the "user provided" tri-state: nil means the caller
// left the field blank and it may be derived, non-nil values always win.
type StockAdjustment struct {
	Direction       string
	TransactionType string
	Quantity        float64
	PurchasePrice   *float64
	SellingPrice    *float64
	TotalPrice      *float64
	ReferenceNumber *string
	Reason          *string
	Date            *time.Time
}

// AdjustStock applies one stock adjustment atomically: the quantity update
// and the ledger append either both happen or neither does. Decreases are
// guarded by a conditional update (stock_quantity >= quantity) so two racing
// requests cannot both pass a stale insufficient-stock check.
//
// Purchase transactions also fold their unit price into the item's
// last/average purchase price (maintained-on-write, weighted by quantity).
// Callers must not blindly retry on failure; adjustments are not idempotent.
func AdjustStock(db *gorm.DB, itemID string, adj StockAdjustment, userID *uint) (float64, error) {
	if adj.Direction != DirectionIncrease && adj.Direction != DirectionDecrease {
		return 0, ErrInvalidDirection
	}
	if !TypeValidForDirection(adj.Direction, adj.TransactionType) {
		return 0, ErrInvalidTransactionType
	}
	if adj.Quantity <= 0 {
		return 0, ErrInvalidQuantity
	}

	var purchasePrice, sellingPrice, totalPrice *float64
	if TypeRequiresPrice(adj.TransactionType) {
		if adj.Direction == DirectionIncrease {
			purchasePrice, totalPrice = ReconcilePricing(adj.Quantity, adj.PurchasePrice, adj.TotalPrice)
		} else {
			sellingPrice, totalPrice = ReconcilePricing(adj.Quantity, adj.SellingPrice, adj.TotalPrice)
		}
	}

	var newQuantity float64

	err := db.Transaction(func(tx *gorm.DB) error {
		var item InventoryItem
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		if adj.Direction == DirectionDecrease {
			result := tx.Model(&InventoryItem{}).
				Where("id = ? AND stock_quantity >= ?", itemID, adj.Quantity).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", adj.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrInsufficientStock
			}
		} else {
			result := tx.Model(&InventoryItem{}).
				Where("id = ?", itemID).
				Update("stock_quantity", gorm.Expr("stock_quantity + ?", adj.Quantity))
			if result.Error != nil {
				return result.Error
			}
		}

		if adj.TransactionType == TypePurchase && purchasePrice != nil {
			average := weightedAverageCost(item, adj.Quantity, *purchasePrice)
			updates := map[string]interface{}{
				"last_purchase_price":    *purchasePrice,
				"average_purchase_price": average,
			}
			if err := tx.Model(&InventoryItem{}).Where("id = ?", itemID).Updates(updates).Error; err != nil {
				return err
			}
		}

		transaction := StockTransaction{
			ItemID:          itemID,
			TransactionType: adj.TransactionType,
			QuantityChange:  adj.Quantity,
			PurchasePrice:   purchasePrice,
			SellingPrice:    sellingPrice,
			TotalPrice:      totalPrice,
			ReferenceNumber: adj.ReferenceNumber,
			Reason:          adj.Reason,
			UserID:          userID,
		}
		if adj.Direction == DirectionDecrease {
			transaction.QuantityChange = -adj.Quantity
		}
		if adj.Date != nil {
			transaction.CreatedAt = *adj.Date
		}
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}

		var updated InventoryItem
		if err := tx.First(&updated, "id = ?", itemID).Error; err != nil {
			return err
		}
		newQuantity = updated.StockQuantity
		return nil
	})
	if err != nil {
		return 0, err
	}

	return newQuantity, nil
}

// weightedAverageCost folds one purchase into the running average cost.
// The pre-adjustment quantity weights the old average; a missing average or
// empty stock resets to the incoming price.
func weightedAverageCost(item InventoryItem, quantity, price float64) float64 {
	if item.AveragePurchasePrice == nil || item.StockQuantity <= 0 {
		return round2(price)
	}
	total := item.StockQuantity + quantity
	return round2((*item.AveragePurchasePrice*item.StockQuantity + price*quantity) / total)
}

// LedgerBalance returns the signed sum of quantity changes recorded for an
// item. Used by tests and reconciliation checks against the invariant
// stock_quantity = initial stock + balance.
func LedgerBalance(db *gorm.DB, itemID string) (float64, error) {
	var balance float64
	err := db.Model(&StockTransaction{}).
		Where("item_id = ?", itemID).
		Select("COALESCE(SUM(quantity_change), 0)").
		Scan(&balance).Error
	return balance, err
}
