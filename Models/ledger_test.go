package Models

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}, &Category{}, &InventoryItem{}, &StockTransaction{}))
	return db
}

func createTestItem(t *testing.T, db *gorm.DB, initialStock float64) InventoryItem {
	t.Helper()
	item := InventoryItem{
		Name:          "Coffee Beans",
		Unit:          "kg",
		StockQuantity: initialStock,
		SellingPrice:  12,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func TestAdjustStockRoundTrip(t *testing.T) {
	db := openTestDB(t)
	item := createTestItem(t, db, 20)

	newQuantity, err := AdjustStock(db, item.ID, StockAdjustment{
		Direction:       DirectionIncrease,
		TransactionType: TypePurchase,
		Quantity:        5,
		PurchasePrice:   floatPtr(4),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 25.0, newQuantity)

	newQuantity, err = AdjustStock(db, item.ID, StockAdjustment{
		Direction:       DirectionDecrease,
		TransactionType: TypeSale,
		Quantity:        3,
		SellingPrice:    floatPtr(12),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 22.0, newQuantity)

	var transactions []StockTransaction
	require.NoError(t, db.Where("item_id = ?", item.ID).Order("created_at ASC").Find(&transactions).Error)
	require.Len(t, transactions, 2)
	assert.Equal(t, 5.0, transactions[0].QuantityChange)
	assert.Equal(t, -3.0, transactions[1].QuantityChange)

	// Invariant: quantity = initial stock + signed ledger sum.
	balance, err := LedgerBalance(db, item.ID)
	require.NoError(t, err)
	var reloaded InventoryItem
	require.NoError(t, db.First(&reloaded, "id = ?", item.ID).Error)
	assert.Equal(t, 20+balance, reloaded.StockQuantity)
}

func TestAdjustStockInsufficientStock(t *testing.T) {
	db := openTestDB(t)
	item := createTestItem(t, db, 5)

	_, err := AdjustStock(db, item.ID, StockAdjustment{
		Direction:       DirectionDecrease,
		TransactionType: TypeSale,
		Quantity:        6,
		SellingPrice:    floatPtr(12),
	}, nil)
	require.ErrorIs(t, err, ErrInsufficientStock)

	// The rejected adjustment must leave no trace.
	var count int64
	db.Model(&StockTransaction{}).Where("item_id = ?", item.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	var reloaded InventoryItem
	require.NoError(t, db.First(&reloaded, "id = ?", item.ID).Error)
	assert.Equal(t, 5.0, reloaded.StockQuantity)
}

func TestAdjustStockItemNotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := AdjustStock(db, "no-such-item", StockAdjustment{
		Direction:       DirectionIncrease,
		TransactionType: TypePurchase,
		Quantity:        1,
	}, nil)
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestAdjustStockRejectsMismatchedType(t *testing.T) {
	db := openTestDB(t)
	item := createTestItem(t, db, 10)

	_, err := AdjustStock(db, item.ID, StockAdjustment{
		Direction:       DirectionIncrease,
		TransactionType: TypeSale,
		Quantity:        1,
	}, nil)
	require.ErrorIs(t, err, ErrInvalidTransactionType)

	_, err = AdjustStock(db, item.ID, StockAdjustment{
		Direction:       DirectionDecrease,
		TransactionType: TypePurchase,
		Quantity:        1,
	}, nil)
	require.ErrorIs(t, err, ErrInvalidTransactionType)
}

func TestAdjustStockRejectsNonPositiveQuantity(t *testing.T) {
	db := openTestDB(t)
	item := createTestItem(t, db, 10)

	_, err := AdjustStock(db, item.ID, StockAdjustment{
		Direction:       DirectionIncrease,
		TransactionType: TypePurchase,
		Quantity:        0,
	}, nil)
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestAdjustStockMaintainsAverageCost(t *testing.T) {
	db := openTestDB(t)
	item := createTestItem(t, db, 10)
	require.NoError(t, db.Model(&item).Updates(map[string]interface{}{
		"average_purchase_price": 2.0,
		"last_purchase_price":    2.0,
	}).Error)

	// 10 on hand at avg 2.00, buy 10 more at 4.00 -> avg 3.00
	_, err := AdjustStock(db, item.ID, StockAdjustment{
		Direction:       DirectionIncrease,
		TransactionType: TypePurchase,
		Quantity:        10,
		PurchasePrice:   floatPtr(4),
	}, nil)
	require.NoError(t, err)

	var reloaded InventoryItem
	require.NoError(t, db.First(&reloaded, "id = ?", item.ID).Error)
	require.NotNil(t, reloaded.AveragePurchasePrice)
	assert.Equal(t, 3.0, *reloaded.AveragePurchasePrice)
	require.NotNil(t, reloaded.LastPurchasePrice)
	assert.Equal(t, 4.0, *reloaded.LastPurchasePrice)
}

func TestAdjustStockFirstPurchaseSetsAverage(t *testing.T) {
	db := openTestDB(t)
	item := createTestItem(t, db, 0)

	_, err := AdjustStock(db, item.ID, StockAdjustment{
		Direction:       DirectionIncrease,
		TransactionType: TypePurchase,
		Quantity:        5,
		PurchasePrice:   floatPtr(7.5),
	}, nil)
	require.NoError(t, err)

	var reloaded InventoryItem
	require.NoError(t, db.First(&reloaded, "id = ?", item.ID).Error)
	require.NotNil(t, reloaded.AveragePurchasePrice)
	assert.Equal(t, 7.5, *reloaded.AveragePurchasePrice)
}

func TestAdjustStockPricelessTypesPersistNilPricing(t *testing.T) {
	db := openTestDB(t)
	item := createTestItem(t, db, 10)

	// Pricing is ignored for correction types even when supplied.
	_, err := AdjustStock(db, item.ID, StockAdjustment{
		Direction:       DirectionIncrease,
		TransactionType: TypeCorrectionAdd,
		Quantity:        2,
		PurchasePrice:   floatPtr(4),
		TotalPrice:      floatPtr(8),
	}, nil)
	require.NoError(t, err)

	var transaction StockTransaction
	require.NoError(t, db.Where("item_id = ?", item.ID).First(&transaction).Error)
	assert.Nil(t, transaction.PurchasePrice)
	assert.Nil(t, transaction.SellingPrice)
	assert.Nil(t, transaction.TotalPrice)
}

func TestAdjustStockDerivesTotalPrice(t *testing.T) {
	db := openTestDB(t)
	item := createTestItem(t, db, 10)

	_, err := AdjustStock(db, item.ID, StockAdjustment{
		Direction:       DirectionIncrease,
		TransactionType: TypePurchase,
		Quantity:        10,
		PurchasePrice:   floatPtr(2.5),
	}, nil)
	require.NoError(t, err)

	var transaction StockTransaction
	require.NoError(t, db.Where("item_id = ?", item.ID).First(&transaction).Error)
	require.NotNil(t, transaction.TotalPrice)
	assert.Equal(t, 25.0, *transaction.TotalPrice)
}

func TestAdjustStockBackdatedTransaction(t *testing.T) {
	db := openTestDB(t)
	item := createTestItem(t, db, 10)

	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	_, err := AdjustStock(db, item.ID, StockAdjustment{
		Direction:       DirectionIncrease,
		TransactionType: TypeOtherAddition,
		Quantity:        1,
		Date:            &date,
	}, nil)
	require.NoError(t, err)

	var transaction StockTransaction
	require.NoError(t, db.Where("item_id = ?", item.ID).First(&transaction).Error)
	assert.Equal(t, date, transaction.CreatedAt.UTC())
}

func TestAdjustStockRecordsActingUser(t *testing.T) {
	db := openTestDB(t)
	item := createTestItem(t, db, 10)

	userID := uint(7)
	_, err := AdjustStock(db, item.ID, StockAdjustment{
		Direction:       DirectionDecrease,
		TransactionType: TypeLoss,
		Quantity:        1,
		SellingPrice:    floatPtr(12),
	}, &userID)
	require.NoError(t, err)

	var transaction StockTransaction
	require.NoError(t, db.Where("item_id = ?", item.ID).First(&transaction).Error)
	require.NotNil(t, transaction.UserID)
	assert.Equal(t, uint(7), *transaction.UserID)
}

func TestLedgerSumMatchesQuantityAfterManyAdjustments(t *testing.T) {
	db := openTestDB(t)
	item := createTestItem(t, db, 100)

	adjustments := []StockAdjustment{
		{Direction: DirectionIncrease, TransactionType: TypePurchase, Quantity: 30, PurchasePrice: floatPtr(2)},
		{Direction: DirectionDecrease, TransactionType: TypeSale, Quantity: 12, SellingPrice: floatPtr(5)},
		{Direction: DirectionDecrease, TransactionType: TypeDamaged, Quantity: 3, SellingPrice: floatPtr(5)},
		{Direction: DirectionIncrease, TransactionType: TypeReturn, Quantity: 2, PurchasePrice: floatPtr(5)},
		{Direction: DirectionDecrease, TransactionType: TypeExpired, Quantity: 8, SellingPrice: floatPtr(5)},
		{Direction: DirectionIncrease, TransactionType: TypeOtherAddition, Quantity: 1},
	}
	for _, adjustment := range adjustments {
		_, err := AdjustStock(db, item.ID, adjustment, nil)
		require.NoError(t, err)
	}

	balance, err := LedgerBalance(db, item.ID)
	require.NoError(t, err)

	var reloaded InventoryItem
	require.NoError(t, db.First(&reloaded, "id = ?", item.ID).Error)
	assert.Equal(t, 100+balance, reloaded.StockQuantity)
	assert.Equal(t, 110.0, reloaded.StockQuantity)
}
