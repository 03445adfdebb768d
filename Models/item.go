package Models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Adjustment directions.
const (
	DirectionIncrease = "increase"
	DirectionDecrease = "decrease"
)

// Transaction types are persisted strings. Extend by adding members only;
// renaming would orphan existing ledger rows.
const (
	TypePurchase         = "purchase"
	TypeReturn           = "return"
	TypeCorrectionAdd    = "inventory-correction-add"
	TypeOtherAddition    = "other-addition"
	TypeSale             = "sale"
	TypeDamaged          = "damaged"
	TypeLoss             = "loss"
	TypeExpired          = "expired"
	TypeCorrectionRemove = "inventory-correction-remove"
	TypeOtherRemoval     = "other-removal"
)

var increaseTypes = []string{TypePurchase, TypeReturn, TypeCorrectionAdd, TypeOtherAddition}

var decreaseTypes = []string{TypeSale, TypeDamaged, TypeLoss, TypeExpired, TypeCorrectionRemove, TypeOtherRemoval}

var pricedTypes = []string{TypePurchase, TypeReturn, TypeSale, TypeDamaged, TypeLoss, TypeExpired}

// TypeValidForDirection reports whether a transaction type belongs to the
// subset allowed for the given adjustment direction.
func TypeValidForDirection(direction, transactionType string) bool {
	switch direction {
	case DirectionIncrease:
		return slices.Contains(increaseTypes, transactionType)
	case DirectionDecrease:
		return slices.Contains(decreaseTypes, transactionType)
	default:
		return false
	}
}

// TypeRequiresPrice reports whether pricing fields are meaningful for the
// type. Correction and "other" types persist nil pricing.
func TypeRequiresPrice(transactionType string) bool {
	return slices.Contains(pricedTypes, transactionType)
}

type InventoryItem struct {
	ID            string    `json:"id" gorm:"primaryKey;size:36"`
	Name          string    `json:"name" gorm:"not null;uniqueIndex"`
	CategoryID    *string   `json:"category_id" gorm:"size:36;index"`
	Category      *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Unit          string    `json:"unit" gorm:"not null"`
	StockQuantity float64   `json:"stock_quantity" gorm:"not null;default:0"`
	SellingPrice  float64   `json:"selling_price" gorm:"not null;default:0"`
	ReorderPoint  *float64  `json:"reorder_point"`
	Description   string    `json:"description" gorm:"type:text"`

	// Maintained on every purchase-type write, never recomputed on read.
	LastPurchasePrice    *float64 `json:"last_purchase_price"`
	AveragePurchasePrice *float64 `json:"average_purchase_price"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// StockTransaction is an append-only ledger row. The signed sum of
// QuantityChange for an item plus its creation stock equals the item's
// current StockQuantity.
type StockTransaction struct {
	ID              string   `json:"id" gorm:"primaryKey;size:36"`
	ItemID          string   `json:"item_id" gorm:"size:36;not null;index"`
	TransactionType string   `json:"transaction_type" gorm:"size:40;not null"`
	QuantityChange  float64  `json:"quantity_change" gorm:"not null"`
	PurchasePrice   *float64 `json:"purchase_price"`
	SellingPrice    *float64 `json:"selling_price"`
	TotalPrice      *float64 `json:"total_price"`
	ReferenceNumber *string  `json:"reference_number"`
	Reason          *string  `json:"reason" gorm:"type:text"`

	// Nullable on purpose: nil means the row was written by the system.
	UserID *uint `json:"user_id" gorm:"index"`

	// May be backdated by the caller.
	CreatedAt time.Time `json:"created_at"`
}

func (t *StockTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
