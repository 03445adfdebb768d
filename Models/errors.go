package Models

import "errors"

// Sentinel errors returned by the ledger and settings layer. Controllers map
// these onto HTTP statuses; anything else is treated as a storage failure.
var (
	ErrItemNotFound           = errors.New("inventory item not found")
	ErrCategoryNotFound       = errors.New("category not found")
	ErrInsufficientStock      = errors.New("insufficient stock for this adjustment")
	ErrDuplicateCategory      = errors.New("a category with this name already exists")
	ErrDuplicateItemName      = errors.New("an item with this name already exists")
	ErrInvalidDirection       = errors.New("direction must be increase or decrease")
	ErrInvalidTransactionType = errors.New("transaction type is not valid for this direction")
	ErrInvalidQuantity        = errors.New("quantity must be greater than zero")
)
