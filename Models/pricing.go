package Models

import "math"

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ReconcilePricing fills in whichever of unit/total price the user left
// blank. A nil pointer means "not provided by the user"; a non-nil value is
// user-entered and is never overwritten by the derived counterpart.
//
// Returns the resolved (unitPrice, totalPrice) pair. Quantity must already be
// validated as > 0 before calling.
func ReconcilePricing(quantity float64, unitPrice, totalPrice *float64) (*float64, *float64) {
	if unitPrice != nil && totalPrice == nil {
		total := round2(quantity * *unitPrice)
		return unitPrice, &total
	}
	if totalPrice != nil && unitPrice == nil {
		unit := round2(*totalPrice / quantity)
		return &unit, totalPrice
	}
	return unitPrice, totalPrice
}
