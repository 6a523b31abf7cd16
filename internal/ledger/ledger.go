// Package ledger holds the consumption-accounting rules: how much of a
// product has been consumed, how much remains, and whether a proposed
// consumption is admissible. All functions are pure and operate on explicit
// snapshots; callers are expected to load the product's current non-deleted
// consumption set fresh before each decision.
package ledger

import (
	"errors"

	"github.com/rogerio-castellano/pantry-tracker/internal/models"
)

// ErrZeroProductQuantity is returned by the percentage computations when the
// product was declared with quantity zero, which leaves the ratio undefined.
var ErrZeroProductQuantity = errors.New("product quantity is zero, percentage is undefined")

// QuantityConsumed sums the quantities of all non-deleted consumptions.
// An empty set yields 0.
func QuantityConsumed(consumptions []models.Consumption) float64 {
	var total float64
	for _, c := range consumptions {
		if c.Deleted() {
			continue
		}
		total += c.Quantity
	}
	return total
}

// Remaining returns the quantity of the product still available for
// consumption.
func Remaining(product models.Product, consumptions []models.Consumption) float64 {
	return product.Quantity - QuantityConsumed(consumptions)
}

// PercentageConsumed returns the consumed share of the product on a 0-100
// scale. It fails with ErrZeroProductQuantity for zero-quantity products
// instead of dividing by zero.
func PercentageConsumed(product models.Product, consumptions []models.Consumption) (float64, error) {
	if product.Quantity == 0 {
		return 0, ErrZeroProductQuantity
	}
	return QuantityConsumed(consumptions) * 100 / product.Quantity, nil
}

// PercentageWasted returns 1 - PercentageConsumed. The subtrahend is on a
// 0-100 scale while the 1 assumes a 0-1 scale; the mismatch is kept verbatim
// from the system this service replaces. See DESIGN.md.
func PercentageWasted(product models.Product, consumptions []models.Consumption) (float64, error) {
	consumed, err := PercentageConsumed(product, consumptions)
	if err != nil {
		return 0, err
	}
	return 1 - consumed, nil
}
