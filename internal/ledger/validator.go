package ledger

import (
	"github.com/rogerio-castellano/pantry-tracker/internal/models"
)

// QuantityExceededMessage is surfaced when a proposed consumption would push
// the cumulative consumed quantity above the product's declared quantity.
const QuantityExceededMessage = "The quantity is greater than the product quantity available."

// ValidationError is a field-attributed rejection produced by the validator.
type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func (e *ValidationError) Error() string {
	return e.Description
}

// ValidateConsumption decides whether a proposed consumption quantity is
// admissible against the product's remaining capacity. It must run before the
// repository is asked to persist anything; the invariant it guards is
//
//	sum(non-deleted consumption quantities) <= product.Quantity
//
// For an update, existing is the record being replaced and its current stored
// quantity is excluded from the consumed baseline before the check; a create
// passes existing == nil. Exact exhaustion (proposed == remaining) is
// accepted. The caller is responsible for presence and numeric checks on the
// input; this function assumes proposed is a valid number.
//
// Returns nil on acceptance, or a *ValidationError attributed to the quantity
// field on rejection. It never mutates its inputs.
func ValidateConsumption(product models.Product, consumptions []models.Consumption, proposed float64, existing *models.Consumption) *ValidationError {
	alreadyConsumed := QuantityConsumed(consumptions)
	if existing != nil && !existing.Deleted() {
		alreadyConsumed -= existing.Quantity
	}

	if proposed > product.Quantity-alreadyConsumed {
		return &ValidationError{
			Field:       "quantity",
			Description: QuantityExceededMessage,
		}
	}
	return nil
}
