package repo

import (
	"github.com/rogerio-castellano/pantry-tracker/internal/models"
)

// ConsumptionRepository defines data operations for consumption records.
// Every lookup is scoped by product: a consumption addressed under a product
// it does not belong to yields ErrConsumptionNotFound. Soft-deleted rows are
// excluded from reads.
type ConsumptionRepository interface {
	Create(c models.Consumption) (models.Consumption, error)
	GetByProductID(productID int) ([]models.Consumption, error)
	GetByID(productID, consumptionID int) (models.Consumption, error)
	UpdateQuantity(productID, consumptionID int, quantity float64) (models.Consumption, error)
	SoftDelete(productID, consumptionID int) error
}
