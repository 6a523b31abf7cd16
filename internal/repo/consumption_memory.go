package repo

import (
	"time"

	"github.com/rogerio-castellano/pantry-tracker/internal/models"
)

// InMemoryConsumptionRepository is an in-memory implementation of
// ConsumptionRepository. Soft-deleted records are kept in the slice with
// DeletedAt set, like the nullable column in Postgres.
type InMemoryConsumptionRepository struct {
	consumptions []models.Consumption
	nextID       int
}

func NewInMemoryConsumptionRepository() *InMemoryConsumptionRepository {
	return &InMemoryConsumptionRepository{
		consumptions: []models.Consumption{},
		nextID:       1,
	}
}

func (r *InMemoryConsumptionRepository) Create(c models.Consumption) (models.Consumption, error) {
	c.ID = r.nextID
	r.nextID++
	r.consumptions = append(r.consumptions, c)
	return c, nil
}

func (r *InMemoryConsumptionRepository) GetByProductID(productID int) ([]models.Consumption, error) {
	var result []models.Consumption
	for _, c := range r.consumptions {
		if c.ProductID == productID && !c.Deleted() {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *InMemoryConsumptionRepository) GetByID(productID, consumptionID int) (models.Consumption, error) {
	for _, c := range r.consumptions {
		if c.ID == consumptionID && c.ProductID == productID && !c.Deleted() {
			return c, nil
		}
	}
	return models.Consumption{}, ErrConsumptionNotFound
}

func (r *InMemoryConsumptionRepository) UpdateQuantity(productID, consumptionID int, quantity float64) (models.Consumption, error) {
	for i, c := range r.consumptions {
		if c.ID == consumptionID && c.ProductID == productID && !c.Deleted() {
			r.consumptions[i].Quantity = quantity
			r.consumptions[i].UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			return r.consumptions[i], nil
		}
	}
	return models.Consumption{}, ErrConsumptionNotFound
}

func (r *InMemoryConsumptionRepository) SoftDelete(productID, consumptionID int) error {
	for i, c := range r.consumptions {
		if c.ID == consumptionID && c.ProductID == productID && !c.Deleted() {
			r.consumptions[i].DeletedAt = time.Now().UTC().Format(time.RFC3339)
			return nil
		}
	}
	return ErrConsumptionNotFound
}

// deleteByProductID hard-removes all consumptions of a product, mirroring the
// cascading foreign key.
func (r *InMemoryConsumptionRepository) deleteByProductID(productID int) {
	kept := r.consumptions[:0]
	for _, c := range r.consumptions {
		if c.ProductID != productID {
			kept = append(kept, c)
		}
	}
	r.consumptions = kept
}

// AddConsumption seeds a record directly, bypassing validation. Intended for tests.
func (r *InMemoryConsumptionRepository) AddConsumption(c models.Consumption) models.Consumption {
	c.ID = r.nextID
	r.nextID++
	r.consumptions = append(r.consumptions, c)
	return c
}

// Clear removes all consumptions. Intended for tests.
func (r *InMemoryConsumptionRepository) Clear() {
	r.consumptions = []models.Consumption{}
	r.nextID = 1
}
