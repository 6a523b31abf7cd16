package repo

import (
	"time"

	"github.com/rogerio-castellano/pantry-tracker/internal/models"
)

// ProductRepository defines the interface for product data operations.
// Deleting a product cascades deletion of its consumptions.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll() ([]models.Product, error)
	GetValid(now time.Time) ([]models.Product, error)
	GetByID(id int) (models.Product, error)
	GetByName(name string) (models.Product, error)
	Update(product models.Product) (models.Product, error)
	Delete(id int) error
	Filter(pf ProductFilter) ([]models.Product, int, error)
}

type ProductFilter struct {
	Name     string
	Type     string
	MinPrice *float64
	MaxPrice *float64
	MinQty   *float64
	MaxQty   *float64
	Offset   *int
	Limit    *int
}
