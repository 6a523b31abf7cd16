package repo

import (
	"time"
)

type InMemoryMetricsRepository struct {
	productRepo     ProductRepository
	consumptionRepo ConsumptionRepository
}

func NewInMemoryMetricsRepository() *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{}
}

func (i *InMemoryMetricsRepository) SetRepositories(
	productRepo ProductRepository,
	consumptionRepo ConsumptionRepository,
) {
	i.productRepo = productRepo
	i.consumptionRepo = consumptionRepo
}

// GetDashboardMetrics implements MetricsRepository.
func (i *InMemoryMetricsRepository) GetDashboardMetrics() (Metrics, error) {
	m := Metrics{}

	products, err := i.productRepo.GetAll()
	if err != nil {
		return m, err
	}
	m.TotalProducts = len(products)

	now := time.Now()
	for _, product := range products {
		if !product.Valid(now) {
			m.ExpiredCount++
		}

		consumptions, err := i.consumptionRepo.GetByProductID(product.ID)
		if err != nil {
			return m, err
		}
		m.TotalConsumptions += len(consumptions)

		var consumed float64
		for _, c := range consumptions {
			consumed += c.Quantity
		}
		if consumed > m.MostConsumedProduct.QuantityConsumed {
			m.MostConsumedProduct.Name = product.Name
			m.MostConsumedProduct.QuantityConsumed = consumed
		}
	}

	return m, nil
}
