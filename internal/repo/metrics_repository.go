package repo

type MostConsumedProduct struct {
	Name             string  `json:"name"`
	QuantityConsumed float64 `json:"quantity_consumed"`
}

type Metrics struct {
	TotalProducts       int                 `json:"total_products"`
	TotalConsumptions   int                 `json:"total_consumptions"`
	ExpiredCount        int                 `json:"expired_count"`
	MostConsumedProduct MostConsumedProduct `json:"most_consumed_product"`
}

type MetricsRepository interface {
	GetDashboardMetrics() (Metrics, error)
}
