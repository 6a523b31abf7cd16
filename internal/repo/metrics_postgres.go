package repo

import (
	"context"
	"database/sql"
	"time"
)

type PostgresMetricsRepository struct {
	db *sql.DB
}

func NewPostgresMetricsRepository(db *sql.DB) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: db}
}

func (r *PostgresMetricsRepository) GetDashboardMetrics() (Metrics, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var m Metrics

	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&m.TotalProducts)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM consumptions WHERE deleted_at IS NULL`).Scan(&m.TotalConsumptions)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE expiration_date <= now()`).Scan(&m.ExpiredCount)

	_ = r.db.QueryRowContext(ctx, `
		SELECT p.name, SUM(c.quantity) AS consumed
		FROM consumptions c
		JOIN products p ON c.product_id = p.id
		WHERE c.deleted_at IS NULL
		GROUP BY p.name
		ORDER BY consumed DESC
		LIMIT 1
	`).Scan(&m.MostConsumedProduct.Name, &m.MostConsumedProduct.QuantityConsumed)

	return m, nil
}
