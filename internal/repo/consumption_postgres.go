package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rogerio-castellano/pantry-tracker/internal/models"
)

type PostgresConsumptionRepository struct {
	db *sql.DB
}

func NewPostgresConsumptionRepository(db *sql.DB) *PostgresConsumptionRepository {
	return &PostgresConsumptionRepository{db: db}
}

// Create inserts a new consumption for the product.
func (r *PostgresConsumptionRepository) Create(c models.Consumption) (models.Consumption, error) {
	query := `INSERT INTO consumptions (product_id, quantity, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, c.ProductID, c.Quantity, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
	return c, err
}

// GetByProductID returns the product's non-deleted consumptions, oldest first.
func (r *PostgresConsumptionRepository) GetByProductID(productID int) ([]models.Consumption, error) {
	query := `SELECT id, product_id, quantity, created_at, updated_at FROM consumptions WHERE product_id = $1 AND deleted_at IS NULL ORDER BY id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var consumptions []models.Consumption
	for rows.Next() {
		var c models.Consumption
		if err := rows.Scan(&c.ID, &c.ProductID, &c.Quantity, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		consumptions = append(consumptions, c)
	}
	return consumptions, rows.Err()
}

// GetByID resolves a consumption scoped to the product. The product_id
// predicate is what turns cross-product addressing into not-found.
func (r *PostgresConsumptionRepository) GetByID(productID, consumptionID int) (models.Consumption, error) {
	query := `SELECT id, product_id, quantity, created_at, updated_at FROM consumptions WHERE id = $1 AND product_id = $2 AND deleted_at IS NULL`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var c models.Consumption
	err := r.db.QueryRowContext(ctx, query, consumptionID, productID).
		Scan(&c.ID, &c.ProductID, &c.Quantity, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Consumption{}, ErrConsumptionNotFound
	}
	return c, err
}

// UpdateQuantity replaces the stored quantity of the scoped consumption.
func (r *PostgresConsumptionRepository) UpdateQuantity(productID, consumptionID int, quantity float64) (models.Consumption, error) {
	query := `UPDATE consumptions SET quantity = $1, updated_at = $2 WHERE id = $3 AND product_id = $4 AND deleted_at IS NULL RETURNING id, product_id, quantity, created_at, updated_at`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var c models.Consumption
	err := r.db.QueryRowContext(ctx, query, quantity, time.Now().UTC().Format(time.RFC3339), consumptionID, productID).
		Scan(&c.ID, &c.ProductID, &c.Quantity, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Consumption{}, ErrConsumptionNotFound
	}
	return c, err
}

// SoftDelete stamps deleted_at; the row stays but drops out of every
// aggregate and read.
func (r *PostgresConsumptionRepository) SoftDelete(productID, consumptionID int) error {
	query := `UPDATE consumptions SET deleted_at = $1 WHERE id = $2 AND product_id = $3 AND deleted_at IS NULL`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, time.Now().UTC(), consumptionID, productID)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrConsumptionNotFound
	}
	return nil
}
