package models

// Consumption is a single partial consumption event recorded against a product.
// A consumption belongs to exactly one product for its entire lifetime.
// DeletedAt marks soft deletion; soft-deleted rows never count toward the
// product's consumed quantity.
type Consumption struct {
	ID        int     `json:"id"`
	ProductID int     `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	DeletedAt string  `json:"deleted_at,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

// Deleted reports whether the consumption has been soft-deleted.
func (c Consumption) Deleted() bool {
	return c.DeletedAt != ""
}
