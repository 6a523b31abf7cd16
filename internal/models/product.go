package models

import "time"

// ProductType enumerates the unit kinds a product can be measured in.
type ProductType string

const (
	TypeUnit     ProductType = "unit"
	TypeKilogram ProductType = "kilogram"
	TypeLiter    ProductType = "liter"
)

// ValidProductType reports whether t is one of the declared variants.
func ValidProductType(t ProductType) bool {
	switch t {
	case TypeUnit, TypeKilogram, TypeLiter:
		return true
	}
	return false
}

// Product represents a perishable product entity in the pantry.
// Quantity is the total declared stock at creation time and is immutable
// afterwards; there is no replenishment operation.
type Product struct {
	ID             int         `json:"id"`
	Name           string      `json:"name"`
	Price          float64     `json:"price"`
	Quantity       float64     `json:"quantity"`
	ExpirationDate string      `json:"expiration_date"`
	Type           ProductType `json:"type"`
	CreatedAt      string      `json:"created_at,omitempty"`
	UpdatedAt      string      `json:"updated_at,omitempty"`
}

// ExpirationDateLayout is the wire format for expiration dates.
const ExpirationDateLayout = "2006-01-02"

// Valid reports whether the product's expiration date is strictly after now.
func (p Product) Valid(now time.Time) bool {
	exp, err := time.Parse(ExpirationDateLayout, p.ExpirationDate)
	if err != nil {
		return false
	}
	return exp.After(now)
}
