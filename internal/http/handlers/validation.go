package handlers

import (
	"strings"
	"time"

	"github.com/rogerio-castellano/pantry-tracker/internal/models"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateProduct(p ProductRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ProductValidationError{Field: "name", Description: "The name field is required."})
	}
	if p.Price < 0 {
		errs = append(errs, ProductValidationError{Field: "price", Description: "The price cannot be negative."})
	}
	if p.Quantity < 0 {
		errs = append(errs, ProductValidationError{Field: "quantity", Description: "The quantity cannot be negative."})
	}

	if p.ExpirationDate == "" {
		errs = append(errs, ProductValidationError{Field: "expiration_date", Description: "The expiration date field is required."})
	} else if exp, err := time.Parse(models.ExpirationDateLayout, p.ExpirationDate); err != nil {
		errs = append(errs, ProductValidationError{Field: "expiration_date", Description: "The expiration date must be a date in YYYY-MM-DD format."})
	} else if !exp.After(time.Now()) {
		errs = append(errs, ProductValidationError{Field: "expiration_date", Description: "The expiration date must be in the future."})
	}

	if p.Type != "" && !models.ValidProductType(models.ProductType(p.Type)) {
		errs = append(errs, ProductValidationError{Field: "type", Description: "The type must be one of: unit, kilogram, liter."})
	}
	return errs
}
