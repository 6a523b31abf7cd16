package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/pantry-tracker/internal/http/alert"
	"github.com/rogerio-castellano/pantry-tracker/internal/ledger"
	"github.com/rogerio-castellano/pantry-tracker/internal/models"
	"github.com/rogerio-castellano/pantry-tracker/internal/repo"
)

func toConsumptionResponse(c models.Consumption) ConsumptionResponse {
	return ConsumptionResponse{
		ID:        c.ID,
		ProductID: c.ProductID,
		Quantity:  c.Quantity,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// readConsumptionRequest decodes the body and enforces the presence and
// numeric checks that are the boundary's responsibility, before the admission
// decision ever runs. Returns false after writing the error response.
func readConsumptionRequest(w http.ResponseWriter, r *http.Request) (float64, bool) {
	var req ConsumptionRequest
	if err := readJSON(w, r, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "quantity" {
			writeQuantityError(w, "The quantity field must be a number.")
			return 0, false
		}
		http.Error(w, "invalid input", http.StatusBadRequest)
		return 0, false
	}

	if req.Quantity == nil {
		writeQuantityError(w, "The quantity field is required.")
		return 0, false
	}
	if *req.Quantity < 0 {
		writeQuantityError(w, "The quantity cannot be negative.")
		return 0, false
	}
	return *req.Quantity, true
}

func writeQuantityError(w http.ResponseWriter, description string) {
	_ = writeJSON(w, http.StatusUnprocessableEntity, []ledger.ValidationError{
		{Field: "quantity", Description: description},
	})
}

func resolveProduct(w http.ResponseWriter, r *http.Request) (models.Product, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return models.Product{}, false
	}

	product, err := productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return models.Product{}, false
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return models.Product{}, false
	}
	return product, true
}

// GetConsumptionsHandler godoc
// @Summary List a product's consumptions
// @Tags consumptions
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {array} ConsumptionResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Product not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/consumptions [get]
func GetConsumptionsHandler(w http.ResponseWriter, r *http.Request) {
	product, ok := resolveProduct(w, r)
	if !ok {
		return
	}

	consumptions, err := consumptionRepo.GetByProductID(product.ID)
	if err != nil {
		http.Error(w, "could not fetch consumptions", http.StatusInternalServerError)
		return
	}

	response := make([]ConsumptionResponse, len(consumptions))
	for i, c := range consumptions {
		response[i] = toConsumptionResponse(c)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetConsumptionByIDHandler godoc
// @Summary Get one consumption of a product
// @Description The consumption is resolved within the addressed product; an ID belonging to another product yields 404
// @Tags consumptions
// @Produce json
// @Param id path int true "Product ID"
// @Param consumptionId path int true "Consumption ID"
// @Success 200 {object} ConsumptionResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/consumptions/{consumptionId} [get]
func GetConsumptionByIDHandler(w http.ResponseWriter, r *http.Request) {
	product, ok := resolveProduct(w, r)
	if !ok {
		return
	}

	consumptionID, err := strconv.Atoi(chi.URLParam(r, "consumptionId"))
	if err != nil {
		http.Error(w, "invalid consumption ID", http.StatusBadRequest)
		return
	}

	consumption, err := consumptionRepo.GetByID(product.ID, consumptionID)
	if err != nil {
		if errors.Is(err, repo.ErrConsumptionNotFound) {
			http.Error(w, "consumption not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch consumption", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toConsumptionResponse(consumption))
}

// CreateConsumptionHandler godoc
// @Summary Record a consumption against a product
// @Description Rejected when the proposed quantity exceeds the product's remaining capacity
// @Tags consumptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param consumption body ConsumptionRequest true "Quantity consumed"
// @Success 201 {object} ConsumptionResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Product not found"
// @Failure 422 {array} ledger.ValidationError
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/consumptions [post]
func CreateConsumptionHandler(w http.ResponseWriter, r *http.Request) {
	quantity, ok := readConsumptionRequest(w, r)
	if !ok {
		return
	}

	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	// The admission check reads the consumption set and then writes; hold the
	// product lock across both so concurrent requests cannot over-commit.
	productLocks.Lock(id)
	defer productLocks.Unlock(id)

	product, err := productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	consumptions, err := consumptionRepo.GetByProductID(product.ID)
	if err != nil {
		http.Error(w, "could not fetch consumptions", http.StatusInternalServerError)
		return
	}

	if verr := ledger.ValidateConsumption(product, consumptions, quantity, nil); verr != nil {
		_ = writeJSON(w, http.StatusUnprocessableEntity, []ledger.ValidationError{*verr})
		return
	}

	created, err := consumptionRepo.Create(models.Consumption{
		ProductID: product.ID,
		Quantity:  quantity,
		CreatedAt: time.Now().Format(time.RFC3339),
		UpdatedAt: time.Now().Format(time.RFC3339),
	})
	if err != nil {
		http.Error(w, "could not create consumption", http.StatusInternalServerError)
		return
	}

	invalidateLedgerCache(product.ID)
	notifyIfExhausted(product, append(consumptions, created))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toConsumptionResponse(created))
}

// UpdateConsumptionHandler godoc
// @Summary Replace the quantity of an existing consumption
// @Description The record's current quantity is excluded from the consumed baseline before the admission check
// @Tags consumptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param consumptionId path int true "Consumption ID"
// @Param consumption body ConsumptionRequest true "New quantity"
// @Success 200 {object} ConsumptionResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Failure 422 {array} ledger.ValidationError
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/consumptions/{consumptionId} [put]
func UpdateConsumptionHandler(w http.ResponseWriter, r *http.Request) {
	quantity, ok := readConsumptionRequest(w, r)
	if !ok {
		return
	}

	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	consumptionID, err := strconv.Atoi(chi.URLParam(r, "consumptionId"))
	if err != nil {
		http.Error(w, "invalid consumption ID", http.StatusBadRequest)
		return
	}

	productLocks.Lock(id)
	defer productLocks.Unlock(id)

	product, err := productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	existing, err := consumptionRepo.GetByID(product.ID, consumptionID)
	if err != nil {
		if errors.Is(err, repo.ErrConsumptionNotFound) {
			http.Error(w, "consumption not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch consumption", http.StatusInternalServerError)
		return
	}

	consumptions, err := consumptionRepo.GetByProductID(product.ID)
	if err != nil {
		http.Error(w, "could not fetch consumptions", http.StatusInternalServerError)
		return
	}

	if verr := ledger.ValidateConsumption(product, consumptions, quantity, &existing); verr != nil {
		_ = writeJSON(w, http.StatusUnprocessableEntity, []ledger.ValidationError{*verr})
		return
	}

	updated, err := consumptionRepo.UpdateQuantity(product.ID, consumptionID, quantity)
	if err != nil {
		if errors.Is(err, repo.ErrConsumptionNotFound) {
			http.Error(w, "consumption not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update consumption", http.StatusInternalServerError)
		return
	}

	invalidateLedgerCache(product.ID)
	refreshed, err := consumptionRepo.GetByProductID(product.ID)
	if err == nil {
		notifyIfExhausted(product, refreshed)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toConsumptionResponse(updated))
}

// DeleteConsumptionHandler godoc
// @Summary Soft-delete a consumption
// @Description The record is excluded from all ledger figures but kept in storage
// @Tags consumptions
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param consumptionId path int true "Consumption ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/consumptions/{consumptionId} [delete]
func DeleteConsumptionHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	consumptionID, err := strconv.Atoi(chi.URLParam(r, "consumptionId"))
	if err != nil {
		http.Error(w, "invalid consumption ID", http.StatusBadRequest)
		return
	}

	productLocks.Lock(id)
	defer productLocks.Unlock(id)

	if _, err := productRepo.GetByID(id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	if err := consumptionRepo.SoftDelete(id, consumptionID); err != nil {
		if errors.Is(err, repo.ErrConsumptionNotFound) {
			http.Error(w, "consumption not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete consumption", http.StatusInternalServerError)
		return
	}

	invalidateLedgerCache(id)
	w.WriteHeader(http.StatusNoContent)
}

func notifyIfExhausted(product models.Product, consumptions []models.Consumption) {
	if product.Quantity > 0 && ledger.Remaining(product, consumptions) == 0 {
		alert.ProductExhausted(product)
	}
}
