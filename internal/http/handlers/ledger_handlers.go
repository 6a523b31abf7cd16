package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/rogerio-castellano/pantry-tracker/internal/ledger"
)

func ledgerCacheKey(productID int) string {
	return fmt.Sprintf("ledger:product:%d", productID)
}

func invalidateLedgerCache(productID int) {
	if redisSvc == nil {
		return
	}
	if err := redisSvc.Invalidate(ledgerCacheKey(productID)); err != nil {
		log.Printf("failed to invalidate ledger cache for product %d: %v", productID, err)
	}
}

// GetProductLedgerHandler godoc
// @Summary Aggregate consumption figures for a product
// @Description Returns consumed quantity and the consumed/wasted percentages; cached briefly, invalidated on consumption writes
// @Tags ledger
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} LedgerResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Product not found"
// @Failure 422 {array} ledger.ValidationError
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/ledger [get]
func GetProductLedgerHandler(w http.ResponseWriter, r *http.Request) {
	product, ok := resolveProduct(w, r)
	if !ok {
		return
	}

	if redisSvc != nil {
		if cached, hit := redisSvc.GetCached(ledgerCacheKey(product.ID)); hit {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	consumptions, err := consumptionRepo.GetByProductID(product.ID)
	if err != nil {
		http.Error(w, "could not fetch consumptions", http.StatusInternalServerError)
		return
	}

	consumed, err := ledger.PercentageConsumed(product, consumptions)
	if errors.Is(err, ledger.ErrZeroProductQuantity) {
		writeQuantityError(w, "The product was declared with quantity zero, percentages are undefined.")
		return
	}
	wasted, err := ledger.PercentageWasted(product, consumptions)
	if err != nil {
		http.Error(w, "could not compute ledger", http.StatusInternalServerError)
		return
	}

	resp := LedgerResponse{
		QuantityConsumed:   ledger.QuantityConsumed(consumptions),
		PercentageConsumed: consumed,
		PercentageWasted:   wasted,
	}

	if redisSvc != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := redisSvc.SetCached(ledgerCacheKey(product.ID), string(data), ledgerCacheTTL); err != nil {
				log.Printf("failed to cache ledger for product %d: %v", product.ID, err)
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
