package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	api "github.com/rogerio-castellano/pantry-tracker/internal/http"
	handler "github.com/rogerio-castellano/pantry-tracker/internal/http/handlers"
)

func TestGetProductLedgerHandler_NoConsumptions(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	p := mustCreateProduct(r, validProductRequest("Milk", 10))

	var ledger handler.LedgerResponse
	if w := getJSON(r, fmt.Sprintf("/products/%d/ledger", p.Id), &ledger); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	if ledger.QuantityConsumed != 0 {
		t.Errorf("expected 0 consumed, got %v", ledger.QuantityConsumed)
	}
	if ledger.PercentageConsumed != 0 {
		t.Errorf("expected 0%% consumed, got %v", ledger.PercentageConsumed)
	}
	if ledger.PercentageWasted != 1 {
		t.Errorf("expected wasted 1 with nothing consumed, got %v", ledger.PercentageWasted)
	}
}

func TestGetProductLedgerHandler_PartialConsumption(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	p := mustCreateProduct(r, validProductRequest("Milk", 10))
	postConsumption(r, p.Id, quantityBody(2))

	var ledger handler.LedgerResponse
	if w := getJSON(r, fmt.Sprintf("/products/%d/ledger", p.Id), &ledger); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	if ledger.QuantityConsumed != 2 {
		t.Errorf("expected 2 consumed, got %v", ledger.QuantityConsumed)
	}
	if ledger.PercentageConsumed != 20 {
		t.Errorf("expected 20%% consumed, got %v", ledger.PercentageConsumed)
	}
	if ledger.PercentageWasted != -19 {
		t.Errorf("expected wasted -19 (1 - 20), got %v", ledger.PercentageWasted)
	}
}

func TestGetProductLedgerHandler_FullConsumption(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	p := mustCreateProduct(r, validProductRequest("Milk", 10))
	postConsumption(r, p.Id, quantityBody(10))

	var ledger handler.LedgerResponse
	if w := getJSON(r, fmt.Sprintf("/products/%d/ledger", p.Id), &ledger); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	if ledger.QuantityConsumed != 10 {
		t.Errorf("expected 10 consumed, got %v", ledger.QuantityConsumed)
	}
	if ledger.PercentageConsumed != 100 {
		t.Errorf("expected 100%% consumed, got %v", ledger.PercentageConsumed)
	}
}

func TestGetProductLedgerHandler_ZeroQuantityProduct(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	p := mustCreateProduct(r, validProductRequest("Empty Jar", 0))

	w := getJSON(r, fmt.Sprintf("/products/%d/ledger", p.Id), nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for zero-quantity product, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "quantity zero") {
		t.Errorf("expected zero-quantity explanation, got %s", w.Body.String())
	}
}

func TestGetProductLedgerHandler_UnknownProduct(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	if w := getJSON(r, "/products/4242/ledger", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestGetProductLedgerHandler_ReflectsSoftDelete(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	p := mustCreateProduct(r, validProductRequest("Milk", 10))

	w := postConsumption(r, p.Id, quantityBody(4))
	var c handler.ConsumptionResponse
	if err := json.NewDecoder(w.Body).Decode(&c); err != nil {
		t.Fatalf("error decoding consumption: %v", err)
	}
	postConsumption(r, p.Id, quantityBody(3))

	deleteConsumption(r, p.Id, c.ID)

	var ledger handler.LedgerResponse
	if w := getJSON(r, fmt.Sprintf("/products/%d/ledger", p.Id), &ledger); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ledger.QuantityConsumed != 3 {
		t.Errorf("expected only the surviving consumption counted, got %v", ledger.QuantityConsumed)
	}
	if ledger.PercentageConsumed != 30 {
		t.Errorf("expected 30%% consumed, got %v", ledger.PercentageConsumed)
	}
}
