package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"

	api "github.com/rogerio-castellano/pantry-tracker/internal/http"
	handler "github.com/rogerio-castellano/pantry-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/pantry-tracker/internal/ledger"
	"github.com/rogerio-castellano/pantry-tracker/internal/models"
)

func decodeValidationErrors(t *testing.T, body *json.Decoder) []ledger.ValidationError {
	t.Helper()
	var errs []ledger.ValidationError
	if err := body.Decode(&errs); err != nil {
		t.Fatalf("error decoding validation errors: %v", err)
	}
	return errs
}

func TestCreateConsumption_FullQuantityAccepted(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	p := mustCreateProduct(r, validProductRequest("Milk", 10))

	w := postConsumption(r, p.Id, quantityBody(10))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.ConsumptionResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Quantity != 10 {
		t.Errorf("expected quantity 10, got %v", resp.Quantity)
	}
	if resp.ProductID != p.Id {
		t.Errorf("expected product_id %d, got %d", p.Id, resp.ProductID)
	}

	var ledgerResp handler.LedgerResponse
	if w := getJSON(r, fmt.Sprintf("/products/%d/ledger", p.Id), &ledgerResp); w.Code != http.StatusOK {
		t.Fatalf("expected 200 from ledger, got %d", w.Code)
	}
	if ledgerResp.QuantityConsumed != 10 {
		t.Errorf("expected quantity_consumed 10, got %v", ledgerResp.QuantityConsumed)
	}
	if ledgerResp.PercentageConsumed != 100 {
		t.Errorf("expected percentage_consumed 100, got %v", ledgerResp.PercentageConsumed)
	}
}

func TestCreateConsumption_ExceedingRemainingRejected(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	p := mustCreateProduct(r, validProductRequest("Milk", 10))

	if w := postConsumption(r, p.Id, quantityBody(1)); w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for first consumption, got %d", w.Code)
	}

	w := postConsumption(r, p.Id, quantityBody(10000))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}

	errs := decodeValidationErrors(t, json.NewDecoder(w.Body))
	if len(errs) != 1 || errs[0].Field != "quantity" {
		t.Fatalf("expected a single quantity error, got %v", errs)
	}
	if errs[0].Description != "The quantity is greater than the product quantity available." {
		t.Errorf("unexpected message: %q", errs[0].Description)
	}
}

func TestCreateConsumption_ExactRemainingAccepted(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	p := mustCreateProduct(r, validProductRequest("Milk", 10))

	if w := postConsumption(r, p.Id, quantityBody(6)); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if w := postConsumption(r, p.Id, quantityBody(4)); w.Code != http.StatusCreated {
		t.Errorf("expected exact exhaustion accepted, got %d", w.Code)
	}
	if w := postConsumption(r, p.Id, quantityBody(0.001)); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected any further amount rejected, got %d", w.Code)
	}
}

func TestCreateConsumption_MissingQuantity(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	p := mustCreateProduct(r, validProductRequest("Milk", 10))

	w := postConsumption(r, p.Id, `{}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	errs := decodeValidationErrors(t, json.NewDecoder(w.Body))
	if errs[0].Description != "The quantity field is required." {
		t.Errorf("unexpected message: %q", errs[0].Description)
	}
}

func TestCreateConsumption_NonNumericQuantity(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	p := mustCreateProduct(r, validProductRequest("Milk", 10))

	w := postConsumption(r, p.Id, `{"quantity": "Not a number"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	errs := decodeValidationErrors(t, json.NewDecoder(w.Body))
	if errs[0].Description != "The quantity field must be a number." {
		t.Errorf("unexpected message: %q", errs[0].Description)
	}
}

func TestCreateConsumption_NegativeQuantity(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	p := mustCreateProduct(r, validProductRequest("Milk", 10))

	if w := postConsumption(r, p.Id, quantityBody(-1)); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for negative quantity, got %d", w.Code)
	}
}

func TestCreateConsumption_UnknownProduct(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	if w := postConsumption(r, 9091, quantityBody(1)); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestUpdateConsumption_OwnQuantityExcludedFromBaseline(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	p := mustCreateProduct(r, validProductRequest("Milk", 10))

	w := postConsumption(r, p.Id, quantityBody(1))
	var created handler.ConsumptionResponse
	json.NewDecoder(w.Body).Decode(&created)

	// Remaining before update is 9, but the update replaces the 1, so 9 fits.
	if w := putConsumption(r, p.Id, created.ID, quantityBody(9)); w.Code != http.StatusOK {
		t.Errorf("expected 200 updating 1 -> 9, got %d: %s", w.Code, w.Body.String())
	}
	if w := putConsumption(r, p.Id, created.ID, quantityBody(10)); w.Code != http.StatusOK {
		t.Errorf("expected 200 updating to full quantity, got %d", w.Code)
	}
	if w := putConsumption(r, p.Id, created.ID, quantityBody(11)); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 updating above quantity, got %d", w.Code)
	}
}

func TestUpdateConsumption_SiblingConsumptionStillCounts(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	p := mustCreateProduct(r, validProductRequest("Milk", 10))

	w := postConsumption(r, p.Id, quantityBody(2))
	var first handler.ConsumptionResponse
	json.NewDecoder(w.Body).Decode(&first)
	postConsumption(r, p.Id, quantityBody(6))

	if w := putConsumption(r, p.Id, first.ID, quantityBody(4)); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w := putConsumption(r, p.Id, first.ID, quantityBody(5)); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, sibling consumption still counts, got %d", w.Code)
	}
}

func TestConsumptionAddressedUnderWrongProduct(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	p1 := mustCreateProduct(r, validProductRequest("Milk", 10))
	p2 := mustCreateProduct(r, validProductRequest("Cheese", 10))

	w := postConsumption(r, p1.Id, quantityBody(1))
	var created handler.ConsumptionResponse
	json.NewDecoder(w.Body).Decode(&created)

	if w := getJSON(r, fmt.Sprintf("/products/%d/consumptions/%d", p2.Id, created.ID), nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 reading under wrong product, got %d", w.Code)
	}
	if w := putConsumption(r, p2.Id, created.ID, quantityBody(2)); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 updating under wrong product, got %d", w.Code)
	}
	if w := deleteConsumption(r, p2.Id, created.ID); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 deleting under wrong product, got %d", w.Code)
	}
}

func TestDeleteConsumption_SoftDeletedExcludedFromBaseline(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	p := mustCreateProduct(r, validProductRequest("Milk", 10))

	w := postConsumption(r, p.Id, quantityBody(5))
	var created handler.ConsumptionResponse
	json.NewDecoder(w.Body).Decode(&created)

	if w := deleteConsumption(r, p.Id, created.ID); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	// The deleted 5 no longer counts, so the full quantity fits again.
	if w := postConsumption(r, p.Id, quantityBody(10)); w.Code != http.StatusCreated {
		t.Errorf("expected 201 after soft delete freed capacity, got %d", w.Code)
	}

	if w := deleteConsumption(r, p.Id, created.ID); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 deleting twice, got %d", w.Code)
	}
}

func TestGetConsumptions_ExcludesSoftDeleted(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	p := mustCreateProduct(r, validProductRequest("Milk", 10))

	postConsumption(r, p.Id, quantityBody(1))
	w := postConsumption(r, p.Id, quantityBody(2))
	var second handler.ConsumptionResponse
	json.NewDecoder(w.Body).Decode(&second)
	deleteConsumption(r, p.Id, second.ID)

	var listed []handler.ConsumptionResponse
	if w := getJSON(r, fmt.Sprintf("/products/%d/consumptions", p.Id), &listed); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 listed consumption, got %d", len(listed))
	}
	if listed[0].Quantity != 1 {
		t.Errorf("expected surviving consumption of 1, got %v", listed[0].Quantity)
	}
}

func TestGetConsumptionByID(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	p := mustCreateProduct(r, validProductRequest("Milk", 10))

	w := postConsumption(r, p.Id, quantityBody(3))
	var created handler.ConsumptionResponse
	json.NewDecoder(w.Body).Decode(&created)

	var fetched handler.ConsumptionResponse
	if w := getJSON(r, fmt.Sprintf("/products/%d/consumptions/%d", p.Id, created.ID), &fetched); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if fetched.Quantity != 3 {
		t.Errorf("expected quantity 3, got %v", fetched.Quantity)
	}
}

func TestCreateConsumption_RequiresAuth(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	p := mustCreateProduct(r, validProductRequest("Milk", 10))

	req := newUnauthenticatedPost(fmt.Sprintf("/products/%d/consumptions", p.Id), quantityBody(1))
	w := serve(r, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}
}

// Concurrent requests against the same product must not over-commit its
// quantity: the per-product lock serializes the validate-then-persist
// sequence.
func TestConcurrentConsumptionsNeverOvercommit(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	p := mustCreateProduct(r, validProductRequest("Milk", 10))

	var wg sync.WaitGroup
	accepted := make(chan int, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := postConsumption(r, p.Id, quantityBody(1))
			if w.Code == http.StatusCreated {
				accepted <- 1
			}
		}()
	}
	wg.Wait()
	close(accepted)

	var count int
	for range accepted {
		count++
	}
	if count != 10 {
		t.Errorf("expected exactly 10 accepted consumptions, got %d", count)
	}

	var consumptions []models.Consumption
	consumptions, _ = consumptionRepo.GetByProductID(p.Id)
	var total float64
	for _, c := range consumptions {
		total += c.Quantity
	}
	if total > 10 {
		t.Errorf("invariant broken: consumed %v > declared 10", total)
	}
}
