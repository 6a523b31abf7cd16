package handlers_test_suite

import (
	"net/http"
	"testing"

	api "github.com/rogerio-castellano/pantry-tracker/internal/http"
	"github.com/rogerio-castellano/pantry-tracker/internal/models"
	"github.com/rogerio-castellano/pantry-tracker/internal/repo"
)

func TestGetDashboardMetricsHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	milk := mustCreateProduct(r, validProductRequest("Milk", 10))
	cheese := mustCreateProduct(r, validProductRequest("Cheese", 20))
	productRepo.Create(models.Product{
		Name:           "Old Yogurt",
		Price:          5,
		Quantity:       2,
		ExpirationDate: pastDate(2),
		Type:           models.TypeUnit,
	})

	postConsumption(r, milk.Id, quantityBody(4))
	postConsumption(r, cheese.Id, quantityBody(5))
	postConsumption(r, cheese.Id, quantityBody(3))

	var m repo.Metrics
	if w := getJSON(r, "/metrics/dashboard", &m); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	if m.TotalProducts != 3 {
		t.Errorf("expected 3 products, got %d", m.TotalProducts)
	}
	if m.TotalConsumptions != 3 {
		t.Errorf("expected 3 consumptions, got %d", m.TotalConsumptions)
	}
	if m.ExpiredCount != 1 {
		t.Errorf("expected 1 expired product, got %d", m.ExpiredCount)
	}
	if m.MostConsumedProduct.Name != "Cheese" {
		t.Errorf("expected 'Cheese' as most consumed, got %q", m.MostConsumedProduct.Name)
	}
	if m.MostConsumedProduct.QuantityConsumed != 8 {
		t.Errorf("expected 8 consumed for most consumed product, got %v", m.MostConsumedProduct.QuantityConsumed)
	}
}

func TestGetDashboardMetricsHandler_Empty(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	var m repo.Metrics
	if w := getJSON(r, "/metrics/dashboard", &m); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if m.TotalProducts != 0 || m.TotalConsumptions != 0 || m.ExpiredCount != 0 {
		t.Errorf("expected zeroed metrics, got %+v", m)
	}
	if m.MostConsumedProduct.Name != "" {
		t.Errorf("expected no most consumed product, got %q", m.MostConsumedProduct.Name)
	}
}
