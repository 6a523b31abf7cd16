package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/pantry-tracker/internal/http/handlers"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware)
		r.Post("/register", handlers.RegisterHandler)
		r.Post("/login", handlers.LoginHandler)
		r.Post("/refresh", handlers.RefreshHandler)
	})

	r.Get("/products", handlers.GetProductsHandler)
	r.Get("/products/search", handlers.FilterProductsHandler)
	r.Get("/products/{id}", handlers.GetProductByIDHandler)
	r.Get("/products/{id}/ledger", handlers.GetProductLedgerHandler)
	r.Get("/products/{id}/consumptions", handlers.GetConsumptionsHandler)
	r.Get("/products/{id}/consumptions/{consumptionId}", handlers.GetConsumptionByIDHandler)
	r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)
		r.Post("/products", handlers.CreateProductHandler)
		r.Put("/products/{id}", handlers.UpdateProductHandler)
		r.Delete("/products/{id}", handlers.DeleteProductHandler)
		r.Post("/products/import", handlers.ImportProductsHandler)
		r.Post("/products/{id}/consumptions", handlers.CreateConsumptionHandler)
		r.Put("/products/{id}/consumptions/{consumptionId}", handlers.UpdateConsumptionHandler)
		r.Delete("/products/{id}/consumptions/{consumptionId}", handlers.DeleteConsumptionHandler)
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}
