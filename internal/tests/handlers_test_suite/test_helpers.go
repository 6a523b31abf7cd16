package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"time"

	api "github.com/rogerio-castellano/pantry-tracker/internal/http"
	handler "github.com/rogerio-castellano/pantry-tracker/internal/http/handlers"
	rl "github.com/rogerio-castellano/pantry-tracker/internal/http/rate_limiter"
	"github.com/rogerio-castellano/pantry-tracker/internal/models"
	"github.com/rogerio-castellano/pantry-tracker/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

var (
	token           string
	productRepo     *repo.InMemoryProductRepository
	consumptionRepo *repo.InMemoryConsumptionRepository
	userRepo        *repo.InMemoryUserRepository
)

func init() {
	setupTestRepos("secret")
	r := api.NewRouter()

	var err error
	token, err = generateToken(r, "admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos(password string) {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	consumptionRepo = repo.NewInMemoryConsumptionRepository()
	handler.SetConsumptionRepo(consumptionRepo)
	productRepo.SetConsumptionRepository(consumptionRepo)

	userRepo = repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userRepo.CreateUser(models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         "admin",
	})

	metricsRepo := repo.NewInMemoryMetricsRepository()
	handler.SetMetricsRepo(metricsRepo)
	metricsRepo.SetRepositories(productRepo, consumptionRepo)
}

func clearAll() {
	productRepo.Clear()
	consumptionRepo.Clear()
	rl.CleanupAllVisitors()
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format(models.ExpirationDateLayout)
}

func pastDate(days int) string {
	return time.Now().AddDate(0, 0, -days).Format(models.ExpirationDateLayout)
}

func validProductRequest(name string, quantity float64) handler.ProductRequest {
	return handler.ProductRequest{
		Name:           name,
		Price:          40.5,
		Quantity:       quantity,
		ExpirationDate: futureDate(3),
		Type:           "unit",
	}
}

func generateToken(r http.Handler, username, password string) (string, error) {
	payload := handler.CredentialsRequest{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(p)
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// mustCreateProduct creates a product through the API and returns its response.
func mustCreateProduct(r http.Handler, p handler.ProductRequest) handler.ProductResponse {
	w := createProduct(r, p)
	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("could not create product: status %d body %s", w.Code, w.Body.String()))
	}
	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		panic(fmt.Sprintf("could not decode product response: %v", err))
	}
	return resp
}

func postConsumption(r http.Handler, productID int, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/products/%d/consumptions", productID), bytes.NewBufferString(payload))
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func putConsumption(r http.Handler, productID, consumptionID int, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/products/%d/consumptions/%d", productID, consumptionID), bytes.NewBufferString(payload))
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func deleteConsumption(r http.Handler, productID, consumptionID int) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/products/%d/consumptions/%d", productID, consumptionID), nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getJSON(r http.Handler, url string, out any) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if out != nil && w.Code == http.StatusOK {
		_ = json.NewDecoder(w.Body).Decode(out)
	}
	return w
}

func newUnauthenticatedPost(url, payload string) *http.Request {
	return httptest.NewRequest(http.MethodPost, url, bytes.NewBufferString(payload))
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func quantityBody(q float64) string {
	return fmt.Sprintf(`{"quantity": %v}`, q)
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}
