package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"golang.org/x/crypto/bcrypt"

	api "github.com/glowdesk/glowdesk/internal/http"
	handler "github.com/glowdesk/glowdesk/internal/http/handlers"
	"github.com/glowdesk/glowdesk/internal/repo"
)

var (
	token string

	transactionRepo *repo.InMemoryTransactionRepository
	appointmentRepo *repo.InMemoryAppointmentRepository
	clientRepo      *repo.InMemoryClientRepository
	productRepo     *repo.InMemoryProductRepository
	dashboardRepo   *repo.InMemoryDashboardRepository
	settingsRepo    *repo.InMemorySettingsRepository
)

const testServiceKey = "test-service-key"

func init() {
	setupTestRepos(testServiceKey)
	r := newRouter()

	var err error
	token, err = generateToken(r, testServiceKey)
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func newRouter() http.Handler {
	return api.NewRouter(api.RouterOptions{})
}

func setupTestRepos(serviceKey string) {
	transactionRepo = repo.NewInMemoryTransactionRepository()
	handler.SetTransactionRepo(transactionRepo)

	appointmentRepo = repo.NewInMemoryAppointmentRepository()
	handler.SetAppointmentRepo(appointmentRepo)

	clientRepo = repo.NewInMemoryClientRepository()
	handler.SetClientRepo(clientRepo)

	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	dashboardRepo = repo.NewInMemoryDashboardRepository()
	dashboardRepo.SetRepositories(transactionRepo, appointmentRepo)
	handler.SetDashboardRepo(dashboardRepo)

	settingsRepo = repo.NewInMemorySettingsRepository()
	handler.SetSettingsRepo(settingsRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(serviceKey), bcrypt.DefaultCost)
	handler.SetServiceKeyHash(string(hash))
}

func clearAll() {
	transactionRepo.Clear()
	appointmentRepo.Clear()
	clientRepo.Clear()
	productRepo.Clear()
}

func generateToken(r http.Handler, serviceKey string) (string, error) {
	w := postJSON(r, "/api/auth/login", handler.LoginRequest{ServiceKey: serviceKey})

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func postJSON(r http.Handler, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func putJSON(r http.Handler, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(body))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func patchJSON(r http.Handler, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPatch, path, bytes.NewReader(body))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doRequest(r http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func adjustStock(r http.Handler, adj handler.StockAdjustmentRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(adj)
	req := httptest.NewRequest(http.MethodPatch, "/api/products/stock", bytes.NewReader(body))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}

// validationResponse is the body shape of a failed field validation.
type validationResponse struct {
	Error  string               `json:"error"`
	Fields []handler.FieldError `json:"fields"`
}

func hasFieldError(resp validationResponse, field string) bool {
	for _, fe := range resp.Fields {
		if fe.Field == field {
			return true
		}
	}
	return false
}
