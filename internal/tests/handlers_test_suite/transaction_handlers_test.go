package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	handler "github.com/glowdesk/glowdesk/internal/http/handlers"
	"github.com/glowdesk/glowdesk/internal/models"
)

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

type transactionEnvelope struct {
	Data models.Transaction `json:"data"`
}

type transactionListEnvelope struct {
	Data []models.Transaction `json:"data"`
	Meta handler.Meta         `json:"meta"`
}

func TestCreateTransactionHandler_Valid(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	w := postJSON(r, "/api/financial/transactions", handler.TransactionRequest{
		Type:        "income",
		Category:    "service",
		Amount:      floatPtr(85.50),
		Date:        "2026-08-15",
		Description: "Haircut and color",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp transactionEnvelope
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if resp.Data.ID == "" {
		t.Error("expected a generated ID")
	}
	if resp.Data.Type != "income" {
		t.Errorf("expected type 'income', got %v", resp.Data.Type)
	}
	if resp.Data.Amount != 85.50 {
		t.Errorf("expected amount 85.50, got %v", resp.Data.Amount)
	}
}

func TestCreateTransactionHandler_MissingRequired(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	tests := []struct {
		name           string
		payload        handler.TransactionRequest
		expectedErrors []string
	}{
		{
			name:           "Empty payload",
			payload:        handler.TransactionRequest{},
			expectedErrors: []string{"Type", "Category", "Amount", "Date", "Description"},
		},
		{
			name: "Missing amount only",
			payload: handler.TransactionRequest{
				Type: "expense", Category: "supplies", Date: "2026-08-10", Description: "Shampoo stock",
			},
			expectedErrors: []string{"Amount"},
		},
		{
			name: "Bad type",
			payload: handler.TransactionRequest{
				Type: "transfer", Category: "misc", Amount: floatPtr(10), Date: "2026-08-10", Description: "x",
			},
			expectedErrors: []string{"Type"},
		},
		{
			name: "Bad date format",
			payload: handler.TransactionRequest{
				Type: "income", Category: "service", Amount: floatPtr(10), Date: "15/08/2026", Description: "x",
			},
			expectedErrors: []string{"Date"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, "/api/financial/transactions", tt.payload)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}

			var resp validationResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			for _, field := range tt.expectedErrors {
				if !hasFieldError(resp, field) {
					t.Errorf("expected error for field %q, but not found", field)
				}
			}
		})
	}
}

func TestCreateTransactionHandler_MalformedJSON(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	badJSON := `{type: "income" amount: 10}`
	req := httptest.NewRequest(http.MethodPost, "/api/financial/transactions", bytes.NewBufferString(badJSON))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp["error"] != "invalid input" {
		t.Errorf("expected error 'invalid input', got %q", resp["error"])
	}
}

func TestGetTransactionsHandler_FilterByType(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	postJSON(r, "/api/financial/transactions", handler.TransactionRequest{
		Type: "income", Category: "service", Amount: floatPtr(120), Date: "2026-08-01", Description: "Balayage",
	})
	postJSON(r, "/api/financial/transactions", handler.TransactionRequest{
		Type: "expense", Category: "rent", Amount: floatPtr(900), Date: "2026-08-01", Description: "August rent",
	})

	w := doRequest(r, http.MethodGet, "/api/financial/transactions?type=income")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp transactionListEnvelope
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Meta.TotalCount != 1 {
		t.Errorf("expected total_count 1, got %d", resp.Meta.TotalCount)
	}
	if len(resp.Data) != 1 || resp.Data[0].Type != "income" {
		t.Errorf("expected one income transaction, got %+v", resp.Data)
	}
}

func TestGetTransactionsHandler_InvalidType(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	w := doRequest(r, http.MethodGet, "/api/financial/transactions?type=transfer")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestUpdateTransactionHandler_PartialUpdate(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	w := postJSON(r, "/api/financial/transactions", handler.TransactionRequest{
		Type: "income", Category: "service", Amount: floatPtr(50), Date: "2026-08-12", Description: "Manicure",
	})
	var created transactionEnvelope
	json.NewDecoder(w.Body).Decode(&created)

	w = putJSON(r, "/api/financial/transactions/"+created.Data.ID, handler.TransactionUpdateRequest{
		Amount: floatPtr(65),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var updated transactionEnvelope
	json.NewDecoder(w.Body).Decode(&updated)

	if updated.Data.Amount != 65 {
		t.Errorf("expected amount 65, got %v", updated.Data.Amount)
	}
	if updated.Data.Category != "service" {
		t.Errorf("expected category untouched, got %q", updated.Data.Category)
	}
	if updated.Data.Description != "Manicure" {
		t.Errorf("expected description untouched, got %q", updated.Data.Description)
	}
}

func TestTransactionLifecycle(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	clientID := uuid.NewString()
	w := postJSON(r, "/api/financial/transactions", handler.TransactionRequest{
		Type:        "income",
		Category:    "product",
		Amount:      floatPtr(30),
		Date:        "2026-08-20",
		Description: "Retail shampoo",
		ClientID:    strPtr(clientID),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}
	var created transactionEnvelope
	json.NewDecoder(w.Body).Decode(&created)

	w = doRequest(r, http.MethodGet, "/api/financial/transactions/"+created.Data.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var fetched transactionEnvelope
	json.NewDecoder(w.Body).Decode(&fetched)
	if fetched.Data.Description != "Retail shampoo" {
		t.Errorf("expected stored description back, got %q", fetched.Data.Description)
	}
	if fetched.Data.ClientID == nil || *fetched.Data.ClientID != clientID {
		t.Errorf("expected client link to survive the round trip")
	}

	w = doRequest(r, http.MethodDelete, "/api/financial/transactions/"+created.Data.ID)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}

	w = doRequest(r, http.MethodGet, "/api/financial/transactions/"+created.Data.ID)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

func TestGetTransactionByIDHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	w := doRequest(r, http.MethodGet, "/api/financial/transactions/not-a-uuid")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed ID, got %d", w.Code)
	}

	w = doRequest(r, http.MethodGet, "/api/financial/transactions/"+uuid.NewString())
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown ID, got %d", w.Code)
	}
}
