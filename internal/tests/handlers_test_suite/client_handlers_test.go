package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	handler "github.com/glowdesk/glowdesk/internal/http/handlers"
	"github.com/glowdesk/glowdesk/internal/models"
)

type clientEnvelope struct {
	Data models.Client `json:"data"`
}

type clientListEnvelope struct {
	Data []models.Client `json:"data"`
	Meta handler.Meta    `json:"meta"`
}

func TestCreateClientHandler_QuickCreate(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	w := postJSON(r, "/api/clients", handler.ClientRequest{
		Name:  "Ana Souza",
		Phone: "+55 11 91234-5678",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp clientEnvelope
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Data.Status != models.ClientActive {
		t.Errorf("expected default status 'active', got %q", resp.Data.Status)
	}
	if resp.Data.Name != "Ana Souza" {
		t.Errorf("expected name stored, got %q", resp.Data.Name)
	}
}

func TestCreateClientHandler_MissingPhone(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	w := postJSON(r, "/api/clients", handler.ClientRequest{Name: "Ana"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp validationResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if !hasFieldError(resp, "Phone") {
		t.Error("expected a Phone field error")
	}
}

func TestGetClientsHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	postJSON(r, "/api/clients", handler.ClientRequest{Name: "Ana", Phone: "111"})
	postJSON(r, "/api/clients", handler.ClientRequest{Name: "Bia", Phone: "222"})

	w := doRequest(r, http.MethodGet, "/api/clients")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp clientListEnvelope
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Meta.TotalCount != 2 {
		t.Errorf("expected total_count 2, got %d", resp.Meta.TotalCount)
	}
}

func TestUpdateClientHandler_PartialUpdate(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	w := postJSON(r, "/api/clients", handler.ClientRequest{Name: "Ana", Phone: "111", Email: "ana@example.com"})
	var created clientEnvelope
	json.NewDecoder(w.Body).Decode(&created)

	w = putJSON(r, "/api/clients/"+created.Data.ID, handler.ClientUpdateRequest{
		Status: strPtr("inactive"),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var updated clientEnvelope
	json.NewDecoder(w.Body).Decode(&updated)
	if updated.Data.Status != models.ClientInactive {
		t.Errorf("expected status 'inactive', got %q", updated.Data.Status)
	}
	if updated.Data.Email != "ana@example.com" {
		t.Errorf("expected email untouched, got %q", updated.Data.Email)
	}
}

func TestDeleteClientHandler_LeavesAppointments(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	w := postJSON(r, "/api/clients", handler.ClientRequest{Name: "Ana", Phone: "111"})
	var client clientEnvelope
	json.NewDecoder(w.Body).Decode(&client)

	w = postJSON(r, "/api/appointments", handler.AppointmentRequest{
		StartsAt: "2026-09-10T10:00:00Z",
		EndsAt:   "2026-09-10T11:00:00Z",
		ClientID: strPtr(client.Data.ID),
	})
	var appt appointmentEnvelope
	json.NewDecoder(w.Body).Decode(&appt)

	w = doRequest(r, http.MethodDelete, "/api/clients/"+client.Data.ID)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	// The appointment survives with its now-dangling client reference.
	w = doRequest(r, http.MethodGet, "/api/appointments/"+appt.Data.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("expected appointment to survive client deletion, got %d", w.Code)
	}
	var fetched appointmentEnvelope
	json.NewDecoder(w.Body).Decode(&fetched)
	if fetched.Data.ClientID == nil || *fetched.Data.ClientID != client.Data.ID {
		t.Error("expected the client reference to remain on the appointment")
	}
}

func TestImportClientsHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	csv := "name,phone,email\n" +
		"Ana Souza,+55 11 91234-5678,ana@example.com\n" +
		"Bia Lima,+55 11 99876-5432,\n" +
		"Sem Telefone,,x@example.com\n"

	buf, contentType := multipartCSV(csv, "clients.csv")
	req := httptest.NewRequest(http.MethodPost, "/api/clients/import", buf)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.ImportClientsResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.ImportedClientsCount != 2 {
		t.Errorf("expected 2 imported clients, got %d", resp.ImportedClientsCount)
	}
	if len(resp.Errors) != 1 {
		t.Errorf("expected 1 row error, got %d", len(resp.Errors))
	}

	listW := doRequest(r, http.MethodGet, "/api/clients")
	var list clientListEnvelope
	json.NewDecoder(listW.Body).Decode(&list)
	if list.Meta.TotalCount != 2 {
		t.Errorf("expected 2 clients after import, got %d", list.Meta.TotalCount)
	}
}

func TestImportClientsHandler_MissingColumn(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	buf, contentType := multipartCSV("name,email\nAna,ana@example.com\n", "clients.csv")
	req := httptest.NewRequest(http.MethodPost, "/api/clients/import", buf)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for CSV without a phone column, got %d", w.Code)
	}
}
