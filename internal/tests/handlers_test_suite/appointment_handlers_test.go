package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	handler "github.com/glowdesk/glowdesk/internal/http/handlers"
	"github.com/glowdesk/glowdesk/internal/models"
)

type appointmentEnvelope struct {
	Data models.Appointment `json:"data"`
}

type appointmentListEnvelope struct {
	Data []models.Appointment `json:"data"`
	Meta handler.Meta         `json:"meta"`
}

func TestCreateAppointmentHandler_Valid(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	w := postJSON(r, "/api/appointments", handler.AppointmentRequest{
		StartsAt: "2026-09-10T10:00:00Z",
		EndsAt:   "2026-09-10T11:00:00Z",
		Service:  "Cut and blow-dry",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp appointmentEnvelope
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Data.Status != models.AppointmentPending {
		t.Errorf("expected default status 'pending', got %q", resp.Data.Status)
	}
	if resp.Data.Service != "Cut and blow-dry" {
		t.Errorf("expected service stored, got %q", resp.Data.Service)
	}
}

func TestCreateAppointmentHandler_EndsBeforeStarts(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	w := postJSON(r, "/api/appointments", handler.AppointmentRequest{
		StartsAt: "2026-09-10T11:00:00Z",
		EndsAt:   "2026-09-10T10:00:00Z",
		Service:  "Cut",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp validationResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if !hasFieldError(resp, "EndsAt") {
		t.Error("expected an EndsAt field error")
	}
}

func TestCreateAppointmentHandler_BadStatus(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	w := postJSON(r, "/api/appointments", handler.AppointmentRequest{
		StartsAt: "2026-09-10T10:00:00Z",
		EndsAt:   "2026-09-10T11:00:00Z",
		Status:   "booked",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown status, got %d", w.Code)
	}
}

func TestGetAppointmentsHandler_DateWindow(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	postJSON(r, "/api/appointments", handler.AppointmentRequest{
		StartsAt: "2026-09-01T09:00:00Z", EndsAt: "2026-09-01T10:00:00Z", Service: "Color",
	})
	postJSON(r, "/api/appointments", handler.AppointmentRequest{
		StartsAt: "2026-09-15T09:00:00Z", EndsAt: "2026-09-15T10:00:00Z", Service: "Cut",
	})
	postJSON(r, "/api/appointments", handler.AppointmentRequest{
		StartsAt: "2026-10-01T09:00:00Z", EndsAt: "2026-10-01T10:00:00Z", Service: "Perm",
	})

	w := doRequest(r, http.MethodGet,
		"/api/appointments?startDate=2026-09-01T00:00:00Z&endDate=2026-09-30T23:59:59Z")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp appointmentListEnvelope
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Meta.TotalCount != 2 {
		t.Errorf("expected 2 appointments in September, got %d", resp.Meta.TotalCount)
	}
}

func TestGetAppointmentsHandler_ClientFilter(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	clientID := uuid.NewString()
	postJSON(r, "/api/appointments", handler.AppointmentRequest{
		StartsAt: "2026-09-01T09:00:00Z", EndsAt: "2026-09-01T10:00:00Z", ClientID: strPtr(clientID),
	})
	postJSON(r, "/api/appointments", handler.AppointmentRequest{
		StartsAt: "2026-09-02T09:00:00Z", EndsAt: "2026-09-02T10:00:00Z",
	})

	w := doRequest(r, http.MethodGet, "/api/appointments?clientId="+clientID)
	var resp appointmentListEnvelope
	json.NewDecoder(w.Body).Decode(&resp)

	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 appointment for client, got %d", len(resp.Data))
	}
	if resp.Data[0].ClientID == nil || *resp.Data[0].ClientID != clientID {
		t.Error("expected the client's appointment back")
	}
}

func TestUpdateAppointmentHandler_StatusTransitions(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	w := postJSON(r, "/api/appointments", handler.AppointmentRequest{
		StartsAt: "2026-09-10T10:00:00Z", EndsAt: "2026-09-10T11:00:00Z",
	})
	var created appointmentEnvelope
	json.NewDecoder(w.Body).Decode(&created)

	// Any status may move to any other status, including out of cancelled.
	for _, status := range []string{"confirmed", "cancelled", "pending"} {
		w = putJSON(r, "/api/appointments/"+created.Data.ID, handler.AppointmentUpdateRequest{
			Status: strPtr(status),
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 moving to %q, got %d", status, w.Code)
		}
		var updated appointmentEnvelope
		json.NewDecoder(w.Body).Decode(&updated)
		if updated.Data.Status != status {
			t.Errorf("expected status %q, got %q", status, updated.Data.Status)
		}
	}
}

func TestUpdateAppointmentHandler_Reschedule(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	w := postJSON(r, "/api/appointments", handler.AppointmentRequest{
		StartsAt: "2026-09-10T10:00:00Z", EndsAt: "2026-09-10T11:00:00Z", Service: "Cut",
	})
	var created appointmentEnvelope
	json.NewDecoder(w.Body).Decode(&created)

	w = putJSON(r, "/api/appointments/"+created.Data.ID, handler.AppointmentUpdateRequest{
		StartsAt: strPtr("2026-09-11T14:00:00Z"),
		EndsAt:   strPtr("2026-09-11T13:00:00Z"),
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 when rescheduled end precedes start, got %d", w.Code)
	}

	w = putJSON(r, "/api/appointments/"+created.Data.ID, handler.AppointmentUpdateRequest{
		StartsAt: strPtr("2026-09-11T14:00:00Z"),
		EndsAt:   strPtr("2026-09-11T15:00:00Z"),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var updated appointmentEnvelope
	json.NewDecoder(w.Body).Decode(&updated)
	if updated.Data.Service != "Cut" {
		t.Errorf("expected service untouched by reschedule, got %q", updated.Data.Service)
	}
}

func TestUpdateAppointmentHandler_SingleBoundReschedule(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	w := postJSON(r, "/api/appointments", handler.AppointmentRequest{
		StartsAt: "2026-09-10T10:00:00Z", EndsAt: "2026-09-10T11:00:00Z",
	})
	var created appointmentEnvelope
	json.NewDecoder(w.Body).Decode(&created)

	// Moving only the start past the stored end must not invert the window.
	w = putJSON(r, "/api/appointments/"+created.Data.ID, handler.AppointmentUpdateRequest{
		StartsAt: strPtr("2026-09-10T12:00:00Z"),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for start moved past stored end, got %d", w.Code)
	}

	// Same for moving only the end before the stored start.
	w = putJSON(r, "/api/appointments/"+created.Data.ID, handler.AppointmentUpdateRequest{
		EndsAt: strPtr("2026-09-10T09:00:00Z"),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for end moved before stored start, got %d", w.Code)
	}

	// Neither rejected update may have touched the stored window.
	w = doRequest(r, http.MethodGet, "/api/appointments/"+created.Data.ID)
	var fetched appointmentEnvelope
	json.NewDecoder(w.Body).Decode(&fetched)
	if !fetched.Data.EndsAt.After(fetched.Data.StartsAt) {
		t.Error("stored window must still be ordered after rejected updates")
	}
	if got := fetched.Data.StartsAt.Format(time.RFC3339); got != "2026-09-10T10:00:00Z" {
		t.Errorf("expected start unchanged, got %s", got)
	}

	// A single bound that keeps the window ordered is fine.
	w = putJSON(r, "/api/appointments/"+created.Data.ID, handler.AppointmentUpdateRequest{
		EndsAt: strPtr("2026-09-10T11:30:00Z"),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 extending the end, got %d", w.Code)
	}
	var updated appointmentEnvelope
	json.NewDecoder(w.Body).Decode(&updated)
	if got := updated.Data.EndsAt.Format(time.RFC3339); got != "2026-09-10T11:30:00Z" {
		t.Errorf("expected end 11:30, got %s", got)
	}
}

func TestDeleteAppointmentHandler_NotFound(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	w := doRequest(r, http.MethodDelete, "/api/appointments/"+uuid.NewString())
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
