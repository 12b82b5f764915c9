package handlers_test_suite

import (
	"encoding/json"
	"math"
	"net/http"
	"testing"

	"github.com/google/uuid"

	handler "github.com/glowdesk/glowdesk/internal/http/handlers"
	"github.com/glowdesk/glowdesk/internal/repo"
)

type dashboardEnvelope struct {
	Data repo.DashboardStats `json:"data"`
}

func seedMonth(t *testing.T, r http.Handler) (returningClient string) {
	t.Helper()

	// August 2026: two income entries, one expense.
	for _, tx := range []handler.TransactionRequest{
		{Type: "income", Category: "service", Amount: floatPtr(100), Date: "2026-08-05", Description: "Color"},
		{Type: "income", Category: "service", Amount: floatPtr(50), Date: "2026-08-20", Description: "Cut"},
		{Type: "expense", Category: "supplies", Amount: floatPtr(30), Date: "2026-08-10", Description: "Foils"},
	} {
		if w := postJSON(r, "/api/financial/transactions", tx); w.Code != http.StatusCreated {
			t.Fatalf("seeding transaction failed with %d", w.Code)
		}
	}

	// Three appointments: one client visits twice, another once.
	returningClient = uuid.NewString()
	oneTimer := uuid.NewString()
	for _, a := range []handler.AppointmentRequest{
		{StartsAt: "2026-08-05T10:00:00Z", EndsAt: "2026-08-05T11:00:00Z", ClientID: &returningClient},
		{StartsAt: "2026-08-20T10:00:00Z", EndsAt: "2026-08-20T11:00:00Z", ClientID: &returningClient},
		{StartsAt: "2026-08-12T10:00:00Z", EndsAt: "2026-08-12T11:00:00Z", ClientID: &oneTimer},
	} {
		if w := postJSON(r, "/api/appointments", a); w.Code != http.StatusCreated {
			t.Fatalf("seeding appointment failed with %d", w.Code)
		}
	}
	return returningClient
}

func TestGetDashboardStatsHandler_Aggregates(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()
	seedMonth(t, r)

	w := doRequest(r, http.MethodGet, "/api/dashboard/stats?month=8&year=2026")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp dashboardEnvelope
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	cur := resp.Data.Current
	if cur.Revenue != 150 {
		t.Errorf("expected revenue 150, got %v", cur.Revenue)
	}
	if cur.Expenses != 30 {
		t.Errorf("expected expenses 30, got %v", cur.Expenses)
	}
	if cur.Appointments != 3 {
		t.Errorf("expected 3 appointments, got %d", cur.Appointments)
	}
	if cur.Clients != 2 {
		t.Errorf("expected 2 distinct clients, got %d", cur.Clients)
	}
	// One of two clients came back: 50%.
	if cur.ReturnRate != 50 {
		t.Errorf("expected return rate 50, got %v", cur.ReturnRate)
	}
	if math.Abs(cur.AverageTicket-50) > 1e-9 {
		t.Errorf("expected average ticket 50, got %v", cur.AverageTicket)
	}
}

func TestGetDashboardStatsHandler_ChangeSentinels(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()
	seedMonth(t, r)

	// July 2026 is empty, so growth from zero reports the flat 100 sentinel.
	w := doRequest(r, http.MethodGet, "/api/dashboard/stats?month=8&year=2026")
	var resp dashboardEnvelope
	json.NewDecoder(w.Body).Decode(&resp)

	if resp.Data.RevenueChange != 100 {
		t.Errorf("expected revenue change 100 against an empty month, got %v", resp.Data.RevenueChange)
	}

	// June against May: both empty, no change at all.
	w = doRequest(r, http.MethodGet, "/api/dashboard/stats?month=6&year=2026")
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Data.RevenueChange != 0 {
		t.Errorf("expected revenue change 0 between two empty months, got %v", resp.Data.RevenueChange)
	}
	if resp.Data.Current.AverageTicket != 0 {
		t.Errorf("expected zero-guarded average ticket, got %v", resp.Data.Current.AverageTicket)
	}
}

func TestGetDashboardStatsHandler_BadMonth(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	w := doRequest(r, http.MethodGet, "/api/dashboard/stats?month=13&year=2026")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for month 13, got %d", w.Code)
	}
}
