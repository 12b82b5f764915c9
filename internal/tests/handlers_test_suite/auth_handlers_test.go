package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	handler "github.com/glowdesk/glowdesk/internal/http/handlers"
)

func TestLoginHandler(t *testing.T) {
	r := newRouter()

	w := postJSON(r, "/api/auth/login", handler.LoginRequest{ServiceKey: testServiceKey})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Token == "" || resp.RefreshToken == "" {
		t.Error("expected both an access and a refresh token")
	}
}

func TestLoginHandler_WrongKey(t *testing.T) {
	r := newRouter()

	w := postJSON(r, "/api/auth/login", handler.LoginRequest{ServiceKey: "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestRefreshHandler(t *testing.T) {
	r := newRouter()

	w := postJSON(r, "/api/auth/login", handler.LoginRequest{ServiceKey: testServiceKey})
	var login handler.LoginResult
	json.NewDecoder(w.Body).Decode(&login)

	w = postJSON(r, "/api/auth/refresh", handler.RefreshRequest{RefreshToken: login.RefreshToken})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var refreshed handler.LoginResult
	json.NewDecoder(w.Body).Decode(&refreshed)
	if refreshed.Token == "" {
		t.Error("expected a fresh access token")
	}
}

func TestRefreshHandler_UnknownToken(t *testing.T) {
	r := newRouter()

	w := postJSON(r, "/api/auth/refresh", handler.RefreshRequest{RefreshToken: "nope"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAdminRoutes_RequireToken(t *testing.T) {
	r := newRouter()

	for _, path := range []string{"/api/setup-schema", "/api/fix-schema"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 for %s without a token, got %d", path, w.Code)
		}
	}
}

func TestSetupSchemaHandler_NoDatabase(t *testing.T) {
	r := newRouter()

	// The test suite wires no database, which is exactly the config-error
	// path the route must report.
	req := httptest.NewRequest(http.MethodPost, "/api/setup-schema", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var resp handler.SchemaResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Success {
		t.Error("expected success=false")
	}
	if resp.Error == "" {
		t.Error("expected an error message")
	}
}
