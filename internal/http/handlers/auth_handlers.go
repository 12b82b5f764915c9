package handlers

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/glowdesk/glowdesk/internal/auth"
)

// LoginHandler godoc
// @Summary Exchange the service key for an admin token
// @Description The service key is a single shared secret for the admin
// @Description surface; there are no per-user accounts.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Service key"
// @Success 200 {object} LoginResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/auth/login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.ServiceKey == "" {
		writeError(w, http.StatusBadRequest, "service_key is required")
		return
	}

	if serviceKeyHash == "" {
		logger.Error("login attempted with no service key hash configured")
		writeError(w, http.StatusInternalServerError, "authentication is not configured")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(serviceKeyHash), []byte(req.ServiceKey)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid service key")
		return
	}

	token, err := auth.GenerateToken("service", "admin")
	if err != nil {
		logger.Error("could not sign token", "err", err)
		writeError(w, http.StatusInternalServerError, "could not sign token")
		return
	}

	writeJSON(w, http.StatusOK, LoginResult{
		Token:        token,
		RefreshToken: auth.NewRefreshToken("service"),
	})
}

// RefreshHandler godoc
// @Summary Exchange a refresh token for a fresh access token
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body RefreshRequest true "Refresh token"
// @Success 200 {object} LoginResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/auth/refresh [post]
func RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	subject, ok := auth.RedeemRefreshToken(req.RefreshToken)
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid or expired refresh token")
		return
	}

	token, err := auth.GenerateToken(subject, "admin")
	if err != nil {
		logger.Error("could not sign token", "err", err)
		writeError(w, http.StatusInternalServerError, "could not sign token")
		return
	}

	writeJSON(w, http.StatusOK, LoginResult{
		Token:        token,
		RefreshToken: req.RefreshToken,
	})
}
