package handlers

import (
	"net/http"

	"github.com/glowdesk/glowdesk/internal/models"
)

// GetSettingsHandler godoc
// @Summary Read the business settings
// @Tags settings
// @Produce json
// @Success 200 {object} dataEnvelope
// @Failure 500 {object} map[string]string
// @Router /api/settings [get]
func GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := settingsRepo.Get()
	if err != nil {
		logger.Error("could not fetch settings", "err", err)
		writeError(w, http.StatusInternalServerError, "could not fetch settings")
		return
	}
	writeJSON(w, http.StatusOK, dataEnvelope{Data: settings})
}

// UpdateSettingsHandler godoc
// @Summary Replace the business settings
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body SettingsRequest true "Settings to store"
// @Success 200 {object} dataEnvelope
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/settings [put]
func UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.Theme != "" && req.Theme != "light" && req.Theme != "dark" {
		writeError(w, http.StatusBadRequest, "theme must be light or dark")
		return
	}

	saved, err := settingsRepo.Save(models.Settings{
		BusinessName: req.BusinessName,
		Theme:        req.Theme,
		TutorialSeen: req.TutorialSeen,
	})
	if err != nil {
		logger.Error("could not save settings", "err", err)
		writeError(w, http.StatusInternalServerError, "could not save settings")
		return
	}
	writeJSON(w, http.StatusOK, dataEnvelope{Data: saved})
}
