package handlers

import (
	"net/http"

	"github.com/glowdesk/glowdesk/internal/db"
	"github.com/glowdesk/glowdesk/internal/schema"
)

// SetupSchemaHandler godoc
// @Summary Apply the versioned migrations
// @Description Migrations also run at startup; this route exists for
// @Description deployments where the startup run was skipped or failed.
// @Tags admin
// @Produce json
// @Success 200 {object} SchemaResult
// @Failure 500 {object} SchemaResult
// @Security BearerAuth
// @Router /api/setup-schema [post]
func SetupSchemaHandler(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeJSON(w, http.StatusInternalServerError, SchemaResult{
			Success: false,
			Error:   "database is not configured",
		})
		return
	}

	if err := db.Migrate(database); err != nil {
		logger.Error("migrations failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, SchemaResult{
			Success: false,
			Error:   err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, SchemaResult{Success: true})
}

// FixSchemaHandler godoc
// @Summary Detect and repair schema drift
// @Description Renames legacy camelCase columns and adds missing ones. When
// @Description the connected role lacks DDL privileges, the response carries
// @Description the repair script for an operator to run by hand.
// @Tags admin
// @Produce json
// @Success 200 {object} SchemaResult
// @Failure 500 {object} SchemaResult
// @Security BearerAuth
// @Router /api/fix-schema [post]
func FixSchemaHandler(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeJSON(w, http.StatusInternalServerError, SchemaResult{
			Success: false,
			Error:   "database is not configured",
		})
		return
	}

	problems, err := schema.Verify(database)
	if err != nil {
		logger.Error("schema verification failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, SchemaResult{
			Success: false,
			Error:   err.Error(),
		})
		return
	}
	if len(problems) == 0 {
		writeJSON(w, http.StatusOK, SchemaResult{Success: true})
		return
	}

	if err := schema.Repair(database, problems); err != nil {
		logger.Warn("automatic schema repair failed", "err", err)
		writeJSON(w, http.StatusOK, SchemaResult{
			Success:             false,
			Problems:            problems,
			ManualSetupRequired: true,
			SQLToRun:            schema.Script(problems),
			Error:               err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, SchemaResult{Success: true, Problems: problems})
}
