package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/glowdesk/glowdesk/internal/cache"
	"github.com/glowdesk/glowdesk/internal/models"
	"github.com/glowdesk/glowdesk/internal/repo"
)

// CreateAppointmentHandler godoc
// @Summary Book an appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointment body AppointmentRequest true "Appointment to book"
// @Success 201 {object} dataEnvelope
// @Failure 400 {object} map[string]any
// @Failure 500 {object} map[string]string
// @Router /api/appointments [post]
func CreateAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	var req AppointmentRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	if validationErrors := validateAppointment(req); len(validationErrors) > 0 {
		writeValidationErrors(w, validationErrors)
		return
	}

	starts, _ := time.Parse(time.RFC3339, req.StartsAt)
	ends, _ := time.Parse(time.RFC3339, req.EndsAt)
	status := req.Status
	if status == "" {
		status = models.AppointmentPending
	}

	now := time.Now().UTC()
	appointment := models.Appointment{
		StartsAt:       starts,
		EndsAt:         ends,
		ClientID:       req.ClientID,
		Service:        req.Service,
		ClientInitials: req.ClientInitials,
		Color:          req.Color,
		Status:         status,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := appointmentRepo.Create(appointment)
	if err != nil {
		logger.Error("could not create appointment", "err", err)
		writeError(w, http.StatusInternalServerError, "could not create appointment")
		return
	}

	cacheSvc.Invalidate(r.Context(), cache.KeyAppointments)
	writeJSON(w, http.StatusCreated, dataEnvelope{Data: created})
}

// GetAppointmentsHandler godoc
// @Summary List appointments
// @Tags appointments
// @Produce json
// @Param startDate query string false "Lower bound (RFC3339)"
// @Param endDate query string false "Upper bound (RFC3339)"
// @Param clientId query string false "Filter by client"
// @Param status query string false "Filter by status"
// @Success 200 {object} listEnvelope
// @Failure 400 {object} map[string]string
// @Router /api/appointments [get]
func GetAppointmentsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repo.AppointmentFilter{
		ClientID: q.Get("clientId"),
		Status:   q.Get("status"),
	}
	if filter.Status != "" && !models.ValidStatus(filter.Status) {
		writeError(w, http.StatusBadRequest, "status must be confirmed, pending or cancelled")
		return
	}
	if s := q.Get("startDate"); s != "" {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "startDate must be RFC3339")
			return
		}
		filter.From = &ts
	}
	if s := q.Get("endDate"); s != "" {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "endDate must be RFC3339")
			return
		}
		filter.To = &ts
	}

	unfiltered := filter.From == nil && filter.To == nil && filter.ClientID == "" && filter.Status == ""
	if unfiltered {
		var cached listEnvelope
		if cacheSvc.Get(r.Context(), cache.KeyAppointments, &cached) {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	appointments, total, err := appointmentRepo.Filter(filter)
	if err != nil {
		logger.Error("could not fetch appointments", "err", err)
		writeError(w, http.StatusInternalServerError, "could not fetch appointments")
		return
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}

	response := listEnvelope{Data: appointments, Meta: Meta{TotalCount: total}}
	if unfiltered {
		cacheSvc.Set(r.Context(), cache.KeyAppointments, response)
	}
	writeJSON(w, http.StatusOK, response)
}

// GetAppointmentByIDHandler godoc
// @Summary Get appointment by ID
// @Tags appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} dataEnvelope
// @Failure 404 {object} map[string]string
// @Router /api/appointments/{id} [get]
func GetAppointmentByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid appointment ID")
		return
	}

	appointment, err := appointmentRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrAppointmentNotFound) {
			writeError(w, http.StatusNotFound, "appointment not found")
			return
		}
		logger.Error("could not fetch appointment", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "could not fetch appointment")
		return
	}
	writeJSON(w, http.StatusOK, dataEnvelope{Data: appointment})
}

// UpdateAppointmentHandler godoc
// @Summary Reschedule or otherwise update an appointment
// @Description Only fields present in the body are written. Any status may
// @Description move to any other status.
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param appointment body AppointmentUpdateRequest true "Fields to update"
// @Success 200 {object} dataEnvelope
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/appointments/{id} [put]
func UpdateAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid appointment ID")
		return
	}

	var req AppointmentUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	if req.Status != nil && !models.ValidStatus(*req.Status) {
		writeError(w, http.StatusBadRequest, "status must be confirmed, pending or cancelled")
		return
	}

	patch := repo.AppointmentPatch{
		ClientID:       req.ClientID,
		Service:        req.Service,
		ClientInitials: req.ClientInitials,
		Color:          req.Color,
		Status:         req.Status,
		Notes:          req.Notes,
	}
	if req.StartsAt != nil {
		starts, err := time.Parse(time.RFC3339, *req.StartsAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "starts_at must be RFC3339")
			return
		}
		patch.StartsAt = &starts
	}
	if req.EndsAt != nil {
		ends, err := time.Parse(time.RFC3339, *req.EndsAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "ends_at must be RFC3339")
			return
		}
		patch.EndsAt = &ends
	}
	// A single-sided reschedule is checked against the stored opposite
	// bound, so the window can never invert.
	if patch.StartsAt != nil || patch.EndsAt != nil {
		starts, ends := patch.StartsAt, patch.EndsAt
		if starts == nil || ends == nil {
			existing, err := appointmentRepo.GetByID(id)
			if err != nil {
				if errors.Is(err, repo.ErrAppointmentNotFound) {
					writeError(w, http.StatusNotFound, "appointment not found")
					return
				}
				logger.Error("could not fetch appointment", "id", id, "err", err)
				writeError(w, http.StatusInternalServerError, "could not update appointment")
				return
			}
			if starts == nil {
				starts = &existing.StartsAt
			}
			if ends == nil {
				ends = &existing.EndsAt
			}
		}
		if !ends.After(*starts) {
			writeError(w, http.StatusBadRequest, "ends_at must be after starts_at")
			return
		}
	}

	updated, err := appointmentRepo.Update(id, patch)
	if err != nil {
		if errors.Is(err, repo.ErrAppointmentNotFound) {
			writeError(w, http.StatusNotFound, "appointment not found")
			return
		}
		logger.Error("could not update appointment", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "could not update appointment")
		return
	}

	cacheSvc.Invalidate(r.Context(), cache.KeyAppointments)
	writeJSON(w, http.StatusOK, dataEnvelope{Data: updated})
}

// DeleteAppointmentHandler godoc
// @Summary Remove an appointment
// @Tags appointments
// @Param id path string true "Appointment ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {object} map[string]string
// @Router /api/appointments/{id} [delete]
func DeleteAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid appointment ID")
		return
	}

	if err := appointmentRepo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrAppointmentNotFound) {
			writeError(w, http.StatusNotFound, "appointment not found")
			return
		}
		logger.Error("could not delete appointment", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "could not delete appointment")
		return
	}

	cacheSvc.Invalidate(r.Context(), cache.KeyAppointments)
	w.WriteHeader(http.StatusNoContent)
}
