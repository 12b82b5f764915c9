package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/glowdesk/glowdesk/internal/cache"
	"github.com/glowdesk/glowdesk/internal/models"
	"github.com/glowdesk/glowdesk/internal/repo"
)

// CreateClientHandler godoc
// @Summary Create a client record
// @Description Name and phone are enough (quick-create); the rest is optional.
// @Tags clients
// @Accept json
// @Produce json
// @Param client body ClientRequest true "Client to create"
// @Success 201 {object} dataEnvelope
// @Failure 400 {object} map[string]any
// @Failure 500 {object} map[string]string
// @Router /api/clients [post]
func CreateClientHandler(w http.ResponseWriter, r *http.Request) {
	var req ClientRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	if validationErrors := validateClient(req); len(validationErrors) > 0 {
		writeValidationErrors(w, validationErrors)
		return
	}

	created, err := clientRepo.Create(clientFromRequest(req))
	if err != nil {
		logger.Error("could not create client", "err", err)
		writeError(w, http.StatusInternalServerError, "could not create client")
		return
	}

	cacheSvc.Invalidate(r.Context(), cache.KeyClients)
	writeJSON(w, http.StatusCreated, dataEnvelope{Data: created})
}

func clientFromRequest(req ClientRequest) models.Client {
	status := req.Status
	if status == "" {
		status = models.ClientActive
	}
	now := time.Now().UTC()
	client := models.Client{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.BirthDate != "" {
		if birth, err := time.Parse(dateLayout, req.BirthDate); err == nil {
			client.BirthDate = &birth
		}
	}
	return client
}

// GetClientsHandler godoc
// @Summary List all clients
// @Tags clients
// @Produce json
// @Success 200 {object} listEnvelope
// @Failure 500 {object} map[string]string
// @Router /api/clients [get]
func GetClientsHandler(w http.ResponseWriter, r *http.Request) {
	var cached listEnvelope
	if cacheSvc.Get(r.Context(), cache.KeyClients, &cached) {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	clients, err := clientRepo.GetAll()
	if err != nil {
		logger.Error("could not fetch clients", "err", err)
		writeError(w, http.StatusInternalServerError, "could not fetch clients")
		return
	}
	if clients == nil {
		clients = []models.Client{}
	}

	response := listEnvelope{Data: clients, Meta: Meta{TotalCount: len(clients)}}
	cacheSvc.Set(r.Context(), cache.KeyClients, response)
	writeJSON(w, http.StatusOK, response)
}

// GetClientByIDHandler godoc
// @Summary Get client by ID
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dataEnvelope
// @Failure 404 {object} map[string]string
// @Router /api/clients/{id} [get]
func GetClientByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid client ID")
		return
	}

	client, err := clientRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrClientNotFound) {
			writeError(w, http.StatusNotFound, "client not found")
			return
		}
		logger.Error("could not fetch client", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "could not fetch client")
		return
	}
	writeJSON(w, http.StatusOK, dataEnvelope{Data: client})
}

// UpdateClientHandler godoc
// @Summary Partially update a client
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param client body ClientUpdateRequest true "Fields to update"
// @Success 200 {object} dataEnvelope
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/clients/{id} [put]
func UpdateClientHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid client ID")
		return
	}

	var req ClientUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	if req.Status != nil && *req.Status != models.ClientActive && *req.Status != models.ClientInactive {
		writeError(w, http.StatusBadRequest, "status must be active or inactive")
		return
	}

	patch := repo.ClientPatch{
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		Status: req.Status,
	}
	if req.BirthDate != nil {
		birth, err := time.Parse(dateLayout, *req.BirthDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
			return
		}
		patch.BirthDate = &birth
	}

	updated, err := clientRepo.Update(id, patch)
	if err != nil {
		if errors.Is(err, repo.ErrClientNotFound) {
			writeError(w, http.StatusNotFound, "client not found")
			return
		}
		logger.Error("could not update client", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "could not update client")
		return
	}

	cacheSvc.Invalidate(r.Context(), cache.KeyClients)
	writeJSON(w, http.StatusOK, dataEnvelope{Data: updated})
}

// DeleteClientHandler godoc
// @Summary Delete a client
// @Description Appointments and transactions that reference the client are
// @Description left in place.
// @Tags clients
// @Param id path string true "Client ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {object} map[string]string
// @Router /api/clients/{id} [delete]
func DeleteClientHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid client ID")
		return
	}

	if err := clientRepo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrClientNotFound) {
			writeError(w, http.StatusNotFound, "client not found")
			return
		}
		logger.Error("could not delete client", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "could not delete client")
		return
	}

	cacheSvc.Invalidate(r.Context(), cache.KeyClients)
	w.WriteHeader(http.StatusNoContent)
}

// ImportClientsHandler godoc
// @Summary Bulk quick-create clients from a CSV file
// @Description Expects a multipart upload with columns name, phone and
// @Description optionally email.
// @Tags clients
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} ImportClientsResult
// @Failure 400 {object} map[string]string
// @Router /api/clients/import [post]
func ImportClientsHandler(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	rows, err := parseClientCSV(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := ImportClientsResult{Errors: []FieldError{}}
	for i, row := range rows {
		req := ClientRequest{Name: row.name, Phone: row.phone, Email: row.email}
		if validationErrors := validateClient(req); len(validationErrors) > 0 {
			for _, ve := range validationErrors {
				result.Errors = append(result.Errors, FieldError{
					Field:       fmt.Sprintf("row %d: %s", i+2, ve.Field),
					Description: ve.Description,
				})
			}
			continue
		}
		if _, err := clientRepo.Create(clientFromRequest(req)); err != nil {
			result.Errors = append(result.Errors, FieldError{
				Field:       fmt.Sprintf("row %d", i+2),
				Description: "could not create client",
			})
			continue
		}
		result.ImportedClientsCount++
	}

	cacheSvc.Invalidate(r.Context(), cache.KeyClients)
	writeJSON(w, http.StatusOK, result)
}

type clientCSVRow struct {
	name  string
	phone string
	email string
}

func parseClientCSV(file multipart.File) ([]clientCSVRow, error) {
	reader := csv.NewReader(file)
	headers, err := reader.Read()
	if err != nil {
		return nil, errors.New("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index["name"]; !ok {
		return nil, errors.New("CSV must have a 'name' column")
	}
	if _, ok := index["phone"]; !ok {
		return nil, errors.New("CSV must have a 'phone' column")
	}

	var rows []clientCSVRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		row := clientCSVRow{
			name:  record[index["name"]],
			phone: record[index["phone"]],
		}
		if i, ok := index["email"]; ok && i < len(record) {
			row.email = record[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}
