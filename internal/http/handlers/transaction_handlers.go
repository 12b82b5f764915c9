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

// CreateTransactionHandler godoc
// @Summary Record a financial transaction
// @Tags financial
// @Accept json
// @Produce json
// @Param transaction body TransactionRequest true "Transaction to record"
// @Success 201 {object} dataEnvelope
// @Failure 400 {object} map[string]any
// @Failure 500 {object} map[string]string
// @Router /api/financial/transactions [post]
func CreateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	var req TransactionRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	if validationErrors := validateTransaction(req); len(validationErrors) > 0 {
		writeValidationErrors(w, validationErrors)
		return
	}

	date, _ := time.Parse(dateLayout, req.Date)
	now := time.Now().UTC()
	transaction := models.Transaction{
		Type:          req.Type,
		Category:      req.Category,
		Amount:        *req.Amount,
		Date:          date,
		Description:   req.Description,
		AppointmentID: req.AppointmentID,
		ClientID:      req.ClientID,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := transactionRepo.Create(transaction)
	if err != nil {
		logger.Error("could not create transaction", "err", err)
		writeError(w, http.StatusInternalServerError, "could not create transaction")
		return
	}

	cacheSvc.Invalidate(r.Context(), cache.KeyTransactions)
	writeJSON(w, http.StatusCreated, dataEnvelope{Data: created})
}

// GetTransactionsHandler godoc
// @Summary List transactions
// @Tags financial
// @Produce json
// @Param type query string false "income or expense"
// @Param startDate query string false "Lower date bound (YYYY-MM-DD)"
// @Param endDate query string false "Upper date bound (YYYY-MM-DD)"
// @Success 200 {object} listEnvelope
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/financial/transactions [get]
func GetTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repo.TransactionFilter{Type: q.Get("type")}
	if filter.Type != "" && filter.Type != models.TransactionIncome && filter.Type != models.TransactionExpense {
		writeError(w, http.StatusBadRequest, "type must be 'income' or 'expense'")
		return
	}

	if s := q.Get("startDate"); s != "" {
		ts, err := time.Parse(dateLayout, s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
			return
		}
		filter.From = &ts
	}
	if s := q.Get("endDate"); s != "" {
		ts, err := time.Parse(dateLayout, s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "endDate must be YYYY-MM-DD")
			return
		}
		filter.To = &ts
	}

	unfiltered := filter.Type == "" && filter.From == nil && filter.To == nil
	if unfiltered {
		var cached listEnvelope
		if cacheSvc.Get(r.Context(), cache.KeyTransactions, &cached) {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	transactions, total, err := transactionRepo.Filter(filter)
	if err != nil {
		logger.Error("could not fetch transactions", "err", err)
		writeError(w, http.StatusInternalServerError, "could not fetch transactions")
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	response := listEnvelope{Data: transactions, Meta: Meta{TotalCount: total}}
	if unfiltered {
		cacheSvc.Set(r.Context(), cache.KeyTransactions, response)
	}
	writeJSON(w, http.StatusOK, response)
}

// GetTransactionByIDHandler godoc
// @Summary Get transaction by ID
// @Tags financial
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dataEnvelope
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/financial/transactions/{id} [get]
func GetTransactionByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction ID")
		return
	}

	transaction, err := transactionRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrTransactionNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		logger.Error("could not fetch transaction", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "could not fetch transaction")
		return
	}
	writeJSON(w, http.StatusOK, dataEnvelope{Data: transaction})
}

// UpdateTransactionHandler godoc
// @Summary Partially update a transaction
// @Description Only fields present in the body are written.
// @Tags financial
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param transaction body TransactionUpdateRequest true "Fields to update"
// @Success 200 {object} dataEnvelope
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/financial/transactions/{id} [put]
func UpdateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction ID")
		return
	}

	var req TransactionUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	if req.Type != nil && *req.Type != models.TransactionIncome && *req.Type != models.TransactionExpense {
		writeError(w, http.StatusBadRequest, "type must be 'income' or 'expense'")
		return
	}

	patch := repo.TransactionPatch{
		Type:          req.Type,
		Category:      req.Category,
		Amount:        req.Amount,
		Description:   req.Description,
		AppointmentID: req.AppointmentID,
		ClientID:      req.ClientID,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		patch.Date = &date
	}

	updated, err := transactionRepo.Update(id, patch)
	if err != nil {
		if errors.Is(err, repo.ErrTransactionNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		logger.Error("could not update transaction", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "could not update transaction")
		return
	}

	cacheSvc.Invalidate(r.Context(), cache.KeyTransactions)
	writeJSON(w, http.StatusOK, dataEnvelope{Data: updated})
}

// DeleteTransactionHandler godoc
// @Summary Delete a transaction
// @Tags financial
// @Param id path string true "Transaction ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/financial/transactions/{id} [delete]
func DeleteTransactionHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction ID")
		return
	}

	if err := transactionRepo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrTransactionNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		logger.Error("could not delete transaction", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "could not delete transaction")
		return
	}

	cacheSvc.Invalidate(r.Context(), cache.KeyTransactions)
	w.WriteHeader(http.StatusNoContent)
}
