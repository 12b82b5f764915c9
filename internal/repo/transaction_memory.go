package repo

import (
	"sort"

	"github.com/google/uuid"

	"github.com/glowdesk/glowdesk/internal/models"
)

// InMemoryTransactionRepository is a non-persistent implementation used by the
// handler test suites.
type InMemoryTransactionRepository struct {
	transactions []models.Transaction
}

func NewInMemoryTransactionRepository() *InMemoryTransactionRepository {
	return &InMemoryTransactionRepository{transactions: []models.Transaction{}}
}

func (r *InMemoryTransactionRepository) Create(t models.Transaction) (models.Transaction, error) {
	t.ID = uuid.NewString()
	r.transactions = append(r.transactions, t)
	return t, nil
}

func (r *InMemoryTransactionRepository) GetByID(id string) (models.Transaction, error) {
	for _, t := range r.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Transaction{}, ErrTransactionNotFound
}

func (r *InMemoryTransactionRepository) Update(id string, patch TransactionPatch) (models.Transaction, error) {
	for i, t := range r.transactions {
		if t.ID != id {
			continue
		}
		if patch.Type != nil {
			t.Type = *patch.Type
		}
		if patch.Category != nil {
			t.Category = *patch.Category
		}
		if patch.Amount != nil {
			t.Amount = *patch.Amount
		}
		if patch.Date != nil {
			t.Date = *patch.Date
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.AppointmentID != nil {
			t.AppointmentID = patch.AppointmentID
		}
		if patch.ClientID != nil {
			t.ClientID = patch.ClientID
		}
		if patch.PaymentMethod != nil {
			t.PaymentMethod = *patch.PaymentMethod
		}
		if patch.Notes != nil {
			t.Notes = *patch.Notes
		}
		r.transactions[i] = t
		return t, nil
	}
	return models.Transaction{}, ErrTransactionNotFound
}

func (r *InMemoryTransactionRepository) Delete(id string) error {
	for i, t := range r.transactions {
		if t.ID == id {
			r.transactions = append(r.transactions[:i], r.transactions[i+1:]...)
			return nil
		}
	}
	return ErrTransactionNotFound
}

func (r *InMemoryTransactionRepository) Filter(f TransactionFilter) ([]models.Transaction, int, error) {
	var matched []models.Transaction
	for _, t := range r.transactions {
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.From != nil && t.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && t.Date.After(*f.To) {
			continue
		}
		matched = append(matched, t)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Date.After(matched[j].Date)
	})

	total := len(matched)
	if f.Offset != nil && *f.Offset > 0 {
		if *f.Offset >= len(matched) {
			return []models.Transaction{}, total, nil
		}
		matched = matched[*f.Offset:]
	}
	if f.Limit != nil && *f.Limit > 0 && *f.Limit < len(matched) {
		matched = matched[:*f.Limit]
	}
	return matched, total, nil
}

// All returns the current contents, used by the in-memory dashboard repository.
func (r *InMemoryTransactionRepository) All() []models.Transaction {
	return r.transactions
}

func (r *InMemoryTransactionRepository) Clear() {
	r.transactions = []models.Transaction{}
}
