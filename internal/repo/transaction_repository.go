package repo

import (
	"time"

	"github.com/glowdesk/glowdesk/internal/models"
)

// TransactionRepository defines the interface for financial record operations.
type TransactionRepository interface {
	Create(t models.Transaction) (models.Transaction, error)
	GetByID(id string) (models.Transaction, error)
	Update(id string, patch TransactionPatch) (models.Transaction, error)
	Delete(id string) error
	Filter(f TransactionFilter) ([]models.Transaction, int, error)
}

type TransactionFilter struct {
	Type   string
	From   *time.Time
	To     *time.Time
	Offset *int
	Limit  *int
}

// TransactionPatch carries a partial update. Nil fields are left untouched;
// only non-nil fields overwrite the stored record.
type TransactionPatch struct {
	Type          *string
	Category      *string
	Amount        *float64
	Date          *time.Time
	Description   *string
	AppointmentID *string
	ClientID      *string
	PaymentMethod *string
	Notes         *string
}
