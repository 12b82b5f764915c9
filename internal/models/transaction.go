package models

import "time"

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Transaction is a single financial record, optionally linked to the
// appointment or client it originated from.
type Transaction struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Category      string     `json:"category"`
	Amount        float64    `json:"amount"`
	Date          time.Time  `json:"date"`
	Description   string     `json:"description"`
	AppointmentID *string    `json:"appointment_id,omitempty"`
	ClientID      *string    `json:"client_id,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
