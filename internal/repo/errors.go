package repo

import "errors"

var (
	// ErrTransactionNotFound is returned when a transaction id does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrAppointmentNotFound is returned when an appointment id does not exist.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrClientNotFound is returned when a client id does not exist.
	ErrClientNotFound = errors.New("client not found")

	// ErrProductNotFound is returned when a product id does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidStockChange is returned when an adjustment would drive stock negative.
	ErrInvalidStockChange = errors.New("stock cannot go negative")
)
