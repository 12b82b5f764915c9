package models

import "time"

const (
	AppointmentConfirmed = "confirmed"
	AppointmentPending   = "pending"
	AppointmentCancelled = "cancelled"
)

// Appointment is a booked time slot. StartsAt must precede EndsAt; status
// transitions are deliberately unconstrained.
type Appointment struct {
	ID             string    `json:"id"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	ClientID       *string   `json:"client_id,omitempty"`
	Service        string    `json:"service"`
	ClientInitials string    `json:"client_initials,omitempty"`
	Color          string    `json:"color,omitempty"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ValidStatus reports whether s is one of the three appointment statuses.
func ValidStatus(s string) bool {
	return s == AppointmentConfirmed || s == AppointmentPending || s == AppointmentCancelled
}
