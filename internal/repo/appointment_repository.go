package repo

import (
	"time"

	"github.com/glowdesk/glowdesk/internal/models"
)

// AppointmentRepository defines the interface for booking operations.
type AppointmentRepository interface {
	Create(a models.Appointment) (models.Appointment, error)
	GetByID(id string) (models.Appointment, error)
	Update(id string, patch AppointmentPatch) (models.Appointment, error)
	Delete(id string) error
	Filter(f AppointmentFilter) ([]models.Appointment, int, error)
}

type AppointmentFilter struct {
	From     *time.Time
	To       *time.Time
	ClientID string
	Status   string
	Offset   *int
	Limit    *int
}

// AppointmentPatch carries a partial update (reschedule, status change, notes).
type AppointmentPatch struct {
	StartsAt       *time.Time
	EndsAt         *time.Time
	ClientID       *string
	Service        *string
	ClientInitials *string
	Color          *string
	Status         *string
	Notes          *string
}
