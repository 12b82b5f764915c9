package repo

import (
	"sort"

	"github.com/google/uuid"

	"github.com/glowdesk/glowdesk/internal/models"
)

type InMemoryAppointmentRepository struct {
	appointments []models.Appointment
}

func NewInMemoryAppointmentRepository() *InMemoryAppointmentRepository {
	return &InMemoryAppointmentRepository{appointments: []models.Appointment{}}
}

func (r *InMemoryAppointmentRepository) Create(a models.Appointment) (models.Appointment, error) {
	a.ID = uuid.NewString()
	r.appointments = append(r.appointments, a)
	return a, nil
}

func (r *InMemoryAppointmentRepository) GetByID(id string) (models.Appointment, error) {
	for _, a := range r.appointments {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Appointment{}, ErrAppointmentNotFound
}

func (r *InMemoryAppointmentRepository) Update(id string, patch AppointmentPatch) (models.Appointment, error) {
	for i, a := range r.appointments {
		if a.ID != id {
			continue
		}
		if patch.StartsAt != nil {
			a.StartsAt = *patch.StartsAt
		}
		if patch.EndsAt != nil {
			a.EndsAt = *patch.EndsAt
		}
		if patch.ClientID != nil {
			a.ClientID = patch.ClientID
		}
		if patch.Service != nil {
			a.Service = *patch.Service
		}
		if patch.ClientInitials != nil {
			a.ClientInitials = *patch.ClientInitials
		}
		if patch.Color != nil {
			a.Color = *patch.Color
		}
		if patch.Status != nil {
			a.Status = *patch.Status
		}
		if patch.Notes != nil {
			a.Notes = *patch.Notes
		}
		r.appointments[i] = a
		return a, nil
	}
	return models.Appointment{}, ErrAppointmentNotFound
}

func (r *InMemoryAppointmentRepository) Delete(id string) error {
	for i, a := range r.appointments {
		if a.ID == id {
			r.appointments = append(r.appointments[:i], r.appointments[i+1:]...)
			return nil
		}
	}
	return ErrAppointmentNotFound
}

func (r *InMemoryAppointmentRepository) Filter(f AppointmentFilter) ([]models.Appointment, int, error) {
	var matched []models.Appointment
	for _, a := range r.appointments {
		if f.From != nil && a.StartsAt.Before(*f.From) {
			continue
		}
		if f.To != nil && a.StartsAt.After(*f.To) {
			continue
		}
		if f.ClientID != "" && (a.ClientID == nil || *a.ClientID != f.ClientID) {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		matched = append(matched, a)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].StartsAt.Before(matched[j].StartsAt)
	})

	total := len(matched)
	if f.Offset != nil && *f.Offset > 0 {
		if *f.Offset >= len(matched) {
			return []models.Appointment{}, total, nil
		}
		matched = matched[*f.Offset:]
	}
	if f.Limit != nil && *f.Limit > 0 && *f.Limit < len(matched) {
		matched = matched[:*f.Limit]
	}
	return matched, total, nil
}

// All returns the current contents, used by the in-memory dashboard repository.
func (r *InMemoryAppointmentRepository) All() []models.Appointment {
	return r.appointments
}

func (r *InMemoryAppointmentRepository) Clear() {
	r.appointments = []models.Appointment{}
}
