package repo

import (
	"github.com/google/uuid"

	"github.com/glowdesk/glowdesk/internal/models"
)

type InMemoryClientRepository struct {
	clients []models.Client
}

func NewInMemoryClientRepository() *InMemoryClientRepository {
	return &InMemoryClientRepository{clients: []models.Client{}}
}

func (r *InMemoryClientRepository) Create(c models.Client) (models.Client, error) {
	c.ID = uuid.NewString()
	r.clients = append(r.clients, c)
	return c, nil
}

func (r *InMemoryClientRepository) GetAll() ([]models.Client, error) {
	return r.clients, nil
}

func (r *InMemoryClientRepository) GetByID(id string) (models.Client, error) {
	for _, c := range r.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Client{}, ErrClientNotFound
}

func (r *InMemoryClientRepository) Update(id string, patch ClientPatch) (models.Client, error) {
	for i, c := range r.clients {
		if c.ID != id {
			continue
		}
		if patch.Name != nil {
			c.Name = *patch.Name
		}
		if patch.Phone != nil {
			c.Phone = *patch.Phone
		}
		if patch.Email != nil {
			c.Email = *patch.Email
		}
		if patch.BirthDate != nil {
			c.BirthDate = patch.BirthDate
		}
		if patch.Status != nil {
			c.Status = *patch.Status
		}
		r.clients[i] = c
		return c, nil
	}
	return models.Client{}, ErrClientNotFound
}

func (r *InMemoryClientRepository) Delete(id string) error {
	for i, c := range r.clients {
		if c.ID == id {
			r.clients = append(r.clients[:i], r.clients[i+1:]...)
			return nil
		}
	}
	return ErrClientNotFound
}

func (r *InMemoryClientRepository) Clear() {
	r.clients = []models.Client{}
}
