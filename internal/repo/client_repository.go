package repo

import (
	"time"

	"github.com/glowdesk/glowdesk/internal/models"
)

// ClientRepository defines the interface for client record operations.
// Delete does not cascade: appointments and transactions that reference a
// removed client keep their linkage.
type ClientRepository interface {
	Create(c models.Client) (models.Client, error)
	GetAll() ([]models.Client, error)
	GetByID(id string) (models.Client, error)
	Update(id string, patch ClientPatch) (models.Client, error)
	Delete(id string) error
}

type ClientPatch struct {
	Name      *string
	Phone     *string
	Email     *string
	BirthDate *time.Time
	Status    *string
}
