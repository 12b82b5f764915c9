package repo

import (
	"time"

	"github.com/glowdesk/glowdesk/internal/models"
)

type InMemorySettingsRepository struct {
	settings models.Settings
	saved    bool
}

func NewInMemorySettingsRepository() *InMemorySettingsRepository {
	return &InMemorySettingsRepository{}
}

func (r *InMemorySettingsRepository) Get() (models.Settings, error) {
	if !r.saved {
		return defaultSettings(), nil
	}
	return r.settings, nil
}

func (r *InMemorySettingsRepository) Save(s models.Settings) (models.Settings, error) {
	s.UpdatedAt = time.Now().UTC()
	r.settings = s
	r.saved = true
	return s, nil
}
