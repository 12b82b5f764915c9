package repo

import "github.com/glowdesk/glowdesk/internal/models"

// SettingsRepository stores the single business-wide settings record.
type SettingsRepository interface {
	Get() (models.Settings, error)
	Save(s models.Settings) (models.Settings, error)
}
