package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/glowdesk/glowdesk/internal/models"
)

type PostgresSettingsRepository struct {
	db *sql.DB
}

func NewPostgresSettingsRepository(db *sql.DB) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{db: db}
}

// The settings table holds exactly one row, keyed by a fixed id.

func (r *PostgresSettingsRepository) Get() (models.Settings, error) {
	query := `SELECT business_name, theme, tutorial_seen, updated_at FROM settings WHERE id = 1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var s models.Settings
	err := r.db.QueryRowContext(ctx, query).Scan(&s.BusinessName, &s.Theme, &s.TutorialSeen, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return defaultSettings(), nil
	}
	return s, err
}

func (r *PostgresSettingsRepository) Save(s models.Settings) (models.Settings, error) {
	query := `INSERT INTO settings (id, business_name, theme, tutorial_seen, updated_at)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET business_name = EXCLUDED.business_name,
		    theme = EXCLUDED.theme,
		    tutorial_seen = EXCLUDED.tutorial_seen,
		    updated_at = EXCLUDED.updated_at`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	s.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query, s.BusinessName, s.Theme, s.TutorialSeen, s.UpdatedAt)
	return s, err
}

func defaultSettings() models.Settings {
	return models.Settings{Theme: "light"}
}
