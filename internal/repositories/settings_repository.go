package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"onemsu-server/internal/models"
)

// SettingsRepository manages the singleton site settings row and the
// append-only feedback log.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (models.OwnerSettings, error)
	UpdateSettings(ctx context.Context, settings models.OwnerSettings) (models.OwnerSettings, error)
	CreateFeedback(ctx context.Context, userID int, content string) (models.Feedback, error)
}

// SettingsRepo is a sqlx-backed implementation.
type SettingsRepo struct {
	db *sqlx.DB
}

// NewSettingsRepo constructs a SettingsRepo.
func NewSettingsRepo(db *sqlx.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// GetSettings returns the singleton row. Migrations seed it, so it always
// exists.
func (r *SettingsRepo) GetSettings(ctx context.Context) (models.OwnerSettings, error) {
	var settings models.OwnerSettings
	err := r.db.GetContext(ctx, &settings,
		`SELECT id, site_name, maintenance_mode, messenger_enabled, confession_enabled, updated_at
         FROM owner_settings WHERE id=1`)
	return settings, err
}

// UpdateSettings overwrites the singleton row and stamps updated_at.
func (r *SettingsRepo) UpdateSettings(ctx context.Context, settings models.OwnerSettings) (models.OwnerSettings, error) {
	var updated models.OwnerSettings
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO owner_settings (id, site_name, maintenance_mode, messenger_enabled, confession_enabled, updated_at)
         VALUES (1, $1, $2, $3, $4, NOW())
         ON CONFLICT (id) DO UPDATE SET
             site_name = EXCLUDED.site_name,
             maintenance_mode = EXCLUDED.maintenance_mode,
             messenger_enabled = EXCLUDED.messenger_enabled,
             confession_enabled = EXCLUDED.confession_enabled,
             updated_at = NOW()
         RETURNING id, site_name, maintenance_mode, messenger_enabled, confession_enabled, updated_at`,
		settings.SiteName, settings.MaintenanceMode, settings.MessengerEnabled, settings.ConfessionEnabled).StructScan(&updated)
	return updated, err
}

// CreateFeedback appends a feedback entry.
func (r *SettingsRepo) CreateFeedback(ctx context.Context, userID int, content string) (models.Feedback, error) {
	var fb models.Feedback
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO feedback (user_id, content) VALUES ($1, $2) RETURNING id, user_id, content, created_at`,
		userID, content).StructScan(&fb)
	return fb, err
}
