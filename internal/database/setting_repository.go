package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/haberhub/scraper/internal/domain"
)

// SettingRepository handles database operations for per-source settings.
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository creates a new setting repository.
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetBySource retrieves the setting row for one source. Returns
// ErrNotFound when the source has no settings row.
func (r *SettingRepository) GetBySource(ctx context.Context, sourceName string) (*domain.SourceSetting, error) {
	var setting domain.SourceSetting
	query := `
		SELECT id, source_name, is_active, auto_publish, created_at, updated_at
		FROM source_settings
		WHERE source_name = $1
	`

	err := r.db.GetContext(ctx, &setting, query, sourceName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get source setting: %w", err)
	}

	return &setting, nil
}
