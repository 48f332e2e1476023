package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/haberhub/scraper/internal/domain"
)

// MappingRepository handles database operations for source mappings.
type MappingRepository struct {
	db *sqlx.DB
}

// NewMappingRepository creates a new mapping repository.
func NewMappingRepository(db *sqlx.DB) *MappingRepository {
	return &MappingRepository{db: db}
}

// ListActive retrieves the active mappings for one source, oldest first
// so runs walk mappings in a stable order.
func (r *MappingRepository) ListActive(ctx context.Context, sourceName string) ([]domain.SourceMapping, error) {
	var mappings []domain.SourceMapping
	query := `
		SELECT id, source_name, source_url, target_category, is_active,
		       last_scraped_at, last_status, last_item_count, created_at, updated_at
		FROM source_mappings
		WHERE source_name = $1 AND is_active = true
		ORDER BY id
	`

	err := r.db.SelectContext(ctx, &mappings, query, sourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to list mappings: %w", err)
	}

	if mappings == nil {
		mappings = []domain.SourceMapping{}
	}

	return mappings, nil
}

// ListAll retrieves every mapping regardless of source or active flag.
// Used by the operator-facing telemetry views.
func (r *MappingRepository) ListAll(ctx context.Context) ([]domain.SourceMapping, error) {
	var mappings []domain.SourceMapping
	query := `
		SELECT id, source_name, source_url, target_category, is_active,
		       last_scraped_at, last_status, last_item_count, created_at, updated_at
		FROM source_mappings
		ORDER BY source_name, id
	`

	err := r.db.SelectContext(ctx, &mappings, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list all mappings: %w", err)
	}

	if mappings == nil {
		mappings = []domain.SourceMapping{}
	}

	return mappings, nil
}

// RecordRunResult writes the last-run telemetry for one mapping. Called
// once per mapping per run regardless of per-article outcome.
func (r *MappingRepository) RecordRunResult(ctx context.Context, sourceURL, status string, itemCount int) error {
	query := `
		UPDATE source_mappings
		SET last_scraped_at = now(), last_status = $1, last_item_count = $2, updated_at = now()
		WHERE source_url = $3
	`

	result, err := r.db.ExecContext(ctx, query, status, itemCount, sourceURL)
	if err != nil {
		return fmt.Errorf("failed to record run result: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("mapping not found: %s", sourceURL)
	}

	return nil
}
