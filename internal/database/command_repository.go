package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/haberhub/scraper/internal/domain"
)

// commandColumns lists the columns selected for command rows.
const commandColumns = `id, command, status, payload, created_at, executed_at`

// CommandRepository handles database operations for scrape-run commands.
type CommandRepository struct {
	db *sqlx.DB
}

// NewCommandRepository creates a new command repository.
func NewCommandRepository(db *sqlx.DB) *CommandRepository {
	return &CommandRepository{db: db}
}

// Create inserts a new command in the given status and returns it.
// Trigger endpoints create commands as PENDING; the cron path creates
// them directly in PROCESSING.
func (r *CommandRepository) Create(ctx context.Context, kind, status string) (*domain.Command, error) {
	command := &domain.Command{
		ID:      uuid.NewString(),
		Command: kind,
		Status:  status,
	}

	query := `
		INSERT INTO scrape_commands (id, command, status)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query, command.ID, command.Command, command.Status).
		Scan(&command.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create command: %w", err)
	}

	return command, nil
}

// GetByID retrieves a command by its id.
func (r *CommandRepository) GetByID(ctx context.Context, id string) (*domain.Command, error) {
	var command domain.Command
	query := `
		SELECT ` + commandColumns + `
		FROM scrape_commands
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &command, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get command: %w", err)
	}

	return &command, nil
}

// UpdateStatus transitions a command to the given status. A nil payload
// clears any previous payload. Terminal transitions also stamp
// executed_at.
func (r *CommandRepository) UpdateStatus(ctx context.Context, id, status string, payload *string) error {
	query := `
		UPDATE scrape_commands
		SET status = $1,
		    payload = $2,
		    executed_at = CASE WHEN $1 IN ('COMPLETED', 'FAILED') THEN now() ELSE executed_at END
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, status, payload, id)
	if err != nil {
		return fmt.Errorf("failed to update command status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("command not found: %s", id)
	}

	return nil
}

// FindLatest returns the most recently created command, or ErrNotFound
// when no command has ever been recorded.
func (r *CommandRepository) FindLatest(ctx context.Context) (*domain.Command, error) {
	var command domain.Command
	query := `
		SELECT ` + commandColumns + `
		FROM scrape_commands
		ORDER BY created_at DESC
		LIMIT 1
	`

	err := r.db.GetContext(ctx, &command, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest command: %w", err)
	}

	return &command, nil
}

// FindStuck returns all commands that are still PENDING or PROCESSING.
// After a clean shutdown this set is empty; anything found at startup was
// abandoned by a crash.
func (r *CommandRepository) FindStuck(ctx context.Context) ([]domain.Command, error) {
	var commands []domain.Command
	query := `
		SELECT ` + commandColumns + `
		FROM scrape_commands
		WHERE status IN ('PENDING', 'PROCESSING')
		ORDER BY created_at
	`

	err := r.db.SelectContext(ctx, &commands, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find stuck commands: %w", err)
	}

	if commands == nil {
		commands = []domain.Command{}
	}

	return commands, nil
}
