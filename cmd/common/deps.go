// Package common provides shared dependency construction for CLI
// commands.
package common

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"

	"github.com/haberhub/scraper/internal/config"
	"github.com/haberhub/scraper/internal/database"
	"github.com/haberhub/scraper/internal/logger"
)

// CommandDeps bundles the dependencies every command needs.
type CommandDeps struct {
	Config *config.Config
	Logger logger.Interface
	DB     *sqlx.DB
}

// NewCommandDeps loads configuration, builds the logger, and opens the
// database connection.
func NewCommandDeps() (*CommandDeps, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &CommandDeps{
		Config: cfg,
		Logger: log,
		DB:     db,
	}, nil
}

// Close releases the dependencies.
func (d *CommandDeps) Close() {
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			d.Logger.Warn("Failed to close database", "error", err)
		}
	}
}
