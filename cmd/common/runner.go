package common

import (
	"fmt"

	"github.com/haberhub/scraper/internal/database"
	"github.com/haberhub/scraper/internal/ingest"
	"github.com/haberhub/scraper/internal/runner"
	"github.com/haberhub/scraper/internal/sources"
)

// NewRunner wires the repositories, ingestion engine, and source
// adapters into a run orchestrator.
func NewRunner(deps *CommandDeps) (*runner.Runner, *database.CommandRepository, *database.MappingRepository, error) {
	articleRepo := database.NewArticleRepository(deps.DB)
	mappingRepo := database.NewMappingRepository(deps.DB)
	settingRepo := database.NewSettingRepository(deps.DB)
	categoryRepo := database.NewCategoryRepository(deps.DB)
	commandRepo := database.NewCommandRepository(deps.DB)

	engine := ingest.NewEngine(articleRepo, settingRepo, categoryRepo, deps.Logger)

	adapters, err := sources.BuildAdapters(deps.Config.Scraper, deps.Logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build adapters: %w", err)
	}

	sourceAdapters := make([]runner.SourceAdapter, 0, len(adapters))
	for _, adapter := range adapters {
		sourceAdapters = append(sourceAdapters, adapter)
	}

	run := runner.New(
		commandRepo,
		mappingRepo,
		engine,
		sourceAdapters,
		deps.Config.Scraper.RunTimeout,
		deps.Logger,
	)

	return run, commandRepo, mappingRepo, nil
}
