// Package scrape implements the one-shot scrape command.
package scrape

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haberhub/scraper/cmd/common"
	"github.com/haberhub/scraper/internal/domain"
)

// Command creates the scrape command. It runs one FORCE_RUN command
// synchronously and exits.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Run one scrape pass over all sources and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to get dependencies: %w", err)
			}
			defer deps.Close()

			run, commandRepo, _, err := common.NewRunner(deps)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			if reconcileErr := run.ReconcileOnStartup(ctx); reconcileErr != nil {
				return reconcileErr
			}

			command, err := commandRepo.Create(ctx, domain.CommandForceRun, domain.CommandStatusPending)
			if err != nil {
				return fmt.Errorf("failed to create command: %w", err)
			}

			deps.Logger.Info("Starting one-shot scrape", "command_id", command.ID)
			return run.RunForCommand(ctx, command.ID)
		},
	}
}
