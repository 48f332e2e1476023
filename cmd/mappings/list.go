package mappings

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/haberhub/scraper/cmd/common"
	"github.com/haberhub/scraper/internal/database"
	"github.com/haberhub/scraper/internal/domain"
)

// NewListCommand creates the mappings list command. It displays every
// configured mapping with its last-run telemetry in a table.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all source mappings with last-run telemetry",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to get dependencies: %w", err)
			}
			defer deps.Close()

			repo := database.NewMappingRepository(deps.DB)
			mappings, err := repo.ListAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list mappings: %w", err)
			}

			if len(mappings) == 0 {
				deps.Logger.Info("No mappings configured")
				return nil
			}

			renderTable(mappings)
			return nil
		},
	}
}

// renderTable formats mappings as a table on stdout.
func renderTable(mappings []domain.SourceMapping) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Source", "Index URL", "Category", "Active", "Last Scraped", "Last Status", "Items"})

	for i := range mappings {
		m := &mappings[i]
		t.AppendRow(table.Row{
			m.SourceName,
			m.SourceURL,
			m.TargetCategory,
			m.IsActive,
			formatTimePtr(m.LastScrapedAt),
			formatStringPtr(m.LastStatus),
			formatIntPtr(m.LastItemCount),
		})
	}

	t.Render()
}

// formatTimePtr renders a nullable timestamp, "-" when never scraped.
func formatTimePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

// formatStringPtr renders a nullable string, "-" when unset.
func formatStringPtr(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

// formatIntPtr renders a nullable count, "-" when unset.
func formatIntPtr(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}
