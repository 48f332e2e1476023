// Package runner owns the scrape-run command lifecycle: it picks up
// triggers, drives every source adapter in a fixed order, and records the
// outcome on the command row.
package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/haberhub/scraper/internal/domain"
	"github.com/haberhub/scraper/internal/ingest"
	"github.com/haberhub/scraper/internal/logger"
	"github.com/haberhub/scraper/internal/sources"
)

// ErrRunInProgress is returned when a trigger arrives while another run
// holds the advisory lock.
var ErrRunInProgress = errors.New("a scrape run is already in progress")

// CommandStore persists command lifecycle state.
type CommandStore interface {
	Create(ctx context.Context, kind, status string) (*domain.Command, error)
	GetByID(ctx context.Context, id string) (*domain.Command, error)
	UpdateStatus(ctx context.Context, id, status string, payload *string) error
	FindStuck(ctx context.Context) ([]domain.Command, error)
}

// MappingStore reads mappings and writes per-run telemetry.
type MappingStore interface {
	ListActive(ctx context.Context, sourceName string) ([]domain.SourceMapping, error)
	RecordRunResult(ctx context.Context, sourceURL, status string, itemCount int) error
}

// Ingestor merges one raw article into the store.
type Ingestor interface {
	Ingest(ctx context.Context, raw *domain.RawArticle) (ingest.Outcome, error)
}

// SourceAdapter is the per-publisher discovery and fetch contract.
type SourceAdapter interface {
	Source() string
	Discover(ctx context.Context, indexURL string) ([]sources.Candidate, error)
	Fetch(ctx context.Context, candidate sources.Candidate) (*domain.RawArticle, error)
}

// Runner executes scrape runs against the configured adapters.
type Runner struct {
	commands CommandStore
	mappings MappingStore
	ingestor Ingestor
	adapters []SourceAdapter
	log      logger.Interface

	// runTimeout is the wall-clock budget for one whole run.
	runTimeout time.Duration

	// runMu is the advisory lock enforcing one run at a time within this
	// process. Concurrent triggers fail fast instead of racing.
	runMu sync.Mutex
}

// New creates a runner. Adapters run in the order given.
func New(
	commands CommandStore,
	mappings MappingStore,
	ingestor Ingestor,
	adapters []SourceAdapter,
	runTimeout time.Duration,
	log logger.Interface,
) *Runner {
	return &Runner{
		commands:   commands,
		mappings:   mappings,
		ingestor:   ingestor,
		adapters:   adapters,
		runTimeout: runTimeout,
		log:        log.WithComponent("runner"),
	}
}

// Enqueue inserts a PENDING command and dispatches the run on a
// background goroutine. The caller gets the command back immediately; a
// multi-minute scrape never blocks a trigger request.
func (r *Runner) Enqueue(ctx context.Context, kind string) (*domain.Command, error) {
	command, err := r.commands.Create(ctx, kind, domain.CommandStatusPending)
	if err != nil {
		return nil, fmt.Errorf("enqueue command: %w", err)
	}

	go func() {
		// The trigger request's context ends when its response is
		// written; the run gets its own lifetime.
		if runErr := r.RunForCommand(context.Background(), command.ID); runErr != nil {
			r.log.Error("Dispatched run failed", "command_id", command.ID, "error", runErr)
		}
	}()

	return command, nil
}

// RunScheduled is the cron path. It synthesizes a CRON_RUN command
// directly in PROCESSING (no PENDING phase) and executes it.
func (r *Runner) RunScheduled(ctx context.Context) error {
	command, err := r.commands.Create(ctx, domain.CommandCronRun, domain.CommandStatusProcessing)
	if err != nil {
		return fmt.Errorf("scheduled run: %w", err)
	}

	r.log.Info("Scheduled run starting", "command_id", command.ID)
	return r.execute(ctx, command.ID)
}

// RunForCommand transitions a PENDING command to PROCESSING and executes
// it. A command that is no longer PENDING (already picked up, or
// reconciled away) is left alone.
func (r *Runner) RunForCommand(ctx context.Context, commandID string) error {
	command, err := r.commands.GetByID(ctx, commandID)
	if err != nil {
		return fmt.Errorf("run command: %w", err)
	}

	if transitionErr := ValidateTransition(command.Status, domain.CommandStatusProcessing); transitionErr != nil {
		return fmt.Errorf("run command %s: %w", commandID, transitionErr)
	}

	if updateErr := r.commands.UpdateStatus(ctx, commandID, domain.CommandStatusProcessing, nil); updateErr != nil {
		return fmt.Errorf("run command: %w", updateErr)
	}

	return r.execute(ctx, commandID)
}

// execute runs all adapters under the advisory lock and the run budget,
// then records the terminal status on the command.
func (r *Runner) execute(ctx context.Context, commandID string) error {
	if !r.runMu.TryLock() {
		payload := ErrRunInProgress.Error()
		if failErr := r.commands.UpdateStatus(ctx, commandID, domain.CommandStatusFailed, &payload); failErr != nil {
			return fmt.Errorf("reject concurrent run: %w", failErr)
		}
		return fmt.Errorf("command %s: %w", commandID, ErrRunInProgress)
	}
	defer r.runMu.Unlock()

	runCtx, cancel := context.WithTimeout(ctx, r.runTimeout)
	defer cancel()

	started := time.Now()
	stats, firstErr := r.runAllSources(runCtx)

	r.log.Info("Run finished",
		"command_id", commandID,
		"duration", time.Since(started),
		"inserted", stats.Inserted,
		"updated", stats.Updated,
		"skipped", stats.Skipped,
		"failed", stats.Failed)

	if runCtx.Err() != nil {
		payload := fmt.Sprintf("run exceeded budget of %s", r.runTimeout)
		if failErr := r.commands.UpdateStatus(ctx, commandID, domain.CommandStatusFailed, &payload); failErr != nil {
			return fmt.Errorf("record timeout: %w", failErr)
		}
		return fmt.Errorf("command %s: %s", commandID, payload)
	}

	if firstErr != nil {
		payload := firstErr.Error()
		if failErr := r.commands.UpdateStatus(ctx, commandID, domain.CommandStatusFailed, &payload); failErr != nil {
			return fmt.Errorf("record failure: %w", failErr)
		}
		return fmt.Errorf("command %s: %w", commandID, firstErr)
	}

	if completeErr := r.commands.UpdateStatus(ctx, commandID, domain.CommandStatusCompleted, nil); completeErr != nil {
		return fmt.Errorf("record completion: %w", completeErr)
	}

	return nil
}

// runAllSources drives every adapter in the fixed order. One source
// failing must not block the others; the first captured error becomes the
// command payload.
func (r *Runner) runAllSources(ctx context.Context) (domain.RunStats, error) {
	var total domain.RunStats
	var firstErr error

	for _, adapter := range r.adapters {
		if ctx.Err() != nil {
			break
		}

		stats, err := r.runSource(ctx, adapter)
		total.Add(stats)

		if err != nil {
			r.log.Error("Source run failed",
				"source", adapter.Source(), "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return total, firstErr
}

// runSource walks every active mapping of one source. Mapping telemetry
// is recorded per entry regardless of per-article outcome.
func (r *Runner) runSource(ctx context.Context, adapter SourceAdapter) (domain.RunStats, error) {
	sourceName := adapter.Source()

	mappings, err := r.mappings.ListActive(ctx, sourceName)
	if err != nil {
		return domain.RunStats{}, fmt.Errorf("list mappings for %s: %w", sourceName, err)
	}

	r.log.Info("Running source", "source", sourceName, "mappings", len(mappings))

	var total domain.RunStats
	var firstErr error

	for i := range mappings {
		if ctx.Err() != nil {
			break
		}

		mapping := &mappings[i]
		stats, mappingErr := r.runMapping(ctx, adapter, mapping)
		total.Add(stats)

		status := domain.MappingStatusSuccess
		if mappingErr != nil {
			status = domain.MappingStatusFailed
			if firstErr == nil {
				firstErr = mappingErr
			}
		}

		itemCount := stats.Inserted + stats.Updated
		if recordErr := r.mappings.RecordRunResult(ctx, mapping.SourceURL, status, itemCount); recordErr != nil {
			r.log.Error("Failed to record mapping telemetry",
				"source_url", mapping.SourceURL, "error", recordErr)
			if firstErr == nil {
				firstErr = recordErr
			}
		}
	}

	return total, firstErr
}

// runMapping scrapes one index entry. A single bad article never aborts
// the mapping; fetch and ingest errors are zero-yield for that article.
func (r *Runner) runMapping(
	ctx context.Context,
	adapter SourceAdapter,
	mapping *domain.SourceMapping,
) (domain.RunStats, error) {
	var stats domain.RunStats

	candidates, err := adapter.Discover(ctx, mapping.SourceURL)
	if err != nil {
		return stats, fmt.Errorf("discover %s: %w", mapping.SourceURL, err)
	}

	r.log.Debug("Discovered candidates",
		"source_url", mapping.SourceURL, "count", len(candidates))

	for _, candidate := range candidates {
		if ctx.Err() != nil {
			break
		}

		raw, fetchErr := adapter.Fetch(ctx, candidate)
		if fetchErr != nil {
			if errors.Is(fetchErr, sources.ErrNoTitle) {
				r.log.Debug("Article rejected, no title", "url", candidate.URL)
				stats.Skipped++
				continue
			}
			r.log.Warn("Article fetch failed", "url", candidate.URL, "error", fetchErr)
			stats.Failed++
			continue
		}

		raw.TargetCategory = mapping.TargetCategory

		outcome, ingestErr := r.ingestor.Ingest(ctx, raw)
		if ingestErr != nil {
			r.log.Warn("Article ingest failed", "url", candidate.URL, "error", ingestErr)
			stats.Failed++
			continue
		}

		switch outcome {
		case ingest.OutcomeInserted:
			stats.Inserted++
		case ingest.OutcomeUpdated:
			stats.Updated++
		case ingest.OutcomeSkipped:
			stats.Skipped++
		}
	}

	return stats, nil
}

// ReconcileOnStartup force-fails commands left PENDING or PROCESSING by a
// prior crash. A command must never silently survive a restart in a
// non-terminal state.
func (r *Runner) ReconcileOnStartup(ctx context.Context) error {
	stuck, err := r.commands.FindStuck(ctx)
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}

	for i := range stuck {
		command := &stuck[i]
		payload := fmt.Sprintf("force-failed on startup: process restarted while command was %s", command.Status)

		if updateErr := r.commands.UpdateStatus(ctx, command.ID, domain.CommandStatusFailed, &payload); updateErr != nil {
			return fmt.Errorf("reconcile command %s: %w", command.ID, updateErr)
		}

		r.log.Warn("Reconciled stuck command",
			"command_id", command.ID, "previous_status", command.Status)
	}

	if len(stuck) > 0 {
		r.log.Info("Startup reconcile complete", "reconciled", len(stuck))
	}

	return nil
}
