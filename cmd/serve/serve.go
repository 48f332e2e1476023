// Package serve implements the long-running service command: HTTP
// trigger API plus the cron scheduler.
package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/haberhub/scraper/cmd/common"
	"github.com/haberhub/scraper/internal/api"
	"github.com/haberhub/scraper/internal/scheduler"
)

const (
	// shutdownTimeout bounds graceful HTTP shutdown.
	shutdownTimeout = 10 * time.Second
	// channelBuffer sizes the signal and error channels.
	channelBuffer = 1
)

// Command creates the serve command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the scraper service (HTTP API + scheduler)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

// runServe wires everything together and blocks until shutdown.
func runServe(ctx context.Context) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to get dependencies: %w", err)
	}
	defer deps.Close()

	run, commandRepo, mappingRepo, err := common.NewRunner(deps)
	if err != nil {
		return err
	}

	// Commands abandoned by a prior crash must be repaired before any new
	// run starts.
	if reconcileErr := run.ReconcileOnStartup(ctx); reconcileErr != nil {
		return reconcileErr
	}

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	cronScheduler := scheduler.New(serveCtx, run, deps.Config.Scraper.CronInterval, deps.Logger)
	if startErr := cronScheduler.Start(); startErr != nil {
		return startErr
	}
	defer cronScheduler.Stop()

	handler := api.NewHandler(run, commandRepo, mappingRepo, deps.DB, deps.Logger)
	server := api.NewHTTPServer(handler, deps.Config)

	errChan := make(chan error, channelBuffer)
	go func() {
		deps.Logger.Info("Starting HTTP server", "addr", deps.Config.Server.Address)
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}()

	sigChan := make(chan os.Signal, channelBuffer)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case serverErr := <-errChan:
		deps.Logger.Error("Server error", "error", serverErr)
		return fmt.Errorf("server error: %w", serverErr)
	case sig := <-sigChan:
		deps.Logger.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		return fmt.Errorf("failed to shut down server: %w", shutdownErr)
	}

	return nil
}
