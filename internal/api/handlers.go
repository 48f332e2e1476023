// Package api implements the HTTP trigger surface for the scraper: run
// now, run status, mapping telemetry, and health.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haberhub/scraper/internal/database"
	"github.com/haberhub/scraper/internal/domain"
	"github.com/haberhub/scraper/internal/logger"
)

// Trigger enqueues scrape runs.
type Trigger interface {
	Enqueue(ctx context.Context, kind string) (*domain.Command, error)
}

// CommandReader reads command state.
type CommandReader interface {
	FindLatest(ctx context.Context) (*domain.Command, error)
}

// MappingReader reads mapping telemetry.
type MappingReader interface {
	ListAll(ctx context.Context) ([]domain.SourceMapping, error)
}

// Pinger checks store connectivity for the health endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler holds the API dependencies.
type Handler struct {
	trigger  Trigger
	commands CommandReader
	mappings MappingReader
	pinger   Pinger
	log      logger.Interface
}

// NewHandler creates the API handler.
func NewHandler(
	trigger Trigger,
	commands CommandReader,
	mappings MappingReader,
	pinger Pinger,
	log logger.Interface,
) *Handler {
	return &Handler{
		trigger:  trigger,
		commands: commands,
		mappings: mappings,
		pinger:   pinger,
		log:      log.WithComponent("api"),
	}
}

// HandleRunNow handles POST /api/v1/scrape/run. It creates a PENDING
// FORCE_RUN command and returns immediately; the run itself is
// dispatched in the background.
func (h *Handler) HandleRunNow(c *gin.Context) {
	command, err := h.trigger.Enqueue(c.Request.Context(), domain.CommandForceRun)
	if err != nil {
		h.log.Error("Failed to enqueue run", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to enqueue scrape run",
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"command_id": command.ID,
		"status":     command.Status,
	})
}

// HandleStatus handles GET /api/v1/scrape/status. Returns the most recent
// command record as-is.
func (h *Handler) HandleStatus(c *gin.Context) {
	command, err := h.commands.FindLatest(c.Request.Context())
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "no scrape run has been recorded yet",
			})
			return
		}
		h.log.Error("Failed to read latest command", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to read run status",
		})
		return
	}

	c.JSON(http.StatusOK, command)
}

// HandleMappings handles GET /api/v1/mappings. Returns every mapping with
// its last-run telemetry for operator dashboards.
func (h *Handler) HandleMappings(c *gin.Context) {
	mappings, err := h.mappings.ListAll(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list mappings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to list mappings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mappings": mappings,
		"count":    len(mappings),
	})
}

// HandleHealth handles GET /healthz. Reports store connectivity.
func (h *Handler) HandleHealth(c *gin.Context) {
	if err := h.pinger.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
