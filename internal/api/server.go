package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haberhub/scraper/internal/config"
)

// readHeaderTimeout bounds how long a client may take to send headers.
const readHeaderTimeout = 10 * time.Second

// SetupRouter builds the gin router with all routes registered.
func SetupRouter(handler *Handler, cfg *config.Config) *gin.Engine {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", handler.HandleHealth)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/scrape/run", handler.HandleRunNow)
		v1.GET("/scrape/status", handler.HandleStatus)
		v1.GET("/mappings", handler.HandleMappings)
	}

	return router
}

// NewHTTPServer wraps the router in an http.Server with timeouts from
// config.
func NewHTTPServer(handler *Handler, cfg *config.Config) *http.Server {
	return &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           SetupRouter(handler, cfg),
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
