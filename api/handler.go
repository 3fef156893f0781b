// Package api provides HTTP handlers for the campus assistant.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/campusgo/assistant/config"
	"github.com/campusgo/assistant/memory"
	"github.com/campusgo/assistant/resolver"
	"github.com/campusgo/assistant/store"
)

// Handler handles HTTP requests.
type Handler struct {
	store    store.Store
	resolver *resolver.Resolver
	memory   *memory.Memory
	config   *config.Config
	log      zerolog.Logger
}

// NewHandler creates a new handler.
func NewHandler(store store.Store, r *resolver.Resolver, mem *memory.Memory, cfg *config.Config, log zerolog.Logger) *Handler {
	return &Handler{
		store:    store,
		resolver: r,
		memory:   mem,
		config:   cfg,
		log:      log.With().Str("component", "api").Logger(),
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/v1/query", h.ResolveQuery)
	e.GET("/v1/sessions/:session_id/messages", h.GetSessionMessages)
	e.GET("/v1/suggestions", h.GetSuggestions)

	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
