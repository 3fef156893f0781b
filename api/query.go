package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campusgo/assistant/domain"
	"github.com/campusgo/assistant/store"
	"github.com/campusgo/assistant/suggest"
)

// QueryResponse is the response body for POST /v1/query.
type QueryResponse struct {
	SessionID string `json:"session_id"`
	domain.Resolution
}

// ResolveQuery runs a query through the resolution pipeline.
// POST /v1/query
func (h *Handler) ResolveQuery(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.ResolveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "query is required"})
	}

	if req.SessionID == "" {
		req.SessionID = store.NewID("sess")
	}
	if _, err := h.store.GetOrCreateSession(ctx, req.SessionID, req.UserID); err != nil {
		h.log.Error().Err(err).Msg("failed to get or create session")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create session"})
	}

	if _, err := h.memory.AddMessage(ctx, req.SessionID, domain.RoleUser, req.Query, nil); err != nil {
		h.log.Warn().Err(err).Msg("failed to record user message")
	}

	res := h.resolver.Resolve(ctx, req)

	metadata, _ := json.Marshal(map[string]string{"source": string(res.Source)})
	if _, err := h.memory.AddMessage(ctx, req.SessionID, domain.RoleAssistant, res.Answer, metadata); err != nil {
		h.log.Warn().Err(err).Msg("failed to record assistant message")
	}

	return c.JSON(http.StatusOK, QueryResponse{
		SessionID:  req.SessionID,
		Resolution: *res,
	})
}

// GetSuggestions returns follow-up suggestions for a query's topic.
// GET /v1/suggestions?query=...
func (h *Handler) GetSuggestions(c echo.Context) error {
	query := c.QueryParam("query")
	return c.JSON(http.StatusOK, map[string]interface{}{
		"suggestions": suggest.For(query),
	})
}
