package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Ahmedezz570/SkillSwap/internal/service"
	"github.com/Ahmedezz570/SkillSwap/pkg/httputil"
)

// MatchHandler handles HTTP requests for match endpoints.
type MatchHandler struct {
	service *service.MatchService
	logger  *slog.Logger
}

// NewMatchHandler creates a new match HTTP handler.
func NewMatchHandler(svc *service.MatchService, logger *slog.Logger) *MatchHandler {
	return &MatchHandler{
		service: svc,
		logger:  logger,
	}
}

// GetMatches handles GET /api/v1/users/{id}/matches
//
// The optional "name" query parameter narrows results by display name
// without affecting scores or ordering.
func (h *MatchHandler) GetMatches(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	matches, err := h.service.GetMatches(r.Context(), id.String(), r.URL.Query().Get("name"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: matches})
}
