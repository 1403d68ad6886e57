package handler

import (
	"net/http"

	"github.com/collabohq/collabo/internal/api/response"
	"github.com/collabohq/collabo/pkg/models"
)

type strategyResponse struct {
	Strategy   models.ConversationStrategy `json:"strategy"`
	Source     models.ResultSource         `json:"source"`
	Provider   string                      `json:"provider"`
	Model      string                      `json:"model"`
	Backfilled []string                    `json:"backfilled,omitempty"`
}

// NewStrategyHandler returns an http.HandlerFunc for POST /api/v1/strategy.
func NewStrategyHandler(svc AnalysisService, crm CRM) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r)
		if !ok {
			return
		}

		var req struct {
			Goal        string             `json:"goal"`
			ContactID   string             `json:"contact_id"`
			Counterpart counterpartRequest `json:"counterpart"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Goal == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "goal is required", nil)
			return
		}

		counterpart, contactID, ok := resolveCounterpart(w, r, crm, tenantID, req.ContactID, req.Counterpart)
		if !ok {
			return
		}

		strategy, meta := svc.SuggestStrategy(r.Context(), counterpart, req.Goal)
		recordResult(r.Context(), crm, tenantID, contactID, models.OpStrategy,
			counterpart.Name, "", strategy, meta)

		response.JSON(w, strategyResponse{
			Strategy:   strategy,
			Source:     meta.Source,
			Provider:   meta.Provider,
			Model:      meta.Model,
			Backfilled: meta.Backfilled,
		})
	}
}
