package handler

import (
	"net/http"

	"github.com/collabohq/collabo/internal/api/response"
	"github.com/collabohq/collabo/pkg/models"
)

type actionsResponse struct {
	Actions    []models.ActionItem `json:"actions"`
	Source     models.ResultSource `json:"source"`
	Provider   string              `json:"provider"`
	Model      string              `json:"model"`
	Backfilled []string            `json:"backfilled,omitempty"`
}

// NewActionsHandler returns an http.HandlerFunc for POST /api/v1/actions.
func NewActionsHandler(svc AnalysisService, crm CRM) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r)
		if !ok {
			return
		}

		var req struct {
			Transcript  string             `json:"transcript"`
			ContactID   string             `json:"contact_id"`
			Counterpart counterpartRequest `json:"counterpart"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Transcript == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "transcript is required", nil)
			return
		}

		counterpart, contactID, ok := resolveCounterpart(w, r, crm, tenantID, req.ContactID, req.Counterpart)
		if !ok {
			return
		}

		actions, meta := svc.ExtractActions(r.Context(), req.Transcript)
		recordResult(r.Context(), crm, tenantID, contactID, models.OpExtractActions,
			counterpart.Name, req.Transcript, actions, meta)

		response.JSON(w, actionsResponse{
			Actions:    actions,
			Source:     meta.Source,
			Provider:   meta.Provider,
			Model:      meta.Model,
			Backfilled: meta.Backfilled,
		})
	}
}
