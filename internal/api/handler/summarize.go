package handler

import (
	"net/http"

	"github.com/collabohq/collabo/internal/api/response"
	"github.com/collabohq/collabo/pkg/models"
)

type summarizeResponse struct {
	Summary  string              `json:"summary"`
	Source   models.ResultSource `json:"source"`
	Provider string              `json:"provider"`
	Model    string              `json:"model"`
}

// NewSummarizeHandler returns an http.HandlerFunc for POST /api/v1/summarize.
func NewSummarizeHandler(svc AnalysisService, crm CRM) http.HandlerFunc {
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

		summary, meta := svc.Summarize(r.Context(), req.Transcript, counterpart.Name)
		recordResult(r.Context(), crm, tenantID, contactID, models.OpSummarize,
			counterpart.Name, req.Transcript, map[string]string{"summary": summary}, meta)

		response.JSON(w, summarizeResponse{
			Summary:  summary,
			Source:   meta.Source,
			Provider: meta.Provider,
			Model:    meta.Model,
		})
	}
}
