package handler

import (
	"net/http"

	"github.com/collabohq/collabo/internal/api/response"
	"github.com/collabohq/collabo/pkg/models"
)

type analyzeResponse struct {
	Analysis   models.ConversationAnalysis `json:"analysis"`
	Source     models.ResultSource         `json:"source"`
	Provider   string                      `json:"provider"`
	Model      string                      `json:"model"`
	Backfilled []string                    `json:"backfilled,omitempty"`
}

// NewAnalyzeHandler returns an http.HandlerFunc for POST /api/v1/analyze.
func NewAnalyzeHandler(svc AnalysisService, crm CRM) http.HandlerFunc {
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

		analysis, meta := svc.Analyze(r.Context(), req.Transcript, counterpart)
		recordResult(r.Context(), crm, tenantID, contactID, models.OpAnalyze,
			counterpart.Name, req.Transcript, analysis, meta)

		response.JSON(w, analyzeResponse{
			Analysis:   analysis,
			Source:     meta.Source,
			Provider:   meta.Provider,
			Model:      meta.Model,
			Backfilled: meta.Backfilled,
		})
	}
}
