// Package handler contains the HTTP handlers for the API. Each handler is a
// constructor taking interface-typed dependencies, so tests can supply
// in-memory implementations.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/collabohq/collabo/internal/ai"
	mw "github.com/collabohq/collabo/internal/api/middleware"
	"github.com/collabohq/collabo/internal/api/response"
	"github.com/collabohq/collabo/internal/store"
	"github.com/collabohq/collabo/pkg/models"
	"github.com/google/uuid"
)

// AnalysisService is the façade the analysis handlers depend on. Its
// operations never fail; degraded results carry source=fallback in the Meta.
type AnalysisService interface {
	Analyze(ctx context.Context, transcript string, c models.Counterpart) (models.ConversationAnalysis, ai.Meta)
	SuggestStrategy(ctx context.Context, c models.Counterpart, goal string) (models.ConversationStrategy, ai.Meta)
	ExtractActions(ctx context.Context, transcript string) ([]models.ActionItem, ai.Meta)
	Summarize(ctx context.Context, transcript, counterpartName string) (string, ai.Meta)
}

// CRM is the contact and history surface the handlers depend on.
type CRM interface {
	CreateContact(ctx context.Context, tenantID uuid.UUID, name, domain, occasion string, priorTopics []string) (*models.Contact, error)
	ListContacts(ctx context.Context, filter store.ContactFilter) ([]*models.Contact, int, error)
	GetContact(ctx context.Context, id, tenantID uuid.UUID) (*models.Contact, error)
	UpdateContact(ctx context.Context, id, tenantID uuid.UUID, name, domain, occasion string, priorTopics []string) (*models.Contact, error)
	DeleteContact(ctx context.Context, id, tenantID uuid.UUID) error

	RecordResult(ctx context.Context, record *models.AnalysisRecord) error
	ListHistory(ctx context.Context, filter store.RecordFilter) ([]*models.AnalysisRecord, int, error)
	LatestResult(ctx context.Context, tenantID, contactID uuid.UUID, op models.Operation) (*models.AnalysisRecord, error)
}

// counterpartRequest is the inline counterpart shape shared by the analysis
// request bodies.
type counterpartRequest struct {
	Name        string   `json:"name"`
	Domain      string   `json:"domain"`
	Occasion    string   `json:"occasion"`
	PriorTopics []string `json:"prior_topics"`
}

func (c counterpartRequest) toModel() models.Counterpart {
	return models.Counterpart{
		Name:        c.Name,
		Domain:      c.Domain,
		Occasion:    c.Occasion,
		PriorTopics: c.PriorTopics,
	}
}

// resolveCounterpart turns a request's contact reference into the
// counterpart metadata for the prompt. A contact_id takes precedence over
// the inline counterpart. A false return means an error response was
// already written.
func resolveCounterpart(w http.ResponseWriter, r *http.Request, crm CRM, tenantID uuid.UUID, contactID string, inline counterpartRequest) (models.Counterpart, *uuid.UUID, bool) {
	if contactID == "" {
		return inline.toModel(), nil, true
	}

	id, err := uuid.Parse(contactID)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "contact_id must be a valid UUID", nil)
		return models.Counterpart{}, nil, false
	}

	contact, err := crm.GetContact(r.Context(), id, tenantID)
	if errors.Is(err, store.ErrNotFound) {
		response.Error(w, http.StatusNotFound, "CONTACT_NOT_FOUND", "Contact not found", nil)
		return models.Counterpart{}, nil, false
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load contact", nil)
		return models.Counterpart{}, nil, false
	}
	return contact.Counterpart(), &id, true
}

// recordResult persists a finished operation. Persistence failures are
// logged and swallowed; the analysis result has already been produced and
// still goes back to the caller.
func recordResult(ctx context.Context, crm CRM, tenantID uuid.UUID, contactID *uuid.UUID, op models.Operation, counterpartName, transcript string, payload any, meta ai.Meta) {
	result, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("analysis result not recorded", "operation", op, "error", err)
		return
	}
	record := &models.AnalysisRecord{
		TenantID:        tenantID,
		ContactID:       contactID,
		Operation:       op,
		CounterpartName: counterpartName,
		Transcript:      transcript,
		Result:          result,
		Source:          meta.Source,
		Provider:        meta.Provider,
		Model:           meta.Model,
	}
	if err := crm.RecordResult(ctx, record); err != nil {
		slog.Warn("analysis result not recorded", "operation", op, "error", err)
	}
}

// requireTenant pulls the tenant from the request context set by auth.
// A false return means the 401 was already written.
func requireTenant(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	tenantID, ok := mw.GetTenantID(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing tenant", nil)
	}
	return tenantID, ok
}

// decodeBody decodes the JSON request body. A false return means the 400
// was already written.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
		return false
	}
	return true
}
