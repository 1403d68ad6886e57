package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/collabohq/collabo/internal/api/response"
	"github.com/collabohq/collabo/internal/crm"
	"github.com/collabohq/collabo/internal/store"
	"github.com/collabohq/collabo/pkg/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type contactRequest struct {
	Name        string   `json:"name"`
	Domain      string   `json:"domain"`
	Occasion    string   `json:"occasion"`
	PriorTopics []string `json:"prior_topics"`
}

// NewCreateContactHandler returns an http.HandlerFunc for POST /api/v1/contacts.
func NewCreateContactHandler(svc CRM) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r)
		if !ok {
			return
		}

		var req contactRequest
		if !decodeBody(w, r, &req) {
			return
		}

		contact, err := svc.CreateContact(r.Context(), tenantID, req.Name, req.Domain, req.Occasion, req.PriorTopics)
		if errors.Is(err, crm.ErrInvalidContact) {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "name is required", nil)
			return
		}
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create contact", nil)
			return
		}
		response.Created(w, contact)
	}
}

// NewListContactsHandler returns an http.HandlerFunc for GET /api/v1/contacts.
func NewListContactsHandler(svc CRM) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r)
		if !ok {
			return
		}

		page, limit := parsePagination(r)
		filter := store.ContactFilter{
			TenantID: tenantID,
			Domain:   r.URL.Query().Get("domain"),
			Name:     r.URL.Query().Get("name"),
			Page:     page,
			Limit:    limit,
		}

		contacts, total, err := svc.ListContacts(r.Context(), filter)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list contacts", nil)
			return
		}
		if contacts == nil {
			contacts = []*models.Contact{}
		}
		response.Collection(w, contacts, paginationMeta(page, limit, total))
	}
}

// NewGetContactHandler returns an http.HandlerFunc for GET /api/v1/contacts/{contactID}.
func NewGetContactHandler(svc CRM) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r)
		if !ok {
			return
		}
		id, ok := parseIDParam(w, r, "contactID")
		if !ok {
			return
		}

		contact, err := svc.GetContact(r.Context(), id, tenantID)
		if errors.Is(err, store.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "CONTACT_NOT_FOUND", "Contact not found", nil)
			return
		}
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load contact", nil)
			return
		}
		response.JSON(w, contact)
	}
}

// NewUpdateContactHandler returns an http.HandlerFunc for PUT /api/v1/contacts/{contactID}.
func NewUpdateContactHandler(svc CRM) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r)
		if !ok {
			return
		}
		id, ok := parseIDParam(w, r, "contactID")
		if !ok {
			return
		}

		var req contactRequest
		if !decodeBody(w, r, &req) {
			return
		}

		contact, err := svc.UpdateContact(r.Context(), id, tenantID, req.Name, req.Domain, req.Occasion, req.PriorTopics)
		switch {
		case errors.Is(err, crm.ErrInvalidContact):
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "name is required", nil)
		case errors.Is(err, store.ErrNotFound):
			response.Error(w, http.StatusNotFound, "CONTACT_NOT_FOUND", "Contact not found", nil)
		case err != nil:
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update contact", nil)
		default:
			response.JSON(w, contact)
		}
	}
}

// NewDeleteContactHandler returns an http.HandlerFunc for DELETE /api/v1/contacts/{contactID}.
func NewDeleteContactHandler(svc CRM) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r)
		if !ok {
			return
		}
		id, ok := parseIDParam(w, r, "contactID")
		if !ok {
			return
		}

		err := svc.DeleteContact(r.Context(), id, tenantID)
		if errors.Is(err, store.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "CONTACT_NOT_FOUND", "Contact not found", nil)
			return
		}
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete contact", nil)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// NewContactHistoryHandler returns an http.HandlerFunc for
// GET /api/v1/contacts/{contactID}/analyses.
func NewContactHistoryHandler(svc CRM) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r)
		if !ok {
			return
		}
		id, ok := parseIDParam(w, r, "contactID")
		if !ok {
			return
		}

		op := models.Operation(r.URL.Query().Get("operation"))
		if op != "" && !op.Valid() {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "unknown operation", nil)
			return
		}

		var since time.Time
		if raw := r.URL.Query().Get("since"); raw != "" {
			var err error
			since, err = time.Parse(time.RFC3339, raw)
			if err != nil {
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "since must be a valid RFC3339 timestamp", nil)
				return
			}
		}

		page, limit := parsePagination(r)
		records, total, err := svc.ListHistory(r.Context(), store.RecordFilter{
			TenantID:  tenantID,
			ContactID: &id,
			Operation: op,
			Since:     since,
			Page:      page,
			Limit:     limit,
		})
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list analyses", nil)
			return
		}
		if records == nil {
			records = []*models.AnalysisRecord{}
		}
		response.Collection(w, records, paginationMeta(page, limit, total))
	}
}

// NewLatestAnalysisHandler returns an http.HandlerFunc for
// GET /api/v1/contacts/{contactID}/analyses/latest.
func NewLatestAnalysisHandler(svc CRM) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := requireTenant(w, r)
		if !ok {
			return
		}
		id, ok := parseIDParam(w, r, "contactID")
		if !ok {
			return
		}

		op := models.Operation(r.URL.Query().Get("operation"))
		if !op.Valid() {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "operation is required and must be one of analyze, strategy, extract_actions, summarize", nil)
			return
		}

		record, err := svc.LatestResult(r.Context(), tenantID, id, op)
		if errors.Is(err, store.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "ANALYSIS_NOT_FOUND", "No analysis recorded for this contact and operation", nil)
			return
		}
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load analysis", nil)
			return
		}
		response.JSON(w, record)
	}
}

func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", name+" must be a valid UUID", nil)
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func paginationMeta(page, limit, total int) response.PaginationMeta {
	return response.PaginationMeta{
		Page:    page,
		Limit:   limit,
		Total:   total,
		HasNext: page*limit < total,
	}
}
