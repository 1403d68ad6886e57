// Package crm maintains contacts and the analysis history around the
// analysis façade. It owns persistence and caching; it never calls the
// provider itself.
package crm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/collabohq/collabo/internal/cache"
	"github.com/collabohq/collabo/internal/store"
	"github.com/collabohq/collabo/pkg/models"
	"github.com/google/uuid"
)

var ErrInvalidContact = errors.New("contact name is required")

// latestResultTTL bounds staleness of the cached latest-result lookup. The
// cache is invalidated on every new record, so the TTL only covers crashes
// between the store write and the cache write.
const latestResultTTL = 24 * time.Hour

// Service composes the store and cache for contact and history operations.
type Service struct {
	store store.Store
	cache cache.Cache
}

// NewService creates a crm Service.
func NewService(s store.Store, c cache.Cache) *Service {
	return &Service{store: s, cache: c}
}

// --- Contacts ---

// CreateContact validates and persists a new contact.
func (s *Service) CreateContact(ctx context.Context, tenantID uuid.UUID, name, domain, occasion string, priorTopics []string) (*models.Contact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidContact
	}
	if priorTopics == nil {
		priorTopics = []string{}
	}

	now := time.Now().UTC()
	contact := &models.Contact{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Name:        name,
		Domain:      strings.TrimSpace(domain),
		Occasion:    strings.TrimSpace(occasion),
		PriorTopics: priorTopics,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateContact(ctx, contact); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return contact, nil
}

// ListContacts returns a filtered page of contacts with the total count.
func (s *Service) ListContacts(ctx context.Context, filter store.ContactFilter) ([]*models.Contact, int, error) {
	return s.store.ListContacts(ctx, filter)
}

// GetContact fetches one contact scoped to a tenant.
func (s *Service) GetContact(ctx context.Context, id, tenantID uuid.UUID) (*models.Contact, error) {
	return s.store.GetContact(ctx, id, tenantID)
}

// UpdateContact applies new field values to an existing contact.
func (s *Service) UpdateContact(ctx context.Context, id, tenantID uuid.UUID, name, domain, occasion string, priorTopics []string) (*models.Contact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidContact
	}

	contact, err := s.store.GetContact(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	contact.Name = name
	contact.Domain = strings.TrimSpace(domain)
	contact.Occasion = strings.TrimSpace(occasion)
	if priorTopics != nil {
		contact.PriorTopics = priorTopics
	}
	contact.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateContact(ctx, contact); err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return contact, nil
}

// DeleteContact removes a contact. Analysis records keep their contact_id;
// history stays queryable after the contact is gone.
func (s *Service) DeleteContact(ctx context.Context, id, tenantID uuid.UUID) error {
	return s.store.DeleteContact(ctx, id, tenantID)
}

// --- Analysis history ---

// RecordResult persists a completed analysis and refreshes the
// latest-result cache entry for that contact and operation. A cache failure
// is logged, not returned; history reads fall through to Postgres.
func (s *Service) RecordResult(ctx context.Context, record *models.AnalysisRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	if err := s.store.CreateAnalysisRecord(ctx, record); err != nil {
		return fmt.Errorf("record analysis result: %w", err)
	}

	if record.ContactID != nil {
		key := cache.LatestAnalysisKey(record.TenantID, *record.ContactID, record.Operation)
		buf, err := json.Marshal(record)
		if err == nil {
			err = s.cache.Set(ctx, key, buf, latestResultTTL)
		}
		if err != nil {
			slog.Warn("latest-result cache update failed", "key", key, "error", err)
		}
	}
	return nil
}

// ListHistory returns a filtered page of analysis records.
func (s *Service) ListHistory(ctx context.Context, filter store.RecordFilter) ([]*models.AnalysisRecord, int, error) {
	return s.store.ListAnalysisRecords(ctx, filter)
}

// LatestResult returns the most recent record for a contact and operation,
// checking the cache before the store.
func (s *Service) LatestResult(ctx context.Context, tenantID, contactID uuid.UUID, op models.Operation) (*models.AnalysisRecord, error) {
	key := cache.LatestAnalysisKey(tenantID, contactID, op)
	if buf, found, err := s.cache.Get(ctx, key); err == nil && found {
		var record models.AnalysisRecord
		if err := json.Unmarshal(buf, &record); err == nil {
			return &record, nil
		}
		// Corrupt entry; drop it and fall through to the store.
		_ = s.cache.Delete(ctx, key)
	}

	record, err := s.store.GetLatestAnalysisRecord(ctx, tenantID, contactID, op)
	if err != nil {
		return nil, err
	}

	if buf, err := json.Marshal(record); err == nil {
		if err := s.cache.Set(ctx, key, buf, latestResultTTL); err != nil {
			slog.Warn("latest-result cache update failed", "key", key, "error", err)
		}
	}
	return record, nil
}
