package store

import (
	"context"
	"errors"
	"time"

	"github.com/collabohq/collabo/pkg/models"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("resource not found")
var ErrDuplicateKey = errors.New("duplicate key violation")

// Store is the data access interface. All database operations go through here.
// The analysis façade never reads from it; handlers persist results after
// each call and serve history from it.
type Store interface {
	Ping(ctx context.Context) error
	GetDefaultTenant(ctx context.Context) (*models.Tenant, error)

	GetAPIKeyByPrefix(ctx context.Context, prefix string) ([]*models.APIKey, error)
	UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error
	CreateAPIKey(ctx context.Context, key *models.APIKey) error
	ListAPIKeys(ctx context.Context, tenantID uuid.UUID) ([]*models.APIKey, error)
	RevokeAPIKey(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) error

	CreateContact(ctx context.Context, contact *models.Contact) error
	ListContacts(ctx context.Context, filter ContactFilter) ([]*models.Contact, int, error)
	GetContact(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (*models.Contact, error)
	UpdateContact(ctx context.Context, contact *models.Contact) error
	DeleteContact(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) error

	CreateAnalysisRecord(ctx context.Context, record *models.AnalysisRecord) error
	ListAnalysisRecords(ctx context.Context, filter RecordFilter) ([]*models.AnalysisRecord, int, error)
	GetLatestAnalysisRecord(ctx context.Context, tenantID, contactID uuid.UUID, op models.Operation) (*models.AnalysisRecord, error)
}

type ContactFilter struct {
	TenantID uuid.UUID
	Domain   string
	Name     string
	Page     int
	Limit    int
}

type RecordFilter struct {
	TenantID  uuid.UUID
	ContactID *uuid.UUID
	Operation models.Operation
	Since     time.Time
	Page      int
	Limit     int
}
