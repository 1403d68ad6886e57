package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/collabohq/collabo/pkg/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements the Store interface using pgx/v5.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// --- Tenants ---

func (s *PostgresStore) GetDefaultTenant(ctx context.Context) (*models.Tenant, error) {
	var t models.Tenant
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM tenants WHERE name = 'default' LIMIT 1`,
	).Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get default tenant: %w", err)
	}
	return &t, nil
}

// --- API Keys ---

func (s *PostgresStore) GetAPIKeyByPrefix(ctx context.Context, prefix string) ([]*models.APIKey, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, tenant_id, name, key_hash, key_prefix, scopes, last_used_at, deleted_at, created_at, updated_at
		 FROM api_keys WHERE key_prefix = $1 AND deleted_at IS NULL`, prefix)
	if err != nil {
		return nil, fmt.Errorf("get api key by prefix: %w", err)
	}
	defer rows.Close()

	var keys []*models.APIKey
	for rows.Next() {
		var k models.APIKey
		if err := rows.Scan(&k.ID, &k.TenantID, &k.Name, &k.KeyHash, &k.KeyPrefix, &k.Scopes,
			&k.LastUsedAt, &k.DeletedAt, &k.CreatedAt, &k.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		keys = append(keys, &k)
	}
	return keys, rows.Err()
}

func (s *PostgresStore) UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE api_keys SET last_used_at = NOW(), updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("update api key last used: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateAPIKey(ctx context.Context, key *models.APIKey) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO api_keys (id, tenant_id, name, key_hash, key_prefix, scopes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		key.ID, key.TenantID, key.Name, key.KeyHash, key.KeyPrefix, key.Scopes, key.CreatedAt, key.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create api key: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListAPIKeys(ctx context.Context, tenantID uuid.UUID) ([]*models.APIKey, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, tenant_id, name, key_hash, key_prefix, scopes, last_used_at, deleted_at, created_at, updated_at
		 FROM api_keys WHERE tenant_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	defer rows.Close()

	var keys []*models.APIKey
	for rows.Next() {
		var k models.APIKey
		if err := rows.Scan(&k.ID, &k.TenantID, &k.Name, &k.KeyHash, &k.KeyPrefix, &k.Scopes,
			&k.LastUsedAt, &k.DeletedAt, &k.CreatedAt, &k.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		keys = append(keys, &k)
	}
	return keys, rows.Err()
}

func (s *PostgresStore) RevokeAPIKey(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE api_keys SET deleted_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL`, id, tenantID)
	if err != nil {
		return fmt.Errorf("revoke api key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Contacts ---

func (s *PostgresStore) CreateContact(ctx context.Context, contact *models.Contact) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO contacts (id, tenant_id, name, domain, occasion, prior_topics, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		contact.ID, contact.TenantID, contact.Name, contact.Domain, contact.Occasion,
		contact.PriorTopics, contact.CreatedAt, contact.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListContacts(ctx context.Context, filter ContactFilter) ([]*models.Contact, int, error) {
	// Build WHERE clause dynamically
	conditions := []string{"tenant_id = $1"}
	args := []any{filter.TenantID}
	argIdx := 2

	if filter.Domain != "" {
		conditions = append(conditions, fmt.Sprintf("domain = $%d", argIdx))
		args = append(args, filter.Domain)
		argIdx++
	}
	if filter.Name != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argIdx))
		args = append(args, "%"+filter.Name+"%")
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM contacts WHERE " + where
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	limit, offset := normalizePagination(filter.Page, filter.Limit)

	dataQuery := fmt.Sprintf(
		`SELECT id, tenant_id, name, domain, occasion, prior_topics, created_at, updated_at
		 FROM contacts WHERE %s ORDER BY name ASC LIMIT $%d OFFSET $%d`,
		where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := s.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*models.Contact
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.Domain, &c.Occasion,
			&c.PriorTopics, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, &c)
	}
	return contacts, total, rows.Err()
}

func (s *PostgresStore) GetContact(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (*models.Contact, error) {
	var c models.Contact
	err := s.pool.QueryRow(ctx,
		`SELECT id, tenant_id, name, domain, occasion, prior_topics, created_at, updated_at
		 FROM contacts WHERE id = $1 AND tenant_id = $2`, id, tenantID,
	).Scan(&c.ID, &c.TenantID, &c.Name, &c.Domain, &c.Occasion,
		&c.PriorTopics, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) UpdateContact(ctx context.Context, contact *models.Contact) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE contacts SET name = $1, domain = $2, occasion = $3, prior_topics = $4, updated_at = NOW()
		 WHERE id = $5 AND tenant_id = $6`,
		contact.Name, contact.Domain, contact.Occasion, contact.PriorTopics,
		contact.ID, contact.TenantID)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteContact(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM contacts WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Analysis Records ---

func (s *PostgresStore) CreateAnalysisRecord(ctx context.Context, record *models.AnalysisRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO analyses (id, tenant_id, contact_id, operation, counterpart_name, transcript, result, source, provider, model, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		record.ID, record.TenantID, record.ContactID, record.Operation, record.CounterpartName,
		record.Transcript, record.Result, record.Source, record.Provider, record.Model, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("create analysis record: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListAnalysisRecords(ctx context.Context, filter RecordFilter) ([]*models.AnalysisRecord, int, error) {
	conditions := []string{"tenant_id = $1"}
	args := []any{filter.TenantID}
	argIdx := 2

	if filter.ContactID != nil {
		conditions = append(conditions, fmt.Sprintf("contact_id = $%d", argIdx))
		args = append(args, *filter.ContactID)
		argIdx++
	}
	if filter.Operation != "" {
		conditions = append(conditions, fmt.Sprintf("operation = $%d", argIdx))
		args = append(args, filter.Operation)
		argIdx++
	}
	if !filter.Since.IsZero() {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argIdx))
		args = append(args, filter.Since)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM analyses WHERE " + where
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count analysis records: %w", err)
	}

	limit, offset := normalizePagination(filter.Page, filter.Limit)

	dataQuery := fmt.Sprintf(
		`SELECT id, tenant_id, contact_id, operation, counterpart_name, transcript, result, source, provider, model, created_at
		 FROM analyses WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := s.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list analysis records: %w", err)
	}
	defer rows.Close()

	var records []*models.AnalysisRecord
	for rows.Next() {
		var r models.AnalysisRecord
		if err := rows.Scan(&r.ID, &r.TenantID, &r.ContactID, &r.Operation, &r.CounterpartName,
			&r.Transcript, &r.Result, &r.Source, &r.Provider, &r.Model, &r.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan analysis record: %w", err)
		}
		records = append(records, &r)
	}
	return records, total, rows.Err()
}

func (s *PostgresStore) GetLatestAnalysisRecord(ctx context.Context, tenantID, contactID uuid.UUID, op models.Operation) (*models.AnalysisRecord, error) {
	var r models.AnalysisRecord
	err := s.pool.QueryRow(ctx,
		`SELECT id, tenant_id, contact_id, operation, counterpart_name, transcript, result, source, provider, model, created_at
		 FROM analyses WHERE tenant_id = $1 AND contact_id = $2 AND operation = $3
		 ORDER BY created_at DESC LIMIT 1`, tenantID, contactID, op,
	).Scan(&r.ID, &r.TenantID, &r.ContactID, &r.Operation, &r.CounterpartName,
		&r.Transcript, &r.Result, &r.Source, &r.Provider, &r.Model, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get latest analysis record: %w", err)
	}
	return &r, nil
}

// --- helpers ---

func normalizePagination(page, limit int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page <= 0 {
		page = 1
	}
	return limit, (page - 1) * limit
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ Store = (*PostgresStore)(nil)
