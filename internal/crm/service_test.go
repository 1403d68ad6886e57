package crm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/collabohq/collabo/internal/cache"
	"github.com/collabohq/collabo/internal/store"
	"github.com/collabohq/collabo/pkg/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- in-memory store ---

type memStore struct {
	store.Store // panic on anything the tests don't stub

	contacts map[uuid.UUID]*models.Contact
	records  []*models.AnalysisRecord

	createRecordErr error
}

func newMemStore() *memStore {
	return &memStore{contacts: make(map[uuid.UUID]*models.Contact)}
}

func (m *memStore) CreateContact(_ context.Context, c *models.Contact) error {
	m.contacts[c.ID] = c
	return nil
}

func (m *memStore) GetContact(_ context.Context, id, tenantID uuid.UUID) (*models.Contact, error) {
	c, ok := m.contacts[id]
	if !ok || c.TenantID != tenantID {
		return nil, store.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memStore) UpdateContact(_ context.Context, c *models.Contact) error {
	if _, ok := m.contacts[c.ID]; !ok {
		return store.ErrNotFound
	}
	m.contacts[c.ID] = c
	return nil
}

func (m *memStore) DeleteContact(_ context.Context, id, _ uuid.UUID) error {
	if _, ok := m.contacts[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.contacts, id)
	return nil
}

func (m *memStore) CreateAnalysisRecord(_ context.Context, r *models.AnalysisRecord) error {
	if m.createRecordErr != nil {
		return m.createRecordErr
	}
	m.records = append(m.records, r)
	return nil
}

func (m *memStore) GetLatestAnalysisRecord(_ context.Context, tenantID, contactID uuid.UUID, op models.Operation) (*models.AnalysisRecord, error) {
	var latest *models.AnalysisRecord
	for _, r := range m.records {
		if r.TenantID != tenantID || r.ContactID == nil || *r.ContactID != contactID || r.Operation != op {
			continue
		}
		if latest == nil || r.CreatedAt.After(latest.CreatedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, store.ErrNotFound
	}
	return latest, nil
}

// --- in-memory cache ---

type memCache struct {
	data map[string][]byte

	getErr error
	setErr error
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (m *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memCache) Ping(_ context.Context) error { return nil }

func (m *memCache) IncrWithExpiry(_ context.Context, _ string, _ time.Duration) (int64, error) {
	return 0, nil
}

var testTenantID = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")

// --- contacts ---

func TestCreateContact(t *testing.T) {
	svc := NewService(newMemStore(), newMemCache())

	contact, err := svc.CreateContact(context.Background(), testTenantID, "  Marie Dupont  ", "energy", "conference", nil)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, contact.ID)
	assert.Equal(t, "Marie Dupont", contact.Name)
	assert.NotNil(t, contact.PriorTopics)
	assert.False(t, contact.CreatedAt.IsZero())
}

func TestCreateContact_EmptyName(t *testing.T) {
	svc := NewService(newMemStore(), newMemCache())

	_, err := svc.CreateContact(context.Background(), testTenantID, "   ", "", "", nil)
	assert.ErrorIs(t, err, ErrInvalidContact)
}

func TestUpdateContact(t *testing.T) {
	ms := newMemStore()
	svc := NewService(ms, newMemCache())
	ctx := context.Background()

	contact, err := svc.CreateContact(ctx, testTenantID, "Marie", "energy", "", nil)
	require.NoError(t, err)

	updated, err := svc.UpdateContact(ctx, contact.ID, testTenantID, "Marie Martin", "finance", "referral", []string{"funding"})
	require.NoError(t, err)
	assert.Equal(t, "Marie Martin", updated.Name)
	assert.Equal(t, "finance", updated.Domain)
	assert.Equal(t, []string{"funding"}, updated.PriorTopics)
	assert.True(t, updated.UpdatedAt.After(contact.CreatedAt) || updated.UpdatedAt.Equal(contact.CreatedAt))
}

func TestUpdateContact_NotFound(t *testing.T) {
	svc := NewService(newMemStore(), newMemCache())

	_, err := svc.UpdateContact(context.Background(), uuid.New(), testTenantID, "x", "", "", nil)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// --- history ---

func record(contactID *uuid.UUID, op models.Operation) *models.AnalysisRecord {
	return &models.AnalysisRecord{
		TenantID:   testTenantID,
		ContactID:  contactID,
		Operation:  op,
		Transcript: "t",
		Result:     json.RawMessage(`{"ok": true}`),
		Source:     models.SourceLive,
		Provider:   "mock",
	}
}

func TestRecordResult_AssignsIDAndTimestamp(t *testing.T) {
	ms := newMemStore()
	svc := NewService(ms, newMemCache())

	r := record(nil, models.OpAnalyze)
	require.NoError(t, svc.RecordResult(context.Background(), r))

	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.False(t, r.CreatedAt.IsZero())
	require.Len(t, ms.records, 1)
}

func TestRecordResult_UpdatesLatestCache(t *testing.T) {
	ms := newMemStore()
	mc := newMemCache()
	svc := NewService(ms, mc)
	contactID := uuid.New()

	r := record(&contactID, models.OpAnalyze)
	require.NoError(t, svc.RecordResult(context.Background(), r))

	key := cache.LatestAnalysisKey(testTenantID, contactID, models.OpAnalyze)
	buf, ok := mc.data[key]
	require.True(t, ok)

	var cached models.AnalysisRecord
	require.NoError(t, json.Unmarshal(buf, &cached))
	assert.Equal(t, r.ID, cached.ID)
}

func TestRecordResult_CacheFailureIsNotFatal(t *testing.T) {
	ms := newMemStore()
	mc := newMemCache()
	mc.setErr = errors.New("redis down")
	svc := NewService(ms, mc)
	contactID := uuid.New()

	err := svc.RecordResult(context.Background(), record(&contactID, models.OpAnalyze))
	assert.NoError(t, err)
	assert.Len(t, ms.records, 1)
}

func TestRecordResult_StoreFailure(t *testing.T) {
	ms := newMemStore()
	ms.createRecordErr = errors.New("db down")
	svc := NewService(ms, newMemCache())

	err := svc.RecordResult(context.Background(), record(nil, models.OpAnalyze))
	assert.Error(t, err)
}

func TestLatestResult_CacheHit(t *testing.T) {
	ms := newMemStore()
	mc := newMemCache()
	svc := NewService(ms, mc)
	contactID := uuid.New()

	cached := record(&contactID, models.OpAnalyze)
	cached.ID = uuid.New()
	buf, err := json.Marshal(cached)
	require.NoError(t, err)
	mc.data[cache.LatestAnalysisKey(testTenantID, contactID, models.OpAnalyze)] = buf

	got, err := svc.LatestResult(context.Background(), testTenantID, contactID, models.OpAnalyze)
	require.NoError(t, err)
	assert.Equal(t, cached.ID, got.ID)
	// The store was never consulted.
	assert.Empty(t, ms.records)
}

func TestLatestResult_CacheMissFallsThroughAndPopulates(t *testing.T) {
	ms := newMemStore()
	mc := newMemCache()
	svc := NewService(ms, mc)
	contactID := uuid.New()

	stored := record(&contactID, models.OpAnalyze)
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now().UTC()
	ms.records = append(ms.records, stored)

	got, err := svc.LatestResult(context.Background(), testTenantID, contactID, models.OpAnalyze)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)

	// The cache now holds the record for the next lookup.
	_, ok := mc.data[cache.LatestAnalysisKey(testTenantID, contactID, models.OpAnalyze)]
	assert.True(t, ok)
}

func TestLatestResult_CorruptCacheEntryDropped(t *testing.T) {
	ms := newMemStore()
	mc := newMemCache()
	svc := NewService(ms, mc)
	contactID := uuid.New()

	key := cache.LatestAnalysisKey(testTenantID, contactID, models.OpAnalyze)
	mc.data[key] = []byte("{not json")

	stored := record(&contactID, models.OpAnalyze)
	stored.ID = uuid.New()
	ms.records = append(ms.records, stored)

	got, err := svc.LatestResult(context.Background(), testTenantID, contactID, models.OpAnalyze)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
}

func TestLatestResult_NotFound(t *testing.T) {
	svc := NewService(newMemStore(), newMemCache())

	_, err := svc.LatestResult(context.Background(), testTenantID, uuid.New(), models.OpAnalyze)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
