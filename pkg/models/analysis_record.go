package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AnalysisRecord is a stored request+result pair, keyed by tenant, contact
// and timestamp. The raw provider response is never stored; Result holds the
// validated structured payload only.
type AnalysisRecord struct {
	ID              uuid.UUID       `db:"id"               json:"id"`
	TenantID        uuid.UUID       `db:"tenant_id"        json:"tenant_id"`
	ContactID       *uuid.UUID      `db:"contact_id"       json:"contact_id,omitempty"`
	Operation       Operation       `db:"operation"        json:"operation"`
	CounterpartName string          `db:"counterpart_name" json:"counterpart_name"`
	Transcript      string          `db:"transcript"       json:"transcript"`
	Result          json.RawMessage `db:"result"           json:"result"`
	Source          ResultSource    `db:"source"           json:"source"`
	Provider        string          `db:"provider"         json:"provider"`
	Model           string          `db:"model"            json:"model"`
	CreatedAt       time.Time       `db:"created_at"       json:"created_at"`
}
