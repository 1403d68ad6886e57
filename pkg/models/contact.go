package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact represents a professional contact in a tenant's network.
type Contact struct {
	ID          uuid.UUID `db:"id"           json:"id"`
	TenantID    uuid.UUID `db:"tenant_id"    json:"tenant_id"`
	Name        string    `db:"name"         json:"name"`
	Domain      string    `db:"domain"       json:"domain"`
	Occasion    string    `db:"occasion"     json:"occasion"`
	PriorTopics []string  `db:"prior_topics" json:"prior_topics"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"   json:"updated_at"`
}

// Counterpart projects the contact into the metadata embedded in prompts.
func (c *Contact) Counterpart() Counterpart {
	return Counterpart{
		Name:        c.Name,
		Domain:      c.Domain,
		Occasion:    c.Occasion,
		PriorTopics: c.PriorTopics,
	}
}
