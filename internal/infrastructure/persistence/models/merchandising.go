package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopadmin/backend/internal/domain/merchandising"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// HomepageDisplayModel stores one positional layout per tenant and kind.
// Entries is a JSON array where index i holds the entity in slot i+1 and
// empty strings mark free slots.
type HomepageDisplayModel struct {
	ID        uuid.UUID                 `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID                 `gorm:"type:uuid;not null;uniqueIndex:idx_homepage_displays_tenant_kind,priority:1"`
	Kind      merchandising.DisplayKind `gorm:"type:varchar(32);not null;uniqueIndex:idx_homepage_displays_tenant_kind,priority:2"`
	MaxSlots  int                       `gorm:"not null"`
	Entries   []string                  `gorm:"type:text;not null;serializer:json"`
	Version   int                       `gorm:"not null;default:1"`
	CreatedAt time.Time                 `gorm:"not null"`
	UpdatedAt time.Time                 `gorm:"not null"`
}

// TableName returns the table name for GORM
func (HomepageDisplayModel) TableName() string {
	return "homepage_displays"
}

// ToDomain converts the model to a domain HomepageDisplay
func (m *HomepageDisplayModel) ToDomain() *merchandising.HomepageDisplay {
	entries := merchandising.Layout(m.Entries).Trim()
	if entries == nil {
		entries = merchandising.Layout{}
	}
	return &merchandising.HomepageDisplay{
		TenantAggregateRoot: shared.TenantAggregateRoot{
			BaseAggregateRoot: shared.BaseAggregateRoot{
				BaseEntity: shared.BaseEntity{
					ID:        m.ID,
					CreatedAt: m.CreatedAt,
					UpdatedAt: m.UpdatedAt,
				},
				Version: m.Version,
			},
			TenantID: m.TenantID,
		},
		Kind:     m.Kind,
		MaxSlots: m.MaxSlots,
		Entries:  entries,
	}
}

// FromDomain populates the model from a domain HomepageDisplay
func (m *HomepageDisplayModel) FromDomain(d *merchandising.HomepageDisplay) {
	m.ID = d.ID
	m.TenantID = d.TenantID
	m.Kind = d.Kind
	m.MaxSlots = d.MaxSlots
	m.Entries = []string(d.Entries.Trim())
	if m.Entries == nil {
		m.Entries = []string{}
	}
	m.Version = d.Version
	m.CreatedAt = d.CreatedAt
	m.UpdatedAt = d.UpdatedAt
}

// HomepageDisplayModelFromDomain creates a model from a domain HomepageDisplay
func HomepageDisplayModelFromDomain(d *merchandising.HomepageDisplay) *HomepageDisplayModel {
	m := &HomepageDisplayModel{}
	m.FromDomain(d)
	return m
}
