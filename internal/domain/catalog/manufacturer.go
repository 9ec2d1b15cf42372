package catalog

import (
	"net/url"

	"github.com/google/uuid"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// ManufacturerStatus represents the status of a manufacturer
type ManufacturerStatus string

const (
	ManufacturerStatusActive   ManufacturerStatus = statusActive
	ManufacturerStatusInactive ManufacturerStatus = statusInactive
)

// Manufacturer represents a brand that can be featured on the homepage
type Manufacturer struct {
	shared.TenantAggregateRoot
	Code        string
	Name        string
	Description string
	Website     string
	SortOrder   int
	Status      ManufacturerStatus
}

// NewManufacturer creates a new active manufacturer
func NewManufacturer(tenantID uuid.UUID, code, name string) (*Manufacturer, error) {
	normalized, err := normalizeCode("Manufacturer", code)
	if err != nil {
		return nil, err
	}
	if err := validateName("Manufacturer", name); err != nil {
		return nil, err
	}

	m := &Manufacturer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                normalized,
		Name:                name,
		Status:              ManufacturerStatusActive,
	}

	m.AddDomainEvent(NewManufacturerCreatedEvent(m))

	return m, nil
}

func (m *Manufacturer) Update(name, description, website string) error {
	if err := validateName("Manufacturer", name); err != nil {
		return err
	}
	if err := validateDescription("Manufacturer", description); err != nil {
		return err
	}
	if err := validateWebsite(website); err != nil {
		return err
	}

	m.Name, m.Description, m.Website = name, description, website
	m.Touch()
	m.AddDomainEvent(NewManufacturerUpdatedEvent(m))
	return nil
}

func (m *Manufacturer) SetSortOrder(order int) {
	m.SortOrder = order
	m.Touch()
}

func (m *Manufacturer) Activate() error {
	return m.setStatus(ManufacturerStatusActive)
}

// Deactivate takes the manufacturer off every homepage display
func (m *Manufacturer) Deactivate() error {
	return m.setStatus(ManufacturerStatusInactive)
}

func (m *Manufacturer) setStatus(target ManufacturerStatus) error {
	previous, err := switchStatus("Manufacturer", &m.Status, target)
	if err != nil {
		return err
	}
	m.Touch()
	m.AddDomainEvent(NewManufacturerStatusChangedEvent(m, previous, target))
	return nil
}

// MarkDeleted records the deletion event; the repository removes the row
func (m *Manufacturer) MarkDeleted() {
	m.AddDomainEvent(NewManufacturerDeletedEvent(m))
}

// IsActive returns true if the manufacturer is active
func (m *Manufacturer) IsActive() bool {
	return m.Status == ManufacturerStatusActive
}

func validateWebsite(website string) error {
	if website == "" {
		return nil
	}
	if len(website) > 255 {
		return shared.NewDomainError("INVALID_WEBSITE", "Manufacturer website cannot exceed 255 characters")
	}
	u, err := url.Parse(website)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return shared.NewDomainError("INVALID_WEBSITE", "Manufacturer website must be an http or https URL")
	}
	return nil
}
