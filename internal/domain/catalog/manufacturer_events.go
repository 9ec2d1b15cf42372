package catalog

import (
	"github.com/google/uuid"
	"github.com/shopadmin/backend/internal/domain/shared"
)

const AggregateTypeManufacturer = "Manufacturer"

const (
	EventTypeManufacturerCreated       = "ManufacturerCreated"
	EventTypeManufacturerUpdated       = "ManufacturerUpdated"
	EventTypeManufacturerStatusChanged = "ManufacturerStatusChanged"
	EventTypeManufacturerDeleted       = "ManufacturerDeleted"
)

type ManufacturerCreatedEvent struct {
	shared.BaseDomainEvent
	ManufacturerID uuid.UUID `json:"manufacturer_id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
}

func NewManufacturerCreatedEvent(m *Manufacturer) *ManufacturerCreatedEvent {
	return &ManufacturerCreatedEvent{
		BaseDomainEvent: newEvent(EventTypeManufacturerCreated, AggregateTypeManufacturer, &m.TenantAggregateRoot),
		ManufacturerID:  m.ID,
		Code:            m.Code,
		Name:            m.Name,
	}
}

type ManufacturerUpdatedEvent struct {
	shared.BaseDomainEvent
	ManufacturerID uuid.UUID `json:"manufacturer_id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Website        string    `json:"website,omitempty"`
}

func NewManufacturerUpdatedEvent(m *Manufacturer) *ManufacturerUpdatedEvent {
	return &ManufacturerUpdatedEvent{
		BaseDomainEvent: newEvent(EventTypeManufacturerUpdated, AggregateTypeManufacturer, &m.TenantAggregateRoot),
		ManufacturerID:  m.ID,
		Code:            m.Code,
		Name:            m.Name,
		Website:         m.Website,
	}
}

// ManufacturerStatusChangedEvent is raised on activation and deactivation
type ManufacturerStatusChangedEvent struct {
	shared.BaseDomainEvent
	ManufacturerID uuid.UUID          `json:"manufacturer_id"`
	Code           string             `json:"code"`
	OldStatus      ManufacturerStatus `json:"old_status"`
	NewStatus      ManufacturerStatus `json:"new_status"`
}

func NewManufacturerStatusChangedEvent(m *Manufacturer, from, to ManufacturerStatus) *ManufacturerStatusChangedEvent {
	return &ManufacturerStatusChangedEvent{
		BaseDomainEvent: newEvent(EventTypeManufacturerStatusChanged, AggregateTypeManufacturer, &m.TenantAggregateRoot),
		ManufacturerID:  m.ID,
		Code:            m.Code,
		OldStatus:       from,
		NewStatus:       to,
	}
}

type ManufacturerDeletedEvent struct {
	shared.BaseDomainEvent
	ManufacturerID uuid.UUID `json:"manufacturer_id"`
	Code           string    `json:"code"`
}

func NewManufacturerDeletedEvent(m *Manufacturer) *ManufacturerDeletedEvent {
	return &ManufacturerDeletedEvent{
		BaseDomainEvent: newEvent(EventTypeManufacturerDeleted, AggregateTypeManufacturer, &m.TenantAggregateRoot),
		ManufacturerID:  m.ID,
		Code:            m.Code,
	}
}
